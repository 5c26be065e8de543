package vss_test

import (
	"crypto/rand"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/protocols/vss"
)

func TestVSS(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "VSS Suite")
}

var _ = Describe("Split", func() {
	group := curve.Secp256k1{}

	It("produces a verifiable sharing that reconstructs the secret", func() {
		secret := group.NewScalar().SetUint64(2026)
		shares, cv, err := vss.Split(group, secret, 4, 7, rand.Reader)
		Expect(err).NotTo(HaveOccurred())
		Expect(shares).To(HaveLen(7))

		for _, s := range shares {
			Expect(vss.VerifyProof(group, s)).To(BeTrue())
			Expect(vss.VerifyShareAgainstCommitments(group, s, cv)).To(BeTrue())
		}

		got, err := vss.Reconstruct(group, shares[:4], 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Equal(secret)).To(BeTrue())
	})

	It("rejects an out-of-range threshold", func() {
		secret := group.NewScalar().SetUint64(1)
		_, _, err := vss.Split(group, secret, 1, 1, rand.Reader)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Reconstruct", func() {
	group := curve.Secp256k1{}

	It("fails Insufficient below the threshold", func() {
		secret := group.NewScalar().SetUint64(9)
		shares, _, err := vss.Split(group, secret, 3, 4, rand.Reader)
		Expect(err).NotTo(HaveOccurred())

		_, err = vss.Reconstruct(group, shares[:2], 3)
		Expect(err).To(HaveOccurred())
	})

	It("is order-independent over any t-subset", func() {
		secret := group.NewScalar().SetUint64(314)
		shares, _, err := vss.Split(group, secret, 3, 6, rand.Reader)
		Expect(err).NotTo(HaveOccurred())

		a, err := vss.Reconstruct(group, []vss.Share{shares[0], shares[2], shares[5]}, 3)
		Expect(err).NotTo(HaveOccurred())
		b, err := vss.Reconstruct(group, []vss.Share{shares[5], shares[0], shares[2]}, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Equal(b)).To(BeTrue())
	})
})
