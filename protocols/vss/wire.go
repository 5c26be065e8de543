package vss

import (
	"encoding/binary"

	"github.com/cryptographyteam/zk-thresh-pro/internal/vsserr"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/math/curve"
	"github.com/cryptographyteam/zk-thresh-pro/pkg/proof"
)

// Bytes encodes a share as the deterministic, length-free concatenation
// index(32) || y(32) || r(32) || R(point) || z_s(32) || z_r(32) ||
// C(point) (spec §6's share wire format, generalized to the group's
// PointSize rather than a fixed 32 bytes: secp256k1's compressed point
// encoding needs 33 bytes, one more than spec's literal 32, since its
// affine x-coordinate has no spare sign bit — see DESIGN.md).
func (s Share) Bytes(group curve.Curve) []byte {
	out := make([]byte, 0, 3*32+2*group.PointSize()+2*32)
	out = append(out, s.IndexScalar(group).Bytes()...)
	out = append(out, s.Y.Bytes()...)
	out = append(out, s.R.Bytes()...)
	out = append(out, s.Proof.R.Bytes()...)
	out = append(out, s.Proof.Zs.Bytes()...)
	out = append(out, s.Proof.Zr.Bytes()...)
	out = append(out, s.C.Bytes()...)
	return out
}

// DecodeShare parses the encoding produced by Bytes, rejecting truncated
// or non-canonical blobs with SerializationError.
func DecodeShare(group curve.Curve, b []byte) (Share, error) {
	scalarSize := group.ScalarSize()
	pointSize := group.PointSize()
	want := 3*scalarSize + 2*pointSize + 2*scalarSize
	if len(b) != want {
		return Share{}, vsserr.New(vsserr.SerializationError, "truncated share blob")
	}

	off := 0
	readScalar := func() (curve.Scalar, error) {
		s, err := group.DecodeScalar(b[off : off+scalarSize])
		off += scalarSize
		return s, err
	}
	readPoint := func() (curve.Point, error) {
		p, err := group.DecodePoint(b[off : off+pointSize])
		off += pointSize
		return p, err
	}

	idxScalar, err := readScalar()
	if err != nil {
		return Share{}, vsserr.New(vsserr.SerializationError, err.Error())
	}
	y, err := readScalar()
	if err != nil {
		return Share{}, vsserr.New(vsserr.SerializationError, err.Error())
	}
	r, err := readScalar()
	if err != nil {
		return Share{}, vsserr.New(vsserr.SerializationError, err.Error())
	}
	rPoint, err := readPoint()
	if err != nil {
		return Share{}, vsserr.New(vsserr.SerializationError, err.Error())
	}
	zs, err := readScalar()
	if err != nil {
		return Share{}, vsserr.New(vsserr.SerializationError, err.Error())
	}
	zr, err := readScalar()
	if err != nil {
		return Share{}, vsserr.New(vsserr.SerializationError, err.Error())
	}
	c, err := readPoint()
	if err != nil {
		return Share{}, vsserr.New(vsserr.SerializationError, err.Error())
	}

	// small indices (1..2^16) occupy only the low-order bytes of the
	// scalar's little-endian encoding; the rest are zero.
	idx := binary.LittleEndian.Uint32(idxScalar.Bytes()[:4])

	return Share{
		Index: idx,
		Y:     y,
		R:     r,
		C:     c,
		Proof: &proof.Proof{R: rPoint, Zs: zs, Zr: zr},
	}, nil
}
