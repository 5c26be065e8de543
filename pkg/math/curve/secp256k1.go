package curve

import (
	"io"
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/zeebo/blake3"
)

// hDomainLabel is the nothing-up-my-sleeve label hashed to produce H0
// (spec §4.A).
const hDomainLabel = "zk-thresh-pro/H/v1"

// Secp256k1 is the sole concrete group implementation (spec §4.A: "a
// Ristretto-like prime-order group"). It is a zero-size capability value,
// matching the teacher's curve.Secp256k1{} idiom.
type Secp256k1 struct{}

var (
	secp256k1Order     *saferith.Modulus
	secp256k1OrderOnce sync.Once

	secp256k1HPoint  *secp256k1JacobianPoint
	secp256k1HOnce   sync.Once
)

func secp256k1OrderModulus() *saferith.Modulus {
	secp256k1OrderOnce.Do(func() {
		// secp256k1's group order N, big-endian.
		n := secp256k1.S256().N.Bytes()
		secp256k1Order = saferith.ModulusFromBytes(n)
	})
	return secp256k1Order
}

// Name implements Curve.
func (Secp256k1) Name() string { return "secp256k1" }

// NewScalar implements Curve.
func (Secp256k1) NewScalar() Scalar {
	return &secp256k1Scalar{}
}

// NewPoint implements Curve.
func (Secp256k1) NewPoint() Point {
	p := &secp256k1JacobianPoint{}
	p.v.X.SetInt(0)
	p.v.Y.SetInt(0)
	p.v.Z.SetInt(0) // identity, per secp256k1 Jacobian convention (Z=0)
	return p
}

// Generator implements Curve: returns 1*G0.
func (Secp256k1) Generator() Point {
	one := new(secp256k1.ModNScalar).SetInt(1)
	var r secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(one, &r)
	r.ToAffine()
	return &secp256k1JacobianPoint{v: r}
}

// H implements Curve: the memoized hash-to-point second generator.
func (c Secp256k1) H() Point {
	secp256k1HOnce.Do(func() {
		secp256k1HPoint = hashToCurve(hDomainLabel)
	})
	clone := secp256k1HPoint.v
	return &secp256k1JacobianPoint{v: clone}
}

// hashToCurve derives a point with unknown discrete log relative to G0 by
// try-and-increment: hash label||counter with blake3, interpret the digest
// as an x-coordinate candidate, and accept the first value that lies on
// the curve (spec §4.A: H0 "derived by hashing a fixed label to a point").
func hashToCurve(label string) *secp256k1JacobianPoint {
	for counter := uint32(0); ; counter++ {
		h := blake3.New()
		_, _ = h.Write([]byte(label))
		_, _ = h.Write([]byte{byte(counter), byte(counter >> 8), byte(counter >> 16), byte(counter >> 24)})
		digest := h.Sum(nil)[:32]

		compressed := make([]byte, 33)
		compressed[0] = 0x02 // even-y candidate
		copy(compressed[1:], digest)

		pub, err := secp256k1.ParsePubKey(compressed)
		if err != nil {
			continue
		}
		var jac secp256k1.JacobianPoint
		pub.AsJacobian(&jac)
		return &secp256k1JacobianPoint{v: jac}
	}
}

// RandomScalar implements Curve.
func (c Secp256k1) RandomScalar(rng io.Reader) (Scalar, error) {
	var buf [32]byte
	for {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return nil, err
		}
		var s secp256k1.ModNScalar
		overflow := s.SetByteSlice(buf[:])
		if overflow || s.IsZero() {
			continue
		}
		return &secp256k1Scalar{v: s}, nil
	}
}

// ScalarFromUint64 implements Curve.
func (Secp256k1) ScalarFromUint64(v uint64) Scalar {
	s := &secp256k1Scalar{}
	s.SetUint64(v)
	return s
}

// MultiScalarMult implements Curve. Naive double-and-add per term; a
// Straus/Pippenger bucket method would be the production upgrade (the
// teacher's own MSM primitive was not part of the retrieved files to
// ground a faster version on).
func (Secp256k1) MultiScalarMult(scalars []Scalar, points []Point) Point {
	var acc secp256k1.JacobianPoint
	acc.X.SetInt(0)
	acc.Y.SetInt(0)
	acc.Z.SetInt(0)

	for i := range scalars {
		sc, ok := scalars[i].(*secp256k1Scalar)
		pt, ok2 := points[i].(*secp256k1JacobianPoint)
		if !ok || !ok2 {
			continue
		}
		var term secp256k1.JacobianPoint
		secp256k1.ScalarMultNonConst(&sc.v, &pt.v, &term)
		var sum secp256k1.JacobianPoint
		secp256k1.AddNonConst(&acc, &term, &sum)
		acc = sum
	}
	acc.ToAffine()
	return &secp256k1JacobianPoint{v: acc}
}

// Order implements Curve.
func (Secp256k1) Order() *saferith.Modulus {
	return secp256k1OrderModulus()
}

// ScalarSize implements Curve.
func (Secp256k1) ScalarSize() int { return 32 }

// PointSize implements Curve.
func (Secp256k1) PointSize() int { return 33 }

// DecodeScalar implements Curve.
func (c Secp256k1) DecodeScalar(b []byte) (Scalar, error) {
	s := &secp256k1Scalar{}
	if err := s.SetBytes(b); err != nil {
		return nil, err
	}
	return s, nil
}

// DecodePoint implements Curve.
func (c Secp256k1) DecodePoint(b []byte) (Point, error) {
	p := &secp256k1JacobianPoint{}
	if err := p.SetBytes(b); err != nil {
		return nil, err
	}
	return p, nil
}

// --- Scalar ---

type secp256k1Scalar struct {
	v secp256k1.ModNScalar
}

func (s *secp256k1Scalar) Set(x Scalar) Scalar {
	o := x.(*secp256k1Scalar)
	s.v = o.v
	return s
}

func (s *secp256k1Scalar) SetNat(n *saferith.Nat) Scalar {
	be := new(saferith.Nat).Mod(n, secp256k1OrderModulus()).Bytes()
	var padded [32]byte
	// left-pad to 32 bytes, big-endian, as ModNScalar expects.
	if len(be) > 32 {
		be = be[len(be)-32:]
	}
	copy(padded[32-len(be):], be)
	s.v.SetByteSlice(padded[:])
	return s
}

func (s *secp256k1Scalar) SetUint64(v uint64) Scalar {
	var hi, lo uint32 = uint32(v >> 32), uint32(v)
	var big [32]byte
	big[24] = byte(hi >> 24)
	big[25] = byte(hi >> 16)
	big[26] = byte(hi >> 8)
	big[27] = byte(hi)
	big[28] = byte(lo >> 24)
	big[29] = byte(lo >> 16)
	big[30] = byte(lo >> 8)
	big[31] = byte(lo)
	s.v.SetByteSlice(big[:])
	return s
}

func (s *secp256k1Scalar) Add(x Scalar) Scalar {
	o := x.(*secp256k1Scalar)
	s.v.Add(&o.v)
	return s
}

func (s *secp256k1Scalar) Sub(x Scalar) Scalar {
	o := x.(*secp256k1Scalar)
	var neg secp256k1.ModNScalar
	neg.Set(&o.v)
	neg.Negate()
	s.v.Add(&neg)
	return s
}

func (s *secp256k1Scalar) Mul(x Scalar) Scalar {
	o := x.(*secp256k1Scalar)
	s.v.Mul(&o.v)
	return s
}

func (s *secp256k1Scalar) Negate() Scalar {
	s.v.Negate()
	return s
}

func (s *secp256k1Scalar) Invert() (Scalar, error) {
	if s.v.IsZero() {
		return nil, ErrZeroInverse
	}
	inv := new(saferith.Nat).ModInverse(s.Nat(), secp256k1OrderModulus())
	s.SetNat(inv)
	return s, nil
}

func (s *secp256k1Scalar) Equal(x Scalar) bool {
	o, ok := x.(*secp256k1Scalar)
	if !ok {
		return false
	}
	return s.v.Equals(&o.v)
}

func (s *secp256k1Scalar) IsZero() bool { return s.v.IsZero() }

func (s *secp256k1Scalar) Nat() *saferith.Nat {
	b := s.v.Bytes()
	return new(saferith.Nat).SetBytes(b[:])
}

// Bytes returns the 32-byte little-endian canonical encoding (spec §6).
func (s *secp256k1Scalar) Bytes() []byte {
	be := s.v.Bytes()
	out := make([]byte, 32)
	for i := 0; i < 32; i++ {
		out[i] = be[31-i]
	}
	return out
}

func (s *secp256k1Scalar) SetBytes(b []byte) error {
	if len(b) != 32 {
		return ErrNonCanonical
	}
	var be [32]byte
	for i := 0; i < 32; i++ {
		be[i] = b[31-i]
	}
	overflow := s.v.SetByteSlice(be[:])
	if overflow {
		return ErrNonCanonical
	}
	return nil
}

func (s *secp256k1Scalar) ActOnBase() Point {
	var r secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&s.v, &r)
	r.ToAffine()
	return &secp256k1JacobianPoint{v: r}
}

func (s *secp256k1Scalar) Act(p Point) Point {
	o := p.(*secp256k1JacobianPoint)
	var r secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.v, &o.v, &r)
	r.ToAffine()
	return &secp256k1JacobianPoint{v: r}
}

func (s *secp256k1Scalar) Clone() Scalar {
	var v secp256k1.ModNScalar
	v.Set(&s.v)
	return &secp256k1Scalar{v: v}
}

// Zeroize overwrites the scalar's backing bytes (spec §5 "scoped
// destruction") by resetting the ModNScalar limbs via Zero().
func (s *secp256k1Scalar) Zeroize() {
	s.v.Zero()
	var scratch [32]byte
	for i := range scratch {
		scratch[i] = 0
	}
}

// --- Point ---

type secp256k1JacobianPoint struct {
	v secp256k1.JacobianPoint
}

func (p *secp256k1JacobianPoint) Set(x Point) Point {
	o := x.(*secp256k1JacobianPoint)
	p.v = o.v
	return p
}

func (p *secp256k1JacobianPoint) Add(x Point) Point {
	o := x.(*secp256k1JacobianPoint)
	var r secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.v, &o.v, &r)
	r.ToAffine()
	p.v = r
	return p
}

func (p *secp256k1JacobianPoint) Negate() Point {
	p.v.Y.Negate(1)
	p.v.Y.Normalize()
	return p
}

func (p *secp256k1JacobianPoint) Equal(x Point) bool {
	o, ok := x.(*secp256k1JacobianPoint)
	if !ok {
		return false
	}
	a, b := p.v, o.v
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y) && a.Z.Equals(&b.Z)
}

func (p *secp256k1JacobianPoint) IsIdentity() bool {
	var affine secp256k1.JacobianPoint
	affine = p.v
	affine.ToAffine()
	return affine.X.IsZero() && affine.Y.IsZero()
}

// Bytes returns the 33-byte SEC1 compressed encoding. spec §6 specifies a
// 32-byte Ristretto-style point encoding; secp256k1's affine x-coordinate
// occupies the full 256 bits with no spare sign bit, so a parity byte is
// required (see DESIGN.md, point encoding note).
func (p *secp256k1JacobianPoint) Bytes() []byte {
	affine := p.v
	affine.ToAffine()
	pub := secp256k1.NewPublicKey(&affine.X, &affine.Y)
	return pub.SerializeCompressed()
}

func (p *secp256k1JacobianPoint) SetBytes(b []byte) error {
	if len(b) != 33 {
		return ErrNonCanonical
	}
	// reject the alternate (uncompressed/hybrid) and non-canonical high-s
	// style encodings; only 0x02/0x03 prefixed compressed form is valid.
	if b[0] != 0x02 && b[0] != 0x03 {
		return ErrNonCanonical
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return ErrNotOnCurve
	}
	var jac secp256k1.JacobianPoint
	pub.AsJacobian(&jac)
	p.v = jac
	return nil
}

func (p *secp256k1JacobianPoint) Clone() Point {
	return &secp256k1JacobianPoint{v: p.v}
}
