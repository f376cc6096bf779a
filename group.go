package goldilocks

import (
	"crypto/subtle"
	"errors"
)

// EdwardsPoint represents a point on the untwisted Edwards curve
// x^2 + y^2 = 1 + d*x^2*y^2 with d = -39081, in extended coordinates
// (X, Y, Z, T) where x = X/Z, y = Y/Z and T = XY/Z.
type EdwardsPoint struct {
	x, y, z, t FieldElement
}

// CompressedEdwardsY is the 57-byte RFC 8032 encoding of an EdwardsPoint:
// the little-endian y coordinate followed by a byte holding the sign of x
// in its top bit.
type CompressedEdwardsY [57]byte

// ErrInvalidEncoding is returned when bytes do not decode to a curve point
var ErrInvalidEncoding = errors.New("goldilocks: invalid point encoding")

// Edwards curve constants
var (
	// edwardsD is d = -39081
	edwardsD = FieldElement{n: [16]uint32{
		268396374, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455,
		268435454, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455,
	}}

	// edwardsGenerator is the Ed448 base point from RFC 8032
	edwardsGenerator = EdwardsPoint{
		x: FieldElement{n: [16]uint32{
			118276190, 40534716, 9670182, 135141552, 85017403, 259173222, 68333082, 171784774,
			174973732, 15824510, 73756743, 57518561, 94773951, 248652241, 107736333, 82941708,
		}},
		y: FieldElement{n: [16]uint32{
			36764180, 8885695, 130592152, 20104429, 163904957, 30304195, 121295871, 5901357,
			125344798, 171541512, 175338348, 209069246, 3626697, 38307682, 24032956, 110359655,
		}},
		z: FieldElementOne,
		t: FieldElement{n: [16]uint32{
			45061619, 6694120, 103620075, 168286294, 228718479, 151739175, 150043102, 237197013,
			14095975, 138747174, 90839103, 152869968, 221073549, 114093113, 183378460, 209054552,
		}},
	}
)

// NewIdentityPoint returns the neutral element (0, 1)
func NewIdentityPoint() *EdwardsPoint {
	p := &EdwardsPoint{}
	p.setIdentity()
	return p
}

// NewGeneratorPoint returns the Ed448 base point
func NewGeneratorPoint() *EdwardsPoint {
	p := edwardsGenerator
	return &p
}

func (r *EdwardsPoint) setIdentity() {
	r.x = FieldElementZero
	r.y = FieldElementOne
	r.z = FieldElementOne
	r.t = FieldElementZero
}

// Set sets r = a and returns r
func (r *EdwardsPoint) Set(a *EdwardsPoint) *EdwardsPoint {
	*r = *a
	return r
}

// setAffine sets r from affine coordinates
func (r *EdwardsPoint) setAffine(x, y *FieldElement) {
	r.x = *x
	r.y = *y
	r.z = FieldElementOne
	r.t.mul(x, y)
}

// Add sets r = a + b and returns r.
//
// The formula is unified, so it is also correct for a = b and for the
// identity, and runs in constant time.
func (r *EdwardsPoint) Add(a, b *EdwardsPoint) *EdwardsPoint {
	var xx, dtt, zz, yy, xy, yx, x1, zMinus, zPlus, yMinus FieldElement

	xx.mul(&a.x, &b.x)
	dtt.mul(&a.t, &b.t)
	dtt.mul(&dtt, &edwardsD)
	zz.mul(&a.z, &b.z)
	yy.mul(&a.y, &b.y)

	xy.mul(&a.x, &b.y)
	yx.mul(&a.y, &b.x)
	x1.add(&xy, &yx)

	zMinus.sub(&zz, &dtt)
	zPlus.add(&zz, &dtt)
	yMinus.sub(&yy, &xx)

	r.x.mul(&x1, &zMinus)
	r.y.mul(&yMinus, &zPlus)
	r.z.mul(&zMinus, &zPlus)
	r.t.mul(&yMinus, &x1)
	return r
}

// Sub sets r = a - b and returns r
func (r *EdwardsPoint) Sub(a, b *EdwardsPoint) *EdwardsPoint {
	var nb EdwardsPoint
	nb.Negate(b)
	return r.Add(a, &nb)
}

// Double sets r = 2a and returns r
func (r *EdwardsPoint) Double(a *EdwardsPoint) *EdwardsPoint {
	var xx, yy, zz2, e, g, f, h FieldElement

	xx.sqr(&a.x)
	yy.sqr(&a.y)
	zz2.sqr(&a.z)
	zz2.add(&zz2, &zz2)

	// e = 2XY
	e.add(&a.x, &a.y)
	e.sqr(&e)
	e.sub(&e, &xx)
	e.sub(&e, &yy)

	g.add(&xx, &yy)
	f.sub(&g, &zz2)
	h.sub(&xx, &yy)

	r.x.mul(&e, &f)
	r.y.mul(&g, &h)
	r.z.mul(&f, &g)
	r.t.mul(&e, &h)
	return r
}

// Negate sets r = -a and returns r
func (r *EdwardsPoint) Negate(a *EdwardsPoint) *EdwardsPoint {
	r.x.negate(&a.x)
	r.y = a.y
	r.z = a.z
	r.t.negate(&a.t)
	return r
}

// Torque sets r = a + (0, -1), adding the point of order two
func (r *EdwardsPoint) Torque(a *EdwardsPoint) *EdwardsPoint {
	r.x.negate(&a.x)
	r.y.negate(&a.y)
	r.z = a.z
	r.t = a.t
	return r
}

// Equal reports whether r and a represent the same point, in constant time
func (r *EdwardsPoint) Equal(a *EdwardsPoint) bool {
	var l, rr FieldElement
	l.mul(&r.x, &a.z)
	rr.mul(&a.x, &r.z)
	eqX := boolToInt(l.equal(&rr))
	l.mul(&r.y, &a.z)
	rr.mul(&a.y, &r.z)
	eqY := boolToInt(l.equal(&rr))
	return eqX&eqY == 1
}

// IsOnCurve checks X^2 + Y^2 = Z^2 + d*T^2 and XY = ZT
func (r *EdwardsPoint) IsOnCurve() bool {
	var xx, yy, zz, tt, lhs, rhs FieldElement
	xx.sqr(&r.x)
	yy.sqr(&r.y)
	zz.sqr(&r.z)
	tt.sqr(&r.t)
	lhs.add(&yy, &xx)
	rhs.mul(&tt, &edwardsD)
	rhs.add(&rhs, &zz)
	onCurve := lhs.equal(&rhs)

	lhs.mul(&r.x, &r.y)
	rhs.mul(&r.z, &r.t)
	return onCurve && lhs.equal(&rhs)
}

// Select sets r = a if cond is 1 and r = b if cond is 0, in constant time
func (r *EdwardsPoint) Select(a, b *EdwardsPoint, cond int) *EdwardsPoint {
	t := *b
	t.cmov(a, cond)
	*r = t
	return r
}

func (r *EdwardsPoint) cmov(a *EdwardsPoint, flag int) {
	r.x.cmov(&a.x, flag)
	r.y.cmov(&a.y, flag)
	r.z.cmov(&a.z, flag)
	r.t.cmov(&a.t, flag)
}

// toAffine returns the strongly reduced affine coordinates
func (r *EdwardsPoint) toAffine() (x, y FieldElement) {
	if r.z.isZero() {
		panic("goldilocks: point at infinity in affine conversion")
	}
	var zInv FieldElement
	zInv.inv(&r.z)
	x.mul(&r.x, &zInv)
	y.mul(&r.y, &zInv)
	x.strongReduce()
	y.strongReduce()
	return
}

// Affine returns the 56-byte little-endian affine coordinates
func (r *EdwardsPoint) Affine() (x, y [56]byte) {
	ax, ay := r.toAffine()
	ax.getBytes(x[:])
	ay.getBytes(y[:])
	return
}

// MontgomeryU returns the u coordinate u = y^2/x^2 of the corresponding
// point on Curve448. The identity and the point of order two map to zero.
func (r *EdwardsPoint) MontgomeryU() [56]byte {
	var u, xx, yy FieldElement
	x, y := r.toAffine()
	xx.sqr(&x)
	yy.sqr(&y)
	xx.inv(&xx)
	u.mul(&yy, &xx)

	var out [56]byte
	u.getBytes(out[:])
	return out
}

// Compress returns the RFC 8032 encoding of r
func (r *EdwardsPoint) Compress() CompressedEdwardsY {
	var out CompressedEdwardsY
	x, y := r.toAffine()
	y.getBytes(out[:fieldBytesSize])
	out[56] = byte(x.isNegative()) << 7
	return out
}

// Bytes returns the RFC 8032 encoding of r as a slice
func (r *EdwardsPoint) Bytes() []byte {
	c := r.Compress()
	return c[:]
}

// SetBytes decodes a 57-byte RFC 8032 point encoding into r
func (r *EdwardsPoint) SetBytes(b []byte) (*EdwardsPoint, error) {
	if len(b) != len(CompressedEdwardsY{}) {
		return nil, ErrInvalidLength
	}
	var c CompressedEdwardsY
	copy(c[:], b)
	p, err := c.Decompress()
	if err != nil {
		return nil, err
	}
	*r = *p
	return r, nil
}

// Decompress decodes the point. It rejects a non-canonical y, unused bits
// in the final byte, y values with no matching x, and a negative zero x.
func (c *CompressedEdwardsY) Decompress() (*EdwardsPoint, error) {
	sign := int(c[56] >> 7)
	if c[56]&0x7f != 0 {
		return nil, ErrInvalidEncoding
	}

	var y FieldElement
	if !y.setCanonicalBytes(c[:fieldBytesSize]) {
		return nil, ErrInvalidEncoding
	}

	// x^2 = (1 - y^2) / (1 - d*y^2)
	var yy, dyy, num, den, x FieldElement
	yy.sqr(&y)
	dyy.mul(&yy, &edwardsD)
	num.sub(&FieldElementOne, &yy)
	den.sub(&FieldElementOne, &dyy)

	ok := boolToInt(x.sqrtRatio(&num, &den)) | boolToInt(num.isZero())
	if ok == 0 {
		return nil, ErrInvalidEncoding
	}

	x.condNegate(x.isNegative() ^ sign)
	if x.isZero() && sign == 1 {
		return nil, ErrInvalidEncoding
	}

	p := new(EdwardsPoint)
	p.setAffine(&x, &y)
	return p, nil
}

// Equal reports whether two encodings are identical, in constant time
func (c *CompressedEdwardsY) Equal(a *CompressedEdwardsY) bool {
	return subtle.ConstantTimeCompare(c[:], a[:]) == 1
}
