package goldilocks

import "crypto/subtle"

// DecafPoint is an element of the prime-order Decaf448 group. It is stored
// as a twisted Edwards point; points differing by 2-torsion are the same
// group element and encode to the same bytes.
type DecafPoint struct {
	p twistedPoint
}

// CompressedDecaf is the canonical 56-byte encoding of a DecafPoint
type CompressedDecaf [56]byte

// Decaf constants
var (
	// decafFactor fixes the sign choice between the two square roots
	decafFactor = FieldElement{n: [16]uint32{
		0x05572736, 0x042ef0f4, 0x00ce5296, 0x07bf6aa2, 0x0ed26033, 0x0f4fd6ed, 0x0a839a66, 0x0968c14b,
		0x04a2d780, 0x0b8d54b6, 0x01a7b8a5, 0x06aa0a1f, 0x0d722fa2, 0x0683bf68, 0x0beb24f7, 0x022d962f,
	}}

	// negFourTwistedD is -4(d-1) = 156328
	negFourTwistedD = FieldElement{n: [16]uint32{156328}}
)

// negEdwardsD is -d
const negEdwardsD = 39081

// NewDecafIdentity returns the neutral element
func NewDecafIdentity() *DecafPoint {
	d := &DecafPoint{}
	d.p.setIdentity()
	return d
}

// NewDecafGenerator returns the standard Decaf448 generator
func NewDecafGenerator() *DecafPoint {
	return &DecafPoint{p: twistedGenerator}
}

// Set sets r = a and returns r
func (r *DecafPoint) Set(a *DecafPoint) *DecafPoint {
	*r = *a
	return r
}

// Add sets r = a + b and returns r
func (r *DecafPoint) Add(a, b *DecafPoint) *DecafPoint {
	r.p.add(&a.p, &b.p)
	return r
}

// Sub sets r = a - b and returns r
func (r *DecafPoint) Sub(a, b *DecafPoint) *DecafPoint {
	r.p.sub(&a.p, &b.p)
	return r
}

// Double sets r = 2a and returns r
func (r *DecafPoint) Double(a *DecafPoint) *DecafPoint {
	r.p.double(&a.p)
	return r
}

// Negate sets r = -a and returns r
func (r *DecafPoint) Negate(a *DecafPoint) *DecafPoint {
	r.p.negate(&a.p)
	return r
}

// ScalarMult sets r = s*a in constant time and returns r
func (r *DecafPoint) ScalarMult(s *Scalar, a *DecafPoint) *DecafPoint {
	signedMultiComb(&r.p, &a.p, s)
	return r
}

// ScalarBaseMult sets r = s*B for the Decaf generator B and returns r
func (r *DecafPoint) ScalarBaseMult(s *Scalar) *DecafPoint {
	getGlobalGenContext().ecmultGenTwisted(&r.p, s)
	return r
}

// Equal reports whether r and a are the same group element. Comparing
// X1*Y2 with Y1*X2 identifies points that differ by 2-torsion.
func (r *DecafPoint) Equal(a *DecafPoint) bool {
	var l, rr FieldElement
	l.mul(&r.p.x, &a.p.y)
	rr.mul(&r.p.y, &a.p.x)
	return l.equal(&rr)
}

// IsIdentity reports whether r is the neutral element
func (r *DecafPoint) IsIdentity() bool {
	return r.p.x.isZero()
}

// Compress returns the canonical encoding of r
func (r *DecafPoint) Compress() CompressedDecaf {
	x, z, t := &r.p.x, &r.p.z, &r.p.t

	var xPlusT, xMinusT, xxTT, xx, isr, ratio, alt, k, s FieldElement

	xPlusT.add(x, t)
	xMinusT.sub(x, t)
	xxTT.mul(&xPlusT, &xMinusT)

	xx.sqr(x)
	xx.mul(&xx, &xxTT)
	xx.mulWord(&xx, negEdwardsD)
	isr.invSqrt(&xx)

	ratio.mul(&isr, &xxTT)
	alt.mul(&ratio, &decafFactor)
	ratio.condNegate(alt.isNegative())

	k.mul(&ratio, z)
	k.sub(&k, t)

	s.mulWord(&k, negEdwardsD)
	s.mul(&s, &isr)
	s.mul(&s, x)
	s.condNegate(s.isNegative())

	var out CompressedDecaf
	s.getBytes(out[:])
	return out
}

// Bytes returns the canonical encoding of r as a slice
func (r *DecafPoint) Bytes() []byte {
	c := r.Compress()
	return c[:]
}

// SetBytes decodes a 56-byte encoding into r
func (r *DecafPoint) SetBytes(b []byte) (*DecafPoint, error) {
	if len(b) != len(CompressedDecaf{}) {
		return nil, ErrInvalidLength
	}
	var c CompressedDecaf
	copy(c[:], b)
	p, err := c.Decompress()
	if err != nil {
		return nil, err
	}
	*r = *p
	return r, nil
}

// Decompress decodes the encoding. Non-canonical and negative s values and
// strings that are not the image of any point are rejected.
func (c *CompressedDecaf) Decompress() (*DecafPoint, error) {
	var s FieldElement
	canonical := boolToInt(s.setCanonicalBytes(c[:]))
	if canonical&(s.isNegative()^1) == 0 {
		return nil, ErrInvalidEncoding
	}

	var ss, u1, u2, u1sq, v, w, I, dx, dxs, k FieldElement
	ss.sqr(&s)
	u1.sub(&FieldElementOne, &ss)
	u2.add(&FieldElementOne, &ss)
	u1sq.sqr(&u1)

	v.mul(&ss, &negFourTwistedD)
	v.add(&v, &u1sq)

	w.mul(&v, &u1sq)
	if !I.invSqrt(&w) {
		return nil, ErrInvalidEncoding
	}

	dx.mul(&I, &u1)
	dxs.add(&s, &s)
	dxs.mul(&dxs, &dx)

	d := &DecafPoint{}
	d.p.x.mul(&dxs, &I)
	d.p.x.mul(&d.p.x, &v)
	k.mul(&dxs, &decafFactor)
	d.p.x.condNegate(k.isNegative())

	d.p.y.mul(&dx, &u2)
	d.p.z = FieldElementOne
	d.p.t.mul(&d.p.x, &d.p.y)
	return d, nil
}

// Equal reports whether two encodings are identical, in constant time
func (c *CompressedDecaf) Equal(a *CompressedDecaf) bool {
	return subtle.ConstantTimeCompare(c[:], a[:]) == 1
}
