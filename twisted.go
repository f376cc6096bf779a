package goldilocks

// twistedPoint is a point on the twisted Edwards curve -x^2 + y^2 = 1 + (d-1)x^2y^2
// in extended coordinates: x = X/Z, y = Y/Z, T = XY/Z.
type twistedPoint struct {
	x, y, z, t FieldElement
}

// twistedExtensible is a twisted point with T kept as two factors T = T1*T2,
// which saves a multiplication between consecutive doublings.
type twistedExtensible struct {
	x, y, z, t1, t2 FieldElement
}

// projectiveNiels caches (Y+X, Y-X, 2Z, 2(d-1)T) for readdition
type projectiveNiels struct {
	yPlusX, yMinusX, z, td FieldElement
}

// Twisted curve constants
var (
	// twistedD is d-1 = -39082
	twistedD = FieldElement{n: [16]uint32{
		268396373, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455,
		268435454, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455,
	}}

	// twoTwistedD is 2(d-1)
	twoTwistedD = FieldElement{n: [16]uint32{
		268357291, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455,
		268435454, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455,
	}}

	// twoOneMinusD is 2(1-d) = -2(d-1)
	twoOneMinusD = FieldElement{n: [16]uint32{78164}}

	// twistedGenerator is the image of the Edwards base point under the isogeny
	twistedGenerator = twistedPoint{
		x: FieldElement{n: [16]uint32{
			0, 268435456, 268435455, 268435455, 268435455, 268435455, 268435455, 134217727,
			268435454, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455, 134217727,
		}},
		y: FieldElement{n: [16]uint32{
			266160740, 101161805, 74490312, 12706731, 149232027, 72184820, 68425752, 84169329,
			64300076, 80170041, 105082960, 37781586, 19953866, 222875756, 82854534, 139496929,
		}},
		z: FieldElementOne,
		t: FieldElement{n: [16]uint32{
			202998021, 238846317, 66379923, 102789507, 54662147, 81652110, 85576069, 171023191,
			104342404, 127188629, 141403663, 236837931, 109226495, 84812757, 24364708, 114517662,
		}},
	}
)

// setIdentity sets r to the neutral element (0, 1)
func (r *twistedPoint) setIdentity() {
	r.x = FieldElementZero
	r.y = FieldElementOne
	r.z = FieldElementOne
	r.t = FieldElementZero
}

// equal compares two points projectively: X1Z2 = X2Z1 and Y1Z2 = Y2Z1
func (r *twistedPoint) equal(a *twistedPoint) bool {
	var l, rr FieldElement
	l.mul(&r.x, &a.z)
	rr.mul(&a.x, &r.z)
	eqX := l.equal(&rr)
	l.mul(&r.y, &a.z)
	rr.mul(&a.y, &r.z)
	eqY := l.equal(&rr)
	return boolToInt(eqX)&boolToInt(eqY) == 1
}

// isOnCurve checks -X^2 + Y^2 = Z^2 + (d-1)T^2 and XY = ZT
func (r *twistedPoint) isOnCurve() bool {
	var xx, yy, zz, tt, lhs, rhs FieldElement
	xx.sqr(&r.x)
	yy.sqr(&r.y)
	zz.sqr(&r.z)
	tt.sqr(&r.t)
	lhs.sub(&yy, &xx)
	rhs.mul(&tt, &twistedD)
	rhs.add(&rhs, &zz)
	onCurve := lhs.equal(&rhs)

	lhs.mul(&r.x, &r.y)
	rhs.mul(&r.z, &r.t)
	return onCurve && lhs.equal(&rhs)
}

// negate sets r = -a
func (r *twistedPoint) negate(a *twistedPoint) {
	r.x.negate(&a.x)
	r.y = a.y
	r.z = a.z
	r.t.negate(&a.t)
}

// torque sets r = a + (0, -1)
func (r *twistedPoint) torque(a *twistedPoint) {
	r.x.negate(&a.x)
	r.y.negate(&a.y)
	r.z = a.z
	r.t = a.t
}

// add sets r = a + b
func (r *twistedPoint) add(a, b *twistedPoint) {
	var e twistedExtensible
	e.setExtended(a)
	e.addExtended(&e, b)
	e.toExtended(r)
}

// sub sets r = a - b
func (r *twistedPoint) sub(a, b *twistedPoint) {
	var e twistedExtensible
	e.setExtended(a)
	e.subExtended(&e, b)
	e.toExtended(r)
}

// double sets r = 2a
func (r *twistedPoint) double(a *twistedPoint) {
	var e twistedExtensible
	e.setExtended(a)
	e.double(&e)
	e.toExtended(r)
}

// cmov sets r = a if flag is 1
func (r *twistedPoint) cmov(a *twistedPoint, flag int) {
	r.x.cmov(&a.x, flag)
	r.y.cmov(&a.y, flag)
	r.z.cmov(&a.z, flag)
	r.t.cmov(&a.t, flag)
}

// toAffine returns the affine coordinates x = X/Z, y = Y/Z
func (r *twistedPoint) toAffine() (x, y FieldElement) {
	if r.z.isZero() {
		panic("goldilocks: point at infinity in affine conversion")
	}
	var zInv FieldElement
	zInv.inv(&r.z)
	x.mul(&r.x, &zInv)
	y.mul(&r.y, &zInv)
	return
}

// toProjectiveNiels converts to the cached readdition form
func (r *twistedPoint) toProjectiveNiels(n *projectiveNiels) {
	var e twistedExtensible
	e.setExtended(r)
	e.toProjectiveNiels(n)
}

// clear wipes the coordinates
func (r *twistedPoint) clear() {
	r.x.clear()
	r.y.clear()
	r.z.clear()
	r.t.clear()
}

// setIdentity sets r to the neutral element
func (r *twistedExtensible) setIdentity() {
	r.x = FieldElementZero
	r.y = FieldElementOne
	r.z = FieldElementOne
	r.t1 = FieldElementZero
	r.t2 = FieldElementOne
}

// setExtended loads an extended point with T1 = T, T2 = 1
func (r *twistedExtensible) setExtended(a *twistedPoint) {
	r.x = a.x
	r.y = a.y
	r.z = a.z
	r.t1 = a.t
	r.t2 = FieldElementOne
}

// toExtended sets out = r with T = T1*T2
func (r *twistedExtensible) toExtended(out *twistedPoint) {
	out.x = r.x
	out.y = r.y
	out.z = r.z
	out.t.mul(&r.t1, &r.t2)
}

// toProjectiveNiels sets n to the cached form of r
func (r *twistedExtensible) toProjectiveNiels(n *projectiveNiels) {
	var t FieldElement
	n.yPlusX.add(&r.y, &r.x)
	n.yMinusX.sub(&r.y, &r.x)
	n.z.add(&r.z, &r.z)
	t.mul(&r.t1, &r.t2)
	n.td.mul(&t, &twoTwistedD)
}

// equal compares two extensible points projectively
func (r *twistedExtensible) equal(a *twistedExtensible) bool {
	var p, q twistedPoint
	r.toExtended(&p)
	a.toExtended(&q)
	return p.equal(&q)
}

// double sets r = 2a using the dedicated doubling for a = -1
func (r *twistedExtensible) double(a *twistedExtensible) {
	var xx, yy, xxPlusYY, yyMinusXX, t1, zz2, s FieldElement

	xx.sqr(&a.x)
	yy.sqr(&a.y)
	xxPlusYY.add(&xx, &yy)
	yyMinusXX.sub(&yy, &xx)

	s.add(&a.y, &a.x)
	t1.sqr(&s)
	t1.sub(&t1, &xxPlusYY)

	zz2.sqr(&a.z)
	zz2.add(&zz2, &zz2)
	zz2.sub(&zz2, &yyMinusXX)

	r.z.mul(&zz2, &yyMinusXX)
	r.x.mul(&zz2, &t1)
	r.y.mul(&yyMinusXX, &xxPlusYY)
	r.t1 = t1
	r.t2 = xxPlusYY
}

// addExtended sets r = a + b
func (r *twistedExtensible) addExtended(a *twistedExtensible, b *twistedPoint) {
	var A, B, C, D, E, F, G, H, t FieldElement

	t.sub(&a.y, &a.x)
	A.sub(&b.y, &b.x)
	A.mul(&A, &t)

	t.add(&a.y, &a.x)
	B.add(&b.y, &b.x)
	B.mul(&B, &t)

	// C holds -2(d-1)*T1*T2
	C.mul(&a.t1, &a.t2)
	C.mul(&C, &b.t)
	C.mul(&C, &twoOneMinusD)

	D.mul(&a.z, &b.z)
	D.add(&D, &D)

	F.add(&D, &C)
	G.sub(&D, &C)
	E.sub(&B, &A)
	H.add(&B, &A)

	r.z.mul(&G, &F)
	r.x.mul(&F, &E)
	r.y.mul(&G, &H)
	r.t1 = H
	r.t2 = E
}

// subExtended sets r = a - b
func (r *twistedExtensible) subExtended(a *twistedExtensible, b *twistedPoint) {
	var A, B, C, D, E, F, G, H, t FieldElement

	t.sub(&a.y, &a.x)
	A.add(&b.y, &b.x)
	A.mul(&A, &t)

	t.add(&a.y, &a.x)
	B.sub(&b.y, &b.x)
	B.mul(&B, &t)

	C.mul(&a.t1, &a.t2)
	C.mul(&C, &b.t)
	C.mul(&C, &twoOneMinusD)

	D.mul(&a.z, &b.z)
	D.add(&D, &D)

	// Negating b flips the sign of C.
	F.sub(&D, &C)
	G.add(&D, &C)
	E.sub(&B, &A)
	H.add(&B, &A)

	r.z.mul(&G, &F)
	r.x.mul(&F, &E)
	r.y.mul(&G, &H)
	r.t1 = H
	r.t2 = E
}

// addProjectiveNiels sets r = r + n
func (r *twistedExtensible) addProjectiveNiels(n *projectiveNiels) {
	var a, b, c FieldElement

	r.z.mul(&r.z, &n.z)

	b.sub(&r.y, &r.x)
	a.mul(&n.yMinusX, &b)
	b.add(&r.x, &r.y)
	r.y.mul(&n.yPlusX, &b)
	r.x.mul(&r.t1, &r.t2)
	r.x.mul(&r.x, &n.td)
	c.add(&a, &r.y)
	b.sub(&r.y, &a)
	r.y.sub(&r.z, &r.x)
	a.add(&r.x, &r.z)
	r.z.mul(&a, &r.y)
	r.x.mul(&r.y, &b)
	r.y.mul(&a, &c)
	r.t1 = b
	r.t2 = c
}

// setIdentity sets n to the cached form of (0, 1)
func (n *projectiveNiels) setIdentity() {
	n.yPlusX = FieldElementOne
	n.yMinusX = FieldElementOne
	n.z.setInt(2)
	n.td = FieldElementZero
}

// condNegate negates the cached point if flag is 1
func (n *projectiveNiels) condNegate(flag int) {
	n.yPlusX.cswap(&n.yMinusX, flag)
	n.td.condNegate(flag)
}

// cmov sets n = a if flag is 1
func (n *projectiveNiels) cmov(a *projectiveNiels, flag int) {
	n.yPlusX.cmov(&a.yPlusX, flag)
	n.yMinusX.cmov(&a.yMinusX, flag)
	n.z.cmov(&a.z, flag)
	n.td.cmov(&a.td, flag)
}

// toExtended converts the cached form back to extended coordinates
func (n *projectiveNiels) toExtended(out *twistedPoint) {
	var twoY, twoX FieldElement
	twoY.add(&n.yPlusX, &n.yMinusX)
	twoX.sub(&n.yPlusX, &n.yMinusX)
	out.t.mul(&twoY, &twoX)
	out.x.mul(&n.z, &twoX)
	out.y.mul(&n.z, &twoY)
	out.z.sqr(&n.z)
}
