package goldilocks

// The 2-isogeny between the Edwards curve (a = 1) and the twisted curve
// (a = -1) and its dual. Composing the two maps gives multiplication by 4
// in either direction:
//
//	x' = 2xy / (y^2 - a*x^2)
//	y' = (y^2 + a*x^2) / (2 - y^2 - a*x^2)
//
// In projective form the Z^2 factors cancel, so no inversion is needed.

// isogeny maps projective (X, Y, Z) through the map above and returns the
// image in extended coordinates. aNeg selects a = -1.
func isogeny(x, y, z *FieldElement, aNeg int) (nx, ny, nz, nt FieldElement) {
	if z.isZero() {
		panic("goldilocks: point at infinity in isogeny")
	}
	var xx, yy, zz, axx, num, den, ynum, yden FieldElement

	xx.sqr(x)
	yy.sqr(y)
	zz.sqr(z)

	axx = xx
	axx.condNegate(aNeg)

	// x' = num/den
	num.mul(x, y)
	num.add(&num, &num)
	den.sub(&yy, &axx)

	// y' = ynum/yden
	ynum.add(&yy, &axx)
	yden.add(&zz, &zz)
	yden.sub(&yden, &ynum)

	nx.mul(&num, &yden)
	ny.mul(&ynum, &den)
	nz.mul(&den, &yden)
	nt.mul(&num, &ynum)
	return
}

// toTwisted maps an Edwards point onto the twisted curve
func (r *EdwardsPoint) toTwisted(out *twistedPoint) {
	out.x, out.y, out.z, out.t = isogeny(&r.x, &r.y, &r.z, 0)
}

// toUntwisted maps a twisted point back onto the Edwards curve
func (r *twistedPoint) toUntwisted(out *EdwardsPoint) {
	out.x, out.y, out.z, out.t = isogeny(&r.x, &r.y, &r.z, 1)
}
