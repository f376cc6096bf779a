package goldilocks

// mul multiplies two field elements: r = a * b
//
// The product is computed with one level of Karatsuba over the upper and
// lower eight limbs. Since 2^448 = 2^224 + 1 mod p, the high half of the
// product folds back onto both halves, which the interleaved accumulators
// below account for. Inputs may carry limbs slightly above 28 bits; the
// output is weakly reduced.
func (r *FieldElement) mul(a, b *FieldElement) {
	const mask = fieldLimbMask
	var c [16]uint32
	var aa, bb [8]uint64
	var x, y [16]uint64

	for i := 0; i < 16; i++ {
		x[i] = uint64(a.n[i])
		y[i] = uint64(b.n[i])
	}
	for i := 0; i < 8; i++ {
		aa[i] = x[i] + x[i+8]
		bb[i] = y[i] + y[i+8]
	}

	var acc0, acc1, acc2 uint64
	for j := 0; j < 8; j++ {
		acc2 = 0
		for i := 0; i <= j; i++ {
			acc2 += x[j-i] * y[i]
			acc1 += aa[j-i] * bb[i]
			acc0 += x[8+j-i] * y[8+i]
		}
		acc1 -= acc2
		acc0 += acc2

		acc2 = 0
		for i := j + 1; i < 8; i++ {
			acc0 -= x[8+j-i] * y[i]
			acc2 += aa[8+j-i] * bb[i]
			acc1 += x[16+j-i] * y[8+i]
		}
		acc1 += acc2
		acc0 += acc2

		c[j] = uint32(acc0) & mask
		c[j+8] = uint32(acc1) & mask
		acc0 >>= fieldLimbBits
		acc1 >>= fieldLimbBits
	}

	acc0 += acc1 + uint64(c[8])
	acc1 += uint64(c[0])
	c[8] = uint32(acc0) & mask
	c[0] = uint32(acc1) & mask
	acc0 >>= fieldLimbBits
	acc1 >>= fieldLimbBits
	c[9] += uint32(acc0)
	c[1] += uint32(acc1)

	r.n = c
}

// sqr squares a field element: r = a^2
func (r *FieldElement) sqr(a *FieldElement) {
	r.mul(a, a)
}

// sqrN squares a field element n times: r = a^(2^n)
func (r *FieldElement) sqrN(a *FieldElement, n int) {
	*r = *a
	for i := 0; i < n; i++ {
		r.sqr(r)
	}
}

// mulWord multiplies by a small constant: r = a * w
func (r *FieldElement) mulWord(a *FieldElement, w uint32) {
	var c FieldElement
	c.setInt(w)
	r.mul(a, &c)
}

// invSqrt computes r = 1/sqrt(a) using the addition chain for a^((p-3)/4).
// It returns false if a is zero or not a quadratic residue, in which case
// r holds an unspecified value.
func (r *FieldElement) invSqrt(a *FieldElement) bool {
	var l0, l1, l2 FieldElement
	x := *a

	l1.sqr(&x)
	l2.mul(&l1, &x)
	l1.sqr(&l2)
	l2.mul(&l1, &x)
	l1.sqrN(&l2, 3)
	l0.mul(&l2, &l1)
	l1.sqrN(&l0, 3)
	l0.mul(&l2, &l1)
	l2.sqrN(&l0, 9)
	l1.mul(&l0, &l2)
	l0.sqr(&l1)
	l2.mul(&l0, &x)
	l0.sqrN(&l2, 18)
	l2.mul(&l1, &l0)
	l0.sqrN(&l2, 37)
	l1.mul(&l2, &l0)
	l0.sqrN(&l1, 37)
	l1.mul(&l2, &l0)
	l0.sqrN(&l1, 111)
	l2.mul(&l1, &l0)
	l0.sqr(&l2)
	l1.mul(&l0, &x)
	l0.sqrN(&l1, 223)
	l1.mul(&l2, &l0)

	// l1^2 * x is 1 exactly when x had a square root.
	l2.sqr(&l1)
	l0.mul(&l2, &x)

	*r = l1
	return l0.equal(&FieldElementOne)
}

// inv computes the modular inverse r = 1/a. The inverse of zero is zero.
func (r *FieldElement) inv(a *FieldElement) {
	var t1, t2 FieldElement
	t1.sqr(a)
	t2.invSqrt(&t1)
	t1.sqr(&t2)
	r.mul(&t1, a)
}

// sqrtRatio computes r = sqrt(u/v) when it exists. The boolean result is
// false when u/v is not a square or when u*v is zero.
func (r *FieldElement) sqrtRatio(u, v *FieldElement) bool {
	var x, isr FieldElement
	x.mul(u, v)
	ok := isr.invSqrt(&x)
	r.mul(&isr, u)
	return ok
}

// isSquare reports whether a is a non-zero quadratic residue
func (r *FieldElement) isSquare() bool {
	var t FieldElement
	return t.invSqrt(r)
}
