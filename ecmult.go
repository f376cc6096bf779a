package goldilocks

import "crypto/subtle"

// Signed comb configuration
const (
	// Window size of the signed comb (5 bits per window)
	combWindow = 5
	// Number of odd multiples kept per table: P, 3P, ..., 31P
	combTableSize = 1 << (combWindow - 1)
	// Bits covered by the recoded scalar
	combBits = 450
)

// combAdjustment is (2^450 - 1) mod ℓ. Adding it before halving makes every
// window of the halved scalar decode to an odd signed digit.
var combAdjustment = Scalar{d: [14]uint32{
	0x4a7bb0cf, 0xc873d6d5, 0x23a70aad, 0xe933d8d7, 0x129c96fd, 0xbb124b65, 0x335dc163,
	0x00000008, 0, 0, 0, 0, 0, 0,
}}

// combTable holds the odd multiples P, 3P, ..., 31P in cached form
type combTable [combTableSize]projectiveNiels

// buildCombTable computes table[i] = (2i+1)P
func buildCombTable(table *combTable, p *twistedPoint) {
	var acc, twoP twistedExtensible
	var p2 twistedPoint
	var p2n projectiveNiels

	acc.setExtended(p)
	twoP.double(&acc)
	twoP.toExtended(&p2)
	p2.toProjectiveNiels(&p2n)

	acc.toProjectiveNiels(&table[0])
	for i := 1; i < combTableSize; i++ {
		acc.addProjectiveNiels(&p2n)
		acc.toProjectiveNiels(&table[i])
	}
}

// get returns table[index] by scanning every entry
func (table *combTable) get(index uint32) projectiveNiels {
	var result projectiveNiels
	result.setIdentity()
	for i := 0; i < combTableSize; i++ {
		flag := subtle.ConstantTimeEq(int32(index), int32(i))
		result.cmov(&table[i], flag)
	}
	return result
}

// signedMultiComb sets r = s*P on the twisted curve in constant time
func signedMultiComb(r *twistedPoint, p *twistedPoint, s *Scalar) {
	var table combTable
	buildCombTable(&table, p)
	combMul(r, &table, s)
}

// combMul evaluates s*P from a prepared table of odd multiples of P.
//
// The scalar is recoded as k = (s + 2^450 - 1)/2 mod ℓ. Each 5-bit window
// of k then stands for the odd digit 2w - 31, so every step adds a table
// entry or its negation and no window is ever zero.
func combMul(r *twistedPoint, table *combTable, s *Scalar) {
	var k Scalar
	k.Add(s, &combAdjustment)
	k.Halve(&k)

	var acc twistedExtensible
	acc.setIdentity()

	for i := combBits - combWindow; i >= 0; i -= combWindow {
		limb := i / 32
		shift := uint(i % 32)

		bits := k.d[limb] >> shift
		if shift >= 32-combWindow && limb < scalarLimbs-1 {
			bits ^= k.d[limb+1] << (32 - shift)
		}
		bits &= 1<<combWindow - 1

		// The top bit selects the sign; the rest index the table.
		inv := (bits >> (combWindow - 1)) - 1
		bits ^= inv

		neg := table.get(bits & (combTableSize - 1))
		neg.condNegate(int(inv & 1))

		for j := 0; j < combWindow; j++ {
			acc.double(&acc)
		}
		acc.addProjectiveNiels(&neg)
	}

	acc.toExtended(r)
	k.Clear()
}

// doubleAndAdd sets r = s*P by the binary method, one doubling and one
// masked addition per bit, without any recoding. It is slow and serves as
// an independent reference for the comb.
func doubleAndAdd(r *twistedPoint, p *twistedPoint, s *Scalar) {
	var acc, sum twistedExtensible
	acc.setIdentity()

	for i := 447; i >= 0; i-- {
		acc.double(&acc)
		sum.addExtended(&acc, p)
		flag := int(s.bit(uint(i)))
		acc.x.cmov(&sum.x, flag)
		acc.y.cmov(&sum.y, flag)
		acc.z.cmov(&sum.z, flag)
		acc.t1.cmov(&sum.t1, flag)
		acc.t2.cmov(&sum.t2, flag)
	}
	acc.toExtended(r)
}

// ScalarMult sets r = s*P and returns r. It runs in constant time.
//
// The point is pushed through the isogeny, multiplied by s/4 with the comb
// and pulled back, which multiplies by 4 again. The two dropped low bits of
// s are added back as one of O, P, 2P or 3P.
func (r *EdwardsPoint) ScalarMult(s *Scalar, p *EdwardsPoint) *EdwardsPoint {
	var quarter Scalar
	quarter = *s
	quarter.divByFour()

	var tw, part twistedPoint
	p.toTwisted(&tw)
	signedMultiComb(&part, &tw, &quarter)

	var high EdwardsPoint
	part.toUntwisted(&high)

	low := lowMultiple(p, s.d[0]&3)
	r.Add(&high, &low)

	quarter.Clear()
	return r
}

// lowMultiple returns m*P for m in 0..3, selected in constant time
func lowMultiple(p *EdwardsPoint, m uint32) EdwardsPoint {
	var multiples [4]EdwardsPoint
	multiples[0].setIdentity()
	multiples[1] = *p
	multiples[2].Double(p)
	multiples[3].Add(&multiples[2], p)

	var result EdwardsPoint
	result.setIdentity()
	for i := range multiples {
		result.cmov(&multiples[i], subtle.ConstantTimeEq(int32(m), int32(i)))
	}
	return result
}

// VarTimeDoubleScalarBaseMult sets r = a*A + b*B where B is the base point.
// It runs in variable time and must only be used with public inputs.
func (r *EdwardsPoint) VarTimeDoubleScalarBaseMult(a *Scalar, A *EdwardsPoint, b *Scalar) *EdwardsPoint {
	var tableA, tableB [8]EdwardsPoint
	buildMultiplesTable(&tableA, A)
	buildMultiplesTable(&tableB, &edwardsGenerator)

	da := a.radix16()
	db := b.radix16()

	var acc EdwardsPoint
	acc.setIdentity()
	for i := len(da) - 1; i >= 0; i-- {
		for j := 0; j < 4; j++ {
			acc.Double(&acc)
		}
		addSignedDigitVarTime(&acc, &tableA, da[i])
		addSignedDigitVarTime(&acc, &tableB, db[i])
	}
	*r = acc
	return r
}

// buildMultiplesTable sets table[i] = (i+1)P
func buildMultiplesTable(table *[8]EdwardsPoint, p *EdwardsPoint) {
	table[0] = *p
	for i := 1; i < len(table); i++ {
		table[i].Add(&table[i-1], p)
	}
}

func addSignedDigitVarTime(acc *EdwardsPoint, table *[8]EdwardsPoint, digit int8) {
	switch {
	case digit > 0:
		acc.Add(acc, &table[digit-1])
	case digit < 0:
		acc.Sub(acc, &table[-digit-1])
	}
}
