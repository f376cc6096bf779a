package goldilocks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	combVectorResult = twistedPoint{
		x: FieldElement{n: [16]uint32{
			0x08630007, 0x0bd755e6, 0x0f76b928, 0x070d9694, 0x0b952009, 0x0cf85b12, 0x0c3a6e9c, 0x0e2d860e,
			0x02fd2901, 0x09a73726, 0x02aa2d4c, 0x06913ea9, 0x090da66d, 0x06a5c6f1, 0x04cc7a13, 0x0eb24ed8,
		}},
		y: FieldElement{n: [16]uint32{
			0x0bb37152, 0x0a3a36b3, 0x0a720c7f, 0x0e29095f, 0x04e76cf4, 0x0cfad965, 0x07439798, 0x0f4b7ba4,
			0x0316ba61, 0x09389566, 0x07f96104, 0x07bdc39c, 0x0f019987, 0x05416850, 0x0612c6c8, 0x0e231baa,
		}},
		z: FieldElement{n: [16]uint32{
			0x0179c756, 0x04130eef, 0x07f43255, 0x0cc1534d, 0x03e347fd, 0x0c745e4d, 0x068d7bf5, 0x020b8465,
			0x0356d2f1, 0x069b22fd, 0x0b6cf87f, 0x0edf9761, 0x034f512f, 0x0411b43f, 0x033f0755, 0x06195e97,
		}},
		t: FieldElement{n: [16]uint32{
			0x0866187a, 0x035622be, 0x0b9e2e78, 0x0cae26c6, 0x041c2c41, 0x07296c68, 0x03343d3e, 0x062c0927,
			0x0cf5d263, 0x08db465d, 0x033382d6, 0x0c5e6eff, 0x0c0ded8d, 0x037837bf, 0x03780cc6, 0x0e2360df,
		}},
	}
)

var combVectorScalar = Scalar{d: [14]uint32{
	0x6ee372b7, 0xe128ae78, 0x1533427c, 0xad0b7015, 0x307f665e, 0xde8026c1, 0xb64629d1,
	0xab454c66, 0x3fe5bf1a, 0x083f8304, 0x3c003777, 0xdef437f6, 0xee2e1b73, 0x05ca185a,
}}

// naiveScalarMult computes s*P by plain double-and-add over the Edwards
// group law, without any recoding or isogeny.
func naiveScalarMult(s *Scalar, p *EdwardsPoint) *EdwardsPoint {
	r := NewIdentityPoint()
	for i := 447; i >= 0; i-- {
		r.Double(r)
		if s.bit(uint(i)) == 1 {
			r.Add(r, p)
		}
	}
	return r
}

func TestSignedMultiComb(t *testing.T) {
	var got twistedPoint
	signedMultiComb(&got, &twistedVectorA, &combVectorScalar)
	require.True(t, got.equal(&combVectorResult))
	require.True(t, got.isOnCurve())

	var ref twistedPoint
	doubleAndAdd(&ref, &twistedVectorA, &combVectorScalar)
	require.True(t, ref.equal(&combVectorResult))

	// The same multiple survives the trip to the Edwards curve.
	var e EdwardsPoint
	var want EdwardsPoint
	twistedVectorA.toUntwisted(&e)
	e.ScalarMult(&combVectorScalar, &e)
	combVectorResult.toUntwisted(&want)
	require.True(t, e.Equal(&want))
}

func TestSignedMultiCombIdentities(t *testing.T) {
	id := twistedIdentity()
	var r twistedPoint

	signedMultiComb(&r, &twistedVectorValid, &ScalarOne)
	require.True(t, r.equal(&twistedVectorValid))

	signedMultiComb(&r, &twistedVectorValid, &ScalarZero)
	require.True(t, r.equal(&id))

	var minusOne Scalar
	minusOne.Negate(&ScalarOne)
	signedMultiComb(&r, &twistedGenerator, &minusOne)
	var neg twistedPoint
	neg.negate(&twistedGenerator)
	require.True(t, r.equal(&neg))

	// 2 * (P + P) = 4 * P
	var two, four Scalar
	two.SetUint64(2)
	four.SetUint64(4)
	var p2, lhs, rhs twistedPoint
	p2.add(&twistedVectorValid, &twistedVectorValid)
	signedMultiComb(&lhs, &p2, &two)
	signedMultiComb(&rhs, &twistedVectorValid, &four)
	require.True(t, lhs.equal(&rhs))
}

func TestSignedMultiCombRandom(t *testing.T) {
	for i := 0; i < 8; i++ {
		s := randomScalar(t)
		var comb, ref twistedPoint
		signedMultiComb(&comb, &twistedGenerator, s)
		doubleAndAdd(&ref, &twistedGenerator, s)
		require.True(t, comb.equal(&ref))
	}
}

func TestCombTableGet(t *testing.T) {
	var table combTable
	buildCombTable(&table, &twistedGenerator)

	multiple := twistedGenerator
	var twoG twistedPoint
	twoG.double(&twistedGenerator)
	for i := uint32(0); i < combTableSize; i++ {
		n := table.get(i)
		var p twistedPoint
		n.toExtended(&p)
		require.True(t, p.equal(&multiple), "entry %d", i)
		multiple.add(&multiple, &twoG)
	}
}

func TestEdwardsScalarMultSmall(t *testing.T) {
	g := NewGeneratorPoint()
	acc := NewIdentityPoint()
	for i := uint64(0); i < 20; i++ {
		var s Scalar
		s.SetUint64(i)
		var r EdwardsPoint
		r.ScalarMult(&s, g)
		require.True(t, r.Equal(acc), "multiple %d", i)
		acc.Add(acc, g)
	}
}

func TestEdwardsScalarMult(t *testing.T) {
	g := NewGeneratorPoint()

	// A point with a component of order two exercises the low bits.
	var torqued EdwardsPoint
	torqued.Torque(g)

	for i := 0; i < 8; i++ {
		s := randomScalar(t)
		for _, p := range []*EdwardsPoint{g, &torqued} {
			var r EdwardsPoint
			r.ScalarMult(s, p)
			require.True(t, r.IsOnCurve())
			require.True(t, r.Equal(naiveScalarMult(s, p)))
		}
	}

	var r EdwardsPoint
	r.ScalarMult(&ScalarZero, g)
	require.True(t, r.Equal(NewIdentityPoint()))

	var order Scalar
	order.Negate(&ScalarOne)
	r.ScalarMult(&order, g)
	r.Add(&r, g)
	require.True(t, r.Equal(NewIdentityPoint()))
}

func TestEdwardsScalarBaseMult(t *testing.T) {
	g := NewGeneratorPoint()
	for i := 0; i < 8; i++ {
		s := randomScalar(t)
		var a, b EdwardsPoint
		a.ScalarBaseMult(s)
		b.ScalarMult(s, g)
		require.True(t, a.Equal(&b))
	}

	for i := uint64(0); i < 8; i++ {
		var s Scalar
		s.SetUint64(i)
		var a EdwardsPoint
		a.ScalarBaseMult(&s)
		require.True(t, a.Equal(naiveScalarMult(&s, g)))
	}
}

func TestEdwardsScalarBaseMultLowBits(t *testing.T) {
	g := NewGeneratorPoint()
	base := randomScalar(t)
	seen := map[uint32]bool{}
	for k := uint64(0); k < 4; k++ {
		var s, step Scalar
		step.SetUint64(k)
		s.Add(base, &step)
		seen[s.d[0]&3] = true

		var a, b EdwardsPoint
		a.ScalarBaseMult(&s)
		b.ScalarMult(&s, g)
		require.True(t, a.Equal(&b), "offset %d", k)
	}
	require.Len(t, seen, 4)
}

func TestEcmultGenContext(t *testing.T) {
	ctx := NewEcmultGenContext()
	require.True(t, ctx.initialized)
	require.Same(t, getGlobalGenContext(), getGlobalGenContext())

	s := randomScalar(t)
	var a, b EdwardsPoint
	ctx.ecmultGen(&a, s)
	getGlobalGenContext().ecmultGen(&b, s)
	require.True(t, a.Equal(&b))

	var ta, tb twistedPoint
	ctx.ecmultGenTwisted(&ta, s)
	signedMultiComb(&tb, &twistedGenerator, s)
	require.True(t, ta.equal(&tb))

	var empty EcmultGenContext
	require.Panics(t, func() { empty.ecmultGen(&a, s) })
}

func TestEdwardsScalarMultLinearity(t *testing.T) {
	g := NewGeneratorPoint()
	a := randomScalar(t)
	b := randomScalar(t)

	var sum Scalar
	sum.Add(a, b)

	var lhs, ra, rb, rhs EdwardsPoint
	lhs.ScalarBaseMult(&sum)
	ra.ScalarBaseMult(a)
	rb.ScalarMult(b, g)
	rhs.Add(&ra, &rb)
	require.True(t, lhs.Equal(&rhs))

	// a*(b*G) = (a*b)*G
	var prod Scalar
	prod.Mul(a, b)
	var nested, direct EdwardsPoint
	nested.ScalarMult(a, &rb)
	direct.ScalarBaseMult(&prod)
	require.True(t, nested.Equal(&direct))
}

func TestVarTimeDoubleScalarBaseMult(t *testing.T) {
	g := NewGeneratorPoint()
	for i := 0; i < 8; i++ {
		a := randomScalar(t)
		b := randomScalar(t)
		k := randomScalar(t)

		var A EdwardsPoint
		A.ScalarMult(k, g)

		var got, aA, bB, want EdwardsPoint
		got.VarTimeDoubleScalarBaseMult(a, &A, b)
		aA.ScalarMult(a, &A)
		bB.ScalarBaseMult(b)
		want.Add(&aA, &bB)
		require.True(t, got.Equal(&want))
	}

	var got EdwardsPoint
	got.VarTimeDoubleScalarBaseMult(&ScalarZero, g, &ScalarZero)
	require.True(t, got.Equal(NewIdentityPoint()))
}

func BenchmarkEdwardsScalarMult(b *testing.B) {
	s := randomScalar(b)
	p := NewGeneratorPoint()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ScalarMult(s, p)
	}
}

func BenchmarkEdwardsScalarBaseMult(b *testing.B) {
	s := randomScalar(b)
	var p EdwardsPoint
	getGlobalGenContext()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.ScalarBaseMult(s)
	}
}

func BenchmarkVarTimeDoubleScalarBaseMult(b *testing.B) {
	s1 := randomScalar(b)
	s2 := randomScalar(b)
	p := NewGeneratorPoint()
	var r EdwardsPoint
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.VarTimeDoubleScalarBaseMult(s1, p, s2)
	}
}
