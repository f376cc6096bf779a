package goldilocks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsogenyGenerator(t *testing.T) {
	var tw twistedPoint
	NewGeneratorPoint().toTwisted(&tw)
	require.True(t, tw.isOnCurve())
	require.True(t, tw.equal(&twistedGenerator))
}

func TestIsogenyRoundTrip(t *testing.T) {
	g := NewGeneratorPoint()

	// untwist(twist(P)) = 4P
	var tw twistedPoint
	var back, four EdwardsPoint
	g.toTwisted(&tw)
	tw.toUntwisted(&back)
	require.True(t, back.IsOnCurve())
	four.Double(g)
	four.Double(&four)
	require.True(t, back.Equal(&four))

	// twist(untwist(Q)) = 4Q
	var e EdwardsPoint
	var q, fourQ twistedPoint
	twistedVectorA.toUntwisted(&e)
	require.True(t, e.IsOnCurve())
	e.toTwisted(&q)
	fourQ.double(&twistedVectorA)
	fourQ.double(&fourQ)
	require.True(t, q.equal(&fourQ))
}

func TestIsogenyHomomorphism(t *testing.T) {
	g := NewGeneratorPoint()
	var two, three EdwardsPoint
	two.Double(g)
	three.Add(&two, g)

	var tg, t2, t3, sum twistedPoint
	g.toTwisted(&tg)
	two.toTwisted(&t2)
	three.toTwisted(&t3)
	sum.add(&tg, &t2)
	require.True(t, sum.equal(&t3))
}

func TestIsogenyKernel(t *testing.T) {
	id := twistedIdentity()

	var tw twistedPoint
	NewIdentityPoint().toTwisted(&tw)
	require.True(t, tw.equal(&id))

	// The point of order two lies in the kernel.
	var order2 EdwardsPoint
	order2.Torque(NewIdentityPoint())
	order2.toTwisted(&tw)
	require.True(t, tw.equal(&id))

	var q, tg twistedPoint
	var torqued EdwardsPoint
	torqued.Torque(NewGeneratorPoint())
	torqued.toTwisted(&q)
	NewGeneratorPoint().toTwisted(&tg)
	require.True(t, q.equal(&tg))

	var e EdwardsPoint
	id.toUntwisted(&e)
	require.True(t, e.Equal(NewIdentityPoint()))
}

func TestIsogenyProjective(t *testing.T) {
	// Scaling the input coordinates does not change the image.
	var k FieldElement
	k.setInt(98765)
	g := NewGeneratorPoint()
	var scaled EdwardsPoint
	scaled.x.mul(&g.x, &k)
	scaled.y.mul(&g.y, &k)
	scaled.z.mul(&g.z, &k)
	scaled.t.mul(&g.t, &k)

	var tw twistedPoint
	scaled.toTwisted(&tw)
	require.True(t, tw.isOnCurve())
	require.True(t, tw.equal(&twistedGenerator))

	var ts twistedPoint
	ts.x.mul(&twistedVectorA.x, &k)
	ts.y.mul(&twistedVectorA.y, &k)
	ts.z.mul(&twistedVectorA.z, &k)
	ts.t.mul(&twistedVectorA.t, &k)
	var e1, e2 EdwardsPoint
	twistedVectorA.toUntwisted(&e1)
	ts.toUntwisted(&e2)
	require.True(t, e2.IsOnCurve())
	require.True(t, e1.Equal(&e2))
}

func TestIsogenyZeroZ(t *testing.T) {
	var tw twistedPoint
	var e EdwardsPoint
	degenerate := EdwardsPoint{x: FieldElementOne, y: FieldElementOne}
	require.Panics(t, func() { degenerate.toTwisted(&tw) })

	degenerateTwisted := twistedPoint{x: FieldElementOne, y: FieldElementOne}
	require.Panics(t, func() { degenerateTwisted.toUntwisted(&e) })
}
