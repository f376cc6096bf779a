package goldilocks

import (
	"crypto/subtle"
	"sync"
)

// EcmultGenContext holds precomputed data for base point multiplication
type EcmultGenContext struct {
	// Odd multiples of the twisted base point for the signed comb
	comb combTable
	// O, G, 2G, 3G on the Edwards curve for the low scalar bits
	low         [4]EdwardsPoint
	initialized bool
}

var (
	// Global context for generator multiplication (initialized once)
	globalGenContext *EcmultGenContext
	genContextOnce   sync.Once
)

// initGenContext fills the tables from the base point
func (ctx *EcmultGenContext) initGenContext() {
	buildCombTable(&ctx.comb, &twistedGenerator)

	ctx.low[0].setIdentity()
	ctx.low[1] = edwardsGenerator
	ctx.low[2].Double(&edwardsGenerator)
	ctx.low[3].Add(&ctx.low[2], &edwardsGenerator)

	ctx.initialized = true
}

// getGlobalGenContext returns the global precomputed context
func getGlobalGenContext() *EcmultGenContext {
	genContextOnce.Do(func() {
		globalGenContext = &EcmultGenContext{}
		globalGenContext.initGenContext()
	})
	return globalGenContext
}

// NewEcmultGenContext creates a new generator multiplication context
func NewEcmultGenContext() *EcmultGenContext {
	ctx := &EcmultGenContext{}
	ctx.initGenContext()
	return ctx
}

// ecmultGenTwisted computes r = n*B on the twisted curve, where B is the
// twisted base point (also the Decaf generator)
func (ctx *EcmultGenContext) ecmultGenTwisted(r *twistedPoint, n *Scalar) {
	if !ctx.initialized {
		panic("ecmult_gen context not initialized")
	}
	combMul(r, &ctx.comb, n)
}

// ecmultGen computes r = n*G on the Edwards curve in constant time
func (ctx *EcmultGenContext) ecmultGen(r *EdwardsPoint, n *Scalar) {
	if !ctx.initialized {
		panic("ecmult_gen context not initialized")
	}

	quarter := *n
	quarter.divByFour()

	var part twistedPoint
	combMul(&part, &ctx.comb, &quarter)

	var high EdwardsPoint
	part.toUntwisted(&high)

	var low EdwardsPoint
	low.setIdentity()
	m := n.d[0] & 3
	for i := range ctx.low {
		low.cmov(&ctx.low[i], subtle.ConstantTimeEq(int32(m), int32(i)))
	}

	r.Add(&high, &low)
	quarter.Clear()
}

// ScalarBaseMult sets r = s*G, where G is the Ed448 base point, and returns r
func (r *EdwardsPoint) ScalarBaseMult(s *Scalar) *EdwardsPoint {
	getGlobalGenContext().ecmultGen(r, s)
	return r
}
