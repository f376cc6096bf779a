package goldilocks

import (
	"crypto/subtle"
	"unsafe"
)

// FieldElement represents an element of the field modulo the Goldilocks prime
// p = 2^448 - 2^224 - 1. It uses 16 uint32 limbs in base 2^28.
type FieldElement struct {
	// n represents the sum(i=0..15, n[i] << (i*28)) mod p.
	// Limbs may exceed 28 bits by a small carry between reductions.
	n [16]uint32
}

const (
	fieldLimbs     = 16
	fieldLimbBits  = 28
	fieldLimbMask  = 1<<fieldLimbBits - 1
	fieldBytesSize = 56
)

// fieldModulus holds the limbs of p. Only limb 8 differs from the mask.
var fieldModulus = FieldElement{n: [16]uint32{
	fieldLimbMask, fieldLimbMask, fieldLimbMask, fieldLimbMask,
	fieldLimbMask, fieldLimbMask, fieldLimbMask, fieldLimbMask,
	fieldLimbMask - 1, fieldLimbMask, fieldLimbMask, fieldLimbMask,
	fieldLimbMask, fieldLimbMask, fieldLimbMask, fieldLimbMask,
}}

var (
	// FieldElementZero represents the field element 0
	FieldElementZero = FieldElement{}

	// FieldElementOne represents the field element 1
	FieldElementOne = FieldElement{n: [16]uint32{1}}

	fieldMinusOne = FieldElement{n: [16]uint32{
		268435454, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455,
		268435454, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455, 268435455,
	}}
)

// setInt sets the field element to a small integer value
func (r *FieldElement) setInt(a uint32) {
	*r = FieldElement{}
	r.n[0] = a & fieldLimbMask
	r.n[1] = a >> fieldLimbBits
}

// setBytes sets a field element from 56 little-endian bytes. Values up to
// 2^448-1 are accepted without reduction.
func (r *FieldElement) setBytes(b []byte) {
	if len(b) != fieldBytesSize {
		panic("field element byte array must be 56 bytes")
	}
	for i := 0; i < 8; i++ {
		var l uint64
		for j := 6; j >= 0; j-- {
			l = l<<8 | uint64(b[7*i+j])
		}
		r.n[2*i] = uint32(l) & fieldLimbMask
		r.n[2*i+1] = uint32(l >> fieldLimbBits)
	}
}

// setCanonicalBytes is setBytes that also reports whether b is the unique
// encoding of a value below p.
func (r *FieldElement) setCanonicalBytes(b []byte) bool {
	r.setBytes(b)
	var check [fieldBytesSize]byte
	r.getBytes(check[:])
	return subtle.ConstantTimeCompare(check[:], b) == 1
}

// getBytes writes the canonical 56-byte little-endian encoding into b
func (r *FieldElement) getBytes(b []byte) {
	if len(b) != fieldBytesSize {
		panic("field element byte array must be 56 bytes")
	}
	t := *r
	t.strongReduce()
	for i := 0; i < 8; i++ {
		l := uint64(t.n[2*i]) | uint64(t.n[2*i+1])<<fieldLimbBits
		for j := 0; j < 7; j++ {
			b[7*i+j] = byte(l)
			l >>= 8
		}
	}
}

// weakReduce folds the carry of every limb into its neighbour. The top carry
// wraps around into limbs 0 and 8 since 2^448 = 2^224 + 1 mod p.
func (r *FieldElement) weakReduce() {
	top := r.n[15] >> fieldLimbBits
	r.n[8] += top
	for i := fieldLimbs - 1; i > 0; i-- {
		r.n[i] = (r.n[i] & fieldLimbMask) + (r.n[i-1] >> fieldLimbBits)
	}
	r.n[0] = (r.n[0] & fieldLimbMask) + top
}

// strongReduce brings the element into its canonical form in [0, p)
func (r *FieldElement) strongReduce() {
	r.weakReduce()

	// Subtract p, remembering whether the result went negative.
	var scarry int64
	for i := 0; i < fieldLimbs; i++ {
		scarry += int64(r.n[i]) - int64(fieldModulus.n[i])
		r.n[i] = uint32(scarry) & fieldLimbMask
		scarry >>= fieldLimbBits
	}
	if scarry != 0 && scarry != -1 {
		panic("field strong reduction out of range")
	}

	// Add p back if it did.
	smask := uint32(scarry) & fieldLimbMask
	var carry uint64
	for i := 0; i < fieldLimbs; i++ {
		carry += uint64(r.n[i]) + uint64(smask&fieldModulus.n[i])
		r.n[i] = uint32(carry) & fieldLimbMask
		carry >>= fieldLimbBits
	}
}

// bias adds b*p limbwise so that a following subtraction cannot underflow
func (r *FieldElement) bias(b uint32) {
	co1 := b * fieldLimbMask
	co2 := co1 - b
	for i := 0; i < fieldLimbs; i++ {
		if i == 8 {
			r.n[i] += co2
		} else {
			r.n[i] += co1
		}
	}
}

// add sets r = a + b
func (r *FieldElement) add(a, b *FieldElement) {
	for i := 0; i < fieldLimbs; i++ {
		r.n[i] = a.n[i] + b.n[i]
	}
	r.weakReduce()
}

// sub sets r = a - b
func (r *FieldElement) sub(a, b *FieldElement) {
	t := *a
	t.bias(2)
	for i := 0; i < fieldLimbs; i++ {
		r.n[i] = t.n[i] - b.n[i]
	}
	r.weakReduce()
}

// negate sets r = -a
func (r *FieldElement) negate(a *FieldElement) {
	r.sub(&FieldElementZero, a)
}

// isZero returns true if the element is zero modulo p
func (r *FieldElement) isZero() bool {
	t := *r
	t.strongReduce()
	var acc uint32
	for i := 0; i < fieldLimbs; i++ {
		acc |= t.n[i]
	}
	return subtle.ConstantTimeEq(int32(acc), 0) == 1
}

// equal returns true if two field elements represent the same value
func (r *FieldElement) equal(a *FieldElement) bool {
	var d FieldElement
	d.sub(r, a)
	return d.isZero()
}

// isNegative returns 1 if the canonical form of the element is odd
func (r *FieldElement) isNegative() int {
	var b [fieldBytesSize]byte
	r.getBytes(b[:])
	return int(b[0] & 1)
}

// cmov sets r = a if flag is 1, leaves r unchanged if flag is 0
func (r *FieldElement) cmov(a *FieldElement, flag int) {
	mask := uint32(-flag)
	for i := 0; i < fieldLimbs; i++ {
		r.n[i] ^= mask & (r.n[i] ^ a.n[i])
	}
}

// cswap exchanges r and a if flag is 1
func (r *FieldElement) cswap(a *FieldElement, flag int) {
	mask := uint32(-flag)
	for i := 0; i < fieldLimbs; i++ {
		t := mask & (r.n[i] ^ a.n[i])
		r.n[i] ^= t
		a.n[i] ^= t
	}
}

// condNegate negates r if flag is 1
func (r *FieldElement) condNegate(flag int) {
	var neg FieldElement
	neg.negate(r)
	r.cmov(&neg, flag)
}

// clear clears a field element to prevent leaking sensitive information
func (r *FieldElement) clear() {
	memclear(unsafe.Pointer(&r.n[0]), unsafe.Sizeof(r.n))
}

// memclear clears memory to prevent leaking sensitive information
func memclear(ptr unsafe.Pointer, n uintptr) {
	for i := uintptr(0); i < n; i++ {
		*(*byte)(unsafe.Pointer(uintptr(ptr) + i)) = 0
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// batchInverse computes the inverses of a slice of FieldElements.
// All inputs must be non-zero.
func batchInverse(out []FieldElement, a []FieldElement) {
	n := len(a)
	if n == 0 {
		return
	}

	// Montgomery's trick: a single inversion for the whole batch.
	s := make([]FieldElement, n)

	// s_i = a_0 * a_1 * ... * a_{i-1}
	s[0].setInt(1)
	for i := 1; i < n; i++ {
		s[i].mul(&s[i-1], &a[i-1])
	}

	var u FieldElement
	u.mul(&s[n-1], &a[n-1])
	u.inv(&u)

	// Loop backwards so out may alias a.
	for i := n - 1; i >= 0; i-- {
		var t FieldElement
		t.mul(&u, &s[i])
		u.mul(&u, &a[i])
		out[i] = t
	}
}
