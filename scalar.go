package goldilocks

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"io"
	"unsafe"
)

// Scalar represents an integer modulo the prime order of the Goldilocks group
// ℓ = 2^446 - 13818066809895115352007386748515426880336692474882178609894547503885.
// It uses 14 uint32 limbs in little-endian order and is always fully reduced.
type Scalar struct {
	d [14]uint32
}

const (
	scalarLimbs     = 14
	scalarBytesSize = 56
	// ScalarSize is the length of an RFC 8032 encoded scalar
	ScalarSize = 57
	// WideScalarSize is the input length accepted by SetUniformBytes
	WideScalarSize = 114

	// montgomeryFactor is -ℓ^-1 mod 2^32
	montgomeryFactor = 0xae918bc5
)

var (
	// ErrNonCanonicalScalar is returned when a scalar encoding is not reduced modulo ℓ
	ErrNonCanonicalScalar = errors.New("goldilocks: non-canonical scalar encoding")
	// ErrInvalidLength is returned when an input has the wrong size
	ErrInvalidLength = errors.New("goldilocks: invalid input length")
)

var (
	// ScalarZero represents the scalar 0
	ScalarZero = Scalar{}

	// ScalarOne represents the scalar 1
	ScalarOne = Scalar{d: [14]uint32{1}}

	scalarOrder = Scalar{d: [14]uint32{
		0xab5844f3, 0x2378c292, 0x8dc58f55, 0x216cc272, 0xaed63690, 0xc44edb49, 0x7cca23e9,
		0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0xffffffff, 0x3fffffff,
	}}

	// scalarR is 2^448 mod ℓ, the Montgomery representation of one
	scalarR = Scalar{d: [14]uint32{
		0x529eec34, 0x721cf5b5, 0xc8e9c2ab, 0x7a4cf635, 0x44a725bf, 0xeec492d9, 0x0cd77058,
		0x00000002, 0, 0, 0, 0, 0, 0,
	}}

	// scalarR2 is 2^896 mod ℓ
	scalarR2 = Scalar{d: [14]uint32{
		0x049b9b60, 0xe3539257, 0xc1b195d9, 0x7af32c4b, 0x88ea1859, 0x0d66de23, 0x5ee4d838,
		0xae17cf72, 0xa3c47c44, 0x1a9cc14b, 0xe4d070af, 0x2052bcb7, 0xf823b729, 0x3402a939,
	}}
)

// NewScalar returns a new zero scalar
func NewScalar() *Scalar {
	return &Scalar{}
}

// SetUint64 sets r = v
func (r *Scalar) SetUint64(v uint64) *Scalar {
	*r = Scalar{}
	r.d[0] = uint32(v)
	r.d[1] = uint32(v >> 32)
	return r
}

// setBytesUnchecked loads 56 little-endian bytes without reduction
func (r *Scalar) setBytesUnchecked(b []byte) {
	for i := 0; i < scalarLimbs; i++ {
		r.d[i] = uint32(b[4*i]) | uint32(b[4*i+1])<<8 | uint32(b[4*i+2])<<16 | uint32(b[4*i+3])<<24
	}
}

// SetBytes sets r from a 56-byte little-endian encoding, which must be below ℓ
func (r *Scalar) SetBytes(b []byte) (*Scalar, error) {
	if len(b) != scalarBytesSize {
		return nil, ErrInvalidLength
	}
	var t Scalar
	t.setBytesUnchecked(b)
	if !t.isCanonical() {
		return nil, ErrNonCanonicalScalar
	}
	*r = t
	return r, nil
}

// SetCanonicalBytes sets r from the 57-byte RFC 8032 encoding. The top byte
// and the two highest bits of byte 55 must be zero and the value below ℓ.
func (r *Scalar) SetCanonicalBytes(b []byte) (*Scalar, error) {
	if len(b) != ScalarSize {
		return nil, ErrInvalidLength
	}
	if b[56] != 0 || b[55]>>6 != 0 {
		return nil, ErrNonCanonicalScalar
	}
	return r.SetBytes(b[:scalarBytesSize])
}

// isCanonical reports whether the limbs hold a value below ℓ
func (r *Scalar) isCanonical() bool {
	var reduced Scalar
	reduced.subExtra(r, &scalarOrder, 0)
	return reduced.Equal(r)
}

// setBytesModOrder loads 56 little-endian bytes and reduces them modulo ℓ
func (r *Scalar) setBytesModOrder(b []byte) {
	var t Scalar
	t.setBytesUnchecked(b)
	r.montgomeryMul(&t, &scalarR)
}

// SetUniformBytes reduces a 114-byte little-endian value modulo ℓ.
// With uniformly random input the result is uniform.
func (r *Scalar) SetUniformBytes(b []byte) (*Scalar, error) {
	if len(b) != WideScalarSize {
		return nil, ErrInvalidLength
	}
	var lo, mid, hi Scalar
	lo.setBytesUnchecked(b[:56])
	mid.setBytesUnchecked(b[56:112])
	hi.d[0] = uint32(b[112]) | uint32(b[113])<<8

	// lo*R/R + mid*R^2/R + hi*R^2*R^2/R^2 = lo + mid*2^448 + hi*2^896
	lo.montgomeryMul(&lo, &scalarR)
	mid.montgomeryMul(&mid, &scalarR2)
	hi.montgomeryMul(&hi, &scalarR2)
	hi.montgomeryMul(&hi, &scalarR2)

	r.Add(&lo, &mid)
	r.Add(r, &hi)
	return r, nil
}

// RandomScalar samples a uniformly random scalar from rand. A nil reader
// uses crypto/rand.
func RandomScalar(rng io.Reader) (*Scalar, error) {
	if rng == nil {
		rng = rand.Reader
	}
	var buf [WideScalarSize]byte
	if _, err := io.ReadFull(rng, buf[:]); err != nil {
		return nil, err
	}
	s := new(Scalar)
	s.SetUniformBytes(buf[:])
	memclear(unsafe.Pointer(&buf[0]), WideScalarSize)
	return s, nil
}

// Bytes returns the 56-byte little-endian encoding
func (r *Scalar) Bytes() []byte {
	out := make([]byte, scalarBytesSize)
	r.getBytes(out)
	return out
}

// BytesRFC8032 returns the 57-byte encoding used by Ed448
func (r *Scalar) BytesRFC8032() []byte {
	out := make([]byte, ScalarSize)
	r.getBytes(out[:scalarBytesSize])
	return out
}

func (r *Scalar) getBytes(b []byte) {
	for i := 0; i < scalarLimbs; i++ {
		l := r.d[i]
		b[4*i] = byte(l)
		b[4*i+1] = byte(l >> 8)
		b[4*i+2] = byte(l >> 16)
		b[4*i+3] = byte(l >> 24)
	}
}

// subExtra sets r = a - b, adding ℓ back when the subtraction borrows past
// the extra carry word.
func (r *Scalar) subExtra(a, b *Scalar, carry uint32) {
	var out [14]uint32
	var chain int64
	for i := 0; i < scalarLimbs; i++ {
		chain += int64(a.d[i]) - int64(b.d[i])
		out[i] = uint32(chain)
		chain >>= 32
	}

	borrow := uint32(chain) + carry

	var c uint64
	for i := 0; i < scalarLimbs; i++ {
		c += uint64(out[i]) + uint64(scalarOrder.d[i]&borrow)
		out[i] = uint32(c)
		c >>= 32
	}
	r.d = out
}

// Add sets r = a + b mod ℓ and returns r
func (r *Scalar) Add(a, b *Scalar) *Scalar {
	var sum Scalar
	var chain uint64
	for i := 0; i < scalarLimbs; i++ {
		chain += uint64(a.d[i]) + uint64(b.d[i])
		sum.d[i] = uint32(chain)
		chain >>= 32
	}
	r.subExtra(&sum, &scalarOrder, uint32(chain))
	return r
}

// Sub sets r = a - b mod ℓ and returns r
func (r *Scalar) Sub(a, b *Scalar) *Scalar {
	r.subExtra(a, b, 0)
	return r
}

// Negate sets r = -a mod ℓ and returns r
func (r *Scalar) Negate(a *Scalar) *Scalar {
	return r.Sub(&ScalarZero, a)
}

// montgomeryMul sets r = a * b / 2^448 mod ℓ
func (r *Scalar) montgomeryMul(a, b *Scalar) {
	var acc [15]uint32
	var carry uint64

	for i := 0; i < scalarLimbs; i++ {
		ai := uint64(a.d[i])

		var chain uint64
		for j := 0; j < scalarLimbs; j++ {
			chain += ai*uint64(b.d[j]) + uint64(acc[j])
			acc[j] = uint32(chain)
			chain >>= 32
		}
		acc[14] = uint32(chain)

		m := uint64(acc[0] * montgomeryFactor)
		chain = 0
		for j := 0; j < scalarLimbs; j++ {
			chain += m*uint64(scalarOrder.d[j]) + uint64(acc[j])
			if j > 0 {
				acc[j-1] = uint32(chain)
			}
			chain >>= 32
		}

		chain += uint64(acc[14]) + carry
		acc[13] = uint32(chain)
		carry = chain >> 32
	}

	var t Scalar
	copy(t.d[:], acc[:scalarLimbs])
	r.subExtra(&t, &scalarOrder, uint32(carry))
}

// Mul sets r = a * b mod ℓ and returns r
func (r *Scalar) Mul(a, b *Scalar) *Scalar {
	r.montgomeryMul(a, b)
	r.montgomeryMul(r, &scalarR2)
	return r
}

// Square sets r = a^2 mod ℓ and returns r
func (r *Scalar) Square(a *Scalar) *Scalar {
	return r.Mul(a, a)
}

// Invert sets r = 1/a mod ℓ and returns r. The inverse of zero is zero.
//
// The exponent ℓ-2 is public, so the sliding window over its bits does not
// leak anything about a.
func (r *Scalar) Invert(a *Scalar) *Scalar {
	const windowBits = 4
	const tableSize = 1 << (windowBits - 1)

	var exp Scalar
	exp.subExtra(&scalarOrder, &Scalar{d: [14]uint32{2}}, 0)

	// table[i] = a^(2i+1), Montgomery form
	var table [tableSize]Scalar
	var a2 Scalar
	table[0].montgomeryMul(a, &scalarR2)
	a2.montgomeryMul(&table[0], &table[0])
	for i := 1; i < tableSize; i++ {
		table[i].montgomeryMul(&table[i-1], &a2)
	}

	res := scalarR
	for i := 445; i >= 0; {
		if exp.bit(uint(i)) == 0 {
			res.montgomeryMul(&res, &res)
			i--
			continue
		}
		j := i - windowBits + 1
		if j < 0 {
			j = 0
		}
		for exp.bit(uint(j)) == 0 {
			j++
		}
		w := exp.getBits(uint(j), uint(i-j+1))
		for k := 0; k < i-j+1; k++ {
			res.montgomeryMul(&res, &res)
		}
		res.montgomeryMul(&res, &table[w>>1])
		i = j - 1
	}

	r.montgomeryMul(&res, &ScalarOne)
	return r
}

// Halve sets r = a/2 mod ℓ and returns r
func (r *Scalar) Halve(a *Scalar) *Scalar {
	mask := -(a.d[0] & 1)
	var t [14]uint32
	var chain uint64
	for i := 0; i < scalarLimbs; i++ {
		chain += uint64(a.d[i]) + uint64(scalarOrder.d[i]&mask)
		t[i] = uint32(chain)
		chain >>= 32
	}
	for i := 0; i < scalarLimbs-1; i++ {
		t[i] = t[i]>>1 | t[i+1]<<31
	}
	t[13] = t[13]>>1 | uint32(chain)<<31
	r.d = t
	return r
}

// divByFour shifts the limbs right by two bits. The result is not reduced
// and discards the two low bits; callers account for them separately.
func (r *Scalar) divByFour() {
	for i := 0; i < scalarLimbs-1; i++ {
		r.d[i] = r.d[i+1]<<30 | r.d[i]>>2
	}
	r.d[13] >>= 2
}

// bit returns bit i of the scalar
func (r *Scalar) bit(i uint) uint32 {
	return (r.d[i>>5] >> (i & 31)) & 1
}

// getBits extracts count bits (at most 32) starting at offset
func (r *Scalar) getBits(offset, count uint) uint32 {
	limb := offset >> 5
	shift := offset & 31
	v := r.d[limb] >> shift
	if shift+count > 32 && limb+1 < scalarLimbs {
		v |= r.d[limb+1] << (32 - shift)
	}
	if count == 32 {
		return v
	}
	return v & (1<<count - 1)
}

// radix16 recodes the scalar into 113 signed digits in [-8, 8) such that
// s = sum(d[i] * 16^i).
func (r *Scalar) radix16() [113]int8 {
	var b [scalarBytesSize]byte
	r.getBytes(b[:])

	var out [113]int8
	for i := 0; i < scalarBytesSize; i++ {
		out[2*i] = int8(b[i] & 15)
		out[2*i+1] = int8(b[i] >> 4)
	}
	for i := 0; i < 112; i++ {
		carry := (out[i] + 8) >> 4
		out[i] -= carry << 4
		out[i+1] += carry
	}
	return out
}

// IsZero reports whether r is zero
func (r *Scalar) IsZero() bool {
	return r.Equal(&ScalarZero)
}

// Equal reports whether r and a are equal, in constant time
func (r *Scalar) Equal(a *Scalar) bool {
	var x, y [scalarBytesSize]byte
	r.getBytes(x[:])
	a.getBytes(y[:])
	return subtle.ConstantTimeCompare(x[:], y[:]) == 1
}

// cmov sets r = a if flag is 1
func (r *Scalar) cmov(a *Scalar, flag int) {
	mask := uint32(-flag)
	for i := 0; i < scalarLimbs; i++ {
		r.d[i] ^= mask & (r.d[i] ^ a.d[i])
	}
}

// Clear wipes the scalar
func (r *Scalar) Clear() {
	memclear(unsafe.Pointer(&r.d[0]), unsafe.Sizeof(r.d))
}
