package goldilocks

import (
	"errors"
	"unsafe"

	"golang.org/x/crypto/sha3"
)

const (
	// Ed448SignatureSize is the length of an RFC 8032 Ed448 signature (R || S)
	Ed448SignatureSize = 114
	// Ed448PublicKeySize is the length of an encoded Ed448 public key
	Ed448PublicKeySize = 57

	ed448MaxContextSize = 255
)

// ed448DomainPrefix is the dom4 label of RFC 8032 section 5.2
var ed448DomainPrefix = []byte("SigEd448")

// ed448Hash reduces SHAKE256(dom4(0, ctx) || parts...) to a scalar
func ed448Hash(ctx []byte, parts ...[]byte) *Scalar {
	h := sha3.NewShake256()
	h.Write(ed448DomainPrefix)
	h.Write([]byte{0, byte(len(ctx))})
	h.Write(ctx)
	for _, p := range parts {
		h.Write(p)
	}
	var wide [WideScalarSize]byte
	h.Read(wide[:])

	s := new(Scalar)
	s.SetUniformBytes(wide[:])
	memclear(unsafe.Pointer(&wide[0]), WideScalarSize)
	return s
}

// Ed448Sign signs msg with an RFC 8032 Ed448 private key under the given
// context string, which may be empty
func Ed448Sign(seed, msg, ctx []byte) ([]byte, error) {
	if len(ctx) > ed448MaxContextSize {
		return nil, errors.New("context must be at most 255 bytes")
	}
	s, prefix, err := ExpandEd448Seed(seed)
	if err != nil {
		return nil, err
	}

	var A EdwardsPoint
	A.ScalarBaseMult(s)
	pub := A.Compress()

	// Nonce r = H(dom4 || prefix || M)
	r := ed448Hash(ctx, prefix, msg)
	var R EdwardsPoint
	R.ScalarBaseMult(r)
	encR := R.Compress()

	// Challenge k = H(dom4 || R || A || M)
	k := ed448Hash(ctx, encR[:], pub[:], msg)

	// S = r + k*s
	var S Scalar
	S.Mul(k, s)
	S.Add(&S, r)

	sig := make([]byte, Ed448SignatureSize)
	copy(sig[:57], encR[:])
	S.getBytes(sig[57:113])

	// Clear sensitive data
	s.Clear()
	r.Clear()
	S.Clear()
	memclear(unsafe.Pointer(&prefix[0]), uintptr(len(prefix)))
	return sig, nil
}

// Ed448Verify reports whether sig is a valid Ed448 signature of msg under
// the 57-byte public key pub. It uses the cofactored equation
// [4][S]B = [4]R + [4][k]A and runs in variable time.
func Ed448Verify(pub, msg, sig, ctx []byte) bool {
	if len(pub) != Ed448PublicKeySize || len(sig) != Ed448SignatureSize {
		return false
	}
	if len(ctx) > ed448MaxContextSize {
		return false
	}

	var A, R EdwardsPoint
	if _, err := A.SetBytes(pub); err != nil {
		return false
	}
	if _, err := R.SetBytes(sig[:57]); err != nil {
		return false
	}
	var S Scalar
	if _, err := S.SetCanonicalBytes(sig[57:]); err != nil {
		return false
	}

	k := ed448Hash(ctx, sig[:57], pub, msg)
	k.Negate(k)

	// S*B - k*A should equal R up to small torsion
	var check EdwardsPoint
	check.VarTimeDoubleScalarBaseMult(k, &A, &S)
	check.Sub(&check, &R)
	check.Double(&check)
	check.Double(&check)
	return check.Equal(NewIdentityPoint())
}
