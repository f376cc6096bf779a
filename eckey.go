package goldilocks

import (
	"errors"
	"io"
	"unsafe"

	"golang.org/x/crypto/sha3"
)

const (
	// SecretKeySize is the length of a Decaf448 secret key
	SecretKeySize = 56
	// PublicKeySize is the length of a Decaf448 public key
	PublicKeySize = 56
	// Ed448SeedSize is the length of an RFC 8032 Ed448 private key
	Ed448SeedSize = 57
)

// ErrInvalidPublicKey is returned for public keys that are malformed or
// decode to the identity
var ErrInvalidPublicKey = errors.New("goldilocks: invalid public key")

// PublicKey is a Decaf448 public key
type PublicKey struct {
	data CompressedDecaf
}

// Bytes returns the 56-byte encoding of the key
func (pk *PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, pk.data[:])
	return out
}

// point decodes the key, rejecting the identity
func (pk *PublicKey) point() (*DecafPoint, error) {
	p, err := pk.data.Decompress()
	if err != nil || p.IsIdentity() {
		return nil, ErrInvalidPublicKey
	}
	return p, nil
}

// ECPubkeyParse parses a 56-byte Decaf448 public key
func ECPubkeyParse(input []byte) (*PublicKey, error) {
	if len(input) != PublicKeySize {
		return nil, ErrInvalidLength
	}
	pk := &PublicKey{}
	copy(pk.data[:], input)
	if _, err := pk.point(); err != nil {
		return nil, err
	}
	return pk, nil
}

// parseSeckey loads a secret key scalar, rejecting zero and values >= ℓ
func parseSeckey(s *Scalar, seckey []byte) error {
	if len(seckey) != SecretKeySize {
		return errors.New("secret key must be 56 bytes")
	}
	if _, err := s.SetBytes(seckey); err != nil {
		return errors.New("invalid secret key")
	}
	if s.IsZero() {
		return errors.New("secret key cannot be zero")
	}
	return nil
}

// ECSeckeyVerify verifies that a 56-byte array is a valid secret key
func ECSeckeyVerify(seckey []byte) bool {
	var s Scalar
	ok := parseSeckey(&s, seckey) == nil
	s.Clear()
	return ok
}

// ECSeckeyNegate negates a secret key in place
func ECSeckeyNegate(seckey []byte) bool {
	var s Scalar
	if parseSeckey(&s, seckey) != nil {
		return false
	}
	s.Negate(&s)
	s.getBytes(seckey)
	s.Clear()
	return true
}

// ECSeckeyGenerate generates a new random secret key from rng, or from
// crypto/rand when rng is nil
func ECSeckeyGenerate(rng io.Reader) ([]byte, error) {
	for {
		s, err := RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		if !s.IsZero() {
			seckey := s.Bytes()
			s.Clear()
			return seckey, nil
		}
	}
}

// ECPubkeyCreate computes the public key s*B for a secret key s
func ECPubkeyCreate(seckey []byte) (*PublicKey, error) {
	var s Scalar
	if err := parseSeckey(&s, seckey); err != nil {
		return nil, err
	}
	var p DecafPoint
	p.ScalarBaseMult(&s)
	s.Clear()
	return &PublicKey{data: p.Compress()}, nil
}

// ECKeyPairGenerate generates a new key pair (secret key and public key)
func ECKeyPairGenerate(rng io.Reader) (seckey []byte, pubkey *PublicKey, err error) {
	seckey, err = ECSeckeyGenerate(rng)
	if err != nil {
		return nil, nil, err
	}
	pubkey, err = ECPubkeyCreate(seckey)
	if err != nil {
		return nil, nil, err
	}
	return seckey, pubkey, nil
}

// ECSeckeyTweakAdd adds a tweak to a secret key: seckey = seckey + tweak mod ℓ
func ECSeckeyTweakAdd(seckey []byte, tweak []byte) error {
	var sec, tw Scalar
	if err := parseSeckey(&sec, seckey); err != nil {
		return err
	}
	if _, err := tw.SetBytes(tweak); err != nil {
		return errors.New("invalid tweak")
	}

	sec.Add(&sec, &tw)
	if sec.IsZero() {
		return errors.New("resulting secret key is zero")
	}
	sec.getBytes(seckey)
	sec.Clear()
	return nil
}

// ECSeckeyTweakMul multiplies a secret key by a tweak: seckey = seckey * tweak mod ℓ
func ECSeckeyTweakMul(seckey []byte, tweak []byte) error {
	var sec, tw Scalar
	if err := parseSeckey(&sec, seckey); err != nil {
		return err
	}
	if err := parseSeckey(&tw, tweak); err != nil {
		return errors.New("invalid tweak")
	}

	sec.Mul(&sec, &tw)
	sec.getBytes(seckey)
	sec.Clear()
	return nil
}

// ECPubkeyTweakAdd adds a tweak to a public key: pubkey = pubkey + tweak*B
func ECPubkeyTweakAdd(pubkey *PublicKey, tweak []byte) error {
	var tw Scalar
	if _, err := tw.SetBytes(tweak); err != nil {
		return errors.New("invalid tweak")
	}
	p, err := pubkey.point()
	if err != nil {
		return err
	}

	var tweakB DecafPoint
	tweakB.ScalarBaseMult(&tw)
	p.Add(p, &tweakB)
	if p.IsIdentity() {
		return errors.New("resulting public key is the identity")
	}
	pubkey.data = p.Compress()
	return nil
}

// ECPubkeyTweakMul multiplies a public key by a tweak: pubkey = tweak * pubkey
func ECPubkeyTweakMul(pubkey *PublicKey, tweak []byte) error {
	var tw Scalar
	if err := parseSeckey(&tw, tweak); err != nil {
		return errors.New("invalid tweak")
	}
	p, err := pubkey.point()
	if err != nil {
		return err
	}

	p.ScalarMult(&tw, p)
	pubkey.data = p.Compress()
	return nil
}

// ExpandEd448Seed derives the secret scalar and the nonce prefix from an
// RFC 8032 Ed448 private key: the seed is hashed with SHAKE256 to 114 bytes,
// the low half is clamped and reduced modulo ℓ and the high half is the
// prefix.
func ExpandEd448Seed(seed []byte) (*Scalar, []byte, error) {
	if len(seed) != Ed448SeedSize {
		return nil, nil, ErrInvalidLength
	}
	var h [WideScalarSize]byte
	sha3.ShakeSum256(h[:], seed)

	var a [WideScalarSize]byte
	copy(a[:Ed448SeedSize], h[:Ed448SeedSize])
	a[0] &= 0xfc
	a[56] = 0
	a[55] |= 0x80

	s := new(Scalar)
	s.SetUniformBytes(a[:])

	prefix := make([]byte, Ed448SeedSize)
	copy(prefix, h[Ed448SeedSize:])

	memclear(unsafe.Pointer(&h[0]), WideScalarSize)
	memclear(unsafe.Pointer(&a[0]), WideScalarSize)
	return s, prefix, nil
}

// Ed448PublicKey returns the RFC 8032 public key for an Ed448 private key
func Ed448PublicKey(seed []byte) (CompressedEdwardsY, error) {
	s, _, err := ExpandEd448Seed(seed)
	if err != nil {
		return CompressedEdwardsY{}, err
	}
	var p EdwardsPoint
	p.ScalarBaseMult(s)
	s.Clear()
	return p.Compress(), nil
}
