package goldilocks

import (
	"errors"
	"io"
	"unsafe"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/hkdf"
)

// ECDHHashFunction hashes the encoded shared point into output
type ECDHHashFunction func(output []byte, shared []byte) bool

// ecdhHashFunctionSHA256 is the default hash: SHA256(shared)
func ecdhHashFunctionSHA256(output []byte, shared []byte) bool {
	if len(output) != 32 || len(shared) != PublicKeySize {
		return false
	}
	sha := NewSHA256()
	sha.Write(shared)
	sha.Finalize(output)
	sha.Clear()
	return true
}

// ECDHRaw computes the Decaf448 encoding of seckey*pubkey. The result is
// never the identity since both the key and the point are non-zero in a
// prime-order group.
func ECDHRaw(pubkey *PublicKey, seckey []byte) (CompressedDecaf, error) {
	if pubkey == nil {
		return CompressedDecaf{}, errors.New("pubkey cannot be nil")
	}
	p, err := pubkey.point()
	if err != nil {
		return CompressedDecaf{}, err
	}

	var s Scalar
	if err := parseSeckey(&s, seckey); err != nil {
		return CompressedDecaf{}, err
	}

	var res DecafPoint
	res.ScalarMult(&s, p)
	out := res.Compress()

	s.Clear()
	res.p.clear()
	return out, nil
}

// ECDH computes a Decaf448 Diffie-Hellman shared secret and hashes it into
// output with hashfp, or with SHA-256 when hashfp is nil
func ECDH(output []byte, pubkey *PublicKey, seckey []byte, hashfp ECDHHashFunction) error {
	if len(output) != 32 {
		return errors.New("output must be 32 bytes")
	}
	if hashfp == nil {
		hashfp = ecdhHashFunctionSHA256
	}

	shared, err := ECDHRaw(pubkey, seckey)
	if err != nil {
		return err
	}

	success := hashfp(output, shared[:])
	memclear(unsafe.Pointer(&shared[0]), uintptr(len(shared)))
	if !success {
		return errors.New("hash function failed")
	}
	return nil
}

// HKDF performs HMAC-based Key Derivation (RFC 5869) with SHA-256
func HKDF(output []byte, ikm []byte, salt []byte, info []byte) error {
	if len(output) == 0 {
		return errors.New("output length must be greater than 0")
	}
	r := hkdf.New(sha256simd.New, ikm, salt, info)
	if _, err := io.ReadFull(r, output); err != nil {
		return err
	}
	return nil
}

// ECDHWithHKDF computes the raw shared point and derives a key from it with HKDF
func ECDHWithHKDF(output []byte, pubkey *PublicKey, seckey []byte, salt []byte, info []byte) error {
	shared, err := ECDHRaw(pubkey, seckey)
	if err != nil {
		return err
	}
	err = HKDF(output, shared[:], salt, info)
	memclear(unsafe.Pointer(&shared[0]), uintptr(len(shared)))
	return err
}
