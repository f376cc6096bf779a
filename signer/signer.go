// Package signer provides key holders over the goldilocks package behind a
// small set of interfaces, used to abstract the signature algorithm from the
// usage.
package signer

// I is a signer that holds one key pair. Keys without a secret part can only
// verify.
type I interface {
	// Generate creates a fresh key pair from system entropy
	Generate() error
	// InitSec initialises the secret key from raw bytes and derives the public key
	InitSec(sec []byte) error
	// InitPub initialises a verify-only signer from a public key
	InitPub(pub []byte) error
	// Sec returns the secret key bytes, or nil
	Sec() []byte
	// Pub returns the public key bytes, or nil
	Pub() []byte
	// Sign signs msg with the secret key
	Sign(msg []byte) (sig []byte, err error)
	// Verify checks a signature of msg against the public key
	Verify(msg, sig []byte) (valid bool, err error)
	// Zero wipes the secret key
	Zero()
	// ECDH derives a shared secret with the holder of pub
	ECDH(pub []byte) (secret []byte, err error)
}

// Gen generates key pairs for searching over public key encodings
type Gen interface {
	// Generate gathers entropy and returns the public key bytes
	Generate() (pubBytes []byte, err error)
	// Negate replaces the key pair with its negation
	Negate()
	// KeyPairBytes returns the raw secret and public key bytes
	KeyPairBytes() (secBytes, pubBytes []byte)
}
