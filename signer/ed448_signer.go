package signer

import (
	"crypto/rand"
	"errors"

	"goldilocks.mleku.dev"
)

// Ed448Signer implements the I interface with RFC 8032 Ed448 keys
type Ed448Signer struct {
	seed      []byte
	pub       goldilocks.CompressedEdwardsY
	hasPub    bool
	hasSecret bool // Whether we have the secret key (if false, can only verify)
}

// NewEd448Signer creates a new Ed448Signer instance
func NewEd448Signer() *Ed448Signer {
	return &Ed448Signer{}
}

// Generate creates a fresh new key pair from system entropy
func (s *Ed448Signer) Generate() error {
	seed := make([]byte, goldilocks.Ed448SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return err
	}
	err := s.InitSec(seed)
	for i := range seed {
		seed[i] = 0
	}
	return err
}

// InitSec initialises the secret key from a 57-byte seed, and also derives
// the public key
func (s *Ed448Signer) InitSec(sec []byte) error {
	if len(sec) != goldilocks.Ed448SeedSize {
		return errors.New("secret key must be 57 bytes")
	}
	pub, err := goldilocks.Ed448PublicKey(sec)
	if err != nil {
		return err
	}

	seed := make([]byte, goldilocks.Ed448SeedSize)
	copy(seed, sec)

	s.Zero()
	s.seed = seed
	s.pub = pub
	s.hasPub = true
	s.hasSecret = true
	return nil
}

// InitPub initializes the public (verification) key from a 57-byte encoding
func (s *Ed448Signer) InitPub(pub []byte) error {
	if len(pub) != goldilocks.Ed448PublicKeySize {
		return errors.New("public key must be 57 bytes")
	}
	var c goldilocks.CompressedEdwardsY
	copy(c[:], pub)
	if _, err := c.Decompress(); err != nil {
		return err
	}

	s.Zero()
	s.pub = c
	s.hasPub = true
	return nil
}

// Sec returns the secret key bytes
func (s *Ed448Signer) Sec() []byte {
	if !s.hasSecret {
		return nil
	}
	return s.seed
}

// Pub returns the public key bytes
func (s *Ed448Signer) Pub() []byte {
	if !s.hasPub {
		return nil
	}
	out := make([]byte, goldilocks.Ed448PublicKeySize)
	copy(out, s.pub[:])
	return out
}

// Sign creates a signature using the stored secret key
func (s *Ed448Signer) Sign(msg []byte) (sig []byte, err error) {
	if !s.hasSecret {
		return nil, errors.New("no secret key available for signing")
	}
	return goldilocks.Ed448Sign(s.seed, msg, nil)
}

// Verify checks a message and signature match the stored public key
func (s *Ed448Signer) Verify(msg, sig []byte) (valid bool, err error) {
	if !s.hasPub {
		return false, errors.New("no public key available for verification")
	}
	if len(sig) != goldilocks.Ed448SignatureSize {
		return false, errors.New("signature must be 114 bytes")
	}
	return goldilocks.Ed448Verify(s.pub[:], msg, sig, nil), nil
}

// Zero wipes the secret key to prevent memory leaks
func (s *Ed448Signer) Zero() {
	for i := range s.seed {
		s.seed[i] = 0
	}
	s.seed = nil
	s.hasSecret = false
	s.pub = goldilocks.CompressedEdwardsY{}
	s.hasPub = false
}

// ECDH returns SHA-256 of the encoding of 4*a*P, where a is the signer's
// secret scalar and P the peer's Ed448 public key. Peers of small order are
// rejected.
func (s *Ed448Signer) ECDH(pub []byte) (secret []byte, err error) {
	if !s.hasSecret {
		return nil, errors.New("no secret key available for ECDH")
	}
	if len(pub) != goldilocks.Ed448PublicKeySize {
		return nil, errors.New("public key must be 57 bytes")
	}

	var p goldilocks.EdwardsPoint
	if _, err := p.SetBytes(pub); err != nil {
		return nil, err
	}
	// Clear the torsion component
	p.Double(&p)
	p.Double(&p)

	a, _, err := goldilocks.ExpandEd448Seed(s.seed)
	if err != nil {
		return nil, err
	}
	var shared goldilocks.EdwardsPoint
	shared.ScalarMult(a, &p)
	a.Clear()
	if shared.Equal(goldilocks.NewIdentityPoint()) {
		return nil, errors.New("peer public key has small order")
	}

	enc := shared.Compress()
	secret = make([]byte, 32)
	h := goldilocks.NewSHA256()
	h.Write(enc[:])
	h.Finalize(secret)
	h.Clear()
	return secret, nil
}
