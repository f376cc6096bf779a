package signer

import (
	"goldilocks.mleku.dev"
)

// Decaf448Gen implements the Gen interface for Decaf448 key generation
type Decaf448Gen struct {
	seckey []byte
	pubkey *goldilocks.PublicKey
}

// NewDecaf448Gen creates a new Decaf448Gen instance
func NewDecaf448Gen() *Decaf448Gen {
	return &Decaf448Gen{}
}

// Generate gathers entropy and returns the 56-byte Decaf public key
func (g *Decaf448Gen) Generate() (pubBytes []byte, err error) {
	seckey, pubkey, err := goldilocks.ECKeyPairGenerate(nil)
	if err != nil {
		return nil, err
	}
	g.seckey = seckey
	g.pubkey = pubkey
	return pubkey.Bytes(), nil
}

// Negate replaces the secret key s with -s and the public key with its
// negation
func (g *Decaf448Gen) Negate() {
	if g.seckey == nil {
		return
	}
	if !goldilocks.ECSeckeyNegate(g.seckey) {
		return
	}
	pubkey, err := goldilocks.ECPubkeyCreate(g.seckey)
	if err != nil {
		return
	}
	g.pubkey = pubkey
}

// KeyPairBytes returns the raw bytes of the secret and public key
func (g *Decaf448Gen) KeyPairBytes() (secBytes, pubBytes []byte) {
	if g.seckey == nil {
		return nil, nil
	}
	return g.seckey, g.pubkey.Bytes()
}

// ECDH derives a 32-byte shared secret between the generated key and a
// Decaf448 public key
func (g *Decaf448Gen) ECDH(pub []byte) (secret []byte, err error) {
	pubkey, err := goldilocks.ECPubkeyParse(pub)
	if err != nil {
		return nil, err
	}
	secret = make([]byte, 32)
	if err := goldilocks.ECDH(secret, pubkey, g.seckey, nil); err != nil {
		return nil, err
	}
	return secret, nil
}
