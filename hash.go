package goldilocks

import (
	"encoding/binary"
	"hash"
	"unsafe"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/sha3"
)

// SHA256 represents a SHA-256 hash context
type SHA256 struct {
	hasher hash.Hash
}

// NewSHA256 creates a new SHA-256 hash context
func NewSHA256() *SHA256 {
	return &SHA256{hasher: sha256simd.New()}
}

// Write writes data to the hash
func (h *SHA256) Write(data []byte) {
	h.hasher.Write(data)
}

// Finalize finalizes the hash and writes the result to out32 (must be 32 bytes)
func (h *SHA256) Finalize(out32 []byte) {
	if len(out32) != 32 {
		panic("output buffer must be 32 bytes")
	}
	copy(out32, h.hasher.Sum(nil))
}

// Clear clears the hash context
func (h *SHA256) Clear() {
	h.hasher.Reset()
	memclear(unsafe.Pointer(h), unsafe.Sizeof(*h))
}

// TaggedHash computes SHA256(SHA256(tag) || SHA256(tag) || data)
func TaggedHash(tag []byte, data []byte) [32]byte {
	var result [32]byte
	tagHash := sha256simd.Sum256(tag)

	h := NewSHA256()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	h.Write(data)
	h.Finalize(result[:])
	return result
}

// HashToScalar maps a message to a uniformly distributed scalar by reading
// 114 bytes of SHAKE256(dst || msg) and reducing them modulo ℓ. dst
// separates the uses of the function from one another.
func HashToScalar(msg, dst []byte) *Scalar {
	var wide [WideScalarSize]byte
	h := sha3.NewShake256()
	h.Write(dst)
	h.Write(msg)
	h.Read(wide[:])

	s := new(Scalar)
	s.SetUniformBytes(wide[:])
	return s
}

// HashToScalarSHA256 maps a message to a scalar using tagged SHA-256 in
// counter mode: block i is TaggedHash(tag, msg || i) for a 4-byte big-endian
// i, and the first 114 bytes of the concatenation are reduced modulo ℓ.
func HashToScalarSHA256(tag, msg []byte) *Scalar {
	var wide [128]byte
	buf := make([]byte, len(msg)+4)
	copy(buf, msg)
	for i := 0; i < 4; i++ {
		binary.BigEndian.PutUint32(buf[len(msg):], uint32(i))
		block := TaggedHash(tag, buf)
		copy(wide[32*i:], block[:])
	}

	s := new(Scalar)
	s.SetUniformBytes(wide[:WideScalarSize])
	return s
}
