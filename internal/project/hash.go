package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит хеш набора: H( first || d1 || d2 ... ).
// Порядок аргументов должен быть детерминированным.
func Combine(first Digest, rest ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(first[:])
	for _, d := range rest {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// HashString hashes an option or label so it can take part in Combine.
func HashString(s string) Digest {
	return sha256.Sum256([]byte(s))
}

func (d Digest) IsZero() bool {
	return d == Digest{}
}

func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}
