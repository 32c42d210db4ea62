package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a sha256 sum, the same size as source.File.Hash.
type Digest [sha256.Size]byte

// Combine hashes the concatenation of its arguments. Callers pass parts in a
// deterministic order; swapping two parts changes the result.
func Combine(first Digest, rest ...Digest) Digest {
	buf := make([]byte, 0, (len(rest)+1)*sha256.Size)
	buf = append(buf, first[:]...)
	for _, d := range rest {
		buf = append(buf, d[:]...)
	}
	return sha256.Sum256(buf)
}

func StringDigest(s string) Digest { return sha256.Sum256([]byte(s)) }

func (d Digest) String() string { return hex.EncodeToString(d[:]) }
