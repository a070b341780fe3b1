package build

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint identifies one processing of one file. Two runs with equal
// keys produce equal results.
type Fingerprint struct {
	ContentHash   string
	OptionsHash   string
	SchemaVersion string
	Mode          string
	Key           string
}

func (f *Fingerprint) ComputeKey() {
	h := sha256.New()
	for _, part := range []string{f.ContentHash, f.OptionsHash, f.SchemaVersion, f.Mode} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	f.Key = hex.EncodeToString(h.Sum(nil))
}

// HashString is the hex sha256 of s.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
