package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns a deterministic BLAKE3 hash of the fields this
// variant sends, prefixed by the variant name. Identical forms sent to the
// same endpoint share a fingerprint.
func (v Variant) Fingerprint(s Submission) string {
	h := blake3.New()

	h.Write([]byte(v.Name))
	h.Write([]byte{0})

	// Field order comes from the variant so the hash is stable.
	for _, f := range v.Fields {
		val, _ := s.Get(f)
		h.Write([]byte(f))
		h.Write([]byte{0})
		h.Write([]byte(val))
		h.Write([]byte{0})
	}

	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}
