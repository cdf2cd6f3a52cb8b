package ledger

import (
	"crypto/sha256"
	"encoding/hex"

	jsoniter "github.com/json-iterator/go"
)

// canonicalJSON sorts map keys, so two blocks with identical field values
// serialize identically regardless of construction order.
var canonicalJSON = jsoniter.Config{SortMapKeys: true}.Froze()

// HashBlock computes the canonical SHA-256 digest of a block as a lowercase
// hex string. Fields are serialized with deterministic key order; optional
// payload fields are only included when present, matching the block's wire
// shape.
func HashBlock(b Block) string {
	fields := map[string]interface{}{
		"index":         b.Index,
		"previous_hash": b.PreviousHash,
		"timestamp":     b.Timestamp,
		"sender":        b.Sender,
		"recipient":     b.Recipient,
	}
	if b.PubKey != "" {
		fields["pubkey"] = b.PubKey
	}
	if b.Signature != "" {
		fields["signature"] = b.Signature
	}

	// Marshaling a map of scalars cannot fail.
	serialized, _ := canonicalJSON.Marshal(fields)
	digest := sha256.Sum256(serialized)
	return hex.EncodeToString(digest[:])
}
