package ledger

import (
	"time"
)

// GenesisSentinel is the previous_hash value carried by every genesis block.
const GenesisSentinel = "1"

// TimestampFormat is the fixed layout for block timestamps. Always UTC,
// never locale-dependent.
const TimestampFormat = "2006-01-02 15:04:05"

// Header is the fixed part every block carries regardless of payload.
type Header struct {
	Index        int    `json:"index"`
	PreviousHash string `json:"previous_hash"`
	Timestamp    string `json:"timestamp"`
}

// Payload holds the custody fields of a block. A genesis payload only has a
// recipient (the creator's address); a transfer payload carries all four
// fields. Addresses, public keys and signatures are lowercase hex strings.
type Payload struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	PubKey    string `json:"pubkey,omitempty"`
	Signature string `json:"signature,omitempty"`
}

// Block is one immutable record in a chain, linked to its predecessor by
// hash. The embedded structs keep the wire shape flat while the payload
// stays a typed value validated at construction.
type Block struct {
	Header
	Payload
}

// GenesisPayload builds the payload for a chain's first block. The creator's
// address becomes the initial holder.
func GenesisPayload(recipient string) (Payload, error) {
	if recipient == "" {
		return Payload{}, ErrInvalidPayload
	}
	return Payload{Recipient: recipient}, nil
}

// TransferPayload builds a custody transfer payload. All four fields are
// required so a verifier can recompute the sender address and check the
// signature.
func TransferPayload(sender, recipient, pubKey, signature string) (Payload, error) {
	if sender == "" || recipient == "" || pubKey == "" || signature == "" {
		return Payload{}, ErrInvalidPayload
	}
	return Payload{
		Sender:    sender,
		Recipient: recipient,
		PubKey:    pubKey,
		Signature: signature,
	}, nil
}

func newBlock(index int, previousHash string, p Payload) Block {
	return Block{
		Header: Header{
			Index:        index,
			PreviousHash: previousHash,
			Timestamp:    time.Now().UTC().Format(TimestampFormat),
		},
		Payload: p,
	}
}
