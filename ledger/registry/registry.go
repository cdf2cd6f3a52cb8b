// Package registry holds the chains for every tracked item and enforces
// custody when a transfer is applied.
package registry

import (
	"encoding/hex"
	"sort"
	"sync"

	"github.com/moncayo/libchain/ledger"
	"github.com/moncayo/libchain/ledger/identity"
)

// Transfer is a request to move custody of an item from its current holder
// to a new recipient. All fields are lowercase hex except ItemID.
type Transfer struct {
	ItemID    string `json:"book_id"`
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	PubKey    string `json:"pubkey"`
	Signature string `json:"signature"`
}

// Registry maps item ids to their chains. The mapping has its own
// reader-writer guard, distinct from the per-chain locks: AddChain mutates
// the mapping while ApplyTransfer only looks a chain up and then operates on
// it under the chain's lock.
type Registry struct {
	mu     sync.RWMutex
	chains map[string]*ledger.Chain
}

func New() *Registry {
	return &Registry{
		chains: make(map[string]*ledger.Chain),
	}
}

// AddChain inserts a chain, rejecting duplicates. No partial state is
// observable either way.
func (r *Registry) AddChain(c *ledger.Chain) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.chains[c.ID()]; exists {
		return ledger.ErrDuplicateID
	}
	r.chains[c.ID()] = c
	return nil
}

// Fetch looks a chain up by id. Absence is not an error at this layer.
func (r *Registry) Fetch(id string) (*ledger.Chain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.chains[id]
	return c, ok
}

// ChainIDs returns the registered item ids in sorted order.
func (r *Registry) ChainIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.chains))
	for id := range r.chains {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ApplyTransfer validates a transfer against the item's chain and, on
// success, appends the transfer block and returns it. The custody check and
// the append run atomically under the chain's lock; every failure leaves the
// chain untouched.
//
// A transfer identical to the chain's head block is treated as a duplicate
// delivery and returns the existing block.
func (r *Registry) ApplyTransfer(t Transfer) (ledger.Block, error) {
	if t.Sender == t.Recipient {
		return ledger.Block{}, ledger.ErrSelfTransfer
	}

	chain, ok := r.Fetch(t.ItemID)
	if !ok {
		return ledger.Block{}, ledger.ErrChainNotFound
	}

	payload, err := ledger.TransferPayload(t.Sender, t.Recipient, t.PubKey, t.Signature)
	if err != nil {
		return ledger.Block{}, err
	}

	return chain.AppendTransfer(payload, authorizeTransfer)
}

// authorizeTransfer checks that the payload's public key actually belongs to
// the declared sender and that the signature verifies over the fixed
// authorization message.
func authorizeTransfer(p ledger.Payload) error {
	pubKeyDER, err := hex.DecodeString(p.PubKey)
	if err != nil {
		return ledger.ErrInvalidSignature
	}
	if !identity.VerifyAddress(p.Sender, pubKeyDER) {
		return ledger.ErrInvalidSignature
	}
	if !identity.VerifySignature(identity.AuthorizationMessage, p.Signature, pubKeyDER) {
		return ledger.ErrInvalidSignature
	}
	return nil
}
