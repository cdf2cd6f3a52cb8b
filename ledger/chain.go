package ledger

import (
	"fmt"
	"sync"
)

// Chain is one item's append-only block sequence. Every chain is an
// independently lockable unit: operations on one chain never block
// operations on another.
type Chain struct {
	id string

	mu     sync.Mutex
	blocks []Block
}

// NewChain builds a chain with a single genesis block carrying the given
// payload. The genesis previous_hash is the fixed sentinel.
func NewChain(id string, p Payload) (*Chain, error) {
	if id == "" {
		return nil, fmt.Errorf("ledger: chain id must not be empty")
	}
	if p.Recipient == "" {
		return nil, ErrInvalidPayload
	}
	return &Chain{
		id:     id,
		blocks: []Block{newBlock(1, GenesisSentinel, p)},
	}, nil
}

// ImportChain rebuilds a chain from a genesis block exported by another
// node, keeping the original timestamp and hash linkage intact.
func ImportChain(id string, genesis Block) (*Chain, error) {
	if id == "" {
		return nil, fmt.Errorf("ledger: chain id must not be empty")
	}
	if genesis.Index != 1 || genesis.PreviousHash != GenesisSentinel {
		return nil, fmt.Errorf("ledger: block is not a genesis block")
	}
	if genesis.Recipient == "" {
		return nil, ErrInvalidPayload
	}
	return &Chain{
		id:     id,
		blocks: []Block{genesis},
	}, nil
}

// ID returns the chain's externally assigned identifier.
func (c *Chain) ID() string {
	return c.id
}

// Append computes the previous hash from the current last block, stamps the
// time, and appends the next block. This is the chain's only mutator.
func (c *Chain) Append(p Payload) Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appendLocked(p)
}

func (c *Chain) appendLocked(p Payload) Block {
	last := c.blocks[len(c.blocks)-1]
	block := newBlock(last.Index+1, HashBlock(last), p)
	c.blocks = append(c.blocks, block)
	return block
}

// AppendTransfer atomically checks custody against the last block and, if
// the check and the authorize callback both pass, appends the transfer.
// Re-delivery of the payload already at the head returns the existing block
// instead of appending a duplicate. The custody check and the append happen
// under one critical section so two transfers from the same holder cannot
// both pass.
func (c *Chain) AppendTransfer(p Payload, authorize func(Payload) error) (Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	last := c.blocks[len(c.blocks)-1]
	if last.Payload == p {
		// Duplicate delivery, e.g. a retried broadcast.
		return last, nil
	}
	if last.Recipient != p.Sender {
		return Block{}, ErrNotCurrentHolder
	}
	if authorize != nil {
		if err := authorize(p); err != nil {
			return Block{}, err
		}
	}
	return c.appendLocked(p), nil
}

// LastBlock returns the most recent block. Its recipient is the item's
// current holder.
func (c *Chain) LastBlock() Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocks[len(c.blocks)-1]
}

// Blocks returns a copy of the block sequence.
func (c *Chain) Blocks() []Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Length returns the number of blocks in the chain.
func (c *Chain) Length() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.blocks)
}

// Validate walks the chain from the second block, recomputing each
// predecessor's hash and comparing it against the stored linkage. It returns
// a ValidationError for the first mismatch. A single-genesis chain is
// trivially valid.
func (c *Chain) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := 1; i < len(c.blocks); i++ {
		want := HashBlock(c.blocks[i-1])
		if got := c.blocks[i].PreviousHash; got != want {
			return &ValidationError{
				Index:  i,
				Reason: fmt.Sprintf("previous_hash %s does not match recomputed %s", got, want),
			}
		}
	}
	return nil
}
