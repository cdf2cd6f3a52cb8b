// Package node wires the ledger core, the local identity, and the peer set
// into the service the HTTP transport talks to.
package node

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/moncayo/libchain/ledger"
	"github.com/moncayo/libchain/ledger/identity"
	"github.com/moncayo/libchain/ledger/registry"
	"github.com/moncayo/libchain/peers"
)

// Config holds everything a node needs to start.
type Config struct {
	HTTPPort  string
	NodeID    string
	SeedPeers []string
}

// Service orchestrates one node's ledger state. It is constructed once at
// process start and passed by reference to the transport; there is no
// package-level instance.
type Service struct {
	config Config

	identity    *identity.Identity
	registry    *registry.Registry
	peers       *peers.Set
	broadcaster *peers.Broadcaster
	logger      zerolog.Logger
}

// NewService builds a service with a fresh identity and an empty registry.
// Seed peers from the config are registered up front; an unparseable seed is
// an error since it comes from operator configuration.
func NewService(config Config, logger zerolog.Logger) (*Service, error) {
	if config.NodeID == "" {
		config.NodeID = "node-" + uuid.NewString()[:8]
	}

	id, err := identity.New()
	if err != nil {
		return nil, fmt.Errorf("node: %w", err)
	}

	peerSet := peers.NewSet()
	logger = logger.With().Str("node", config.NodeID).Logger()

	s := &Service{
		config:      config,
		identity:    id,
		registry:    registry.New(),
		peers:       peerSet,
		broadcaster: peers.NewBroadcaster(peerSet, logger),
		logger:      logger,
	}

	for _, seed := range config.SeedPeers {
		if err := s.RegisterPeer(seed); err != nil {
			return nil, fmt.Errorf("node: seed peer %q: %w", seed, err)
		}
	}

	return s, nil
}

// NodeID returns the node's identifier.
func (s *Service) NodeID() string {
	return s.config.NodeID
}

// CreateChain starts tracking a new item. The genesis recipient is this
// node's own address, and the new chain is announced to every peer.
func (s *Service) CreateChain(id string) (ledger.Block, error) {
	address, _, err := s.identity.Address()
	if err != nil {
		return ledger.Block{}, err
	}

	payload, err := ledger.GenesisPayload(address)
	if err != nil {
		return ledger.Block{}, err
	}

	chain, err := ledger.NewChain(id, payload)
	if err != nil {
		return ledger.Block{}, err
	}

	if err := s.registry.AddChain(chain); err != nil {
		return ledger.Block{}, err
	}

	genesis := chain.LastBlock()
	s.logger.Info().Str("item", id).Str("holder", address).Msg("chain created")
	s.broadcaster.Broadcast("/broadcast/book/"+id, genesis)
	return genesis, nil
}

// GetChain returns the full block sequence for an item.
func (s *Service) GetChain(id string) ([]ledger.Block, error) {
	chain, ok := s.registry.Fetch(id)
	if !ok {
		return nil, ledger.ErrChainNotFound
	}
	return chain.Blocks(), nil
}

// ChainIDs lists every tracked item.
func (s *Service) ChainIDs() []string {
	return s.registry.ChainIDs()
}

// ApplyTransfer hands custody of an item from this node to recipient. The
// transfer is signed with the local identity, applied to the chain, and the
// accepted transfer is broadcast to every peer.
func (s *Service) ApplyTransfer(itemID, recipient string) (ledger.Block, error) {
	address, pubKey, err := s.identity.Address()
	if err != nil {
		return ledger.Block{}, err
	}
	signature, err := s.identity.Sign(identity.AuthorizationMessage)
	if err != nil {
		return ledger.Block{}, err
	}

	transfer := registry.Transfer{
		ItemID:    itemID,
		Sender:    address,
		Recipient: recipient,
		PubKey:    pubKey,
		Signature: signature,
	}

	block, err := s.registry.ApplyTransfer(transfer)
	if err != nil {
		return ledger.Block{}, err
	}

	s.logger.Info().Str("item", itemID).Str("from", address).Str("to", recipient).
		Msg("custody transferred")
	s.broadcaster.Broadcast("/broadcast/block", transfer)
	return block, nil
}

// AcceptTransfer applies a transfer received from a peer broadcast. It runs
// the same custody and signature checks as a local transfer but is not
// re-signed or re-broadcast.
func (s *Service) AcceptTransfer(t registry.Transfer) (ledger.Block, error) {
	return s.registry.ApplyTransfer(t)
}

// AcceptChain imports a genesis block announced by a peer.
func (s *Service) AcceptChain(id string, genesis ledger.Block) error {
	chain, err := ledger.ImportChain(id, genesis)
	if err != nil {
		return err
	}
	if err := s.registry.AddChain(chain); err != nil {
		return err
	}
	s.logger.Info().Str("item", id).Msg("chain imported from peer")
	return nil
}

// RegisterPeer adds a peer by its string locator, rejecting anything that
// is not a network address.
func (s *Service) RegisterPeer(addr string) error {
	locator, err := peers.ParseLocator(addr)
	if err != nil {
		return err
	}
	if s.peers.Add(locator) {
		s.logger.Info().Str("peer", locator.String()).Msg("peer registered")
	}
	return nil
}

// Peers returns the known peer locators.
func (s *Service) Peers() []string {
	all := s.peers.All()
	out := make([]string, len(all))
	for i, l := range all {
		out[i] = l.String()
	}
	return out
}

// IdentityAddress exposes the node's address and serialized public key so
// the transport can construct transfer requests for the local actor.
func (s *Service) IdentityAddress() (address string, pubKey string, err error) {
	return s.identity.Address()
}

// SignAuthorization signs the fixed authorization message with the node's
// private key.
func (s *Service) SignAuthorization() (string, error) {
	return s.identity.Sign(identity.AuthorizationMessage)
}
