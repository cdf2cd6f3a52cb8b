package node

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moncayo/libchain/ledger"
	"github.com/moncayo/libchain/ledger/registry"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Config{HTTPPort: "0", NodeID: "test-node"}, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestNewService(t *testing.T) {
	t.Run("generates node id when missing", func(t *testing.T) {
		svc, err := NewService(Config{HTTPPort: "0"}, zerolog.Nop())
		require.NoError(t, err)
		assert.NotEmpty(t, svc.NodeID())
	})

	t.Run("registers seed peers", func(t *testing.T) {
		svc, err := NewService(Config{
			HTTPPort:  "0",
			SeedPeers: []string{"node-a:5000", "http://node-b:5000"},
		}, zerolog.Nop())
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"node-a:5000", "node-b:5000"}, svc.Peers())
	})

	t.Run("rejects invalid seed peer", func(t *testing.T) {
		_, err := NewService(Config{
			HTTPPort:  "0",
			SeedPeers: []string{""},
		}, zerolog.Nop())
		assert.Error(t, err)
	})
}

func TestCreateChain(t *testing.T) {
	svc := newTestService(t)

	genesis, err := svc.CreateChain("book-1")
	require.NoError(t, err)

	address, _, err := svc.IdentityAddress()
	require.NoError(t, err)

	assert.Equal(t, 1, genesis.Index)
	assert.Equal(t, ledger.GenesisSentinel, genesis.PreviousHash)
	assert.Equal(t, address, genesis.Recipient)

	_, err = svc.CreateChain("book-1")
	assert.ErrorIs(t, err, ledger.ErrDuplicateID)
	assert.Equal(t, []string{"book-1"}, svc.ChainIDs())
}

func TestGetChain(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateChain("book-1")
	require.NoError(t, err)

	blocks, err := svc.GetChain("book-1")
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	_, err = svc.GetChain("missing")
	assert.ErrorIs(t, err, ledger.ErrChainNotFound)
}

func TestApplyTransfer(t *testing.T) {
	svc := newTestService(t)
	other := newTestService(t)

	_, err := svc.CreateChain("book-1")
	require.NoError(t, err)

	otherAddr, _, err := other.IdentityAddress()
	require.NoError(t, err)

	block, err := svc.ApplyTransfer("book-1", otherAddr)
	require.NoError(t, err)
	assert.Equal(t, 2, block.Index)
	assert.Equal(t, otherAddr, block.Recipient)
	assert.NotEmpty(t, block.Signature)

	// The book moved; this node no longer holds it.
	_, err = svc.ApplyTransfer("book-1", otherAddr)
	assert.ErrorIs(t, err, ledger.ErrNotCurrentHolder)
}

func TestApplyTransferSelf(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateChain("book-1")
	require.NoError(t, err)

	address, _, err := svc.IdentityAddress()
	require.NoError(t, err)

	_, err = svc.ApplyTransfer("book-1", address)
	assert.ErrorIs(t, err, ledger.ErrSelfTransfer)
}

func TestAcceptChainAndTransfer(t *testing.T) {
	origin := newTestService(t)
	replica := newTestService(t)

	genesis, err := origin.CreateChain("book-1")
	require.NoError(t, err)

	// The replica learns about the book via broadcast.
	require.NoError(t, replica.AcceptChain("book-1", genesis))
	assert.ErrorIs(t, replica.AcceptChain("book-1", genesis), ledger.ErrDuplicateID)

	// The origin hands the book over and relays the transfer.
	originAddr, originPubKey, err := origin.IdentityAddress()
	require.NoError(t, err)
	replicaAddr, _, err := replica.IdentityAddress()
	require.NoError(t, err)
	signature, err := origin.SignAuthorization()
	require.NoError(t, err)

	transfer := registry.Transfer{
		ItemID:    "book-1",
		Sender:    originAddr,
		Recipient: replicaAddr,
		PubKey:    originPubKey,
		Signature: signature,
	}

	block, err := replica.AcceptTransfer(transfer)
	require.NoError(t, err)
	assert.Equal(t, replicaAddr, block.Recipient)

	blocks, err := replica.GetChain("book-1")
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
	assert.Equal(t, ledger.HashBlock(blocks[0]), blocks[1].PreviousHash)
}

func TestRegisterPeer(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.RegisterPeer("node-a:5000"))
	require.NoError(t, svc.RegisterPeer("node-a:5000")) // re-registering is fine
	assert.Error(t, svc.RegisterPeer("  "))

	assert.Equal(t, []string{"node-a:5000"}, svc.Peers())
}

func TestCreateChainBroadcastsToPeers(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	peer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer peer.Close()

	svc := newTestService(t)
	require.NoError(t, svc.RegisterPeer(peer.URL))

	_, err := svc.CreateChain("book-1")
	require.NoError(t, err)

	otherAddr := "0000000000000000000000000000000000000000000000000000000000000000"
	_, err = svc.ApplyTransfer("book-1", otherAddr)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/broadcast/book/book-1", "/broadcast/block"}, paths)
}
