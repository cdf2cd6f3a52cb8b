package peers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPeer struct {
	server *httptest.Server

	mu     sync.Mutex
	paths  []string
	bodies []string
}

func newRecordingPeer(t *testing.T) *recordingPeer {
	t.Helper()
	p := &recordingPeer{}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		p.mu.Lock()
		p.paths = append(p.paths, r.URL.Path)
		p.bodies = append(p.bodies, string(body))
		p.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(p.server.Close)
	return p
}

func (p *recordingPeer) locator(t *testing.T) Locator {
	t.Helper()
	l, err := ParseLocator(p.server.URL)
	require.NoError(t, err)
	return l
}

func (p *recordingPeer) received() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.paths...)
}

func TestBroadcastReachesAllPeers(t *testing.T) {
	first := newRecordingPeer(t)
	second := newRecordingPeer(t)

	set := NewSet()
	set.Add(first.locator(t))
	set.Add(second.locator(t))

	b := NewBroadcaster(set, zerolog.Nop())
	b.Broadcast("/broadcast/block", map[string]string{"book_id": "book-1"})

	assert.Equal(t, []string{"/broadcast/block"}, first.received())
	assert.Equal(t, []string{"/broadcast/block"}, second.received())

	first.mu.Lock()
	assert.Contains(t, first.bodies[0], `"book-1"`)
	first.mu.Unlock()
}

func TestBroadcastSurvivesDeadPeer(t *testing.T) {
	alive := newRecordingPeer(t)

	dead := httptest.NewServer(http.NotFoundHandler())
	deadLocator, err := ParseLocator(dead.URL)
	require.NoError(t, err)
	dead.Close()

	set := NewSet()
	set.Add(deadLocator)
	set.Add(alive.locator(t))

	b := NewBroadcaster(set, zerolog.Nop())
	b.Broadcast("/broadcast/block", map[string]string{"book_id": "book-1"})

	// The unreachable peer is logged and skipped; delivery continues.
	assert.Equal(t, []string{"/broadcast/block"}, alive.received())
}

func TestBroadcastWithNoPeersIsNoop(t *testing.T) {
	b := NewBroadcaster(NewSet(), zerolog.Nop())
	b.Broadcast("/broadcast/block", map[string]string{"book_id": "book-1"})
}
