package peers

import (
	"bytes"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Broadcaster fans a JSON document out to every known peer. Delivery is
// fire-and-forget: per-peer failures are logged and never surface to the
// caller, since the ledger's idempotent append already absorbs re-delivery.
type Broadcaster struct {
	set    *Set
	client *http.Client
	logger zerolog.Logger
}

func NewBroadcaster(set *Set, logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		set: set,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Broadcast POSTs body as JSON to path on every peer.
func (b *Broadcaster) Broadcast(path string, body interface{}) {
	payload, err := json.Marshal(body)
	if err != nil {
		b.logger.Error().Err(err).Str("path", path).Msg("broadcast: marshal body")
		return
	}

	for _, peer := range b.set.All() {
		b.post(peer, path, payload)
	}
}

func (b *Broadcaster) post(peer Locator, path string, payload []byte) {
	resp, err := b.client.Post(peer.URL()+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		b.logger.Warn().Err(err).Str("peer", peer.String()).Str("path", path).
			Msg("broadcast: peer unreachable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b.logger.Warn().Str("peer", peer.String()).Str("path", path).
			Int("status", resp.StatusCode).Msg("broadcast: peer rejected")
		return
	}
	b.logger.Debug().Str("peer", peer.String()).Str("path", path).Msg("broadcast: delivered")
}
