package traffic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motorlane/kiosk/screen"
)

// wsSink is a test websocket endpoint collecting decoded snapshots.
type wsSink struct {
	mu    sync.Mutex
	snaps []Snapshot
}

func (s *wsSink) handler() http.HandlerFunc {
	upgrader := websocket.Upgrader{}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var snap Snapshot
			if err := conn.ReadJSON(&snap); err != nil {
				return
			}
			s.mu.Lock()
			s.snaps = append(s.snaps, snap)
			s.mu.Unlock()
		}
	}
}

func (s *wsSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snaps)
}

func TestWSCollectorDelivers(t *testing.T) {
	sink := &wsSink{}
	srv := httptest.NewServer(sink.handler())
	defer srv.Close()

	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http")
	coll := NewWSCollector(endpoint)
	defer coll.Close()

	snap := Snapshot{SessionID: "sess-1", Screen: screen.Inventory, RecordedAt: time.Now()}
	require.NoError(t, coll.LogSession(context.Background(), snap))
	require.NoError(t, coll.LogSession(context.Background(), snap))

	assert.Eventually(t, func() bool { return sink.count() == 2 }, time.Second, 10*time.Millisecond)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, "sess-1", sink.snaps[0].SessionID)
	assert.Equal(t, screen.Inventory, sink.snaps[0].Screen)
}

func TestWSCollectorReportsDialFailure(t *testing.T) {
	coll := NewWSCollector("ws://127.0.0.1:1/nope")

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := coll.LogSession(ctx, Snapshot{SessionID: "sess-1"})
	assert.Error(t, err)
}
