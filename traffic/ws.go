package traffic

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	kerrors "github.com/motorlane/kiosk/errors"
)

// WSCollector streams traffic session logs as JSON frames to a dealership
// analytics endpoint over a websocket. The connection is dialed lazily on
// the first emission and re-dialed on the one after a failure; the logger's
// debounce/retry loop provides all the pacing needed.
type WSCollector struct {
	mu       sync.Mutex
	endpoint string
	conn     *websocket.Conn
	dialer   *websocket.Dialer
}

// NewWSCollector creates a collector for the given ws:// or wss:// endpoint.
func NewWSCollector(endpoint string) *WSCollector {
	return &WSCollector{
		endpoint: endpoint,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 5 * time.Second,
		},
	}
}

// LogSession implements Collector.
func (c *WSCollector) LogSession(ctx context.Context, snap Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		conn, _, err := c.dialer.DialContext(ctx, c.endpoint, nil)
		if err != nil {
			return kerrors.LogDelivery("websocket", err)
		}
		c.conn = conn
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
	}
	if err := c.conn.WriteJSON(snap); err != nil {
		// Drop the broken connection; the next emission re-dials.
		_ = c.conn.Close()
		c.conn = nil
		return kerrors.LogDelivery("websocket", err)
	}
	return nil
}

// Close shuts the connection down if one is open.
func (c *WSCollector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	_ = c.conn.Close()
	c.conn = nil
	return err
}
