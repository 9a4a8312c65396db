// Package trackingws maintains the persistent tracking connection to the
// backend's WebSocket endpoint. Push events never carry authoritative state
// into the view; they only trigger a refresh cycle and surface a transient
// notice.
package trackingws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"

	"orderboard/internal/core/ports"

	"github.com/gorilla/websocket"
)

// State is the connection lifecycle state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Conn is the subset of a WebSocket connection the tracker uses.
type Conn interface {
	ReadMessage() (messageType int, payload []byte, err error)
	WriteMessage(messageType int, payload []byte) error
	Close() error
}

// Dialer opens tracking connections. Injected so tests can script the
// connection lifecycle without a network.
type Dialer interface {
	DialContext(ctx context.Context, url string) (Conn, error)
}

// GorillaDialer dials with github.com/gorilla/websocket.
type GorillaDialer struct {
	dialer *websocket.Dialer
}

func NewGorillaDialer() *GorillaDialer {
	return &GorillaDialer{dialer: websocket.DefaultDialer}
}

func (d *GorillaDialer) DialContext(ctx context.Context, url string) (Conn, error) {
	conn, _, err := d.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// pushMessage is the wire shape of a tracking event.
type pushMessage struct {
	Type    string `json:"type"`
	OrderID string `json:"order_id"`
	Event   string `json:"event"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Connection runs the reconnect loop: DISCONNECTED, CONNECTING, CONNECTED
// and back on any failure, retrying after a fixed delay for as long as the
// context lives. Losing the connection degrades freshness only; the polling
// timer keeps the view converging.
type Connection struct {
	url            string
	dialer         Dialer
	trigger        ports.RefreshTrigger
	notifier       ports.Notifier
	logger         *slog.Logger
	reconnectDelay time.Duration
	keepalive      time.Duration

	state atomic.Int32
	done  chan struct{}
}

// NewConnection creates a tracker for the given endpoint URL. Non-positive
// delays fall back to 5s reconnect and 30s keepalive.
func NewConnection(
	url string,
	dialer Dialer,
	trigger ports.RefreshTrigger,
	notifier ports.Notifier,
	reconnectDelay time.Duration,
	keepalive time.Duration,
	logger *slog.Logger,
) *Connection {
	if reconnectDelay <= 0 {
		reconnectDelay = 5 * time.Second
	}
	if keepalive <= 0 {
		keepalive = 30 * time.Second
	}
	return &Connection{
		url:            url,
		dialer:         dialer,
		trigger:        trigger,
		notifier:       notifier,
		logger:         logger.With("component", "tracking_connection"),
		reconnectDelay: reconnectDelay,
		keepalive:      keepalive,
		done:           make(chan struct{}),
	}
}

// State returns the current lifecycle state.
func (c *Connection) State() State {
	return State(c.state.Load())
}

// Run drives the connection until the context is cancelled. Dial failures
// and dropped connections both lead back through the same fixed-delay
// retry; there is no backoff escalation.
func (c *Connection) Run(ctx context.Context) {
	defer close(c.done)
	defer c.state.Store(int32(StateDisconnected))

	for ctx.Err() == nil {
		c.state.Store(int32(StateConnecting))

		conn, err := c.dialer.DialContext(ctx, c.url)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.state.Store(int32(StateDisconnected))
			c.logger.WarnContext(ctx, "Tracking connection failed", "error", err, "retry_in", c.reconnectDelay)
			if !c.wait(ctx) {
				return
			}
			continue
		}

		c.state.Store(int32(StateConnected))
		c.logger.InfoContext(ctx, "Tracking connection established", "url", c.url)
		c.serve(ctx, conn)
		c.state.Store(int32(StateDisconnected))

		if ctx.Err() != nil {
			return
		}
		c.logger.WarnContext(ctx, "Tracking connection lost", "retry_in", c.reconnectDelay)
		if !c.wait(ctx) {
			return
		}
	}
}

// Done is closed when Run has returned.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// serve reads the connection until it fails, dispatching push events and
// keeping the link alive from a side goroutine.
func (c *Connection) serve(ctx context.Context, conn Conn) {
	readDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-readDone:
		}
		conn.Close()
	}()
	go c.keepaliveLoop(ctx, conn, readDone)
	defer close(readDone)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		c.dispatch(ctx, payload)
	}
}

// dispatch handles one inbound frame. Each order_update produces exactly
// one refresh request and one notice; everything else is dropped without
// affecting the connection.
func (c *Connection) dispatch(ctx context.Context, payload []byte) {
	var msg pushMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		c.logger.WarnContext(ctx, "Dropped malformed tracking message", "error", err)
		return
	}

	switch msg.Type {
	case "order_update":
		c.notifier.Notify(ports.Notice{
			OrderID: msg.OrderID,
			Status:  msg.Status,
			Message: msg.Message,
		})
		c.trigger.RequestRefresh(ports.RefreshPush)
	case "ping", "pong":
		// keepalive traffic, nothing to do
	default:
		c.logger.WarnContext(ctx, "Dropped tracking message of unknown type", "type", msg.Type)
	}
}

func (c *Connection) keepaliveLoop(ctx context.Context, conn Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(c.keepalive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.TextMessage, []byte("ping")); err != nil {
				return
			}
		}
	}
}

func (c *Connection) wait(ctx context.Context) bool {
	timer := time.NewTimer(c.reconnectDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
