package backendstub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const idleProbeInterval = 45 * time.Second

// trackerConn serializes writes to one WebSocket client.
type trackerConn struct {
	mu   sync.Mutex
	conn *websocket.Conn

	lastSeen time.Time
}

func (t *trackerConn) sendJSON(message any) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn.WriteMessage(websocket.TextMessage, payload)
}

func (t *trackerConn) touch() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSeen = time.Now()
}

func (t *trackerConn) idleSince() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSeen
}

// Hub fans order updates out to every connected tracker. Connections
// register per viewer identity on /ws/tracking/:id; broadcasts go to all of
// them since any role may be watching any order.
type Hub struct {
	mu       sync.Mutex
	trackers map[*trackerConn]string
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		trackers: make(map[*trackerConn]string),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		logger:   logger.With("component", "tracking_hub"),
	}
}

// Serve upgrades the request and pumps it until the client goes away.
// Inbound "ping" text earns {"type":"pong"}; any other text is acknowledged;
// an idle connection is probed with {"type":"ping"}.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, viewerID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	tracker := &trackerConn{conn: conn, lastSeen: time.Now()}
	h.mu.Lock()
	h.trackers[tracker] = viewerID
	h.mu.Unlock()
	h.logger.InfoContext(r.Context(), "Tracker connected", "viewer_id", viewerID)

	defer func() {
		h.mu.Lock()
		delete(h.trackers, tracker)
		h.mu.Unlock()
		conn.Close()
		h.logger.InfoContext(context.Background(), "Tracker disconnected", "viewer_id", viewerID)
	}()

	stop := make(chan struct{})
	defer close(stop)
	go h.probeWhenIdle(tracker, stop)

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			return nil
		}
		tracker.touch()
		if messageType != websocket.TextMessage {
			continue
		}
		if string(payload) == "ping" {
			tracker.sendJSON(map[string]string{"type": "pong"})
			continue
		}
		tracker.sendJSON(map[string]string{"type": "ack", "data": string(payload)})
	}
}

func (h *Hub) probeWhenIdle(tracker *trackerConn, stop <-chan struct{}) {
	ticker := time.NewTicker(idleProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if time.Since(tracker.idleSince()) < idleProbeInterval {
				continue
			}
			if err := tracker.sendJSON(map[string]string{"type": "ping"}); err != nil {
				return
			}
		}
	}
}

// BroadcastOrderUpdate pushes a status-change event to every tracker. Send
// failures drop the tracker; its read loop notices the closed connection and
// unregisters it.
func (h *Hub) BroadcastOrderUpdate(record OrderRecord, message string) {
	event := map[string]string{
		"type":     "order_update",
		"order_id": record.ID,
		"event":    "status_changed",
		"status":   record.Status,
		"message":  message,
	}

	h.mu.Lock()
	trackers := make([]*trackerConn, 0, len(h.trackers))
	for tracker := range h.trackers {
		trackers = append(trackers, tracker)
	}
	h.mu.Unlock()

	for _, tracker := range trackers {
		if err := tracker.sendJSON(event); err != nil {
			tracker.conn.Close()
		}
	}
}
