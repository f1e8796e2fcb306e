package notifyhub

import (
	"context"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/wrenko/ragsend-go/notify"
	"github.com/wrenko/ragsend-go/tasks"
	"github.com/wrenko/ragsend-go/types"
)

const (
	FrameTaskSnapshot         = "task_snapshot"
	FrameNotificationSnapshot = "notification_snapshot"
)

// Frame is one websocket message, a full snapshot of either feed. The
// Type field tells the client which list is attached.
type Frame struct {
	Type          string               `json:"type"`
	Tasks         []types.UploadTask   `json:"tasks,omitempty"`
	Notifications []types.Notification `json:"notifications,omitempty"`
}

// Hub holds WebSocket connections and broadcasts frames to all clients.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

// New creates a new event hub.
func New() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Register adds a WebSocket connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

// Unregister removes a WebSocket connection from the hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Broadcast sends the frame as JSON to all registered connections.
func (h *Hub) Broadcast(frame Frame) {
	payload, err := sonic.Marshal(frame)
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		_ = conn.WriteMessage(websocket.TextMessage, payload)
	}
}

// RunSnapshotPump broadcasts a fresh snapshot whenever the store or the
// queue changes, paced by the limiter so bursts collapse into the final
// state. The pump is the only writer for registered connections.
func (h *Hub) RunSnapshotPump(ctx context.Context, store *tasks.Store, queue *notify.Queue, limiter *rate.Limiter) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-store.Changes():
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
			}
			h.Broadcast(Frame{Type: FrameTaskSnapshot, Tasks: store.Snapshot()})
		case <-queue.Changes():
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
			}
			h.Broadcast(Frame{Type: FrameNotificationSnapshot, Notifications: queue.Snapshot()})
		}
	}
}
