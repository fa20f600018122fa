// Package realtime pushes JSON events to websocket peers grouped in rooms.
// A room is the string form of a user id, so an event reaches every open tab
// of that user and nobody else.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"medisecure/internal/metrics"

	"github.com/sirupsen/logrus"
)

const sendBuffer = 16

// Frame 推送給瀏覽器的 JSON 格式
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Emitter publishes an event to a room. Delivery is best effort.
type Emitter interface {
	Emit(ctx context.Context, room, event string, data any) error
}

type peer struct {
	send chan []byte
}

func newPeer() *peer {
	return &peer{send: make(chan []byte, sendBuffer)}
}

// Hub 唯一的行程內共享狀態，以 mutex 保護
type Hub struct {
	mu     sync.Mutex
	rooms  map[string]map[*peer]struct{}
	logger logrus.FieldLogger
}

func NewHub(logger logrus.FieldLogger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*peer]struct{}),
		logger: logger,
	}
}

func (h *Hub) Join(room string, p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*peer]struct{})
		h.rooms[room] = members
	}
	members[p] = struct{}{}
}

func (h *Hub) Leave(room string, p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, p)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Members 房間內目前連線數
func (h *Hub) Members(room string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[room])
}

// Emit never blocks: a peer whose buffer is full misses the event.
func (h *Hub) Emit(_ context.Context, room, event string, data any) error {
	payload, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s frame: %w", event, err)
	}
	h.deliver(room, payload)
	return nil
}

func (h *Hub) deliver(room string, payload []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	delivered := 0
	for p := range h.rooms[room] {
		select {
		case p.send <- payload:
			delivered++
		default:
			metrics.RecordNotification("realtime", "dropped")
			h.logger.WithField("room", room).Warn("realtime peer buffer full, event dropped")
		}
	}
	return delivered
}
