package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	EventStatusChanged = "status_changed"
	EventAnswer        = "answer_submitted"
	EventTranscript    = "transcript_entry"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub fans interview events out to connected observers, keyed by
// interview id. Observers are authorized before they are attached.
type Hub struct {
	mu         sync.RWMutex
	log        *zap.Logger
	interviews map[uint]map[*websocket.Conn]bool
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:        log,
		interviews: make(map[uint]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(interviewID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.interviews[interviewID] == nil {
		h.interviews[interviewID] = make(map[*websocket.Conn]bool)
	}
	h.interviews[interviewID][conn] = true
	h.log.Debug("ws client connected",
		zap.Uint("interview_id", interviewID),
		zap.Int("total", len(h.interviews[interviewID])))
}

func (h *Hub) RemoveConnection(interviewID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.interviews[interviewID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.interviews, interviewID)
		}
		h.log.Debug("ws client disconnected", zap.Uint("interview_id", interviewID))
	}
}

func (h *Hub) Broadcast(interviewID uint, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws marshal error", zap.Error(err))
		return
	}

	h.mu.RLock()
	var dead []*websocket.Conn
	for conn := range h.interviews[interviewID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Warn("ws write error", zap.Error(err))
			dead = append(dead, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range dead {
		h.RemoveConnection(interviewID, conn)
	}
}
