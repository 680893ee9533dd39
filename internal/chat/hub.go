package chat

import (
	"sync"
	"time"
)

const defaultHistorySize = 50

// Message is one entry of a chat transcript, either the user's text or the
// assistant's reply.
type Message struct {
	From string    `json:"from"` // "user" or "bot"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Hub tracks open chat sessions and keeps a bounded transcript per session so
// a reconnecting client can replay recent context.
type Hub struct {
	mu          sync.Mutex
	sessions    map[string][]Message
	clients     int
	historySize int
}

type Stats struct {
	Clients  int `json:"clients"`
	Sessions int `json:"sessions"`
}

func NewHub(historySize int) *Hub {
	if historySize <= 0 {
		historySize = defaultHistorySize
	}
	return &Hub{
		sessions:    make(map[string][]Message),
		historySize: historySize,
	}
}

func (h *Hub) Connect() {
	h.mu.Lock()
	h.clients++
	h.mu.Unlock()
}

func (h *Hub) Disconnect() {
	h.mu.Lock()
	if h.clients > 0 {
		h.clients--
	}
	h.mu.Unlock()
}

func (h *Hub) Append(session string, msg Message) {
	if msg.At.IsZero() {
		msg.At = time.Now().UTC()
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	transcript := append(h.sessions[session], msg)
	if len(transcript) > h.historySize {
		transcript = transcript[len(transcript)-h.historySize:]
	}
	h.sessions[session] = transcript
}

func (h *Hub) History(session string) []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Message(nil), h.sessions[session]...)
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{Clients: h.clients, Sessions: len(h.sessions)}
}
