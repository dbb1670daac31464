// Package notify buffers the toast messages mutations emit until the client
// drains them.
package notify

import (
	"sync"
	"time"
)

// Toast levels.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelError   = "error"
)

// Toast is one user-facing message.
type Toast struct {
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// maxPerSession caps each session's buffer; the oldest toast is dropped
// when a new one would overflow it.
const maxPerSession = 50

// Buffer holds pending toasts per session.
type Buffer struct {
	mu     sync.Mutex
	toasts map[string][]Toast
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{toasts: make(map[string][]Toast)}
}

// Push appends a toast for the session.
func (b *Buffer) Push(sessionID, level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	queue := b.toasts[sessionID]
	if len(queue) >= maxPerSession {
		queue = queue[1:]
	}
	b.toasts[sessionID] = append(queue, Toast{
		Level:     level,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}

// Drain returns and clears the session's pending toasts in emission order.
func (b *Buffer) Drain(sessionID string) []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()

	queue := b.toasts[sessionID]
	delete(b.toasts, sessionID)
	return queue
}
