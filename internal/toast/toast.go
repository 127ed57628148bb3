// Package toast collects transient user notifications raised while a request is served.
//
// Anything that runs on behalf of a request (the backend client, services, handlers)
// pushes onto the queue found in the request context; the HTTP layer decides how the
// queue reaches the browser (HX-Trigger header, inline markup, or a flash cookie).
package toast

import (
	"context"
	"sync"
)

// Kind is the visual category of a toast.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is one notification.
type Toast struct {
	Message string `json:"message"`
	Kind    Kind   `json:"type"`
}

// Queue is an append-only, goroutine-safe list of toasts.
type Queue struct {
	mu     sync.Mutex
	items  []Toast
	closed bool
}

// NewQueue returns an empty queue.
func NewQueue() *Queue { return &Queue{} }

// Push appends a toast. Empty messages are ignored; unknown kinds become info.
func (q *Queue) Push(kind Kind, message string) {
	if q == nil || message == "" {
		return
	}
	switch kind {
	case KindInfo, KindSuccess, KindError:
	default:
		kind = KindInfo
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, Toast{Message: message, Kind: kind})
}

// Info pushes an info toast.
func (q *Queue) Info(message string) { q.Push(KindInfo, message) }

// Success pushes a success toast.
func (q *Queue) Success(message string) { q.Push(KindSuccess, message) }

// Error pushes an error toast.
func (q *Queue) Error(message string) { q.Push(KindError, message) }

// Len reports the number of pending toasts.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Drain returns the pending toasts in push order and empties the queue.
func (q *Queue) Drain() []Toast {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

type queueKey struct{}

// discard swallows toasts pushed outside a request.
var discard = &Queue{closed: true}

// WithQueue attaches a fresh queue to ctx.
func WithQueue(ctx context.Context) (context.Context, *Queue) {
	q := NewQueue()
	return context.WithValue(ctx, queueKey{}, q), q
}

// FromContext returns the queue attached to ctx, or a queue that discards everything.
func FromContext(ctx context.Context) *Queue {
	if ctx != nil {
		if q, ok := ctx.Value(queueKey{}).(*Queue); ok && q != nil {
			return q
		}
	}
	return discard
}
