package notify

import "sync"

// Severity tells the surface how to style a notification.
type Severity int

const (
	SeverityNeutral Severity = iota
	SeverityDestructive
)

func (s Severity) String() string {
	if s == SeverityDestructive {
		return "destructive"
	}
	return "neutral"
}

// Notification is a transient, user-visible message.
type Notification struct {
	Title       string
	Description string
	Severity    Severity
}

// Notifier surfaces notifications to the operator. Implementations must not
// block for long; failures to display are swallowed and logged.
type Notifier interface {
	Notify(n Notification)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(Notification) {}

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, target := range m {
		target.Notify(n)
	}
}

// Queue buffers notifications until they are drained. It is safe for use
// from a store command goroutine while the UI drains it.
type Queue struct {
	mu    sync.Mutex
	items []Notification
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Notify(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, n)
}

// Drain returns the buffered notifications oldest first and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of buffered notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
