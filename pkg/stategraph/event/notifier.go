package event

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Wildcard matches every event name.
const Wildcard = "*"

// Listener receives events from a Notifier.
//
// A returned error is reported through the notifier's OnError hook (and
// slog) but does not stop delivery to other listeners. Panics are recovered
// the same way.
type Listener interface {
	OnEvent(evt Event) error
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(evt Event) error

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(evt Event) error {
	return f(evt)
}

// Subscription is the registration token returned by AddListener.
// Holding the token is the only way to remove a listener; the notifier
// never retains a listener past Unsubscribe.
type Subscription struct {
	id       int64
	notifier *Notifier
}

// Unsubscribe removes the listener. Safe to call more than once and safe to
// call concurrently with Notify.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.notifier == nil {
		return
	}
	s.notifier.remove(s.id)
}

// NotifierConfig configures notifier behavior.
type NotifierConfig struct {
	// Logger reports listener failures. Defaults to slog.Default().
	Logger *slog.Logger

	// OnError is called when a listener returns an error or panics.
	// Optional.
	OnError func(evt Event, err error)
}

// Notifier is a thread-safe synchronous publish/subscribe hub.
//
// Registration, removal, and notification may happen concurrently from any
// goroutine. Notify iterates a snapshot of the listener table, so listeners
// added or removed mid-notification neither deadlock nor corrupt delivery;
// they simply take effect from the next Notify.
type Notifier struct {
	mu        sync.RWMutex
	nextID    int64
	listeners map[int64]registration

	logger  *slog.Logger
	onError func(evt Event, err error)
}

type registration struct {
	filter   string // lower-cased exact name, or Wildcard
	listener Listener
}

// NewNotifier creates a notifier with default configuration.
func NewNotifier() *Notifier {
	return NewNotifierWithConfig(NotifierConfig{})
}

// NewNotifierWithConfig creates a notifier with the given configuration.
func NewNotifierWithConfig(cfg NotifierConfig) *Notifier {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		listeners: make(map[int64]registration),
		logger:    logger,
		onError:   cfg.OnError,
	}
}

// AddListener registers a listener for events matching filter.
// The filter is either Wildcard or an event name, compared
// case-insensitively. Returns the subscription token required for removal.
func (n *Notifier) AddListener(l Listener, filter string) *Subscription {
	if l == nil {
		return &Subscription{}
	}
	if filter == "" {
		filter = Wildcard
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.listeners[id] = registration{
		filter:   strings.ToLower(filter),
		listener: l,
	}
	return &Subscription{id: id, notifier: n}
}

// remove deletes a registration by token id.
func (n *Notifier) remove(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.listeners, id)
}

// Len returns the number of registered listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

// Notify delivers an event synchronously to every matching listener.
//
// Delivery order between listeners is not specified. A listener error or
// panic is reported and does not block the remaining listeners.
func (n *Notifier) Notify(evt Event) {
	name := strings.ToLower(evt.Name)

	// Snapshot under read lock, deliver without holding it. A listener may
	// unsubscribe itself (or others) during delivery.
	n.mu.RLock()
	matched := make([]Listener, 0, len(n.listeners))
	for _, reg := range n.listeners {
		if reg.filter == Wildcard || reg.filter == name {
			matched = append(matched, reg.listener)
		}
	}
	n.mu.RUnlock()

	for _, l := range matched {
		n.deliver(l, evt)
	}
}

// deliver invokes one listener with panic recovery.
func (n *Notifier) deliver(l Listener, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			n.report(evt, fmt.Errorf("listener panic: %v", r))
		}
	}()

	if err := l.OnEvent(evt); err != nil {
		n.report(evt, err)
	}
}

// report surfaces a listener failure without interrupting delivery.
func (n *Notifier) report(evt Event, err error) {
	n.logger.Warn("event listener failed",
		slog.String("event", evt.Name),
		slog.String("workflow_id", evt.WorkflowID),
		slog.String("error", err.Error()),
	)
	if n.onError != nil {
		n.onError(evt, err)
	}
}
