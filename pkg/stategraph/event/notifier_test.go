package event

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietNotifier() *Notifier {
	return NewNotifierWithConfig(NotifierConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// recorder counts deliveries and keeps the received events.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(evt Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestNotifier_WildcardReceivesEverything(t *testing.T) {
	n := quietNotifier()
	rec := &recorder{}
	n.AddListener(rec, Wildcard)

	n.Notify(New("node.start", "w1", nil))
	n.Notify(New("node.complete", "w1", nil))
	n.Notify(New("run.complete", "w1", nil))

	assert.Equal(t, 3, rec.count())
}

func TestNotifier_ExactFilter(t *testing.T) {
	n := quietNotifier()
	rec := &recorder{}
	n.AddListener(rec, "node.start")

	n.Notify(New("node.start", "w1", nil))
	n.Notify(New("node.complete", "w1", nil))

	require.Equal(t, 1, rec.count())
	assert.Equal(t, "node.start", rec.events[0].Name)
}

func TestNotifier_FilterIsCaseInsensitive(t *testing.T) {
	n := quietNotifier()
	rec := &recorder{}
	n.AddListener(rec, "Node.Start")

	n.Notify(New("NODE.START", "w1", nil))

	assert.Equal(t, 1, rec.count())
}

func TestNotifier_EmptyFilterMeansWildcard(t *testing.T) {
	n := quietNotifier()
	rec := &recorder{}
	n.AddListener(rec, "")

	n.Notify(New("anything", "w1", nil))

	assert.Equal(t, 1, rec.count())
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := quietNotifier()
	rec := &recorder{}
	sub := n.AddListener(rec, Wildcard)

	n.Notify(New("one", "w1", nil))
	sub.Unsubscribe()
	n.Notify(New("two", "w1", nil))

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, 0, n.Len())

	// Idempotent.
	sub.Unsubscribe()
}

func TestNotifier_NilListenerIgnored(t *testing.T) {
	n := quietNotifier()
	sub := n.AddListener(nil, Wildcard)

	assert.Equal(t, 0, n.Len())
	sub.Unsubscribe()
}

func TestNotifier_FailingListenerDoesNotBlockOthers(t *testing.T) {
	n := quietNotifier()
	healthy := &recorder{}
	n.AddListener(ListenerFunc(func(Event) error {
		return errors.New("listener broken")
	}), Wildcard)
	n.AddListener(healthy, Wildcard)

	for i := 0; i < 10; i++ {
		n.Notify(New(fmt.Sprintf("evt.%d", i), "w1", nil))
	}

	assert.Equal(t, 10, healthy.count())
}

func TestNotifier_PanickingListenerIsRecovered(t *testing.T) {
	n := quietNotifier()
	healthy := &recorder{}
	n.AddListener(ListenerFunc(func(Event) error {
		panic("listener panic")
	}), Wildcard)
	n.AddListener(healthy, Wildcard)

	n.Notify(New("evt", "w1", nil))

	assert.Equal(t, 1, healthy.count())
}

func TestNotifier_OnErrorHook(t *testing.T) {
	var gotErr error
	var gotEvent Event
	n := NewNotifierWithConfig(NotifierConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnError: func(evt Event, err error) {
			gotEvent = evt
			gotErr = err
		},
	})
	boom := errors.New("boom")
	n.AddListener(ListenerFunc(func(Event) error { return boom }), Wildcard)

	n.Notify(New("evt", "w1", nil))

	assert.Equal(t, boom, gotErr)
	assert.Equal(t, "evt", gotEvent.Name)
}

func TestNotifier_ListenerUnsubscribesItselfDuringDelivery(t *testing.T) {
	n := quietNotifier()
	var sub *Subscription
	var calls int
	sub = n.AddListener(ListenerFunc(func(Event) error {
		calls++
		sub.Unsubscribe()
		return nil
	}), Wildcard)

	n.Notify(New("one", "w1", nil))
	n.Notify(New("two", "w1", nil))

	assert.Equal(t, 1, calls)
}

func TestNotifier_ConcurrentUse(t *testing.T) {
	n := quietNotifier()
	var delivered atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				sub := n.AddListener(ListenerFunc(func(Event) error {
					delivered.Add(1)
					return nil
				}), Wildcard)
				n.Notify(New("evt", "w1", nil))
				sub.Unsubscribe()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, n.Len())
	assert.Positive(t, delivered.Load())
}
