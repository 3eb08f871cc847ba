package stategraph

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stategraph/stategraph/pkg/stategraph/config"
	"github.com/stategraph/stategraph/pkg/stategraph/event"
	"github.com/stategraph/stategraph/pkg/stategraph/observability"
	"github.com/stategraph/stategraph/pkg/stategraph/registry"
	"github.com/stategraph/stategraph/pkg/stategraph/suspend"
)

// settings holds tunable execution behavior for a workflow.
type settings struct {
	logger *slog.Logger

	// stepLimit caps the number of node executions per run.
	// Zero means the default ceiling of 10x the node count.
	stepLimit int

	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool
}

// stepCeilingFactor sets the default step limit at 10x the node count. Validated
// acyclic graphs cannot revisit a node, so the ceiling is a liveness safety
// net rather than an expected stop condition.
const stepCeilingFactor = 10

func defaultSettings() settings {
	return settings{
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a Workflow at construction time.
type Option func(*Workflow)

// WithID sets the workflow instance identifier.
// The ID keys suspension records, so resuming a run requires rebuilding the
// workflow with the same ID. Defaults to a generated UUID.
func WithID(id string) Option {
	return func(w *Workflow) {
		if id != "" {
			w.id = id
		}
	}
}

// WithStore sets the suspend store used to persist interrupted runs.
// Without a store, suspensions still propagate to the caller but are not
// durable and cannot be resumed.
func WithStore(store suspend.Store) Option {
	return func(w *Workflow) {
		w.store = store
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		if logger != nil {
			w.settings.logger = logger
		}
	}
}

// WithNotifier sets the event notifier, allowing several workflows to share
// one listener set. Defaults to a fresh notifier per workflow.
func WithNotifier(n *event.Notifier) Option {
	return func(w *Workflow) {
		if n != nil {
			w.notifier = n
		}
	}
}

// WithStepLimit overrides the runaway-loop ceiling.
// Default: 10x the node count at run time.
func WithStepLimit(n int) Option {
	return func(w *Workflow) {
		if n > 0 {
			w.settings.stepLimit = n
		}
	}
}

// WithMetrics enables OpenTelemetry metrics for runs, nodes, and interrupts.
func WithMetrics() Option {
	return func(w *Workflow) {
		w.settings.metrics = observability.NewMetricsRecorder()
	}
}

// WithTracing enables OpenTelemetry spans around runs and node executions.
func WithTracing() Option {
	return func(w *Workflow) {
		w.settings.spans = observability.NewSpanManager()
		w.settings.tracingEnabled = true
	}
}

// New creates a workflow with the given options.
func New(opts ...Option) *Workflow {
	w := &Workflow{
		id:       uuid.New().String(),
		nodes:    registry.New[string, Node](),
		settings: defaultSettings(),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.notifier == nil {
		w.notifier = event.NewNotifierWithConfig(event.NotifierConfig{
			Logger: w.settings.logger,
		})
	}
	return w
}

// FromConfig translates a loaded configuration into workflow options.
//
// Recognized keys:
//
//	id         string  workflow instance ID
//	step_limit int     runaway-loop ceiling override
//	tracing    bool    enable OTel spans
//	metrics    bool    enable OTel metrics
//	store:
//	  driver   string  "memory" or "sqlite"
//	  path     string  database path for the sqlite driver
//
// The returned options can be combined with programmatic ones; later
// options win.
func FromConfig(cfg config.Config) ([]Option, error) {
	var opts []Option

	if id := cfg.String("id", ""); id != "" {
		opts = append(opts, WithID(id))
	}
	if n := cfg.Int("step_limit", 0); n > 0 {
		opts = append(opts, WithStepLimit(n))
	}
	if cfg.Bool("tracing", false) {
		opts = append(opts, WithTracing())
	}
	if cfg.Bool("metrics", false) {
		opts = append(opts, WithMetrics())
	}

	storeCfg := cfg.Sub("store")
	switch driver := storeCfg.String("driver", ""); driver {
	case "":
		// no store configured
	case "memory":
		opts = append(opts, WithStore(suspend.NewMemoryStore()))
	case "sqlite":
		path := storeCfg.String("path", "")
		if path == "" {
			return nil, fmt.Errorf("store.path required for sqlite driver")
		}
		store, err := suspend.NewSQLiteStore(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		opts = append(opts, WithStore(store))
	default:
		return nil, fmt.Errorf("unknown store driver: %s", driver)
	}

	return opts, nil
}
