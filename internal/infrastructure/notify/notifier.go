package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mrops-br/cart-ledger-api/internal/domain"
)

// LogNotifier is the default notification sink: it renders each cart
// event as a structured log line, which stands in for the toast layer
// of a UI consumer.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, event domain.CartEvent) {
	n.logger.InfoContext(ctx, event.Message,
		slog.String("event", string(event.Kind)),
		slog.String("product_id", event.ProductID),
		slog.Int("quantity", event.Quantity),
	)
}

// NoopNotifier discards all events.
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, event domain.CartEvent) {}

// Recorder captures events for test assertions.
type Recorder struct {
	mu     sync.Mutex
	events []domain.CartEvent
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(ctx context.Context, event domain.CartEvent) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []domain.CartEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]domain.CartEvent, len(r.events))
	copy(events, r.events)
	return events
}
