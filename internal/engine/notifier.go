package engine

import (
	"context"
	"log/slog"

	"github.com/paisaflow/paisaflow/internal/service"
)

// LogNotifier emits transaction events to the structured log. Stands in
// for a broadcast transport in CLI runs.
type LogNotifier struct{}

// TransactionAdded logs the event payload.
func (LogNotifier) TransactionAdded(_ context.Context, event service.TransactionEvent) error {
	slog.Info("Transaction added",
		"event_id", event.EventID,
		"transaction_id", event.TransactionID,
		"merchant", event.Merchant,
		"amount", event.Amount,
		"category_pending", event.CategoryPending)
	return nil
}
