// Package usage tracks per-user monthly consumption of audio minutes and
// analyses against fixed quotas.
package usage

import (
	"context"

	"github.com/sells-group/motivation-cli/internal/model"
)

// Store defines the persistence interface for usage records. Records are
// keyed by user id and month key ("YYYY-MM").
type Store interface {
	// Get returns the record for (userID, month), or nil when absent.
	Get(ctx context.Context, userID, month string) (*model.UsageRecord, error)
	// Put writes the record for (userID, month), creating or replacing it.
	Put(ctx context.Context, userID, month string, rec model.UsageRecord) error
	// All returns every user's record for the given month.
	All(ctx context.Context, month string) (map[string]model.UsageRecord, error)
	// Lifecycle
	Close() error
}
