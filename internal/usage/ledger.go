package usage

import (
	"context"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/motivation-cli/internal/model"
)

// Monthly quotas are fixed product constants, not per-call configuration.
const (
	MonthlyAudioLimit    = 500.0 // minutes per user per month
	MonthlyAnalysisLimit = 200   // analyses per user per month
)

// Ledger gate-checks and records per-user monthly usage. The limit check is
// advisory, not a reservation: two concurrent requests can both pass the
// check before either records usage, allowing transient overshoot. That
// window is accepted by design.
type Ledger struct {
	store Store
}

// NewLedger creates a Ledger over the given store.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// monthKey returns the current month key in server local time ("YYYY-MM").
func monthKey() string {
	return time.Now().Format("2006-01")
}

// record returns the user's record for the current month, zero-valued when
// the month has no usage yet. Records are created lazily on first write.
func (l *Ledger) record(ctx context.Context, userID string) (model.UsageRecord, string, error) {
	month := monthKey()
	rec, err := l.store.Get(ctx, userID, month)
	if err != nil {
		return model.UsageRecord{}, month, eris.Wrap(err, "usage: get record")
	}
	if rec == nil {
		return model.UsageRecord{}, month, nil
	}
	return *rec, month, nil
}

// CheckAudioLimit reports whether the user may transcribe audio of the
// given duration, and how many minutes remain this month.
func (l *Ledger) CheckAudioLimit(ctx context.Context, userID string, durationMinutes float64) (bool, float64, error) {
	rec, _, err := l.record(ctx, userID)
	if err != nil {
		return false, 0, err
	}
	remaining := MonthlyAudioLimit - rec.AudioMinutes
	allowed := rec.AudioMinutes+durationMinutes <= MonthlyAudioLimit
	return allowed, remaining, nil
}

// CheckAnalysisLimit reports whether the user may run another analysis,
// and how many analyses remain this month.
func (l *Ledger) CheckAnalysisLimit(ctx context.Context, userID string) (bool, int, error) {
	rec, _, err := l.record(ctx, userID)
	if err != nil {
		return false, 0, err
	}
	remaining := MonthlyAnalysisLimit - rec.AnalysisCount
	return rec.AnalysisCount < MonthlyAnalysisLimit, remaining, nil
}

// RecordAudioUsage adds transcribed minutes to the user's month record and
// persists it. The counter never decreases within a month.
func (l *Ledger) RecordAudioUsage(ctx context.Context, userID string, durationMinutes float64) error {
	rec, month, err := l.record(ctx, userID)
	if err != nil {
		return err
	}
	rec.AudioMinutes += durationMinutes
	rec.LastUpdated = time.Now()

	if err := l.store.Put(ctx, userID, month, rec); err != nil {
		return eris.Wrap(err, "usage: record audio")
	}

	zap.L().Info("usage: audio recorded",
		zap.String("user_id", userID),
		zap.Float64("minutes", durationMinutes),
		zap.Float64("month_total", rec.AudioMinutes),
	)
	return nil
}

// RecordAnalysisUsage increments the user's analysis count and persists it.
func (l *Ledger) RecordAnalysisUsage(ctx context.Context, userID string) error {
	rec, month, err := l.record(ctx, userID)
	if err != nil {
		return err
	}
	rec.AnalysisCount++
	rec.LastUpdated = time.Now()

	if err := l.store.Put(ctx, userID, month, rec); err != nil {
		return eris.Wrap(err, "usage: record analysis")
	}
	return nil
}

// GetUsageStats returns the user's consumption summary for the current
// month.
func (l *Ledger) GetUsageStats(ctx context.Context, userID string) (*model.UsageStats, error) {
	rec, month, err := l.record(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.UsageStats{
		AudioMinutesUsed:      rec.AudioMinutes,
		AudioMinutesRemaining: MonthlyAudioLimit - rec.AudioMinutes,
		AudioMinutesLimit:     MonthlyAudioLimit,
		AnalysesUsed:          rec.AnalysisCount,
		AnalysesRemaining:     MonthlyAnalysisLimit - rec.AnalysisCount,
		AnalysesLimit:         MonthlyAnalysisLimit,
		CurrentMonth:          month,
		LastUpdated:           rec.LastUpdated,
	}, nil
}

// AllUsage returns the current month's usage for every user (admin view).
func (l *Ledger) AllUsage(ctx context.Context) ([]model.UsageSummary, error) {
	month := monthKey()
	records, err := l.store.All(ctx, month)
	if err != nil {
		return nil, eris.Wrap(err, "usage: list records")
	}

	summaries := make([]model.UsageSummary, 0, len(records))
	for userID, rec := range records {
		summaries = append(summaries, model.UsageSummary{
			UserID:        userID,
			AudioMinutes:  rec.AudioMinutes,
			AnalysisCount: rec.AnalysisCount,
			LastUpdated:   rec.LastUpdated,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].UserID < summaries[j].UserID })
	return summaries, nil
}
