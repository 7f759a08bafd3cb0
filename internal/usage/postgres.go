package usage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/motivation-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store using pgxpool, for deployments where the
// ledger is shared across instances.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool and runs the
// migration.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "usage: postgres parse config")
	}
	pgxCfg.MaxConns = 5
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "usage: postgres create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "usage: postgres ping")
	}

	s := &PostgresStore{pool: pool, closeFn: pool.Close}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS usage_records (
	user_id        TEXT NOT NULL,
	month          TEXT NOT NULL,
	audio_minutes  DOUBLE PRECISION NOT NULL DEFAULT 0,
	analysis_count INTEGER NOT NULL DEFAULT 0,
	last_updated   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, month)
);

CREATE INDEX IF NOT EXISTS idx_usage_records_month ON usage_records(month);
`

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "usage: postgres migrate")
}

func (s *PostgresStore) Get(ctx context.Context, userID, month string) (*model.UsageRecord, error) {
	var rec model.UsageRecord
	err := s.pool.QueryRow(ctx,
		`SELECT audio_minutes, analysis_count, last_updated FROM usage_records WHERE user_id = $1 AND month = $2`,
		userID, month,
	).Scan(&rec.AudioMinutes, &rec.AnalysisCount, &rec.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "usage: postgres get %s/%s", userID, month)
	}
	return &rec, nil
}

func (s *PostgresStore) Put(ctx context.Context, userID, month string, rec model.UsageRecord) error {
	lastUpdated := rec.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO usage_records (user_id, month, audio_minutes, analysis_count, last_updated)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, month) DO UPDATE SET
			audio_minutes = EXCLUDED.audio_minutes,
			analysis_count = EXCLUDED.analysis_count,
			last_updated = EXCLUDED.last_updated`,
		userID, month, rec.AudioMinutes, rec.AnalysisCount, lastUpdated,
	)
	return eris.Wrapf(err, "usage: postgres put %s/%s", userID, month)
}

func (s *PostgresStore) All(ctx context.Context, month string) (map[string]model.UsageRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT user_id, audio_minutes, analysis_count, last_updated FROM usage_records WHERE month = $1`,
		month,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "usage: postgres list %s", month)
	}
	defer rows.Close()

	out := make(map[string]model.UsageRecord)
	for rows.Next() {
		var userID string
		var rec model.UsageRecord
		if err := rows.Scan(&userID, &rec.AudioMinutes, &rec.AnalysisCount, &rec.LastUpdated); err != nil {
			return nil, eris.Wrap(err, "usage: postgres scan")
		}
		out[userID] = rec
	}
	return out, eris.Wrap(rows.Err(), "usage: postgres rows")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
