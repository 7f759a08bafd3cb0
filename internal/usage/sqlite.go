package usage

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/motivation-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL
// mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "usage: sqlite open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "usage: sqlite exec %s", pragma)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS usage_records (
	user_id        TEXT NOT NULL,
	month          TEXT NOT NULL,
	audio_minutes  REAL NOT NULL DEFAULT 0,
	analysis_count INTEGER NOT NULL DEFAULT 0,
	last_updated   DATETIME NOT NULL,
	PRIMARY KEY (user_id, month)
);

CREATE INDEX IF NOT EXISTS idx_usage_records_month ON usage_records(month);
`

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(sqliteMigration)
	return eris.Wrap(err, "usage: sqlite migrate")
}

func (s *SQLiteStore) Get(ctx context.Context, userID, month string) (*model.UsageRecord, error) {
	var rec model.UsageRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT audio_minutes, analysis_count, last_updated FROM usage_records WHERE user_id = ? AND month = ?`,
		userID, month,
	).Scan(&rec.AudioMinutes, &rec.AnalysisCount, &rec.LastUpdated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "usage: sqlite get %s/%s", userID, month)
	}
	return &rec, nil
}

func (s *SQLiteStore) Put(ctx context.Context, userID, month string, rec model.UsageRecord) error {
	lastUpdated := rec.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usage_records (user_id, month, audio_minutes, analysis_count, last_updated)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, month) DO UPDATE SET
			audio_minutes = excluded.audio_minutes,
			analysis_count = excluded.analysis_count,
			last_updated = excluded.last_updated`,
		userID, month, rec.AudioMinutes, rec.AnalysisCount, lastUpdated,
	)
	return eris.Wrapf(err, "usage: sqlite put %s/%s", userID, month)
}

func (s *SQLiteStore) All(ctx context.Context, month string) (map[string]model.UsageRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, audio_minutes, analysis_count, last_updated FROM usage_records WHERE month = ?`,
		month,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "usage: sqlite list %s", month)
	}
	defer rows.Close()

	out := make(map[string]model.UsageRecord)
	for rows.Next() {
		var userID string
		var rec model.UsageRecord
		if err := rows.Scan(&userID, &rec.AudioMinutes, &rec.AnalysisCount, &rec.LastUpdated); err != nil {
			return nil, eris.Wrap(err, "usage: sqlite scan")
		}
		out[userID] = rec
	}
	return out, eris.Wrap(rows.Err(), "usage: sqlite rows")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
