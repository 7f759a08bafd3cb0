package usage

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/motivation-cli/internal/model"
)

// JSONFileStore persists usage data as a single JSON document keyed
// user → month → record. The file is read fully at startup and rewritten
// fully after each mutation; records accumulate until externally pruned.
type JSONFileStore struct {
	path string

	mu   sync.Mutex
	data map[string]map[string]model.UsageRecord
}

// NewJSONFile opens (or lazily creates) the usage file at path.
func NewJSONFile(path string) (*JSONFileStore, error) {
	s := &JSONFileStore{
		path: path,
		data: make(map[string]map[string]model.UsageRecord),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "usage: read data file")
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, eris.Wrap(err, "usage: decode data file")
	}
	return s, nil
}

func (s *JSONFileStore) Get(_ context.Context, userID, month string) (*model.UsageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.data[userID][month]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *JSONFileStore) Put(_ context.Context, userID, month string, rec model.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data[userID] == nil {
		s.data[userID] = make(map[string]model.UsageRecord)
	}
	s.data[userID][month] = rec

	return s.flushLocked()
}

func (s *JSONFileStore) All(_ context.Context, month string) (map[string]model.UsageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]model.UsageRecord)
	for userID, months := range s.data {
		if rec, ok := months[month]; ok {
			out[userID] = rec
		}
	}
	return out, nil
}

func (s *JSONFileStore) Close() error {
	return nil
}

// flushLocked rewrites the whole document. Callers must hold mu.
func (s *JSONFileStore) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return eris.Wrap(err, "usage: encode data file")
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return eris.Wrap(err, "usage: write data file")
	}
	return nil
}
