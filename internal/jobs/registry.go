// Package jobs tracks asynchronous audio analysis jobs in memory.
package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/motivation-cli/internal/model"
)

// Registry holds job records behind a single mutex. Jobs live until Delete
// or Sweep removes them; a process restart drops all state.
type Registry struct {
	mu   sync.Mutex
	jobs map[string]*model.Job
}

func New() *Registry {
	return &Registry{jobs: make(map[string]*model.Job)}
}

// Create registers a new queued job for a user and returns its id.
func (r *Registry) Create(userID string) string {
	id := uuid.NewString()
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[id] = &model.Job{
		ID:        id,
		UserID:    userID,
		Status:    model.JobStatusQueued,
		Progress:  0,
		Message:   "Job queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id
}

// Update describes a partial job update; nil fields are left unchanged.
type Update struct {
	Status   *model.JobStatus
	Progress *int
	Message  *string
	Result   *model.AudioAnalysisResponse
	Error    *string
}

// Apply merges an update into the job. Any update, even an empty one,
// refreshes updated_at. Returns false for unknown ids.
func (r *Registry) Apply(id string, u Update) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return false
	}
	if u.Status != nil {
		job.Status = *u.Status
	}
	if u.Progress != nil {
		job.Progress = *u.Progress
	}
	if u.Message != nil {
		job.Message = *u.Message
	}
	if u.Result != nil {
		job.Result = u.Result
	}
	if u.Error != nil {
		job.Error = *u.Error
	}
	job.UpdatedAt = time.Now()
	return true
}

// Get returns a copy of the job so callers cannot mutate registry state.
func (r *Registry) Get(id string) (model.Job, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[id]
	if !ok {
		return model.Job{}, false
	}
	return *job, true
}

// Delete removes a job, reporting whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.jobs[id]
	delete(r.jobs, id)
	return ok
}

// Sweep removes jobs created more than maxAge ago, regardless of status,
// and returns how many were removed.
func (r *Registry) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, job := range r.jobs {
		if job.CreatedAt.Before(cutoff) {
			delete(r.jobs, id)
			removed++
		}
	}
	if removed > 0 {
		zap.L().Info("swept expired jobs", zap.Int("removed", removed))
	}
	return removed
}

// Len reports the number of tracked jobs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}
