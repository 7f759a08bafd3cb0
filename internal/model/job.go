package model

import "time"

// JobStatus represents the lifecycle state of an async processing job.
// Transitions are strictly forward: queued -> processing -> complete | error.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusComplete   JobStatus = "complete"
	JobStatusError      JobStatus = "error"
)

// Job tracks one background audio-analysis request. Clients poll the job by
// id until status is complete or error.
type Job struct {
	ID        string                 `json:"job_id"`
	UserID    string                 `json:"user_id"`
	Status    JobStatus              `json:"status"`
	Progress  int                    `json:"progress"`
	Message   string                 `json:"message"`
	Result    *AudioAnalysisResponse `json:"result,omitempty"`
	Error     string                 `json:"error,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
