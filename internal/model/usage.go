package model

import "time"

// UsageRecord accumulates per-user consumption for one calendar month.
// Both counters are monotonically non-decreasing within the month.
type UsageRecord struct {
	AudioMinutes  float64   `json:"audio_minutes"`
	AnalysisCount int       `json:"analysis_count"`
	LastUpdated   time.Time `json:"last_updated"`
}

// UsageStats is the client-facing usage summary for the current month.
type UsageStats struct {
	AudioMinutesUsed      float64   `json:"audio_minutes_used"`
	AudioMinutesRemaining float64   `json:"audio_minutes_remaining"`
	AudioMinutesLimit     float64   `json:"audio_minutes_limit"`
	AnalysesUsed          int       `json:"analyses_used"`
	AnalysesRemaining     int       `json:"analyses_remaining"`
	AnalysesLimit         int       `json:"analyses_limit"`
	CurrentMonth          string    `json:"current_month"`
	LastUpdated           time.Time `json:"last_updated"`
}

// UsageSummary is one row of the admin all-users view.
type UsageSummary struct {
	UserID        string    `json:"user_id"`
	AudioMinutes  float64   `json:"audio_minutes"`
	AnalysisCount int       `json:"analysis_count"`
	LastUpdated   time.Time `json:"last_updated"`
}
