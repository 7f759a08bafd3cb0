// Package pipeline orchestrates transcript and audio analysis: quota checks,
// transcription, scoring, deal-number extraction, and usage recording.
package pipeline

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/motivation-cli/internal/audio"
	"github.com/sells-group/motivation-cli/internal/dealnum"
	"github.com/sells-group/motivation-cli/internal/jobs"
	"github.com/sells-group/motivation-cli/internal/model"
	"github.com/sells-group/motivation-cli/internal/resilience"
	"github.com/sells-group/motivation-cli/internal/scorer"
	"github.com/sells-group/motivation-cli/internal/usage"
	"github.com/sells-group/motivation-cli/pkg/openai"
)

// audioJobTimeout bounds one background audio job end to end.
const audioJobTimeout = 30 * time.Minute

// Runner wires the analysis stages together. Transcriber and compressor may
// be nil when the deployment only handles text transcripts.
type Runner struct {
	analyzer    *scorer.Analyzer
	extractor   *dealnum.Extractor
	transcriber openai.Client
	compressor  *audio.Compressor
	ledger      *usage.Ledger
	registry    *jobs.Registry
}

func NewRunner(
	analyzer *scorer.Analyzer,
	extractor *dealnum.Extractor,
	transcriber openai.Client,
	compressor *audio.Compressor,
	ledger *usage.Ledger,
	registry *jobs.Registry,
) *Runner {
	return &Runner{
		analyzer:    analyzer,
		extractor:   extractor,
		transcriber: transcriber,
		compressor:  compressor,
		ledger:      ledger,
		registry:    registry,
	}
}

// Registry exposes the job registry for status polling and sweeping.
func (r *Runner) Registry() *jobs.Registry { return r.registry }

// Ledger exposes the usage ledger for the stats endpoints.
func (r *Runner) Ledger() *usage.Ledger { return r.ledger }

// AnalyzeTranscript scores a transcript and extracts deal numbers. The quota
// check and the usage record are separate reads, so concurrent requests can
// both pass the check; limits are advisory.
func (r *Runner) AnalyzeTranscript(ctx context.Context, userID, transcript string) (*model.TranscriptAnalysisResponse, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	allowed, remaining, err := r.ledger.CheckAnalysisLimit(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &QuotaError{Resource: "analysis", Remaining: float64(remaining), Limit: usage.MonthlyAnalysisLimit}
	}

	result := r.analyzer.Analyze(ctx, transcript)
	if r.extractor != nil {
		result.DealNumbers = r.extractor.Extract(ctx, transcript)
	}

	if err := r.ledger.RecordAnalysisUsage(ctx, userID); err != nil {
		return nil, err
	}
	stats, err := r.ledger.GetUsageStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	zap.L().Info("transcript analyzed",
		zap.String("user_id", userID),
		zap.Float64("score", result.OverallScore),
		zap.String("level", string(result.MotivationLevel)))

	return &model.TranscriptAnalysisResponse{
		Success:    true,
		Transcript: transcript,
		Analysis:   result,
		UsageStats: stats,
		Timestamp:  time.Now(),
	}, nil
}

// AnalyzeAudio transcribes and analyzes a recording synchronously. The quota
// check uses a size-based duration estimate; the usage record uses the real
// duration reported by the transcription API.
func (r *Runner) AnalyzeAudio(ctx context.Context, userID, path, filename string) (*model.AudioAnalysisResponse, error) {
	if path == "" {
		return nil, ErrNoAudio
	}
	if r.transcriber == nil {
		return nil, eris.New("pipeline: transcription not configured")
	}

	sizeMB, err := audio.FileSizeMB(path)
	if err != nil {
		return nil, err
	}
	// Rough estimate: compressed speech runs about 1 MB per minute.
	estimatedMinutes := sizeMB

	allowed, remaining, err := r.ledger.CheckAudioLimit(ctx, userID, estimatedMinutes)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, &QuotaError{Resource: "audio", Remaining: remaining, Limit: usage.MonthlyAudioLimit}
	}

	transcript, durationMinutes, err := r.transcribe(ctx, path, filename)
	if err != nil {
		return nil, err
	}

	result := r.analyzer.Analyze(ctx, transcript)
	if r.extractor != nil {
		result.DealNumbers = r.extractor.Extract(ctx, transcript)
	}

	if err := r.ledger.RecordAudioUsage(ctx, userID, durationMinutes); err != nil {
		return nil, err
	}
	if err := r.ledger.RecordAnalysisUsage(ctx, userID); err != nil {
		return nil, err
	}
	stats, err := r.ledger.GetUsageStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.AudioAnalysisResponse{
		Success:              true,
		Transcript:           transcript,
		Analysis:             result,
		AudioDurationMinutes: durationMinutes,
		UsageStats:           stats,
		Timestamp:            time.Now(),
	}, nil
}

// StartAudioJob registers a job and processes the recording in the
// background. The worker runs detached from the request context; callers
// poll the registry for progress.
func (r *Runner) StartAudioJob(userID, path, filename string) (string, error) {
	if path == "" {
		return "", ErrNoAudio
	}
	if r.transcriber == nil {
		return "", eris.New("pipeline: transcription not configured")
	}

	jobID := r.registry.Create(userID)
	go r.processAudio(jobID, userID, path, filename)
	return jobID, nil
}

func (r *Runner) processAudio(jobID, userID, path, filename string) {
	ctx, cancel := context.WithTimeout(context.Background(), audioJobTimeout)
	defer cancel()
	defer os.Remove(path)

	fail := func(err error) {
		zap.L().Error("audio job failed", zap.String("job_id", jobID), zap.Error(err))
		// A failed job reports progress 0, not wherever it got to.
		r.setJob(jobID, model.JobStatusError, 0, "Processing failed", nil, err.Error())
	}

	r.setJob(jobID, model.JobStatusProcessing, 10, "Checking usage limits", nil, "")

	sizeMB, err := audio.FileSizeMB(path)
	if err != nil {
		fail(err)
		return
	}
	allowed, remaining, err := r.ledger.CheckAudioLimit(ctx, userID, sizeMB)
	if err != nil {
		fail(err)
		return
	}
	if !allowed {
		fail(&QuotaError{Resource: "audio", Remaining: remaining, Limit: usage.MonthlyAudioLimit})
		return
	}

	r.setJob(jobID, model.JobStatusProcessing, 20, "Preparing audio", nil, "")
	r.setJob(jobID, model.JobStatusProcessing, 30, "Transcribing audio", nil, "")

	transcript, durationMinutes, err := r.transcribe(ctx, path, filename)
	if err != nil {
		fail(err)
		return
	}

	r.setJob(jobID, model.JobStatusProcessing, 70, "Analyzing transcript", nil, "")

	result := r.analyzer.Analyze(ctx, transcript)
	if r.extractor != nil {
		result.DealNumbers = r.extractor.Extract(ctx, transcript)
	}

	if err := r.ledger.RecordAudioUsage(ctx, userID, durationMinutes); err != nil {
		fail(err)
		return
	}
	if err := r.ledger.RecordAnalysisUsage(ctx, userID); err != nil {
		fail(err)
		return
	}
	stats, err := r.ledger.GetUsageStats(ctx, userID)
	if err != nil {
		fail(err)
		return
	}

	resp := &model.AudioAnalysisResponse{
		Success:              true,
		Transcript:           transcript,
		Analysis:             result,
		AudioDurationMinutes: durationMinutes,
		UsageStats:           stats,
		Timestamp:            time.Now(),
	}
	r.setJob(jobID, model.JobStatusComplete, 100, "Analysis complete", resp, "")
	zap.L().Info("audio job complete",
		zap.String("job_id", jobID),
		zap.String("user_id", userID),
		zap.Float64("duration_minutes", durationMinutes))
}

// transcribe compresses the file if needed and returns the transcript plus
// the spoken duration in minutes.
func (r *Runner) transcribe(ctx context.Context, path, filename string) (string, float64, error) {
	uploadPath := path
	if r.compressor != nil {
		compressed, err := r.compressor.Compress(ctx, path)
		if err != nil {
			return "", 0, err
		}
		if compressed != path {
			defer os.Remove(compressed)
		}
		uploadPath = compressed
	}

	// The upload is reopened per attempt: a retried request has to replay
	// the stream from the start.
	var tr *openai.Transcription
	err := resilience.Do(ctx, resilience.DefaultRetryConfig(), func(ctx context.Context) error {
		f, err := os.Open(uploadPath)
		if err != nil {
			return eris.Wrapf(err, "pipeline: open audio %s", uploadPath)
		}
		defer f.Close()

		var callErr error
		tr, callErr = r.transcriber.Transcribe(ctx, f, filename)
		return callErr
	})
	if err != nil {
		return "", 0, eris.Wrap(err, "pipeline: transcribe audio")
	}
	if strings.TrimSpace(tr.Text) == "" {
		return "", 0, eris.New("pipeline: transcription returned no text")
	}
	return tr.Text, tr.DurationSeconds / 60.0, nil
}

func (r *Runner) setJob(jobID string, status model.JobStatus, progress int, message string, result *model.AudioAnalysisResponse, errMsg string) {
	u := jobs.Update{Status: &status, Progress: &progress, Message: &message, Result: result}
	if errMsg != "" {
		u.Error = &errMsg
	}
	r.registry.Apply(jobID, u)
}
