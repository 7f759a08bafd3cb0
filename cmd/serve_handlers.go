package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/motivation-cli/internal/model"
	"github.com/sells-group/motivation-cli/internal/pipeline"
	"github.com/sells-group/motivation-cli/internal/report"
)

// maxUploadBytes caps the multipart form held in memory before spilling to
// disk.
const maxUploadBytes = 64 << 20

type server struct {
	runner  *pipeline.Runner
	tempDir string
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writePipelineError maps pipeline errors to HTTP statuses.
func writePipelineError(w http.ResponseWriter, err error) {
	if qe, ok := pipeline.IsQuotaError(err); ok {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":     qe.Error(),
			"resource":  qe.Resource,
			"remaining": qe.Remaining,
			"limit":     qe.Limit,
		})
		return
	}
	if errors.Is(err, pipeline.ErrEmptyTranscript) || errors.Is(err, pipeline.ErrNoAudio) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	zap.L().Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleAnalyzeTranscript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcript string `json:"transcript"`
		UserID     string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		req.UserID = "default"
	}

	resp, err := s.runner.AnalyzeTranscript(r.Context(), req.UserID, req.Transcript)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleAnalyzeAudio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no audio file provided")
		return
	}
	defer file.Close()

	userID := r.FormValue("user_id")
	if userID == "" {
		userID = "default"
	}

	// Spool the upload to disk; the background worker owns the file and
	// removes it when done.
	path, err := s.spoolUpload(file, header.Filename)
	if err != nil {
		zap.L().Error("spool upload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}

	jobID, err := s.runner.StartAudioJob(userID, path, header.Filename)
	if err != nil {
		os.Remove(path)
		writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"job_id": jobID,
		"status": string(model.JobStatusQueued),
	})
}

func (s *server) spoolUpload(src io.Reader, filename string) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".bin"
	}
	f, err := os.CreateTemp(s.tempDir, "upload-*"+ext)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func (s *server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, ok := s.runner.Registry().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.runner.Registry().Delete(id) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleUsageStats(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "default"
	}

	stats, err := s.runner.Ledger().GetUsageStats(r.Context(), userID)
	if err != nil {
		zap.L().Error("usage stats failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *server) handleAllUsage(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.runner.Ledger().AllUsage(r.Context())
	if err != nil {
		zap.L().Error("all usage failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": summaries})
}

func (s *server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Analysis   *model.AnalysisResult `json:"analysis"`
		Transcript string                `json:"transcript"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Analysis == nil {
		writeError(w, http.StatusBadRequest, "no analysis data provided")
		return
	}

	doc := report.Render(req.Analysis, req.Transcript)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, strings.NewReader(doc))
}
