package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/motivation-cli/internal/model"
)

func TestReadTranscriptFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "call.txt")
	require.NoError(t, os.WriteFile(path, []byte("Seller: hello"), 0o644))

	got, err := readTranscript(path)
	require.NoError(t, err)
	assert.Equal(t, "Seller: hello", got)
}

func TestReadTranscriptMissingFile(t *testing.T) {
	_, err := readTranscript(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read transcript")
}

func TestWriteAnalysisFormats(t *testing.T) {
	analysis := &model.AnalysisResult{
		OverallScore:    6.5,
		MotivationLevel: model.MotivationHigh,
		Confidence:      75,
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeAnalysis(&buf, analysis, "Seller: hi", "text"))
		assert.Contains(t, buf.String(), "# Seller Motivation Analysis Report")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeAnalysis(&buf, analysis, "", "json"))

		var got model.AnalysisResult
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, 6.5, got.OverallScore)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeAnalysis(&buf, analysis, "", "yaml"))

		var got model.AnalysisResult
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, model.MotivationHigh, got.MotivationLevel)
	})

	t.Run("unknown", func(t *testing.T) {
		var buf bytes.Buffer
		err := writeAnalysis(&buf, analysis, "", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})
}

func TestCollectTranscripts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("two"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("skip"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	paths, err := collectTranscripts(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
	}, paths)
}

func TestCollectTranscriptsMissingDir(t *testing.T) {
	_, err := collectTranscripts(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
