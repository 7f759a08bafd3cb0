package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetBitrateKbps(t *testing.T) {
	cases := []struct {
		name    string
		seconds float64
		want    int
	}{
		{"zero duration falls back to cap", 0, 64},
		{"short clip capped at 64", 60, 64},
		{"hour long call", 3600, 54},
		{"very long call floors at 8", 100000, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TargetBitrateKbps(tc.seconds))
		})
	}
}

func TestTargetBitrateFitsUnderCeiling(t *testing.T) {
	// For any duration the chosen bitrate keeps the output at or under
	// the upload ceiling (ignoring container overhead).
	for _, seconds := range []float64{300, 1800, 3600, 7200, 14400} {
		kbps := TargetBitrateKbps(seconds)
		if kbps == 8 {
			continue // floor trades the ceiling for minimum quality
		}
		sizeMB := float64(kbps) * seconds / 8 / 1024
		assert.LessOrEqual(t, sizeMB, MaxUploadMB, "duration %.0fs", seconds)
	}
}

func TestFileSizeMB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 2*1024*1024), 0o644))

	size, err := FileSizeMB(path)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, size, 0.001)

	_, err = FileSizeMB(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
