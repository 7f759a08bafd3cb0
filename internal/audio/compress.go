// Package audio prepares uploaded recordings for transcription. Files above
// the transcription API's size ceiling are re-encoded to a lower-bitrate mp3
// with ffmpeg.
package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// MaxUploadMB is the largest file the transcription API accepts.
const MaxUploadMB = 24.0

const maxBitrateKbps = 64

// Compressor shells out to ffmpeg and ffprobe. Both binaries must be on
// PATH; NewCompressor verifies that up front.
type Compressor struct {
	ffmpegPath  string
	ffprobePath string
}

func NewCompressor() (*Compressor, error) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, eris.Wrap(err, "audio: ffmpeg not found")
	}
	ffprobe, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, eris.Wrap(err, "audio: ffprobe not found")
	}
	return &Compressor{ffmpegPath: ffmpeg, ffprobePath: ffprobe}, nil
}

// FileSizeMB returns the size of the file at path in megabytes.
func FileSizeMB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, eris.Wrapf(err, "audio: stat %s", path)
	}
	return float64(info.Size()) / (1024 * 1024), nil
}

// Duration probes the recording length in seconds.
func (c *Compressor) Duration(ctx context.Context, path string) (float64, error) {
	out, err := exec.CommandContext(ctx, c.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, eris.Wrapf(err, "audio: probe %s", path)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, eris.Wrapf(err, "audio: parse duration %q", strings.TrimSpace(string(out)))
	}
	return seconds, nil
}

// TargetBitrateKbps picks the bitrate that fits the recording under the
// upload ceiling, capped so long files do not degrade below usable quality.
func TargetBitrateKbps(durationSeconds float64) int {
	if durationSeconds <= 0 {
		return maxBitrateKbps
	}
	kbps := int(MaxUploadMB * 1024 * 8 / durationSeconds)
	if kbps > maxBitrateKbps {
		kbps = maxBitrateKbps
	}
	if kbps < 8 {
		kbps = 8
	}
	return kbps
}

// Compress re-encodes path to a mono mp3 under the upload ceiling and
// returns the output path. Files already under the ceiling are returned
// unchanged.
func (c *Compressor) Compress(ctx context.Context, path string) (string, error) {
	sizeMB, err := FileSizeMB(path)
	if err != nil {
		return "", err
	}
	if sizeMB <= MaxUploadMB {
		return path, nil
	}

	seconds, err := c.Duration(ctx, path)
	if err != nil {
		return "", err
	}
	kbps := TargetBitrateKbps(seconds)

	out := filepath.Join(filepath.Dir(path), strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+"_compressed.mp3")
	cmd := exec.CommandContext(ctx, c.ffmpegPath,
		"-y",
		"-i", path,
		"-ac", "1",
		"-b:a", fmt.Sprintf("%dk", kbps),
		out,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", eris.Wrapf(err, "audio: ffmpeg compress %s: %s", path, string(output))
	}

	newSize, err := FileSizeMB(out)
	if err != nil {
		return "", err
	}
	zap.L().Info("compressed audio",
		zap.String("path", path),
		zap.Float64("original_mb", sizeMB),
		zap.Float64("compressed_mb", newSize),
		zap.Int("bitrate_kbps", kbps))
	return out, nil
}
