// Package audio normalizes voice recordings for the analysis service.
package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/modurim/homepick-api/internal/logger"
	"go.uber.org/zap"
)

// Analysis-service input format: 16 kHz mono 16-bit signed PCM.
const (
	TargetSampleRate = 16000
	TargetChannels   = 1
	TargetBitDepth   = 16
)

// Transcoder converts an arbitrary input recording into a normalized WAV
// file and returns the path of the derivative.
type Transcoder interface {
	ToWAV(ctx context.Context, inputPath string) (string, error)
}

// FFmpegTranscoder implements Transcoder by shelling out to ffmpeg.
type FFmpegTranscoder struct {
	binPath string
}

// NewFFmpegTranscoder creates a transcoder using the given ffmpeg binary.
// An empty path falls back to "ffmpeg" on $PATH.
func NewFFmpegTranscoder(binPath string) *FFmpegTranscoder {
	if binPath == "" {
		binPath = "ffmpeg"
	}
	return &FFmpegTranscoder{binPath: binPath}
}

// ToWAV transcodes inputPath to a 16 kHz mono s16 WAV next to the input,
// replacing the input's extension with .wav. The output header is verified
// before the path is returned; a malformed result is removed and reported
// as an error.
func (t *FFmpegTranscoder) ToWAV(ctx context.Context, inputPath string) (string, error) {
	outputPath := strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".wav"

	cmd := exec.CommandContext(ctx, t.binPath,
		"-y",
		"-i", inputPath,
		"-ar", fmt.Sprint(TargetSampleRate),
		"-ac", fmt.Sprint(TargetChannels),
		"-sample_fmt", "s16",
		"-f", "wav",
		outputPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Best-effort removal of a partial output file.
		if rmErr := os.Remove(outputPath); rmErr != nil && !os.IsNotExist(rmErr) {
			logger.Get().Warn("failed to remove partial transcode output",
				zap.String("path", outputPath), zap.Error(rmErr))
		}
		return "", fmt.Errorf("ffmpeg transcode failed: %v: %s", err, tail(stderr.String(), 300))
	}

	format, err := ProbeWAV(outputPath)
	if err != nil {
		_ = os.Remove(outputPath)
		return "", fmt.Errorf("transcode produced unreadable WAV: %w", err)
	}
	if format.SampleRate != TargetSampleRate || format.Channels != TargetChannels || format.BitsPerSample != TargetBitDepth {
		_ = os.Remove(outputPath)
		return "", fmt.Errorf("transcode produced %s, want 16kHz mono s16", format)
	}

	return outputPath, nil
}

// tail returns the last n bytes of s for error messages.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
