package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meeting-scribe/internal/segment"
)

// SupportedExtensions lists the recording formats accepted by Transcribe.
var SupportedExtensions = []string{".m4a", ".wav", ".mp3", ".mp4", ".mov", ".mkv", ".webm"}

// IsSupported reports whether name has a supported recording extension.
func IsSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// stage copies the upload into the job directory and returns its path.
func (p *implProcessor) stage(ctx context.Context, dir, name string, r io.Reader) (string, error) {
	path := filepath.Join(dir, "upload"+strings.ToLower(filepath.Ext(name)))

	f, err := os.Create(path)
	if err != nil {
		return "", newJobError(KindInput, "stage upload", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", newJobError(KindInput, "stage upload", err)
	}
	if n == 0 {
		return "", newJobError(KindInput, name, ErrEmptyInput)
	}

	p.logger.Debug(ctx, "Staged %s (%d bytes)", name, n)
	return path, nil
}

// transcode converts src to 16 kHz mono PCM wave at dst.
// -vn drops any video stream so containers like .mp4 work too.
func (p *implProcessor) transcode(ctx context.Context, src, dst string) error {
	p.logger.Info(ctx, "Transcoding audio: %s", filepath.Base(src))

	args := []string{
		"-y",
		"-i", src,
		"-vn",
		"-ar", strconv.Itoa(p.sampleRate()),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		dst,
	}
	if _, err := p.executor.Execute(ctx, p.ffmpeg(), args...); err != nil {
		p.cleanupTempFile(ctx, dst)
		return newJobError(KindTranscode, "ffmpeg", err)
	}

	info, err := os.Stat(dst)
	if err != nil || info.Size() == 0 {
		p.cleanupTempFile(ctx, dst)
		return newJobError(KindTranscode, "ffmpeg produced no audio", err)
	}
	return nil
}

// slice cuts [start, end] of the job's wave file into dst.
func (p *implProcessor) slice(ctx context.Context, wav string, seg segment.Segment, dst string) error {
	seg = seg.Normalize()
	args := []string{
		"-y",
		"-i", wav,
		"-ss", formatSeconds(seg.Start),
		"-to", formatSeconds(seg.End),
		"-ar", strconv.Itoa(p.sampleRate()),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		dst,
	}
	if _, err := p.executor.Execute(ctx, p.ffmpeg(), args...); err != nil {
		return fmt.Errorf("ffmpeg slice: %w", err)
	}
	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("ffmpeg slice: %w", err)
	}
	return nil
}

func (p *implProcessor) ffmpeg() string {
	if p.cfg.FFmpeg.BinaryPath == "" {
		return "ffmpeg"
	}
	return p.cfg.FFmpeg.BinaryPath
}

func (p *implProcessor) sampleRate() int {
	if p.cfg.FFmpeg.SampleRate <= 0 {
		return 16000
	}
	return p.cfg.FFmpeg.SampleRate
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
