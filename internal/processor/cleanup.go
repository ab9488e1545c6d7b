package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// newJobDir creates a private temp directory for one job.
func (p *implProcessor) newJobDir(jobID string) (string, error) {
	if p.cfg.Paths.Temp != "" {
		if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
			return "", fmt.Errorf("create temp dir: %w", err)
		}
	}
	return os.MkdirTemp(p.cfg.Paths.Temp, "job-"+jobID[:8]+"-*")
}

// cleanupDir removes a job directory and everything in it.
func (p *implProcessor) cleanupDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup job dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up job dir: %s", dir)
	}
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	}
}

// moveToArchived moves a processed input file into the archived folder.
func (p *implProcessor) moveToArchived(ctx context.Context, path string) error {
	if p.cfg.Paths.Archived == "" {
		return nil
	}
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	dest := filepath.Join(p.cfg.Paths.Archived, filepath.Base(path))
	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", path, dest)

	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// writeOutput writes data to the output folder under name.
func (p *implProcessor) writeOutput(name string, data []byte) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return "", newJobError(KindOutput, "create output dir", err)
	}
	path := filepath.Join(p.cfg.Paths.Output, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", newJobError(KindOutput, "write "+name, err)
	}
	return path, nil
}
