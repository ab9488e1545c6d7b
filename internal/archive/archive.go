// Package archive keeps a per-user copy of every summary, the prompt that
// produced it and the source it was made from.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// DefaultUser is used when no user is given.
const DefaultUser = "guest"

var reUnsafe = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)

// Entry lists the files written by Save.
type Entry struct {
	Dir     string
	Suffix  string
	Summary string
	Prompt  string
	Source  string
}

// Archive writes entries under Root/<user>/.
type Archive struct {
	Root string
	// NewSuffix returns the suffix shared by the files of one entry.
	NewSuffix func() string
}

// New returns an Archive rooted at root.
func New(root string) *Archive {
	return &Archive{
		Root:      root,
		NewSuffix: func() string { return uuid.NewString()[:8] },
	}
}

// Save writes summary_<suffix>.txt, prompt_<suffix>.txt and, when src is not
// nil, <sourceName>_<suffix> into the user's directory.
func (a *Archive) Save(user, summary, prompt, sourceName string, src io.Reader) (*Entry, error) {
	if a.Root == "" {
		return nil, errors.New("archive root not set")
	}

	dir := filepath.Join(a.Root, sanitize(user, DefaultUser))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	suffix := a.NewSuffix()
	e := &Entry{
		Dir:     dir,
		Suffix:  suffix,
		Summary: filepath.Join(dir, "summary_"+suffix+".txt"),
		Prompt:  filepath.Join(dir, "prompt_"+suffix+".txt"),
	}

	if err := os.WriteFile(e.Summary, []byte(summary), 0644); err != nil {
		return nil, fmt.Errorf("write summary: %w", err)
	}
	if err := os.WriteFile(e.Prompt, []byte(prompt), 0644); err != nil {
		return nil, fmt.Errorf("write prompt: %w", err)
	}

	if src == nil {
		return e, nil
	}

	e.Source = filepath.Join(dir, sanitize(filepath.Base(sourceName), "source")+"_"+suffix)
	if err := copyTo(e.Source, src); err != nil {
		return nil, fmt.Errorf("write source: %w", err)
	}
	return e, nil
}

func copyTo(path string, src io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sanitize(name, fallback string) string {
	name = strings.Trim(reUnsafe.ReplaceAllString(strings.TrimSpace(name), "_"), "._")
	if name == "" {
		return fallback
	}
	return name
}
