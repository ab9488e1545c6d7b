package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	exec := New()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, err := exec.Execute(context.Background(), "sh", "-c", "printf hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}
}

func TestExecuteFailureKeepsStderr(t *testing.T) {
	exec := New()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	_, err := exec.Execute(context.Background(), "sh", "-c", "echo broken input >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error %T is not *CommandError", err)
	}
	if cmdErr.Stderr != "broken input" {
		t.Errorf("Stderr = %q", cmdErr.Stderr)
	}
	if !strings.Contains(err.Error(), "command 'sh' failed") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestTail(t *testing.T) {
	e := &implExecutor{maxStderr: 4}
	if got := e.tail("  abcdefgh \n"); got != "...efgh" {
		t.Errorf("tail() = %q", got)
	}
}
