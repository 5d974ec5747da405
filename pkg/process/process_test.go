package process

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_Success(t *testing.T) {
	var stdout bytes.Buffer
	r := &Runner{Stdout: &stdout}

	res, err := r.Run(context.Background(), []string{"echo", "hello"}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if !strings.Contains(stdout.String(), "hello") {
		t.Errorf("Stdout = %q, want to contain 'hello'", stdout.String())
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	r := NewRunner()
	res, err := r.Run(context.Background(), []string{"sh", "-c", "exit 3"}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
}

func TestRun_Quiet(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := &Runner{Stdout: &stdout, Stderr: &stderr}

	_, err := r.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2"}, Options{Quiet: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("quiet run leaked output: stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
}

func TestRun_Capture(t *testing.T) {
	r := NewRunner()
	res, err := r.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2"}, Options{Capture: true, Quiet: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := string(res.Output)
	if !strings.Contains(got, "out") || !strings.Contains(got, "err") {
		t.Errorf("Output = %q, want both streams", got)
	}
}

func TestRun_Dir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "subdir")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := NewRunner().Run(context.Background(), []string{"pwd"}, Options{Capture: true, Dir: sub})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(res.Output), "subdir") {
		t.Errorf("Output = %q, want to contain 'subdir'", res.Output)
	}
}

func TestRun_BinaryNotFound(t *testing.T) {
	_, err := NewRunner().Run(context.Background(), []string{"nonexistent-binary-xyz-123"}, Options{})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !strings.Contains(err.Error(), "nonexistent-binary-xyz-123") {
		t.Errorf("error = %q, want to mention the binary name", err)
	}
}

func TestRun_EmptyArgv(t *testing.T) {
	if _, err := NewRunner().Run(context.Background(), nil, Options{}); err == nil {
		t.Fatal("expected error for empty argv")
	}
}
