package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/openscad-ofl/ofltools/pkg/config"
	"github.com/openscad-ofl/ofltools/pkg/observability"
	"github.com/openscad-ofl/ofltools/pkg/process"
)

// fakeRenderer stands in for the renderer binary. It records every call
// and writes the capture file named after the output flag.
type fakeRenderer struct {
	mu    sync.Mutex
	calls [][]string
	opts  []process.Options

	// respond returns the exit code and capture lines for argv.
	respond func(argv []string) (int, []string)
}

func (f *fakeRenderer) Run(_ context.Context, argv []string, opts process.Options) (*process.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, argv)
	f.opts = append(f.opts, opts)
	f.mu.Unlock()

	code, lines := 0, []string(nil)
	if f.respond != nil {
		code, lines = f.respond(argv)
	}
	for i := 0; i+1 < len(argv); i++ {
		if argv[i] == "-o" && strings.HasSuffix(argv[i+1], ".echo") {
			data := strings.Join(lines, "\n") + "\n"
			if err := os.WriteFile(argv[i+1], []byte(data), 0o644); err != nil {
				return nil, err
			}
		}
	}
	return &process.Result{ExitCode: code}, nil
}

func (f *fakeRenderer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// scriptedExec answers commands from a table keyed by the joined argv.
type scriptedExec struct {
	replies map[string]process.Result
	calls   []string
}

func (s *scriptedExec) Run(_ context.Context, argv []string, _ process.Options) (*process.Result, error) {
	key := strings.Join(argv, " ")
	s.calls = append(s.calls, key)
	r, ok := s.replies[key]
	if !ok {
		return nil, fmt.Errorf("executing %s: executable file not found", argv[0])
	}
	return &r, nil
}

// paramValue returns the argument following flag in argv.
func paramValue(argv []string, flag string) string {
	for i := 0; i+1 < len(argv); i++ {
		if argv[i] == flag {
			return argv[i+1]
		}
	}
	return ""
}

// newTestCLI returns a CLI running exec, with logs kept in the returned
// buffer and the config lookup isolated from the environment.
func newTestCLI(t *testing.T, exec process.Executor) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	t.Cleanup(observability.Reset)
	var logs bytes.Buffer
	c := New(&logs, DefaultVerbosity)
	c.Exec = exec
	c.In = strings.NewReader("")
	return c, &logs
}

// execute runs the root command with args and returns its output.
func execute(c *CLI, args ...string) (string, error) {
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c, _ := newTestCLI(t, &fakeRenderer{})
	root := c.RootCommand()

	for _, name := range []string{"openscad", "test", "picture", "image-diff", "bump", "new-test", "assert", "deps", "watch", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVerbosityOutOfRange(t *testing.T) {
	c, _ := newTestCLI(t, &fakeRenderer{})
	_, err := execute(c, "-v", "7", "cache", "path")
	if err == nil || ExitCode(err) != ExitFailure {
		t.Errorf("execute() error = %v, want verbosity error", err)
	}
}

func TestVerbosityControlsLogging(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "a.scad")

	c, logs := newTestCLI(t, &fakeRenderer{})
	if _, err := execute(c, "-v", "4", "openscad", "--ofl-script", script); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "renderer start") {
		t.Errorf("debug verbosity should log renderer hooks:\n%s", logs.String())
	}

	c, logs = newTestCLI(t, &fakeRenderer{})
	if _, err := execute(c, "-v", "0", "openscad", "--ofl-script", script); err != nil {
		t.Fatal(err)
	}
	if logs.Len() != 0 {
		t.Errorf("silent verbosity logged:\n%s", logs.String())
	}
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "ofl.toml")
	writeFile(t, cfg, "[renderer]\nprogram = \"openscad-nightly\"\n")

	c, _ := newTestCLI(t, &fakeRenderer{})
	out, err := execute(c, "--config", cfg, "openscad", "--ofl-script", "a.scad", "--dry-run")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "openscad-nightly --hardwarnings") {
		t.Errorf("configured program not used: %q", out)
	}
}

func TestConfigFlagMissingFile(t *testing.T) {
	c, _ := newTestCLI(t, &fakeRenderer{})
	_, err := execute(c, "--config", filepath.Join(t.TempDir(), "nope.toml"), "cache", "path")
	if err == nil {
		t.Error("expected error for a missing config file")
	}
}
