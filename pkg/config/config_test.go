package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openscad-ofl/ofltools/pkg/errors"
)

func TestDefault(t *testing.T) {
	c := Default()

	if c.Renderer.Program != "openscad" {
		t.Errorf("Program = %q, want openscad", c.Renderer.Program)
	}
	if c.Renderer.HardWarningsFlag != "--hardwarnings" {
		t.Errorf("HardWarningsFlag = %q", c.Renderer.HardWarningsFlag)
	}
	if c.Renderer.OutputFlag != "-o" {
		t.Errorf("OutputFlag = %q", c.Renderer.OutputFlag)
	}
	if c.Paths.TempRoot != DefaultTempRoot {
		t.Errorf("TempRoot = %q", c.Paths.TempRoot)
	}
	if c.Paths.Tests != DefaultTestsDir {
		t.Errorf("Tests = %q", c.Paths.Tests)
	}
	if c.Threshold() != DefaultThreshold {
		t.Errorf("Threshold() = %d", c.Threshold())
	}
	if c.Picture.HiresScale != DefaultHiresScale {
		t.Errorf("HiresScale = %d", c.Picture.HiresScale)
	}
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
[renderer]
program = "/opt/openscad/bin/openscad"

[paths]
temp_root = "/var/tmp"

[image]
threshold = 0

[picture]
hires_scale = 4
`)
	c, err := Parse(data, ".toml")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if c.Renderer.Program != "/opt/openscad/bin/openscad" {
		t.Errorf("Program = %q", c.Renderer.Program)
	}
	if c.Renderer.OutputFlag != "-o" {
		t.Errorf("OutputFlag should default, got %q", c.Renderer.OutputFlag)
	}
	if c.Paths.TempRoot != "/var/tmp" {
		t.Errorf("TempRoot = %q", c.Paths.TempRoot)
	}
	if c.Threshold() != 0 {
		t.Errorf("explicit zero threshold lost: %d", c.Threshold())
	}
	if c.Picture.HiresScale != 4 {
		t.Errorf("HiresScale = %d", c.Picture.HiresScale)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
renderer:
  program: openscad-nightly
image:
  threshold: 95
`)
	c, err := Parse(data, ".yml")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if c.Renderer.Program != "openscad-nightly" {
		t.Errorf("Program = %q", c.Renderer.Program)
	}
	if c.Threshold() != 95 {
		t.Errorf("Threshold() = %d", c.Threshold())
	}
	if c.Paths.TempRoot != DefaultTempRoot {
		t.Errorf("TempRoot should default, got %q", c.Paths.TempRoot)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"bad temp root", "[paths]\ntemp_root = \"/home\"\n", ".toml"},
		{"threshold too high", "[image]\nthreshold = 101\n", ".toml"},
		{"negative threshold", "image:\n  threshold: -1\n", ".yaml"},
		{"negative scale", "[picture]\nhires_scale = -2\n", ".toml"},
		{"unknown format", "{}", ".json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	if _, err := Parse([]byte("[renderer\nprogram="), ".toml"); err == nil {
		t.Error("expected TOML syntax error")
	}
}

func TestLoadLookup(t *testing.T) {
	t.Setenv(EnvVar, "")

	t.Run("no file yields defaults", func(t *testing.T) {
		c, err := Load("", t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if c.Source != "" {
			t.Errorf("Source = %q, want empty", c.Source)
		}
	})

	t.Run("toml in dir", func(t *testing.T) {
		dir := t.TempDir()
		p := filepath.Join(dir, "ofl.toml")
		if err := os.WriteFile(p, []byte("[image]\nthreshold = 90\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		c, err := Load("", dir)
		if err != nil {
			t.Fatal(err)
		}
		if c.Source != p || c.Threshold() != 90 {
			t.Errorf("Source = %q Threshold = %d", c.Source, c.Threshold())
		}
	})

	t.Run("env var wins over dir", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "ofl.toml"), []byte("[image]\nthreshold = 90\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		envFile := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(envFile, []byte("image:\n  threshold: 80\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(EnvVar, envFile)

		c, err := Load("", dir)
		if err != nil {
			t.Fatal(err)
		}
		if c.Threshold() != 80 {
			t.Errorf("Threshold() = %d, want 80", c.Threshold())
		}
	})

	t.Run("explicit missing path", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), "")
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
		}
	})
}

func TestRendererDialect(t *testing.T) {
	c := Default()
	c.Renderer.Program = "scad"
	r := c.RendererDialect()
	if r.Program != "scad" || r.HardWarningsFlag != "--hardwarnings" || r.OutputFlag != "-o" {
		t.Errorf("RendererDialect() = %+v", r)
	}
}
