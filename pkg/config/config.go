// Package config loads and validates the optional ofl project file.
//
// The file is TOML (ofl.toml) or YAML (.ofl.yaml, .ofl.yml). Every field is
// optional; zero values fall back to the defaults below.
//
//	[renderer]
//	program = "openscad"
//	hard_warnings_flag = "--hardwarnings"
//	output_flag = "-o"
//
//	[paths]
//	temp_root = "/tmp"
//	tests = "tests"
//
//	[image]
//	threshold = 100
//
//	[picture]
//	hires_scale = 8
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/openscad-ofl/ofltools/pkg/errors"
	"github.com/openscad-ofl/ofltools/pkg/openscad"
)

// EnvVar names the environment variable pointing at a config file.
const EnvVar = "OFL_CONFIG"

// Default values.
const (
	DefaultTempRoot   = "/tmp"
	DefaultTestsDir   = "tests"
	DefaultThreshold  = 100
	DefaultHiresScale = 8
)

// TempRoots lists the accepted temporary directories.
var TempRoots = []string{"/tmp", "/var/tmp"}

// candidates are looked up in the working directory, in order.
var candidates = []string{"ofl.toml", ".ofl.yaml", ".ofl.yml"}

// Config holds the parsed project configuration.
type Config struct {
	Renderer RendererConfig `toml:"renderer" yaml:"renderer"`
	Paths    PathsConfig    `toml:"paths" yaml:"paths"`
	Image    ImageConfig    `toml:"image" yaml:"image"`
	Picture  PictureConfig  `toml:"picture" yaml:"picture"`

	// Source is the file the config was read from, empty for defaults.
	Source string `toml:"-" yaml:"-"`
}

// RendererConfig selects the renderer binary and its flag dialect.
type RendererConfig struct {
	Program          string `toml:"program" yaml:"program"`
	HardWarningsFlag string `toml:"hard_warnings_flag" yaml:"hard_warnings_flag"`
	OutputFlag       string `toml:"output_flag" yaml:"output_flag"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	TempRoot string `toml:"temp_root" yaml:"temp_root"`
	Tests    string `toml:"tests" yaml:"tests"`
}

// ImageConfig controls image comparison.
type ImageConfig struct {
	Threshold *int `toml:"threshold" yaml:"threshold"` // minimum similarity percentage
}

// PictureConfig controls picture generation.
type PictureConfig struct {
	HiresScale int `toml:"hires_scale" yaml:"hires_scale"`
}

// Default returns a config with every field at its default.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the config at path. When path is empty it tries $OFL_CONFIG,
// then the candidates in dir. No file at all yields Default().
func Load(path, dir string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		for _, name := range candidates {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	c.Source = path
	return c, nil
}

// Parse decodes data according to ext (".toml", ".yaml" or ".yml"),
// applies defaults and validates the result.
func Parse(data []byte, ext string) (*Config, error) {
	var c Config
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &c); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", ext)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	d := openscad.DefaultRenderer()
	if c.Renderer.Program == "" {
		c.Renderer.Program = d.Program
	}
	if c.Renderer.HardWarningsFlag == "" {
		c.Renderer.HardWarningsFlag = d.HardWarningsFlag
	}
	if c.Renderer.OutputFlag == "" {
		c.Renderer.OutputFlag = d.OutputFlag
	}
	if c.Paths.TempRoot == "" {
		c.Paths.TempRoot = DefaultTempRoot
	}
	if c.Paths.Tests == "" {
		c.Paths.Tests = DefaultTestsDir
	}
	if c.Image.Threshold == nil {
		t := DefaultThreshold
		c.Image.Threshold = &t
	}
	if c.Picture.HiresScale == 0 {
		c.Picture.HiresScale = DefaultHiresScale
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if !slices.Contains(TempRoots, c.Paths.TempRoot) {
		return errors.New(errors.ErrCodeInvalidConfig, "temp_root must be one of %s, got %q", strings.Join(TempRoots, ", "), c.Paths.TempRoot)
	}
	if t := c.Threshold(); t < 0 || t > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "image threshold must be within 0-100, got %d", t)
	}
	if c.Picture.HiresScale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "hires_scale must be positive, got %d", c.Picture.HiresScale)
	}
	return nil
}

// Threshold returns the configured image similarity threshold.
func (c *Config) Threshold() int {
	if c.Image.Threshold == nil {
		return DefaultThreshold
	}
	return *c.Image.Threshold
}

// RendererDialect returns the renderer description for openscad.Invoker.
func (c *Config) RendererDialect() openscad.Renderer {
	return openscad.Renderer{
		Program:          c.Renderer.Program,
		HardWarningsFlag: c.Renderer.HardWarningsFlag,
		OutputFlag:       c.Renderer.OutputFlag,
	}
}
