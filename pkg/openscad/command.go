package openscad

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultProgram is the renderer executable looked up in PATH.
	DefaultProgram = "openscad"

	// DefaultHardWarningsFlag asks the renderer to fail on warnings where it
	// supports doing so.
	DefaultHardWarningsFlag = "--hardwarnings"

	// DefaultOutputFlag redirects the renderer output to a file. The file
	// extension selects the format; ".echo" yields the console log.
	DefaultOutputFlag = "-o"

	// ScriptSuffix is the suffix of renderer input files.
	ScriptSuffix = ".scad"

	// CaptureSuffix is the suffix of capture files.
	CaptureSuffix = ".echo"
)

// Renderer describes the command-line dialect of the external renderer.
type Renderer struct {
	Program          string
	HardWarningsFlag string
	OutputFlag       string
}

// DefaultRenderer returns the dialect of a stock OpenSCAD binary.
func DefaultRenderer() Renderer {
	return Renderer{
		Program:          DefaultProgram,
		HardWarningsFlag: DefaultHardWarningsFlag,
		OutputFlag:       DefaultOutputFlag,
	}
}

func (r Renderer) withDefaults() Renderer {
	d := DefaultRenderer()
	if r.Program == "" {
		r.Program = d.Program
	}
	if r.HardWarningsFlag == "" {
		r.HardWarningsFlag = d.HardWarningsFlag
	}
	if r.OutputFlag == "" {
		r.OutputFlag = d.OutputFlag
	}
	return r
}

// Command builds the full argv for req:
//
//	program hard-warnings-flag params... [output-flag capture-path] script
//
// Params are passed through untouched.
func (r Renderer) Command(req Request) []string {
	r = r.withDefaults()

	argv := make([]string, 0, len(req.Params)+5)
	argv = append(argv, r.Program, r.HardWarningsFlag)
	argv = append(argv, req.Params...)
	if req.Capture {
		argv = append(argv, r.OutputFlag, req.capturePath())
	}
	return append(argv, req.Script)
}

// BuildCommand builds the argv for req with the stock OpenSCAD dialect.
func BuildCommand(req Request) []string {
	return DefaultRenderer().Command(req)
}

// Request describes one renderer invocation.
type Request struct {
	// Script is the renderer input file.
	Script string

	// Params are appended verbatim after the hard-warnings flag.
	Params []string

	// Capture redirects the renderer output into CapturePath and scans it
	// for warnings once the process exits with status 0.
	Capture bool

	// CapturePath defaults to Script with its extension replaced by ".echo".
	CapturePath string

	// DryRun builds the command without running anything.
	DryRun bool

	// Quiet discards the renderer's stdout and stderr.
	Quiet bool
}

func (req Request) capturePath() string {
	if req.CapturePath != "" {
		return req.CapturePath
	}
	return DefaultCapturePath(req.Script)
}

// DefaultCapturePath replaces the extension of script with ".echo".
func DefaultCapturePath(script string) string {
	return strings.TrimSuffix(script, filepath.Ext(script)) + CaptureSuffix
}

// ScriptPath cleans p and makes sure it carries exactly one ".scad" suffix.
func ScriptPath(p string) string {
	return strings.TrimSuffix(filepath.Clean(p), ScriptSuffix) + ScriptSuffix
}
