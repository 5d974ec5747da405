// Package suite plans renderer runs for a library test.
//
// A test is addressed by its path without suffix, e.g. "tests/foundation/hole".
// Next to it live:
//
//	hole.scad   the test script (required)
//	hole.conf   optional dotenv file with ARG_CAMERA / ARG_PROJECTION defaults
//	hole.json   optional customizer parameter sets; keys "TEST_CASE..." become cases
//
// Without test cases a single job renders the script and captures its log
// into hole.echo. With test cases, one job per case runs with -p hole.json
// -P <case> and captures into hole.echo/<case suffix>.echo.
package suite

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"

	"github.com/openscad-ofl/ofltools/pkg/openscad"
)

// Keys read from a test's .conf file.
const (
	ConfCamera     = "ARG_CAMERA"
	ConfProjection = "ARG_PROJECTION"
)

// casePrefixLen is the length of "TEST_CASE" plus its separator. Case
// display names and capture files drop it.
const casePrefixLen = len("TEST_CASE") + 1

var testCaseRe = regexp.MustCompile(`"TEST_CASE.*":`)

// Layout lists the files belonging to one test.
type Layout struct {
	Dir  string
	Base string
	Conf string
	JSON string
	Scad string
}

// NewLayout derives the file names of the test at path (without suffix).
func NewLayout(path string) Layout {
	full := filepath.Clean(path)
	dir := filepath.Dir(full)
	base := filepath.Base(full)
	return Layout{
		Dir:  dir,
		Base: base,
		Conf: filepath.Join(dir, base+".conf"),
		JSON: filepath.Join(dir, base+".json"),
		Scad: filepath.Join(dir, base+".scad"),
	}
}

// EchoDir is the directory holding per-case capture files.
func (l Layout) EchoDir() string {
	return filepath.Join(l.Dir, l.Base+openscad.CaptureSuffix)
}

// ReadConf reads a dotenv style .conf file. A missing file yields an
// empty map.
func ReadConf(path string) (map[string]string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) || (err == nil && info.IsDir()) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return godotenv.Read(path)
}

// View carries the camera settings given on the command line. Empty fields
// fall back to the .conf values.
type View struct {
	Camera     string
	Projection string
}

// Arguments builds the renderer parameters shared by every job of a test.
func Arguments(conf map[string]string, view View) []string {
	var args []string
	camera := view.Camera
	if camera == "" {
		camera = conf[ConfCamera]
	}
	projection := view.Projection
	if projection == "" {
		projection = conf[ConfProjection]
	}
	if camera != "" {
		args = append(args, "--camera", camera)
	}
	if projection != "" {
		args = append(args, "--projection", projection)
	}
	return args
}

// Cases returns the quoted "TEST_CASE..." keys found in lines, one per
// line at most, in order.
func Cases(lines []string) []string {
	var cases []string
	for _, line := range lines {
		m := testCaseRe.FindString(line)
		if m == "" {
			continue
		}
		// strip the opening quote and the closing `":`
		cases = append(cases, m[1:len(m)-2])
	}
	return cases
}

// CaseName returns the display name of a case key ("TEST_CASE_round" ->
// "round").
func CaseName(key string) string {
	if len(key) <= casePrefixLen {
		return ""
	}
	return key[casePrefixLen:]
}

// Job is one planned renderer run.
type Job struct {
	Case        string // case key, empty for a case-less test
	Name        string // display name
	Params      []string
	CapturePath string
}

// Plan lists the jobs for a test: one per case found in the layout's JSON
// file, or a single job when there is none.
func Plan(l Layout, args []string) ([]Job, error) {
	cases, err := readCases(l.JSON)
	if err != nil {
		return nil, err
	}

	if len(cases) == 0 {
		return []Job{{
			Params:      clone(args),
			CapturePath: filepath.Join(l.Dir, l.Base+openscad.CaptureSuffix),
		}}, nil
	}

	jobs := make([]Job, 0, len(cases))
	for _, c := range cases {
		name := CaseName(c)
		params := append(clone(args), "-p", l.JSON, "-P", c)
		jobs = append(jobs, Job{
			Case:        c,
			Name:        name,
			Params:      params,
			CapturePath: filepath.Join(l.EchoDir(), name+openscad.CaptureSuffix),
		})
	}
	return jobs, nil
}

func readCases(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := openscad.ReadLines(f)
	if err != nil {
		return nil, err
	}
	return Cases(lines), nil
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

// Request turns the job into a renderer request for script.
func (j Job) Request(script string, dryRun bool) openscad.Request {
	return openscad.Request{
		Script:      script,
		Params:      j.Params,
		Capture:     true,
		CapturePath: j.CapturePath,
		DryRun:      dryRun,
	}
}
