package openscad

import (
	"slices"
	"strings"
	"testing"
)

func TestIsDisqualifying(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"WARNING: something else", true},
		{"WARNING:", true},
		{"WARNING: Ignoring unknown module 'foo' in file box.scad, line 3", true},
		{BenignWarning, false},
		{BenignWarning + " (extra context)", false},
		{"WARNING: Viewall and autocenter disabled", true},
		{"Rendering...", false},
		{"ECHO: \"WARNING: inside echo\"", false},
		{" WARNING: leading space", false},
		{"warning: lower case", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsDisqualifying(tt.line); got != tt.want {
			t.Errorf("IsDisqualifying(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		lines    []string
		want     Status
	}{
		{"clean success", 0, []string{"Rendering..."}, StatusSuccess},
		{"no output", 0, nil, StatusSuccess},
		{"benign only", 0, []string{BenignWarning}, StatusSuccess},
		{"real warning", 0, []string{"Rendering...", "WARNING: x"}, StatusWarningFailure},
		{"exit failure wins over clean output", 1, []string{"Rendering..."}, StatusExitFailure},
		{"exit failure wins over warnings", 2, []string{"WARNING: x"}, StatusExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.exitCode, tt.lines); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadLines(t *testing.T) {
	got, err := ReadLines(strings.NewReader("a\nb\r\nc"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("ReadLines() = %q, want %q", got, want)
	}
}

func TestResultCode(t *testing.T) {
	tests := []struct {
		res  Result
		want int
	}{
		{Result{Status: StatusSuccess}, 0},
		{Result{Status: StatusExitFailure, ExitCode: 4}, 4},
		{Result{Status: StatusWarningFailure}, WarningExitCode},
	}
	for _, tt := range tests {
		if got := tt.res.Code(); got != tt.want {
			t.Errorf("Code() for %v = %d, want %d", tt.res.Status, got, tt.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	if StatusWarningFailure.String() != "warning-failure" {
		t.Errorf("String() = %q", StatusWarningFailure.String())
	}
	if Status(42).String() != "unknown" {
		t.Errorf("String() = %q", Status(42).String())
	}
}

func TestScanWarnings(t *testing.T) {
	capture := strings.Join([]string{
		`ECHO: "start"`,
		BenignWarning,
		"WARNING: Ignoring unknown variable 'r' in file hole.scad, line 12",
		"  WARNING: indented, not a warning line",
		"WARNING: Too many unnamed arguments supplied",
	}, "\n")

	got, err := ScanWarnings(strings.NewReader(capture))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"WARNING: Ignoring unknown variable 'r' in file hole.scad, line 12",
		"WARNING: Too many unnamed arguments supplied",
	}
	if !slices.Equal(got, want) {
		t.Errorf("ScanWarnings() = %q, want %q", got, want)
	}

	none, err := ScanWarnings(strings.NewReader(BenignWarning + "\n"))
	if err != nil || len(none) != 0 {
		t.Errorf("ScanWarnings(benign) = %q, %v", none, err)
	}
}
