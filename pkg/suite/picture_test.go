package suite

import (
	"slices"
	"testing"

	"github.com/openscad-ofl/ofltools/pkg/errors"
)

func TestHires(t *testing.T) {
	tests := []struct {
		in    string
		scale int
		want  string
	}{
		{"800x600", 8, "6400,4800"},
		{"100x100", 1, "100,100"},
		{"64x48", 2, "128,96"},
	}
	for _, tt := range tests {
		got, err := Hires(tt.in, tt.scale)
		if err != nil {
			t.Fatalf("Hires(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Hires(%q, %d) = %q, want %q", tt.in, tt.scale, got, tt.want)
		}
	}
}

func TestHiresInvalid(t *testing.T) {
	for _, in := range []string{"", "800", "800x", "x600", "800x600x2", "axb", "0x10", "-1x10"} {
		if _, err := Hires(in, 8); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Hires(%q) error = %v, want INVALID_INPUT", in, err)
		}
	}
}

func TestPictureJob(t *testing.T) {
	job, script, err := PictureJob(PictureSpec{
		Script:     "lib/foundation/hole.scad",
		Picture:    "docs/pics/hole-round.png",
		Resolution: "800x600",
		Scale:      8,
		View:       View{Camera: "0,0,0,55,0,25,140"},
		TempRoot:   "/tmp",
	})
	if err != nil {
		t.Fatal(err)
	}
	if script != "lib/foundation/hole.scad" {
		t.Errorf("script = %q", script)
	}
	want := []string{
		"--imgsize", "6400,4800",
		"-d", "docs/pics/hole.deps",
		"-p", "lib/foundation/hole.json",
		"-P", "hole-round",
		"-o", "docs/pics/hole-round.png",
		"--camera", "0,0,0,55,0,25,140",
	}
	if !slices.Equal(job.Params, want) {
		t.Errorf("Params = %v\nwant %v", job.Params, want)
	}
	if job.CapturePath != "/tmp/hole.echo" {
		t.Errorf("CapturePath = %q", job.CapturePath)
	}
	if job.Name != "hole-round" {
		t.Errorf("Name = %q", job.Name)
	}
}

func TestPictureJobScriptWithoutSuffix(t *testing.T) {
	_, script, err := PictureJob(PictureSpec{
		Script:     "lib/hole",
		Picture:    "hole.png",
		Resolution: "10x10",
		Scale:      1,
		TempRoot:   "/var/tmp",
	})
	if err != nil {
		t.Fatal(err)
	}
	if script != "lib/hole.scad" {
		t.Errorf("script = %q", script)
	}
}

func TestPictureJobBadResolution(t *testing.T) {
	if _, _, err := PictureJob(PictureSpec{Script: "a.scad", Picture: "a.png", Resolution: "big", Scale: 8}); err == nil {
		t.Error("expected error")
	}
}
