package suite

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/openscad-ofl/ofltools/pkg/errors"
	"github.com/openscad-ofl/ofltools/pkg/openscad"
)

// PictureSuffix is the suffix of generated pictures.
const PictureSuffix = ".png"

// Hires scales a "WxH" resolution by scale and returns it in the renderer's
// --imgsize format "W,H".
func Hires(resolution string, scale int) (string, error) {
	parts := strings.Split(resolution, "x")
	if len(parts) != 2 {
		return "", errors.New(errors.ErrCodeInvalidInput, "resolution %q must be in WxH format, e.g. 800x600", resolution)
	}
	dims := make([]int, 2)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return "", errors.New(errors.ErrCodeInvalidInput, "resolution %q must be in WxH format, e.g. 800x600", resolution)
		}
		dims[i] = n * scale
	}
	return fmt.Sprintf("%d,%d", dims[0], dims[1]), nil
}

// PictureSpec describes a picture to produce from a library script.
type PictureSpec struct {
	Script     string // library script, with or without .scad
	Picture    string // target .png path
	Resolution string // WxH before scaling
	Scale      int
	View       View
	TempRoot   string // directory for the capture file
}

// PictureJob plans the renderer run producing spec.Picture. The script's
// .json file supplies the parameter set named after the picture.
func PictureJob(spec PictureSpec) (Job, string, error) {
	size, err := Hires(spec.Resolution, spec.Scale)
	if err != nil {
		return Job{}, "", err
	}

	full := strings.TrimSuffix(filepath.Clean(spec.Script), openscad.ScriptSuffix)
	dir := filepath.Dir(full)
	base := filepath.Base(full)

	target := strings.TrimSuffix(filepath.Clean(spec.Picture), PictureSuffix)
	targetDir := filepath.Dir(target)
	targetBase := filepath.Base(target)

	params := []string{
		"--imgsize", size,
		"-d", filepath.Join(targetDir, base+".deps"),
		"-p", filepath.Join(dir, base+".json"),
		"-P", targetBase,
		"-o", spec.Picture,
	}
	params = append(params, Arguments(nil, spec.View)...)

	job := Job{
		Name:        targetBase,
		Params:      params,
		CapturePath: filepath.Join(spec.TempRoot, base+openscad.CaptureSuffix),
	}
	return job, filepath.Join(dir, base+openscad.ScriptSuffix), nil
}
