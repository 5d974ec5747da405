package imagediff

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/openscad-ofl/ofltools/pkg/errors"
)

// SSIM parameters for 8-bit grayscale images.
const (
	WindowSize = 7
	K1         = 0.01
	K2         = 0.03
	DataRange  = 255.0
)

// SSIM returns the mean structural similarity of a and b after grayscale
// conversion. Local statistics use a uniform WindowSize x WindowSize window
// with sample covariance; windows touching the border are excluded from the
// mean. Both images must have the same size, at least WindowSize in each
// dimension.
func SSIM(a, b image.Image) (float64, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0, errors.New(errors.ErrCodeInvalidInput, "image sizes differ: %dx%d vs %dx%d", ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}
	w, h := ab.Dx(), ab.Dy()
	if w < WindowSize || h < WindowSize {
		return 0, errors.New(errors.ErrCodeInvalidInput, "images must be at least %dx%d, got %dx%d", WindowSize, WindowSize, w, h)
	}

	x := gray(a)
	y := gray(b)

	sx := integral(w, h, func(i int) float64 { return x[i] })
	sy := integral(w, h, func(i int) float64 { return y[i] })
	sxx := integral(w, h, func(i int) float64 { return x[i] * x[i] })
	syy := integral(w, h, func(i int) float64 { return y[i] * y[i] })
	sxy := integral(w, h, func(i int) float64 { return x[i] * y[i] })

	const n = WindowSize * WindowSize
	const covNorm = float64(n) / float64(n-1)
	c1 := (K1 * DataRange) * (K1 * DataRange)
	c2 := (K2 * DataRange) * (K2 * DataRange)

	var total float64
	count := 0
	for top := 0; top+WindowSize <= h; top++ {
		for left := 0; left+WindowSize <= w; left++ {
			ux := sx.sum(left, top) / n
			uy := sy.sum(left, top) / n
			uxx := sxx.sum(left, top) / n
			uyy := syy.sum(left, top) / n
			uxy := sxy.sum(left, top) / n

			vx := covNorm * (uxx - ux*ux)
			vy := covNorm * (uyy - uy*uy)
			vxy := covNorm * (uxy - ux*uy)

			num := (2*ux*uy + c1) * (2*vxy + c2)
			den := (ux*ux + uy*uy + c1) * (vx + vy + c2)
			total += num / den
			count++
		}
	}
	return total / float64(count), nil
}

// Score converts an SSIM value into an integer percentage, rounding half
// to even.
func Score(ssim float64) int {
	return int(math.RoundToEven(ssim * 100))
}

// gray returns the luma of img as a row-major slice.
func gray(img image.Image) []float64 {
	g := imaging.Grayscale(img)
	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := make([]float64, w*h)
	for row := 0; row < h; row++ {
		off := row * g.Stride
		for col := 0; col < w; col++ {
			out[row*w+col] = float64(g.Pix[off+col*4])
		}
	}
	return out
}

// table is a summed-area table with one extra leading row and column.
type table struct {
	w    int
	data []float64
}

func integral(w, h int, v func(int) float64) table {
	t := table{w: w + 1, data: make([]float64, (w+1)*(h+1))}
	for row := 0; row < h; row++ {
		var line float64
		for col := 0; col < w; col++ {
			line += v(row*w + col)
			t.data[(row+1)*t.w+col+1] = t.data[row*t.w+col+1] + line
		}
	}
	return t
}

// sum returns the total of the window whose top-left corner is (left, top).
func (t table) sum(left, top int) float64 {
	right, bottom := left+WindowSize, top+WindowSize
	return t.data[bottom*t.w+right] - t.data[top*t.w+right] - t.data[bottom*t.w+left] + t.data[top*t.w+left]
}
