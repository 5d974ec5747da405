// Package imagediff compares rendered pictures by structural similarity.
package imagediff

import (
	"bytes"
	"context"
	"image"
	"os"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/openscad-ofl/ofltools/pkg/cache"
	"github.com/openscad-ofl/ofltools/pkg/errors"
)

// DefaultThreshold is the minimum score, in percent, for two images to be
// considered alike.
const DefaultThreshold = 100

// Comparison is the outcome of comparing two image files.
type Comparison struct {
	First  string
	Second string
	Score  int  // similarity percentage
	Cached bool // score came from the cache
}

// Passes reports whether the score reaches threshold.
func (c *Comparison) Passes(threshold int) bool {
	return c.Score >= threshold
}

// Comparer scores image files, caching results by content.
type Comparer struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewComparer creates a comparer. A nil cache disables caching and a nil
// logger uses the default logger.
func NewComparer(c cache.Cache, logger *log.Logger) *Comparer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Comparer{Cache: c, Logger: logger}
}

// Compare scores the image files first and second.
func (c *Comparer) Compare(ctx context.Context, first, second string) (*Comparison, error) {
	c.Logger.Info("comparing images", "first", first, "second", second)

	a, err := readFile(first)
	if err != nil {
		return nil, err
	}
	b, err := readFile(second)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{First: first, Second: second}
	key := cache.ScoreKey(a, b)
	if score, ok, err := cache.GetScore(ctx, c.Cache, key); err != nil {
		c.Logger.Warn("score cache read failed", "err", err)
	} else if ok {
		c.Logger.Debug("score cache hit", "score", score)
		cmp.Score = score
		cmp.Cached = true
		return cmp, nil
	}

	imgA, err := decode(first, a)
	if err != nil {
		return nil, err
	}
	imgB, err := decode(second, b)
	if err != nil {
		return nil, err
	}

	ssim, err := SSIM(imgA, imgB)
	if err != nil {
		return nil, err
	}
	cmp.Score = Score(ssim)
	c.Logger.Debug("computed similarity", "ssim", ssim, "score", cmp.Score)

	if err := cache.SetScore(ctx, c.Cache, key, cmp.Score); err != nil {
		c.Logger.Warn("score cache write failed", "err", err)
	}
	return cmp, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read image %s", path)
	}
	return data, nil
}

func decode(path string, data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode image %s", path)
	}
	return img, nil
}
