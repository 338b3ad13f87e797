// Package badge loads the overlay image and writes the finished canvas.
package badge

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

var (
	// ErrCodec wraps decode and encode failures.
	ErrCodec = errors.New("image codec failure")
	// ErrNotPNG is returned for paths without a .png extension.
	ErrNotPNG = errors.New("only PNG images are supported")
)

// IsPNG reports whether path has a .png extension.
func IsPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}

// Load decodes the PNG at path into NRGBA and scales it by scale.
func Load(path string, scale float64) (*image.NRGBA, error) {
	if !IsPNG(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotPNG, filepath.Base(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrCodec, filepath.Base(path), err)
	}
	return Scale(src, scale)
}

// Scale returns src converted to NRGBA and resized by factor with bilinear
// filtering. The target size is rounded and a factor of 1 only converts.
func Scale(src image.Image, factor float64) (*image.NRGBA, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("scale factor must be positive, got %v", factor)
	}
	b := src.Bounds()
	w := int(math.Round(float64(b.Dx()) * factor))
	h := int(math.Round(float64(b.Dy()) * factor))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("scale factor %v shrinks %dx%d badge to nothing", factor, b.Dx(), b.Dy())
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		if n, ok := src.(*image.NRGBA); ok {
			// Byte copy keeps partially transparent pixels exact.
			for y := 0; y < h; y++ {
				i := n.PixOffset(b.Min.X, b.Min.Y+y)
				copy(dst.Pix[y*dst.Stride:], n.Pix[i:i+w*4])
			}
			return dst, nil
		}
		draw.Copy(dst, image.Point{}, src, b, draw.Src, nil)
		return dst, nil
	}
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// Save writes img to path as PNG. It encodes into a temporary file in the
// same directory and renames it into place, so a failed run never leaves
// a truncated image at path.
func Save(path string, img image.Image) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create output in %s: %w", ErrCodec, dir, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = png.Encode(tmp, img); err != nil {
		return fmt.Errorf("%w: encode png: %w", ErrCodec, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrCodec, tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", ErrCodec, path, err)
	}
	return nil
}
