// Package composite stamps a badge onto the canvas.
//
// Compositing is an alpha test, not a blend: every source pixel with
// alpha > 0 replaces all four destination channels, every pixel with
// alpha == 0 leaves the destination alone. Overlapping semi-transparent
// badges therefore show only the last one drawn.
package composite

import "image"

// Clip places a badge of size srcSize whose horizontal center is anchor.X
// and whose top row is anchor.Y, then trims it to dst. It returns the
// destination rectangle still covered and the matching top-left point in
// badge coordinates. ok is false when nothing is left to draw.
func Clip(dst image.Rectangle, srcSize, anchor image.Point) (dr image.Rectangle, sp image.Point, ok bool) {
	if srcSize.X <= 0 || srcSize.Y <= 0 {
		return image.Rectangle{}, image.Point{}, false
	}
	// Truncate toward zero like a float-to-int cast, so odd widths lean
	// right of center.
	left := int(float64(anchor.X) - float64(srcSize.X)/2)
	full := image.Rect(left, anchor.Y, left+srcSize.X, anchor.Y+srcSize.Y)

	dr = full.Intersect(dst)
	if dr.Empty() {
		return image.Rectangle{}, image.Point{}, false
	}
	return dr, dr.Min.Sub(full.Min), true
}

// Paste stamps src onto dst at anchor. Geometry that falls entirely off
// the canvas is a silent no-op.
func Paste(dst, src *image.NRGBA, anchor image.Point) {
	if dst == nil || src == nil {
		return
	}
	dr, sp, ok := Clip(dst.Bounds(), src.Bounds().Size(), anchor)
	if !ok {
		return
	}
	sp = sp.Add(src.Rect.Min)

	width := dr.Dx() * 4
	for y := 0; y < dr.Dy(); y++ {
		si := src.PixOffset(sp.X, sp.Y+y)
		di := dst.PixOffset(dr.Min.X, dr.Min.Y+y)
		srow := src.Pix[si : si+width : si+width]
		drow := dst.Pix[di : di+width : di+width]
		for i := 0; i < width; i += 4 {
			if srow[i+3] == 0 {
				continue
			}
			copy(drow[i:i+4], srow[i:i+4])
		}
	}
}
