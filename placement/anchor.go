// Package placement maps timing ratios to canvas anchors and keeps
// consecutive badges from landing on top of each other.
//
// An anchor is the badge's horizontal center and its top row; y grows
// downward, so a smaller y is visually higher.
package placement

import (
	"image"
	"math"
)

// Anchor returns the badge anchor for ratio on a canvas of the given size.
// baseline is the distance from the canvas bottom to the badge's bottom
// edge and may be negative. Nothing is clamped; off-canvas anchors are
// clipped at paste time.
func Anchor(ratio float64, canvas, badge image.Point, baseline int) image.Point {
	return image.Point{
		X: int(math.Round(float64(canvas.X) * ratio)),
		Y: canvas.Y - baseline - badge.Y,
	}
}
