// Package fit computes the uniform scale that fits a fixed-size resume
// canvas into a container.
package fit

import "math"

// Origin is the anchor of the scale transform.
const Origin = "top left"

// Scale returns containerWidth/naturalWidth when both are positive and 1
// otherwise. A zero container means "render unscaled" and a zero natural
// width means the canvas has not been measured yet.
func Scale(naturalWidth, containerWidth float64) float64 {
	if !usable(naturalWidth) || !usable(containerWidth) {
		return 1
	}
	return containerWidth / naturalWidth
}

func usable(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Transform is a uniform (same x and y) scale anchored at Origin.
type Transform struct {
	Factor float64 `json:"factor"`
	Origin string  `json:"origin"`
}

// For builds the transform for a canvas of naturalWidth in a container.
func For(naturalWidth, containerWidth float64) Transform {
	return Transform{Factor: Scale(naturalWidth, containerWidth), Origin: Origin}
}

// Apply scales a width/height pair, preserving the aspect ratio.
func (t Transform) Apply(width, height float64) (float64, float64) {
	return width * t.Factor, height * t.Factor
}
