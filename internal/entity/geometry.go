package entity

import "fmt"

// Color is an RGB triple as written in definition files (0..1 or 0..255).
type Color struct {
	R, G, B float32
}

func (c Color) String() string {
	return fmt.Sprintf("%g %g %g", c.R, c.G, c.B)
}

type Vec3 struct {
	X, Y, Z float64
}

// BBox is the default bounding box of a point entity.
type BBox struct {
	Min, Max Vec3
}

// UniformBBox returns the box with every min component lo and every max component hi.
func UniformBBox(lo, hi float64) BBox {
	return BBox{Min: Vec3{lo, lo, lo}, Max: Vec3{hi, hi, hi}}
}

func (b BBox) String() string {
	return fmt.Sprintf("(%g %g %g, %g %g %g)", b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}
