package plane

import (
	"image"
	"image/color"
)

// Plane satisfies image.PalettedImage so it can be handed straight to the
// standard image encoders.
var _ image.PalettedImage = &Plane{}

// ColorModel returns Palette.
func (p *Plane) ColorModel() color.Model {
	return Palette
}

// At returns the color of the pixel at column x, row y. Points outside the
// plane are transparent.
func (p *Plane) At(x, y int) color.Color {
	return Palette[p.ColorIndexAt(x, y)]
}

// ColorIndexAt returns the Palette index of the pixel at column x, row y.
func (p *Plane) ColorIndexAt(x, y int) uint8 {
	v, err := p.Get(y, x)
	if err != nil {
		return uint8(Transparent)
	}
	return uint8(v)
}
