package plane

import "image/color"

// Pixel is the state of a single bitmap cell.
type Pixel uint8

// The numeric values match the pixel numbering used by the file format.
const (
	Black Pixel = iota
	White
	Transparent
)

// Palette maps each Pixel value to its color, indexed by the Pixel itself.
var Palette = color.Palette{
	color.Black,
	color.White,
	color.Transparent,
}

// Valid reports whether p is one of the three pixel states.
func (p Pixel) Valid() bool {
	return p <= Transparent
}

// Next returns the pixel that follows p in the toggle cycle
// Transparent, Black, White.
func (p Pixel) Next() Pixel {
	switch p {
	case Transparent:
		return Black
	case Black:
		return White
	default:
		return Transparent
	}
}

func (p Pixel) String() string {
	switch p {
	case Black:
		return "Black"
	case White:
		return "White"
	case Transparent:
		return "Transparent"
	}

	return "Unknown"
}
