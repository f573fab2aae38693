/*
Package plane implements a fixed size grid of tri-state pixels.

Every cell holds exactly one of Black, White or Transparent and a new plane
starts out fully transparent. Coordinates are given as (row, col) with the
origin in the top-left corner.
*/
package plane

import (
	"image"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the plane
	ErrOutOfBounds = errors.New("plane: coordinate out of bounds")
	// ErrInvalidPixel is returned when a value is not one of the three
	// pixel states
	ErrInvalidPixel = errors.New("plane: invalid pixel value")
)

// Plane is a width by height grid of pixels stored row-major.
type Plane struct {
	width  int
	height int
	pix    []Pixel
}

const maxInt = int(^uint(0) >> 1)

// Area returns width*height, or false if either dimension is negative or
// the product does not fit in an int.
func Area(width, height int) (int, bool) {
	if width < 0 || height < 0 {
		return 0, false
	}
	if height != 0 && width > maxInt/height {
		return 0, false
	}
	return width * height, true
}

// New returns a transparent plane of the given size. Negative dimensions,
// or dimensions whose area does not fit in an int, give an empty plane.
func New(width, height int) *Plane {
	if _, ok := Area(width, height); !ok {
		width, height = 0, 0
	}
	p := &Plane{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}
	p.Fill(Transparent)
	return p
}

// Width returns the number of columns
func (p *Plane) Width() int {
	return p.width
}

// Height returns the number of rows
func (p *Plane) Height() int {
	return p.height
}

func (p *Plane) offset(row, col int) (int, error) {
	if row < 0 || col < 0 || row >= p.height || col >= p.width {
		return 0, errors.Wrapf(ErrOutOfBounds, "(%d, %d) outside %dx%d", row, col, p.width, p.height)
	}
	return row*p.width + col, nil
}

// Get returns the pixel at (row, col).
func (p *Plane) Get(row, col int) (Pixel, error) {
	i, err := p.offset(row, col)
	if err != nil {
		return Transparent, err
	}
	return p.pix[i], nil
}

// Set overwrites the pixel at (row, col).
func (p *Plane) Set(row, col int, v Pixel) error {
	if !v.Valid() {
		return errors.Wrapf(ErrInvalidPixel, "%d", v)
	}
	i, err := p.offset(row, col)
	if err != nil {
		return err
	}
	p.pix[i] = v
	return nil
}

// Toggle advances the pixel at (row, col) to the next state in the cycle
// and returns the new value.
func (p *Plane) Toggle(row, col int) (Pixel, error) {
	i, err := p.offset(row, col)
	if err != nil {
		return Transparent, err
	}
	p.pix[i] = p.pix[i].Next()
	return p.pix[i], nil
}

// Fill sets every pixel to v. Invalid values are ignored.
func (p *Plane) Fill(v Pixel) {
	if !v.Valid() {
		return
	}
	for i := range p.pix {
		p.pix[i] = v
	}
}

// Clone returns a deep copy of p.
func (p *Plane) Clone() *Plane {
	dup := *p
	dup.pix = append(p.pix[:0:0], p.pix...)
	return &dup
}

// Equal reports whether both planes have the same size and contents.
func (p *Plane) Equal(o *Plane) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.width != o.width || p.height != o.height {
		return false
	}
	for i := range p.pix {
		if p.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Bounds returns the plane as a rectangle anchored at the origin, with x
// running along columns and y along rows.
func (p *Plane) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}
