package abdesigner

import (
	"image"

	"github.com/bodgit/abdesigner/plane"
)

// Layer is a named plane positioned on the document canvas. The origin may
// be negative or lie past the canvas edges.
type Layer struct {
	Name    string
	Row     int
	Col     int
	Plane   *plane.Plane
	Visible bool
}

// NewLayer returns a visible, transparent layer of the given size with its
// top-left corner at (row, col) on the canvas.
func NewLayer(name string, row, col, width, height int) *Layer {
	return &Layer{
		Name:    name,
		Row:     row,
		Col:     col,
		Plane:   plane.New(width, height),
		Visible: true,
	}
}

// Bounds returns the area covered by the layer in canvas coordinates, x
// running along columns.
func (l *Layer) Bounds() image.Rectangle {
	return l.Plane.Bounds().Add(image.Pt(l.Col, l.Row))
}

// Covers reports whether the canvas coordinate falls within the layer.
func (l *Layer) Covers(row, col int) bool {
	return image.Pt(col, row).In(l.Bounds())
}

// local translates a canvas coordinate to the layer's own plane.
func (l *Layer) local(row, col int) (int, int) {
	return row - l.Row, col - l.Col
}

// At returns the layer's own pixel at the canvas coordinate, or
// Transparent if the layer does not cover it.
func (l *Layer) At(row, col int) plane.Pixel {
	if !l.Covers(row, col) {
		return plane.Transparent
	}
	v, err := l.Plane.Get(l.local(row, col))
	if err != nil {
		return plane.Transparent
	}
	return v
}
