package abdesigner

import (
	"image"

	"github.com/bodgit/abdesigner/plane"
	"github.com/pkg/errors"
)

const (
	// DefaultWidth is the canvas width of a new document
	DefaultWidth = 128
	// DefaultHeight is the canvas height of a new document
	DefaultHeight = 64

	spriteName = "sp1"
	spriteRow  = 10
	spriteCol  = 20
	spriteSize = 16
)

// Document is an ordered stack of layers sharing one canvas. The first
// layer is the bottom of the stack.
type Document struct {
	Width  int
	Height int
	Layers []*Layer
}

// New returns the default document: a full canvas "background" layer with
// a 16 by 16 "sp1" sprite layer above it.
func New() *Document {
	return &Document{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Layers: []*Layer{
			NewLayer("background", 0, 0, DefaultWidth, DefaultHeight),
			NewLayer(spriteName, spriteRow, spriteCol, spriteSize, spriteSize),
		},
	}
}

// Layer returns the layer at index i.
func (d *Document) Layer(i int) (*Layer, error) {
	if i < 0 || i >= len(d.Layers) {
		return nil, errors.Wrapf(ErrNoSuchLayer, "index %d of %d", i, len(d.Layers))
	}
	return d.Layers[i], nil
}

// LayerByName returns the index of the first layer called name, or -1 and
// nil if there is none.
func (d *Document) LayerByName(name string) (int, *Layer) {
	for i, l := range d.Layers {
		if l.Name == name {
			return i, l
		}
	}
	return -1, nil
}

// AddLayer places l on top of the stack.
func (d *Document) AddLayer(l *Layer) {
	d.Layers = append(d.Layers, l)
}

// RemoveLayer deletes the layer at index i.
func (d *Document) RemoveLayer(i int) error {
	if _, err := d.Layer(i); err != nil {
		return err
	}
	d.Layers = append(d.Layers[:i], d.Layers[i+1:]...)
	return nil
}

// SetVisible shows or hides the layer at index i.
func (d *Document) SetVisible(i int, visible bool) error {
	l, err := d.Layer(i)
	if err != nil {
		return err
	}
	l.Visible = visible
	return nil
}

// ToggleAt toggles the pixel of layer i under the canvas coordinate. It
// reports false without changing anything if the layer is hidden or does
// not cover the coordinate.
func (d *Document) ToggleAt(i, row, col int) (bool, error) {
	l, err := d.Layer(i)
	if err != nil {
		return false, err
	}
	if !l.Visible || !l.Covers(row, col) {
		return false, nil
	}
	if _, err := l.Plane.Toggle(l.local(row, col)); err != nil {
		return false, err
	}
	return true, nil
}

// CompositePixel returns the visible pixel at the canvas coordinate. Layers
// are painted bottom to top and transparent pixels let the layers below
// show through.
func (d *Document) CompositePixel(row, col int) plane.Pixel {
	v := plane.Transparent
	for _, l := range d.Layers {
		if !l.Visible {
			continue
		}
		if p := l.At(row, col); p != plane.Transparent {
			v = p
		}
	}
	return v
}

// Composite renders the whole canvas.
func (d *Document) Composite() *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, d.Width, d.Height), plane.Palette)
	for row := 0; row < d.Height; row++ {
		for col := 0; col < d.Width; col++ {
			m.SetColorIndex(col, row, uint8(d.CompositePixel(row, col)))
		}
	}
	return m
}
