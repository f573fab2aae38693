package abdesigner

import (
	"image"
	"image/color"

	"github.com/bodgit/abdesigner/plane"
	"github.com/ericpauley/go-quantize/quantize"
)

const (
	tones         = 2
	alphaOpaque   = 0x8000
	grayThreshold = 0x80
)

func opaque(c color.Color) bool {
	_, _, _, a := c.RGBA()
	return a >= alphaOpaque
}

func luminance(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// twoTone reduces the opaque pixels of m to two colors and returns a
// function classifying a color as White or Black.
func twoTone(m image.Image) func(color.Color) plane.Pixel {
	byLuminance := func(c color.Color) plane.Pixel {
		if luminance(c) >= grayThreshold {
			return plane.White
		}
		return plane.Black
	}

	q := quantize.MedianCutQuantizer{
		Weighting: func(m image.Image, x, y int) uint32 {
			if opaque(m.At(x, y)) {
				return 1
			}
			return 0
		},
	}
	p := q.Quantize(make(color.Palette, 0, tones), m)
	if len(p) < tones {
		return byLuminance
	}

	lo, hi := luminance(p[0]), luminance(p[0])
	for _, c := range p[1:] {
		switch l := luminance(c); {
		case l < lo:
			lo = l
		case l > hi:
			hi = l
		}
	}
	if lo == hi {
		return byLuminance
	}
	mid := (int(lo) + int(hi)) / 2

	return func(c color.Color) plane.Pixel {
		if int(luminance(p[p.Index(c)])) > mid {
			return plane.White
		}
		return plane.Black
	}
}

// LayerFromImage converts m into a new layer at (row, col). Mostly
// transparent pixels stay Transparent and the rest are reduced to Black and
// White.
func LayerFromImage(name string, row, col int, m image.Image) (*Layer, error) {
	b := m.Bounds()
	l := NewLayer(name, row, col, b.Dx(), b.Dy())

	var classify func(color.Color) plane.Pixel
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := m.At(x, y)
			if !opaque(c) {
				continue
			}
			if classify == nil {
				classify = twoTone(m)
			}
			if err := l.Plane.Set(y-b.Min.Y, x-b.Min.X, classify(c)); err != nil {
				return nil, err
			}
		}
	}

	return l, nil
}
