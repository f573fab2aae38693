package plane

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsTransparent(t *testing.T) {
	p := New(5, 3)
	assert.Equal(t, 5, p.Width())
	assert.Equal(t, 3, p.Height())

	for row := 0; row < p.Height(); row++ {
		for col := 0; col < p.Width(); col++ {
			v, err := p.Get(row, col)
			require.NoError(t, err)
			assert.Equal(t, Transparent, v)
		}
	}
}

func TestNewOversized(t *testing.T) {
	_, ok := Area(1<<40, 1<<40)
	assert.False(t, ok)

	n, ok := Area(3, 4)
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	for _, p := range []*Plane{New(1<<40, 1<<40), New(-1, 5)} {
		assert.Equal(t, 0, p.Width())
		assert.Equal(t, 0, p.Height())
	}
}

func TestSetGet(t *testing.T) {
	p := New(4, 4)
	require.NoError(t, p.Set(1, 2, Black))
	require.NoError(t, p.Set(3, 0, White))

	v, err := p.Get(1, 2)
	require.NoError(t, err)
	assert.Equal(t, Black, v)

	v, err = p.Get(3, 0)
	require.NoError(t, err)
	assert.Equal(t, White, v)

	v, err = p.Get(2, 1)
	require.NoError(t, err)
	assert.Equal(t, Transparent, v)
}

func TestSetInvalidPixel(t *testing.T) {
	p := New(2, 2)
	err := p.Set(0, 0, Pixel(3))
	assert.True(t, errors.Is(err, ErrInvalidPixel))

	v, err := p.Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Transparent, v)
}

func TestToggleCycle(t *testing.T) {
	p := New(1, 1)

	expected := []Pixel{Black, White, Transparent, Black, White, Transparent}
	for _, want := range expected {
		v, err := p.Toggle(0, 0)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}

	for _, start := range []Pixel{Black, White, Transparent} {
		require.NoError(t, p.Set(0, 0, start))
		for i := 0; i < 3; i++ {
			_, err := p.Toggle(0, 0)
			require.NoError(t, err)
		}
		v, err := p.Get(0, 0)
		require.NoError(t, err)
		assert.Equal(t, start, v, start.String())
	}
}

func TestOutOfBounds(t *testing.T) {
	p := New(8, 4)

	tests := []struct {
		name     string
		row, col int
	}{
		{"row equals height", 4, 0},
		{"col equals width", 0, 8},
		{"negative row", -1, 0},
		{"negative col", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Get(tt.row, tt.col)
			assert.True(t, errors.Is(err, ErrOutOfBounds))

			err = p.Set(tt.row, tt.col, Black)
			assert.True(t, errors.Is(err, ErrOutOfBounds))

			_, err = p.Toggle(tt.row, tt.col)
			assert.True(t, errors.Is(err, ErrOutOfBounds))
		})
	}
}

func TestCloneEqual(t *testing.T) {
	p := New(3, 2)
	require.NoError(t, p.Set(1, 1, White))

	dup := p.Clone()
	assert.True(t, p.Equal(dup))

	require.NoError(t, dup.Set(0, 0, Black))
	assert.False(t, p.Equal(dup))
	assert.False(t, p.Equal(New(2, 3)))
}

func TestImage(t *testing.T) {
	p := New(3, 2)
	require.NoError(t, p.Set(1, 2, Black))
	require.NoError(t, p.Set(0, 1, White))

	assert.Equal(t, 3, p.Bounds().Dx())
	assert.Equal(t, 2, p.Bounds().Dy())
	assert.Equal(t, color.Black, p.At(2, 1))
	assert.Equal(t, color.White, p.At(1, 0))
	assert.Equal(t, color.Transparent, p.At(0, 0))
	assert.Equal(t, color.Transparent, p.At(10, 10))
	assert.Equal(t, uint8(Black), p.ColorIndexAt(2, 1))
}

func TestPixelString(t *testing.T) {
	assert.Equal(t, "Black", Black.String())
	assert.Equal(t, "White", White.String())
	assert.Equal(t, "Transparent", Transparent.String())
	assert.Equal(t, "Unknown", Pixel(7).String())
}
