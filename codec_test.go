package abdesigner

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/bodgit/abdesigner/plane"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scribble(r *rand.Rand, p *plane.Plane) {
	for row := 0; row < p.Height(); row++ {
		for col := 0; col < p.Width(); col++ {
			if err := p.Set(row, col, plane.Pixel(r.Intn(3))); err != nil {
				panic(err)
			}
		}
	}
}

func testDocument() *Document {
	r := rand.New(rand.NewSource(42))

	d := New()
	for _, l := range d.Layers {
		scribble(r, l.Plane)
	}
	d.Layers[1].Visible = false

	l := NewLayer("battery", -3, 120, 13, 7)
	scribble(r, l.Plane)
	d.AddLayer(l)

	return d
}

func assertSameDocument(t *testing.T, expected, actual *Document) {
	require.Len(t, actual.Layers, len(expected.Layers))
	for i, l := range expected.Layers {
		a := actual.Layers[i]
		assert.Equal(t, l.Name, a.Name)
		assert.Equal(t, l.Row, a.Row)
		assert.Equal(t, l.Col, a.Col)
		assert.Equal(t, l.Visible, a.Visible)
		assert.True(t, l.Plane.Equal(a.Plane), l.Name)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	d := testDocument()

	r, err := d.Record()
	require.NoError(t, err)

	dup, err := DocumentFromRecord(r)
	require.NoError(t, err)

	assertSameDocument(t, d, dup)
}

func TestMarshalRoundTrip(t *testing.T) {
	d := testDocument()

	b := new(bytes.Buffer)
	require.NoError(t, Save(b, d))

	dup, err := Load(b)
	require.NoError(t, err)

	assertSameDocument(t, d, dup)
}

func TestMarshalFormat(t *testing.T) {
	d := &Document{Width: 2, Height: 2}
	l := NewLayer("dot", 1, -2, 2, 3)
	require.NoError(t, l.Plane.Set(0, 0, plane.White))
	require.NoError(t, l.Plane.Set(1, 1, plane.Black))
	d.AddLayer(l)

	b, err := Marshal(d)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"layers": [{
			"name": "dot",
			"i": 1,
			"j": -2,
			"visible": true,
			"bm": {"w": 2, "h": 3, "image": [1, 0], "mask": [6, 5]}
		}]
	}`, string(b))
}

func TestUnmarshalCorrupt(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{
			"not json",
			`{"layers": [`,
		},
		{
			"missing layers",
			`{}`,
		},
		{
			"null layers",
			`{"layers": null}`,
		},
		{
			"missing name",
			`{"layers": [{"i": 0, "j": 0, "visible": true, "bm": {"w": 1, "h": 1, "image": [0], "mask": [1]}}]}`,
		},
		{
			"missing plane",
			`{"layers": [{"name": "a", "i": 0, "j": 0, "visible": true}]}`,
		},
		{
			"missing mask",
			`{"layers": [{"name": "a", "i": 0, "j": 0, "visible": true, "bm": {"w": 1, "h": 1, "image": [0]}}]}`,
		},
		{
			"image and mask both set",
			`{"layers": [{"name": "a", "i": 0, "j": 0, "visible": true, "bm": {"w": 1, "h": 1, "image": [1], "mask": [1]}}]}`,
		},
		{
			"short planes",
			`{"layers": [{"name": "a", "i": 0, "j": 0, "visible": true, "bm": {"w": 2, "h": 1, "image": [0], "mask": [1]}}]}`,
		},
		{
			"not a byte",
			`{"layers": [{"name": "a", "i": 0, "j": 0, "visible": true, "bm": {"w": 1, "h": 1, "image": [256], "mask": [0]}}]}`,
		},
		{
			"width wraps the plane size",
			`{"layers": [{"name": "a", "i": 0, "j": 0, "visible": true, "bm": {"w": 2305843009213693952, "h": 64, "image": [], "mask": []}}]}`,
		},
		{
			"height beyond uint32",
			`{"layers": [{"name": "a", "i": 0, "j": 0, "visible": true, "bm": {"w": 0, "h": 4611686018427387904, "image": [], "mask": []}}]}`,
		},
		{
			"wrong type",
			`{"layers": [{"name": 5, "i": 0, "j": 0, "visible": true, "bm": {"w": 1, "h": 1, "image": [0], "mask": [1]}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.json))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCorruptData), err.Error())
		})
	}
}

func TestUnmarshalEmpty(t *testing.T) {
	d, err := Unmarshal([]byte(`{"layers": []}`))
	require.NoError(t, err)
	assert.Empty(t, d.Layers)
	assert.Equal(t, DefaultWidth, d.Width)
}

func TestLayerFromRecord(t *testing.T) {
	var r LayerRecord
	require.NoError(t, json.Unmarshal([]byte(`{"name": "x", "i": 2, "j": 3, "visible": false, "bm": {"w": 1, "h": 2, "image": [2], "mask": [0]}}`), &r))

	l, err := LayerFromRecord(r)
	require.NoError(t, err)
	assert.Equal(t, "x", l.Name)
	assert.False(t, l.Visible)

	assert.Equal(t, plane.Black, l.At(2, 3))
	assert.Equal(t, plane.White, l.At(3, 3))
	assert.Equal(t, plane.Transparent, l.At(4, 3))
}
