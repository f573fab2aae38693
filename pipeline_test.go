package abdesigner

import (
	"bytes"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/abdesigner/bank"
	"github.com/bodgit/abdesigner/plane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	sub := filepath.Join(dir, "sub")
	hidden := filepath.Join(dir, ".hidden")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, os.Mkdir(hidden, 0755))

	d := New()
	_, err := d.ToggleAt(1, 10, 20)
	require.NoError(t, err)

	require.NoError(t, WriteFile(filepath.Join(dir, "a.json"), d))
	require.NoError(t, WriteFile(filepath.Join(sub, "b.json"), New()))
	require.NoError(t, WriteFile(filepath.Join(hidden, "c.json"), New()))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	s := NewDesigner(nil)
	require.NoError(t, s.Export(dir))

	for _, base := range []string{filepath.Join(dir, "a"), filepath.Join(sub, "b")} {
		assert.FileExists(t, base+".png")
		assert.FileExists(t, base+bank.Extension)
	}
	_, err = os.Stat(filepath.Join(hidden, "c.png"))
	assert.True(t, os.IsNotExist(err))

	b, err := ioutil.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	m, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 128, m.Bounds().Dx())
	assert.Equal(t, 64, m.Bounds().Dy())
	assert.Equal(t, plane.Palette[plane.Black], plane.Palette.Convert(m.At(20, 10)))

	b, err = ioutil.ReadFile(filepath.Join(dir, "a"+bank.Extension))
	require.NoError(t, err)
	bk := bank.New()
	require.NoError(t, bk.UnmarshalBinary(b))
	assert.Equal(t, 2, bk.Length())

	icon, ok := bk.Get("sp1")
	require.True(t, ok)
	assert.Equal(t, 16, icon.Width)
	assert.Equal(t, byte(0), icon.Mask[0]&1)
}

func TestExportCorrupt(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{}`), 0644))

	s := NewDesigner(nil)
	err := s.Export(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}
