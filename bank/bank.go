/*
Package bank implements the icon bank flashed to the display.

The bank holds up to 64 icons looked up by the CRC-32 of their name. It is
written as 64 little-endian name checksums padded with 0xffffffff, then 64
little-endian 16-bit icon indices padded with 0xffff, then each icon in
turn: one byte width, one byte height, followed by its packed image and
mask planes as produced by the column package.
*/
package bank

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"
	"sort"

	"github.com/bodgit/abdesigner/column"
	"github.com/pkg/errors"
)

const (
	// Filename extension used when writing a bank to disk
	Extension  = ".bank"
	maxEntries = 64
	maxSize    = 0xff
	noKey      = 0xffffffff
	noIndex    = 0xffff
)

var (
	// ErrDuplicate is returned when an icon name collides with one already
	// in the bank
	ErrDuplicate = errors.New("bank: duplicate icon name")

	errTooMany      = errors.Errorf("bank: more than %d icons", maxEntries)
	errBadSize      = errors.New("bank: invalid icon size")
	errInsufficient = errors.New("bank: insufficient data")
)

// Icon is a single packed bitmap.
type Icon struct {
	Width  int
	Height int
	Image  []byte
	Mask   []byte
}

func (i Icon) validate() error {
	if i.Width < 1 || i.Width > maxSize || i.Height < 1 || i.Height > maxSize {
		return errors.Wrapf(errBadSize, "%dx%d", i.Width, i.Height)
	}
	n := column.Size(i.Width, i.Height)
	if len(i.Image) != n || len(i.Mask) != n {
		return errors.Wrapf(errBadSize, "planes are %d and %d bytes, expected %d", len(i.Image), len(i.Mask), n)
	}
	return nil
}

// Key returns the lookup key for an icon name.
func Key(name string) uint32 {
	return crc32.ChecksumIEEE([]byte(name))
}

// Bank is the icon table. It implements the encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler interfaces.
type Bank struct {
	keys  map[uint32]uint16
	icons []Icon
}

// New returns an empty bank
func New() *Bank {
	return &Bank{
		keys: make(map[uint32]uint16),
	}
}

// Length returns the number of icons in the bank
func (b *Bank) Length() int {
	return len(b.keys)
}

// Set stores icon under name. It fails with ErrDuplicate, leaving the bank
// unchanged, if the name or its key is already present.
func (b *Bank) Set(name string, icon Icon) error {
	if err := icon.validate(); err != nil {
		return err
	}
	key := Key(name)
	if _, ok := b.keys[key]; ok {
		return errors.Wrapf(ErrDuplicate, "%q", name)
	}
	if len(b.keys) >= maxEntries {
		return errTooMany
	}
	b.icons = append(b.icons, icon)
	b.keys[key] = uint16(len(b.icons) - 1)
	return nil
}

// Get returns the icon stored under name.
func (b *Bank) Get(name string) (Icon, bool) {
	i, ok := b.keys[Key(name)]
	if !ok {
		return Icon{}, false
	}
	return b.icons[i], true
}

// MarshalBinary encodes the bank into binary form and returns the result
func (b *Bank) MarshalBinary() ([]byte, error) {
	length := len(b.keys)

	if length > maxEntries {
		return nil, errTooMany
	}

	keys := make([]uint32, 0, length)
	for k := range b.keys {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	buf := new(bytes.Buffer)

	// Name checksums, padded to 256 bytes
	if err := binary.Write(buf, binary.LittleEndian, keys); err != nil {
		return nil, err
	}
	if _, err := buf.Write(bytes.Repeat([]byte{0xff, 0xff, 0xff, 0xff}, maxEntries-length)); err != nil {
		return nil, err
	}

	// Icon indices, padded to 384 bytes
	for _, k := range keys {
		if err := binary.Write(buf, binary.LittleEndian, b.keys[k]); err != nil {
			return nil, err
		}
	}
	if _, err := buf.Write(bytes.Repeat([]byte{0xff, 0xff}, maxEntries-length)); err != nil {
		return nil, err
	}

	for _, icon := range b.icons {
		if err := icon.validate(); err != nil {
			return nil, err
		}
		buf.WriteByte(byte(icon.Width))
		buf.WriteByte(byte(icon.Height))
		buf.Write(icon.Image)
		buf.Write(icon.Mask)
	}

	return buf.Bytes(), nil
}

func readFull(r io.Reader, p []byte) error {
	if _, err := io.ReadFull(r, p); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errInsufficient
		}
		return err
	}
	return nil
}

// UnmarshalBinary decodes the bank from binary form
func (b *Bank) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	keys := make([]uint32, maxEntries)
	if err := binary.Read(r, binary.LittleEndian, keys); err != nil {
		return errInsufficient
	}

	indices := make([]uint16, maxEntries)
	if err := binary.Read(r, binary.LittleEndian, indices); err != nil {
		return errInsufficient
	}

	checksums := make(map[uint32]uint16)
	count := 0
	for i, k := range keys {
		if k == noKey || indices[i] == noIndex {
			continue
		}
		checksums[k] = indices[i]
		if int(indices[i]) >= count {
			count = int(indices[i]) + 1
		}
	}

	icons := make([]Icon, 0, count)
	for i := 0; i < count; i++ {
		var size [2]byte
		if err := readFull(r, size[:]); err != nil {
			return err
		}

		icon := Icon{
			Width:  int(size[0]),
			Height: int(size[1]),
		}
		n := column.Size(icon.Width, icon.Height)
		icon.Image = make([]byte, n)
		icon.Mask = make([]byte, n)
		if err := readFull(r, icon.Image); err != nil {
			return err
		}
		if err := readFull(r, icon.Mask); err != nil {
			return err
		}
		if err := icon.validate(); err != nil {
			return err
		}

		icons = append(icons, icon)
	}

	b.keys = checksums
	b.icons = icons

	return nil
}
