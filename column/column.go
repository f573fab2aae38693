/*
Package column implements the column-major bit packing used to store a
plane on disk.

Rows are grouped into bands of eight, top to bottom. Each band produces one
byte per column, left to right, so the byte for a given band and column sits
at index band*width+column. Bit k of that byte (least significant first)
holds row band*8+k. Two parallel byte sequences are written: the image
plane, where a set bit means White, and the mask plane, where a set bit
means Transparent. A pixel with neither bit set is Black and a pixel with
both bits set is invalid.
*/
package column

import (
	"math"

	"github.com/pkg/errors"
)

const (
	bandHeight = 8

	// MaxDimension is the largest width or height a packed plane may have
	MaxDimension = math.MaxUint32

	maxInt = int(^uint(0) >> 1)
)

// ErrCorruptData is returned when packed planes cannot be decoded
var ErrCorruptData = errors.New("column: corrupt data")

// Bands returns the number of eight row bands needed for height rows.
func Bands(height int) int {
	if height <= 0 {
		return 0
	}
	n := height / bandHeight
	if height%bandHeight != 0 {
		n++
	}
	return n
}

// Size returns the length in bytes of each packed plane for a bitmap of
// the given dimensions. Dimensions must not exceed MaxDimension.
func Size(width, height int) int {
	return width * Bands(height)
}

// checkedSize is Size for untrusted dimensions.
func checkedSize(width, height int) (int, bool) {
	if width < 0 || height < 0 || int64(width) > MaxDimension || int64(height) > MaxDimension {
		return 0, false
	}
	bands := Bands(height)
	if bands != 0 && width > maxInt/bands {
		return 0, false
	}
	return width * bands, true
}

// rows returns how many rows of the given band exist.
func rows(band, height int) int {
	if n := height - band*bandHeight; n < bandHeight {
		return n
	}
	return bandHeight
}
