package column

import (
	"github.com/bodgit/abdesigner/plane"
	"github.com/pkg/errors"
)

var (
	errBadSize   = errors.Wrap(ErrCorruptData, "invalid dimensions")
	errBadLength = errors.Wrap(ErrCorruptData, "plane length mismatch")
)

type decoder struct {
	width, height int
	image, mask   []byte

	plane *plane.Plane
}

func (d *decoder) checkLengths() error {
	n, ok := checkedSize(d.width, d.height)
	if !ok {
		return errors.Wrapf(errBadSize, "%dx%d", d.width, d.height)
	}

	if len(d.image) != n {
		return errors.Wrapf(errBadLength, "image is %d bytes, expected %d", len(d.image), n)
	}
	if len(d.mask) != n {
		return errors.Wrapf(errBadLength, "mask is %d bytes, expected %d", len(d.mask), n)
	}

	return nil
}

func (d *decoder) decode() error {
	if err := d.checkLengths(); err != nil {
		return err
	}

	d.plane = plane.New(d.width, d.height)

	// The input length bounds the work; an empty plane has no bytes
	for i := range d.image {
		band, col := i/d.width, i%d.width
		image, mask := d.image[i], d.mask[i]

		// Bits for rows past the bottom of the plane are padding
		for k := 0; k < rows(band, d.height); k++ {
			row := band*bandHeight + k
			bit := byte(1) << uint(k)

			var v plane.Pixel
			switch {
			case image&bit != 0 && mask&bit != 0:
				return errors.Wrapf(ErrCorruptData, "pixel (%d, %d) has both image and mask bits set", row, col)
			case mask&bit != 0:
				v = plane.Transparent
			case image&bit != 0:
				v = plane.White
			default:
				v = plane.Black
			}

			if err := d.plane.Set(row, col, v); err != nil {
				return err
			}
		}
	}

	return nil
}

// Decode unpacks the image and mask planes of a width by height bitmap.
func Decode(width, height int, image, mask []byte) (*plane.Plane, error) {
	d := decoder{
		width:  width,
		height: height,
		image:  image,
		mask:   mask,
	}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.plane, nil
}
