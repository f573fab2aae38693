package column

import (
	"github.com/bodgit/abdesigner/plane"
	"github.com/pkg/errors"
)

type encoder struct {
	p     *plane.Plane
	image []byte
	mask  []byte
}

func (e *encoder) encode() error {
	width, height := e.p.Width(), e.p.Height()

	for band := 0; band < Bands(height); band++ {
		for col := 0; col < width; col++ {
			var image, mask byte
			for k := 0; k < rows(band, height); k++ {
				row := band*bandHeight + k

				v, err := e.p.Get(row, col)
				if err != nil {
					return err
				}

				switch v {
				case plane.Black:
				case plane.White:
					image |= 1 << uint(k)
				case plane.Transparent:
					mask |= 1 << uint(k)
				default:
					return errors.Wrapf(ErrCorruptData, "invalid pixel %d at (%d, %d)", v, row, col)
				}
			}

			i := band*width + col
			e.image[i] = image
			e.mask[i] = mask
		}
	}

	return nil
}

// Encode packs p into its image and mask planes, each Size(width, height)
// bytes long.
func Encode(p *plane.Plane) ([]byte, []byte, error) {
	n := Size(p.Width(), p.Height())
	e := encoder{
		p:     p,
		image: make([]byte, n),
		mask:  make([]byte, n),
	}

	if err := e.encode(); err != nil {
		return nil, nil, err
	}

	return e.image, e.mask, nil
}
