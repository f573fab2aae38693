package abdesigner

import (
	"image/png"
	"io"

	"github.com/bodgit/abdesigner/bank"
	"github.com/bodgit/abdesigner/column"
	"github.com/pkg/errors"
)

// Bank packs every layer of the document into an icon bank keyed by layer
// name. Two layers with the same name fail with bank.ErrDuplicate.
func (d *Document) Bank() (*bank.Bank, error) {
	b := bank.New()
	for _, l := range d.Layers {
		image, mask, err := column.Encode(l.Plane)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %q", l.Name)
		}
		icon := bank.Icon{
			Width:  l.Plane.Width(),
			Height: l.Plane.Height(),
			Image:  image,
			Mask:   mask,
		}
		if err := b.Set(l.Name, icon); err != nil {
			return nil, errors.Wrapf(err, "layer %q", l.Name)
		}
	}
	return b, nil
}

// EncodePNG writes the composited canvas to w as a PNG.
func (d *Document) EncodePNG(w io.Writer) error {
	return png.Encode(w, d.Composite())
}
