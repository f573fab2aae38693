package abdesigner

import (
	"encoding/json"

	"github.com/bodgit/abdesigner/column"
	"github.com/pkg/errors"
)

// PlaneRecord is the stored form of a plane. Image and Mask hold the packed
// byte planes as plain integers.
type PlaneRecord struct {
	Width  int   `json:"w"`
	Height int   `json:"h"`
	Image  []int `json:"image"`
	Mask   []int `json:"mask"`
}

// LayerRecord is the stored form of a layer.
type LayerRecord struct {
	Name    string      `json:"name"`
	Row     int         `json:"i"`
	Col     int         `json:"j"`
	Visible bool        `json:"visible"`
	Plane   PlaneRecord `json:"bm"`
}

// DocumentRecord is the stored form of a document, layers bottom to top.
type DocumentRecord struct {
	Layers []LayerRecord `json:"layers"`
}

func missing(field string) error {
	return errors.Wrapf(ErrCorruptData, "missing field %q", field)
}

// UnmarshalJSON rejects records with absent fields.
func (r *PlaneRecord) UnmarshalJSON(b []byte) error {
	var raw struct {
		Width  *int   `json:"w"`
		Height *int   `json:"h"`
		Image  *[]int `json:"image"`
		Mask   *[]int `json:"mask"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch {
	case raw.Width == nil:
		return missing("w")
	case raw.Height == nil:
		return missing("h")
	case raw.Image == nil:
		return missing("image")
	case raw.Mask == nil:
		return missing("mask")
	}

	*r = PlaneRecord{
		Width:  *raw.Width,
		Height: *raw.Height,
		Image:  *raw.Image,
		Mask:   *raw.Mask,
	}
	return nil
}

// UnmarshalJSON rejects records with absent fields.
func (r *LayerRecord) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name    *string      `json:"name"`
		Row     *int         `json:"i"`
		Col     *int         `json:"j"`
		Visible *bool        `json:"visible"`
		Plane   *PlaneRecord `json:"bm"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch {
	case raw.Name == nil:
		return missing("name")
	case raw.Row == nil:
		return missing("i")
	case raw.Col == nil:
		return missing("j")
	case raw.Visible == nil:
		return missing("visible")
	case raw.Plane == nil:
		return missing("bm")
	}

	*r = LayerRecord{
		Name:    *raw.Name,
		Row:     *raw.Row,
		Col:     *raw.Col,
		Visible: *raw.Visible,
		Plane:   *raw.Plane,
	}
	return nil
}

// UnmarshalJSON rejects records without a layers sequence.
func (r *DocumentRecord) UnmarshalJSON(b []byte) error {
	var raw struct {
		Layers *[]LayerRecord `json:"layers"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Layers == nil {
		return missing("layers")
	}
	r.Layers = *raw.Layers
	return nil
}

func toInts(b []byte) []int {
	s := make([]int, len(b))
	for i, v := range b {
		s[i] = int(v)
	}
	return s
}

func toBytes(field string, s []int) ([]byte, error) {
	b := make([]byte, len(s))
	for i, v := range s {
		if v < 0 || v > 0xff {
			return nil, errors.Wrapf(ErrCorruptData, "%s[%d] = %d is not a byte", field, i, v)
		}
		b[i] = byte(v)
	}
	return b, nil
}

// Record packs the layer into its stored form.
func (l *Layer) Record() (LayerRecord, error) {
	image, mask, err := column.Encode(l.Plane)
	if err != nil {
		return LayerRecord{}, errors.Wrapf(err, "layer %q", l.Name)
	}

	return LayerRecord{
		Name:    l.Name,
		Row:     l.Row,
		Col:     l.Col,
		Visible: l.Visible,
		Plane: PlaneRecord{
			Width:  l.Plane.Width(),
			Height: l.Plane.Height(),
			Image:  toInts(image),
			Mask:   toInts(mask),
		},
	}, nil
}

// LayerFromRecord rebuilds a layer from its stored form.
func LayerFromRecord(r LayerRecord) (*Layer, error) {
	image, err := toBytes("image", r.Plane.Image)
	if err != nil {
		return nil, errors.Wrapf(err, "layer %q", r.Name)
	}
	mask, err := toBytes("mask", r.Plane.Mask)
	if err != nil {
		return nil, errors.Wrapf(err, "layer %q", r.Name)
	}

	p, err := column.Decode(r.Plane.Width, r.Plane.Height, image, mask)
	if err != nil {
		return nil, errors.Wrapf(err, "layer %q", r.Name)
	}

	return &Layer{
		Name:    r.Name,
		Row:     r.Row,
		Col:     r.Col,
		Plane:   p,
		Visible: r.Visible,
	}, nil
}

// Record packs every layer of the document, preserving their order.
func (d *Document) Record() (DocumentRecord, error) {
	r := DocumentRecord{
		Layers: make([]LayerRecord, 0, len(d.Layers)),
	}
	for _, l := range d.Layers {
		lr, err := l.Record()
		if err != nil {
			return DocumentRecord{}, err
		}
		r.Layers = append(r.Layers, lr)
	}
	return r, nil
}

// DocumentFromRecord rebuilds a document on the default canvas from its
// stored form.
func DocumentFromRecord(r DocumentRecord) (*Document, error) {
	d := &Document{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Layers: make([]*Layer, 0, len(r.Layers)),
	}
	for i, lr := range r.Layers {
		l, err := LayerFromRecord(lr)
		if err != nil {
			return nil, errors.Wrapf(err, "layers[%d]", i)
		}
		d.Layers = append(d.Layers, l)
	}
	return d, nil
}
