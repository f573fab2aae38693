package abdesigner

import (
	"encoding/json"
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
)

// Marshal encodes d as JSON.
func Marshal(d *Document) ([]byte, error) {
	r, err := d.Record()
	if err != nil {
		return nil, err
	}
	return json.Marshal(&r)
}

// Unmarshal decodes a JSON document. Any malformed input is reported as
// ErrCorruptData.
func Unmarshal(b []byte) (*Document, error) {
	var r DocumentRecord
	if err := json.Unmarshal(b, &r); err != nil {
		if errors.Is(err, ErrCorruptData) {
			return nil, err
		}
		return nil, errors.Wrap(ErrCorruptData, err.Error())
	}
	return DocumentFromRecord(r)
}

// Save writes d to w as JSON.
func Save(w io.Writer, d *Document) error {
	b, err := Marshal(d)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Load reads a JSON document from r.
func Load(r io.Reader) (*Document, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(b)
}
