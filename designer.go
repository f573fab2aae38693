package abdesigner

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

// Designer is an editing session holding the currently open document.
type Designer struct {
	doc    *Document
	path   string
	logger hclog.Logger
}

// NewDesigner returns a session with a fresh default document. A nil logger
// discards all output.
func NewDesigner(logger hclog.Logger) *Designer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Designer{
		doc:    New(),
		logger: logger,
	}
}

// Document returns the open document.
func (s *Designer) Document() *Document {
	return s.doc
}

// Path returns the file the open document was loaded from or last saved
// to, or an empty string for a new document.
func (s *Designer) Path() string {
	return s.path
}

// New replaces the open document with the default one.
func (s *Designer) New() {
	s.doc = New()
	s.path = ""
	s.logger.Debug("new document")
}

// Open loads the document at path. On failure the previously open document
// is left in place.
func (s *Designer) Open(path string) error {
	d, err := ReadFile(path)
	if err != nil {
		s.logger.Warn("open failed", "path", path, "error", err)
		return err
	}
	s.doc = d
	s.path = path
	s.logger.Debug("opened document", "path", path, "layers", len(d.Layers))
	return nil
}

// Save writes the open document back to its path.
func (s *Designer) Save() error {
	if s.path == "" {
		return errors.New("document has no path")
	}
	return s.SaveAs(s.path)
}

// SaveAs writes the open document to path and remembers it.
func (s *Designer) SaveAs(path string) error {
	if err := WriteFile(path, s.doc); err != nil {
		s.logger.Warn("save failed", "path", path, "error", err)
		return err
	}
	s.path = path
	s.logger.Debug("saved document", "path", path)
	return nil
}

// Toggle toggles the pixel under the canvas coordinate on layer i.
func (s *Designer) Toggle(i, row, col int) (bool, error) {
	ok, err := s.doc.ToggleAt(i, row, col)
	if err != nil {
		return false, err
	}
	if !ok {
		s.logger.Trace("toggle ignored", "layer", i, "row", row, "col", col)
	}
	return ok, nil
}

// ReadFile loads the document stored at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Load(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return d, nil
}

// WriteFile writes d to a temporary file alongside path and renames it
// into place so an existing document survives a failed write.
func WriteFile(path string, d *Document) (err error) {
	b, err := Marshal(d)
	if err != nil {
		return err
	}

	f, err := ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()

	if err = f.Chmod(0644); err != nil {
		f.Close()
		return err
	}
	if _, err = f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), path)
}
