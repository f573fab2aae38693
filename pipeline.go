package abdesigner

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/abdesigner/bank"
	"github.com/pkg/errors"
)

const (
	documentExt   = ".json"
	pngExt        = ".png"
	exportWorkers = 4
)

var errCancelled = errors.New("walk cancelled")

func (s *Designer) findDocuments(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, including our own temporary files
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || filepath.Ext(file) != documentExt {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errCancelled
			}

			return nil
		})
	}()
	return out, errc
}

func writeBytes(file string, b []byte) error {
	return ioutil.WriteFile(file, b, 0644)
}

func (s *Designer) exportDocument(file string) error {
	d, err := ReadFile(file)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(file, filepath.Ext(file))

	b, err := d.Bank()
	if err != nil {
		return err
	}
	data, err := b.MarshalBinary()
	if err != nil {
		return err
	}
	if err := writeBytes(base+bank.Extension, data); err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err := d.EncodePNG(buf); err != nil {
		return err
	}
	if err := writeBytes(base+pngExt, buf.Bytes()); err != nil {
		return err
	}

	s.logger.Debug("exported document", "path", file, "icons", b.Length())
	return nil
}

func (s *Designer) exportWorker(in <-chan string, cancel context.CancelFunc) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := s.exportDocument(file); err != nil {
				errc <- errors.Wrap(err, file)
				cancel()
				// Drain so the walk is not left blocked
				for range in {
				}
				return
			}
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	var first error
	for err := range errc {
		if err == nil {
			continue
		}
		// Prefer the error that caused the cancellation
		if first == nil || first == errCancelled {
			first = err
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Export walks dir for stored documents and writes a PNG of the composited
// canvas and an icon bank next to each one.
func (s *Designer) Export(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc := s.findDocuments(ctx, dir)
	errcList = append(errcList, errc)

	for i := 0; i < exportWorkers; i++ {
		errcList = append(errcList, s.exportWorker(files, cancelFunc))
	}

	return waitForPipeline(errcList...)
}
