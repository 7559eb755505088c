package csvfile

import (
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/covid-case-report/internal/domain"
)

// writeFile truncates path and hands it to fn. The file is closed on every
// path and a close failure is reported like a write failure.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", domain.ErrIO, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %v", domain.ErrIO, path, cerr)
		}
	}()

	if err := fn(f); err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrIO, path, err)
	}
	return nil
}
