// Package blob provides a write-once filesystem store for image blobs.
package blob

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrExists is returned when a blob with the given filename already exists.
// Filenames are derived from fresh UUIDs upstream, so hitting this indicates
// a bug rather than a routine condition.
var ErrExists = errors.New("blob already exists")

// Store persists opaque blobs under generated filenames inside a single
// directory. It is safe for concurrent use; each Put touches a distinct file.
type Store struct {
	dir string
}

// NewStore creates the blob directory if needed and returns a store over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory blobs are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Put writes data under filename, refusing to overwrite an existing blob.
func (s *Store) Put(filename string, data []byte) error {
	if !isSafeFilename(filename) {
		return fmt.Errorf("invalid blob filename %q", filename)
	}

	path := filepath.Join(s.dir, filename)
	// #nosec G304: filename is validated to be a single path component
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrExists, filename)
		}
		return err
	}

	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

// isSafeFilename rejects anything that is not a plain single path component.
func isSafeFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\") {
		return false
	}
	return true
}
