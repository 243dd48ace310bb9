package client

import (
	"fmt"
	"os"
	"path/filepath"
)

// CodeLoader reads transaction code and validity predicate blobs. Named
// blobs are resolved against a single directory the ledger distribution
// ships them in; explicit paths bypass it.
type CodeLoader struct {
	// Dir is the directory named blobs are loaded from.
	Dir string
}

// Load reads the blob with the given name from the loader's directory.
func (l CodeLoader) Load(name string) ([]byte, error) {
	return l.LoadPath(filepath.Join(l.Dir, name))
}

// LoadPath reads the blob at the given explicit path.
func (l CodeLoader) LoadPath(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("can't read code from %s: %w", path, err)
	}
	return b, nil
}
