package generator

import (
	"os"
)

// Store is where generated files go.
type Store interface {
	MkdirAll(dir string) error
	WriteFile(path string, data []byte) error
}

// OSStore writes to the local filesystem.
type OSStore struct{}

func (OSStore) MkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func (OSStore) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
