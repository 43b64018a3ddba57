// Package billy provides a vault store adapter over a go-billy
// filesystem.
package billy

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/custodia-labs/omnisync-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VaultStore = (*Store)(nil)

// Store writes rendered documents into a vault. Paths are slash paths
// relative to the vault root, whatever filesystem backs it.
type Store struct {
	fs billy.Filesystem
}

// NewStore creates a vault store over the given filesystem.
func NewStore(fsys billy.Filesystem) *Store {
	return &Store{fs: fsys}
}

// NewOSStore creates a vault store rooted at path on the host filesystem.
func NewOSStore(path string) *Store {
	return &Store{fs: osfs.New(path)}
}

// NewInMemoryStore creates an in-memory vault store.
func NewInMemoryStore() *Store {
	return &Store{fs: memfs.New()}
}

// EnsureFolder creates the folder and any missing parents.
func (s *Store) EnsureFolder(_ context.Context, folder string) error {
	if err := s.fs.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("vault: mkdirall %q: %w", folder, err)
	}
	return nil
}

// WriteFile writes content to path, replacing any existing file.
func (s *Store) WriteFile(_ context.Context, path string, content []byte) error {
	if err := util.WriteFile(s.fs, path, content, 0o644); err != nil {
		return fmt.Errorf("vault: writefile %q: %w", path, err)
	}
	return nil
}
