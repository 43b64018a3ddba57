package driven

import "context"

// VaultStore persists rendered articles as files in the local vault.
// Paths are slash-separated and relative to the vault root.
type VaultStore interface {
	// EnsureFolder creates the folder if it does not exist, including
	// any missing parents.
	EnsureFolder(ctx context.Context, folder string) error

	// WriteFile writes content to the given vault path, replacing any
	// existing file. Writing the same content twice is harmless.
	WriteFile(ctx context.Context, path string, content []byte) error
}
