// Package file provides a file-based implementation of the ConfigStore
// driven port. Configuration is persisted as nested TOML tables in the
// local filesystem and addressed in memory through dot-notation keys.
package file
