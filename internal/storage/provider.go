package storage

import "time"

// NotebookInfo describes a notebook file found under the storage root.
type NotebookInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Provider is the set of file operations the commands and the service
// need. Paths are always relative to the storage root.
type Provider interface {
	Read(path string) ([]byte, error)
	Write(path string, content []byte) error
	List(dir string, m *Matcher) ([]NotebookInfo, error)
	Root() string
}

var _ Provider = (*FS)(nil)
