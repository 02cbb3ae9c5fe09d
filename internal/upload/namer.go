package upload

import (
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Namer derives storage keys for accepted files.
// Keys look like "<prefix>/<uuid-v4><ext>", with ext taken from the client filename.
type Namer struct {
	newID func() string
}

// NewNamer returns a Namer backed by random UUIDv4 identifiers.
func NewNamer() *Namer {
	return &Namer{newID: uuid.NewString}
}

// Key returns a fresh storage key under prefix for originalName.
func (n *Namer) Key(prefix, originalName string) string {
	name := n.newID() + filepath.Ext(filepath.Base(originalName))
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
