package upload

import (
	"fmt"
	"net/http"
)

// MaxFileSize is the ceiling for an accepted file, in bytes.
const MaxFileSize int64 = 25 << 20

// allowedMediaTypes is fixed at build time and never mutated.
var allowedMediaTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/jpg":       {},
	"application/pdf": {},
}

// RejectKind classifies why the gatekeeper turned a file away.
type RejectKind int

const (
	UnsupportedMediaType RejectKind = iota + 1
	PayloadTooLarge
	MissingFile
)

// Rejection is the failure result of Gatekeeper.Inspect.
type Rejection struct {
	Kind   RejectKind
	Reason string
}

func (r *Rejection) Error() string { return r.Reason }

// Status maps the rejection onto an HTTP status code.
func (r *Rejection) Status() int {
	switch r.Kind {
	case UnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case PayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

// Gatekeeper decides whether an incoming file may be stored.
type Gatekeeper struct {
	maxSize int64
}

// NewGatekeeper returns a gatekeeper enforcing the fixed allow-list and MaxFileSize.
func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{maxSize: MaxFileSize}
}

// IsAllowed reports whether the declared media type is on the allow-list.
// The match is exact: a different case or any parameter is rejected.
func IsAllowed(mediaType string) bool {
	_, ok := allowedMediaTypes[mediaType]
	return ok
}

// NewMissingFile is the rejection for a request without a "file" part.
func NewMissingFile() *Rejection {
	return &Rejection{Kind: MissingFile, Reason: "File is required"}
}

// Inspect returns nil when the file may be stored and a *Rejection otherwise.
// The media type check runs first, so an oversized file of a bad type is a 415.
func (g *Gatekeeper) Inspect(mediaType string, size int64) *Rejection {
	if !IsAllowed(mediaType) {
		return &Rejection{Kind: UnsupportedMediaType, Reason: "File type not allowed"}
	}
	if size > g.maxSize {
		return &Rejection{
			Kind:   PayloadTooLarge,
			Reason: fmt.Sprintf("File too large: limit is %d MiB", g.maxSize>>20),
		}
	}
	return nil
}
