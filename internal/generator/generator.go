// Package generator is the random metadata source standing in for database-assigned values.
package generator

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// Generator produces identifiers and file names for synthetic records.
// Implementations must be safe for concurrent use.
type Generator interface {
	// ID returns a new UUIDv4 string.
	ID() string
	// FileName returns a plausible file name ending in ext.
	// An empty ext picks one of the accepted upload extensions.
	FileName(ext string) string
}

var (
	nameWords = []string{
		"acta", "comprobante", "constancia", "contrato", "credencial",
		"factura", "formato", "identificacion", "licencia", "oficio",
		"permiso", "poliza", "recibo", "solicitud", "fotografia",
	}
	defaultExts = []string{".pdf", ".jpg", ".jpeg", ".png"}
)

type random struct{}

// New returns a Generator backed by uuid and math/rand/v2; it holds no state.
func New() Generator {
	return random{}
}

func (random) ID() string {
	return uuid.NewString()
}

func (random) FileName(ext string) string {
	if ext == "" {
		ext = defaultExts[rand.IntN(len(defaultExts))]
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	word := nameWords[rand.IntN(len(nameWords))]
	return fmt.Sprintf("%s_%06d%s", word, rand.IntN(1_000_000), strings.ToLower(ext))
}
