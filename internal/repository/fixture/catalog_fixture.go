package fixture

import (
	"context"
	"fmt"

	"docregistro/internal/generator"
	"docregistro/internal/model"
	"docregistro/internal/repository"
)

// definitions is the static catalog. It is read-only after package init.
var definitions = []model.DocumentDefinition{
	{
		ID:          111,
		ShortName:   "Formato firmado",
		FullName:    "Formato de solicitud de inscripción firmado",
		Description: "Formato de solicitud con firma autógrafa del titular o representante legal",
		CategoryID:  18,
	},
	{
		ID:          112,
		ShortName:   "Identificación oficial",
		FullName:    "Identificación oficial vigente del titular",
		Description: "INE, pasaporte o cédula profesional vigente",
		CategoryID:  18,
	},
	{
		ID:          113,
		ShortName:   "Comprobante de domicilio",
		FullName:    "Comprobante de domicilio del establecimiento",
		Description: "Recibo de luz, agua o teléfono con antigüedad no mayor a tres meses",
		CategoryID:  18,
	},
	{
		ID:          114,
		ShortName:   "Constancia fiscal",
		FullName:    "Constancia de situación fiscal",
		Description: "Constancia emitida por el SAT con el RFC del prestador",
		CategoryID:  18,
	},
	{
		ID:          115,
		ShortName:   "Acta constitutiva",
		FullName:    "Acta constitutiva de la sociedad",
		Description: "Sólo para personas morales, con sello del registro público",
		CategoryID:  18,
	},
	{
		ID:          116,
		ShortName:   "Poder notarial",
		FullName:    "Poder notarial del representante legal",
		Description: "Documento notarial que acredita la representación",
		CategoryID:  18,
	},
	{
		ID:          117,
		ShortName:   "Licencia de funcionamiento",
		FullName:    "Licencia municipal de funcionamiento",
		Description: "Licencia vigente expedida por el municipio",
		CategoryID:  18,
	},
	{
		ID:          118,
		ShortName:   "Fotografía de fachada",
		FullName:    "Fotografía de la fachada del establecimiento",
		Description: "Imagen a color donde se aprecie el nombre comercial",
		CategoryID:  18,
	},
}

// Definitions returns a copy of the static catalog in declaration order.
func Definitions() []model.DocumentDefinition {
	out := make([]model.DocumentDefinition, len(definitions))
	copy(out, definitions)
	return out
}

// CatalogFixture serves the static catalog and synthesizes an assignment per call.
type CatalogFixture struct {
	gen generator.Generator
}

// NewCatalogFixture creates the in-memory catalog repository.
func NewCatalogFixture(gen generator.Generator) *CatalogFixture {
	return &CatalogFixture{gen: gen}
}

var _ repository.CatalogRepository = (*CatalogFixture)(nil)

// List ignores categoryID and returns the whole catalog.
func (f *CatalogFixture) List(ctx context.Context, categoryID string) ([]model.DocumentDefinition, error) {
	return Definitions(), nil
}

// Assign generates a fresh file id and name for a known definition.
func (f *CatalogFixture) Assign(ctx context.Context, definitionID int) (model.DocumentAssignment, error) {
	for _, d := range definitions {
		if d.ID == definitionID {
			id := f.gen.ID()
			name := f.gen.FileName("")
			return model.DocumentAssignment{
				DefinitionID: definitionID,
				FileID:       &id,
				FileName:     &name,
			}, nil
		}
	}
	return model.DocumentAssignment{}, fmt.Errorf("%w: %d", repository.ErrDefinitionNotFound, definitionID)
}
