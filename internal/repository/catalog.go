package repository

import (
	"context"
	"errors"

	"docregistro/internal/model"
)

// ErrDefinitionNotFound is returned by Assign for an id that is not in the catalog.
var ErrDefinitionNotFound = errors.New("document definition not found")

// CatalogRepository is the source of document definitions and their assignments.
// Both implementations synthesize a fresh assignment per call; the Postgres one also records it.
type CatalogRepository interface {
	// List returns every definition in declaration order.
	// categoryID is accepted for parity with a real store but never filters the result.
	List(ctx context.Context, categoryID string) ([]model.DocumentDefinition, error)

	// Assign attaches a freshly generated file id and name to a definition.
	// An unknown definition yields ErrDefinitionNotFound.
	Assign(ctx context.Context, definitionID int) (model.DocumentAssignment, error)
}
