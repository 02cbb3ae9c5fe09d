package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"docregistro/internal/generator"
	"docregistro/internal/model"
	"docregistro/internal/repository"
)

// CatalogPostgres is a PostgreSQL implementation of repository.CatalogRepository.
// It uses database/sql with parameterized queries.
type CatalogPostgres struct {
	db  *sql.DB
	gen generator.Generator
}

// NewCatalogPostgres creates a new CatalogPostgres repository.
// gen supplies the file ids and names recorded by Assign.
func NewCatalogPostgres(db *sql.DB, gen generator.Generator) *CatalogPostgres {
	return &CatalogPostgres{db: db, gen: gen}
}

var _ repository.CatalogRepository = (*CatalogPostgres)(nil)

// List returns every definition ordered by its declared position.
// categoryID is not part of the query: listings are never filtered.
func (r *CatalogPostgres) List(ctx context.Context, categoryID string) ([]model.DocumentDefinition, error) {
	const q = `
		SELECT id, nombre, nombre_completo, descripcion, id_tipo_pst
		FROM document_definitions
		ORDER BY position ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentDefinition, 0)
	for rows.Next() {
		var d model.DocumentDefinition
		if err := rows.Scan(
			&d.ID,
			&d.ShortName,
			&d.FullName,
			&d.Description,
			&d.CategoryID,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Assign hands out a freshly generated file for a definition and records it in
// document_assignments. The insert is guarded by the definition's existence, so an
// unknown id writes nothing.
func (r *CatalogPostgres) Assign(ctx context.Context, definitionID int) (model.DocumentAssignment, error) {
	const q = `
		INSERT INTO document_assignments (file_id, definition_id, file_name)
		SELECT $1, d.id, $2
		FROM document_definitions d
		WHERE d.id = $3
	`
	fileID := r.gen.ID()
	fileName := r.gen.FileName("")

	res, err := r.db.ExecContext(ctx, q, fileID, fileName, definitionID)
	if err != nil {
		return model.DocumentAssignment{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.DocumentAssignment{}, err
	}
	if n == 0 {
		return model.DocumentAssignment{}, fmt.Errorf("%w: %d", repository.ErrDefinitionNotFound, definitionID)
	}

	return model.DocumentAssignment{
		DefinitionID: definitionID,
		FileID:       &fileID,
		FileName:     &fileName,
	}, nil
}
