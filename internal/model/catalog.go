package model

// DocumentDefinition is one entry of the static document catalog.
// JSON names follow the registry's public contract.
type DocumentDefinition struct {
	ID          int    `json:"id"`
	ShortName   string `json:"nombre"`
	FullName    string `json:"nombre_completo"`
	Description string `json:"descripcion"`
	CategoryID  int    `json:"id_tipo_pst"`
}

// DocumentAssignment is a generated file attached to a definition for one response.
// FileID and FileName are nil when no file is assigned.
type DocumentAssignment struct {
	DefinitionID int     `json:"-"`
	FileID       *string `json:"id_archivo"`
	FileName     *string `json:"nombre_archivo"`
}

// Assigned reports whether the assignment carries a file.
func (a DocumentAssignment) Assigned() bool {
	return a.FileID != nil
}

// CatalogEntry is a definition flattened together with its assignment.
type CatalogEntry struct {
	DocumentDefinition
	DocumentAssignment
}

// GeneratedDocument is a synthetic document reference returned by request listings.
type GeneratedDocument struct {
	DocumentID   string `json:"documentId"`
	DocumentName string `json:"documentName"`
}

// GeneratedPhoto is a synthetic photo reference returned by image listings.
type GeneratedPhoto struct {
	PhotoID   string `json:"photoId"`
	PhotoName string `json:"photoName"`
}
