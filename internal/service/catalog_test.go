package service

import (
	"context"
	"errors"
	"testing"

	"docregistro/internal/generator"
	"docregistro/internal/model"
	"docregistro/internal/repository/fixture"
	repoMocks "docregistro/internal/repository/mocks"
	"docregistro/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignmentPolicy(t *testing.T) {
	p, err := ParseAssignmentPolicy("")
	require.NoError(t, err)
	assert.Equal(t, AssignAlways, p)

	p, err = ParseAssignmentPolicy("alternate")
	require.NoError(t, err)
	assert.Equal(t, AssignAlternate, p)

	_, err = ParseAssignmentPolicy("sometimes")
	assert.Error(t, err)
}

func TestCatalogService_ListFixture(t *testing.T) {
	ctx := context.Background()
	svc := NewCatalogService(fixture.NewCatalogFixture(generator.New()), AssignAlways)

	first, err := svc.List(ctx, "18")
	require.NoError(t, err)
	second, err := svc.List(ctx, "18")
	require.NoError(t, err)

	require.Len(t, first, 8)
	require.Len(t, second, 8)
	assert.Equal(t, 111, first[0].ID)
	assert.Equal(t, "Formato firmado", first[0].ShortName)

	for i := range first {
		// definition fields are stable, assignments are regenerated
		assert.Equal(t, first[i].DocumentDefinition, second[i].DocumentDefinition)
		require.True(t, first[i].Assigned())
		assert.Equal(t, first[i].ID, first[i].DefinitionID)
		assert.NotEqual(t, *first[i].FileID, *second[i].FileID)
	}
}

func TestCatalogService_AlternatePolicy(t *testing.T) {
	svc := NewCatalogService(fixture.NewCatalogFixture(generator.New()), AssignAlternate)

	entries, err := svc.List(context.Background(), "18")
	require.NoError(t, err)
	require.Len(t, entries, 8)

	for i, e := range entries {
		assert.Equal(t, i%2 == 0, e.Assigned(), "entry %d", i)
		assert.Equal(t, e.ID, e.DefinitionID)
	}
}

func TestCatalogService_ListPostgresAssignsEveryEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	defs := fixture.Definitions()
	rows := sqlmock.NewRows([]string{"id", "nombre", "nombre_completo", "descripcion", "id_tipo_pst"})
	for _, d := range defs {
		rows.AddRow(d.ID, d.ShortName, d.FullName, d.Description, d.CategoryID)
	}
	mock.ExpectQuery("SELECT (.+) FROM document_definitions").WillReturnRows(rows)
	for _, d := range defs {
		mock.ExpectExec("INSERT INTO document_assignments").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), d.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	svc := NewCatalogService(postgres.NewCatalogPostgres(db, generator.New()), AssignAlways)
	entries, err := svc.List(context.Background(), "18")
	require.NoError(t, err)

	require.Len(t, entries, len(defs))
	assert.Equal(t, 111, entries[0].ID)
	for i, e := range entries {
		require.True(t, e.Assigned(), "entry %d", i)
		assert.NotEmpty(t, *e.FileID)
		assert.NotEmpty(t, *e.FileName)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogService_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing category", func(t *testing.T) {
		svc := NewCatalogService(new(repoMocks.MockCatalogRepository), AssignAlways)
		_, err := svc.List(ctx, "")
		assert.ErrorIs(t, err, ErrMissingParameter)
	})

	t.Run("repository list error", func(t *testing.T) {
		mRepo := new(repoMocks.MockCatalogRepository)
		mRepo.On("List", ctx, "18").Return(nil, errors.New("db fail"))
		svc := NewCatalogService(mRepo, AssignAlways)

		_, err := svc.List(ctx, "18")
		assert.EqualError(t, err, "list definitions: db fail")
		mRepo.AssertExpectations(t)
	})

	t.Run("repository assign error", func(t *testing.T) {
		mRepo := new(repoMocks.MockCatalogRepository)
		mRepo.On("List", ctx, "18").Return([]model.DocumentDefinition{{ID: 111}}, nil)
		mRepo.On("Assign", ctx, 111).Return(model.DocumentAssignment{}, errors.New("db fail"))
		svc := NewCatalogService(mRepo, "")

		_, err := svc.List(ctx, "18")
		assert.EqualError(t, err, "assign definition 111: db fail")
		mRepo.AssertExpectations(t)
	})
}
