package migration

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"docregistro/internal/logging"
	"docregistro/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seed = []model.DocumentDefinition{
	{ID: 111, ShortName: "Formato firmado", FullName: "Formato", Description: "d", CategoryID: 18},
	{ID: 112, ShortName: "Identificación oficial", FullName: "INE", Description: "d", CategoryID: 18},
}

func expectSeed(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO document_definitions").
		WithArgs(111, 0, "Formato firmado", "Formato", "d", 18).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO document_definitions").
		WithArgs(112, 1, "Identificación oficial", "INE", "d", 18).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
}

func TestEnsureMigrated_SchemaExistsStillSeeds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	mock.ExpectQuery("SELECT to_regclass\\('public.idx_document_assignments_definition'\\)").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	expectSeed(mock)

	err = EnsureMigrated(context.Background(), db, logging.New(&buf, time.UTC), "localhost", seed)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "db_migration_skip")
	assert.Contains(t, buf.String(), "db_migration_success")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_SeedFailureRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO document_definitions").
		WithArgs(111, 0, "Formato firmado", "Formato", "d", 18).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO document_definitions").
		WithArgs(112, 1, "Identificación oficial", "INE", "d", 18).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err = EnsureMigrated(context.Background(), db, logging.New(&buf, time.UTC), "localhost", seed)

	assert.ErrorContains(t, err, "seed definition 112: connection reset")
	assert.Contains(t, buf.String(), "seed_document_definitions")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_CreatesAndSeeds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	for range steps {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	expectSeed(mock)

	err = EnsureMigrated(context.Background(), db, logging.New(&buf, time.UTC), "localhost", seed)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "db_migration_success")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_StepFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS document_definitions").
		WillReturnError(errors.New("permission denied"))

	err = EnsureMigrated(context.Background(), db, logging.New(&buf, time.UTC), "localhost", seed)

	assert.ErrorContains(t, err, "migration step create_table_document_definitions failed")
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_SentinelError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT to_regclass").WillReturnError(errors.New("conn refused"))

	err = EnsureMigrated(context.Background(), db, logging.New(&bytes.Buffer{}, time.UTC), "localhost", seed)

	assert.ErrorContains(t, err, "failed to check sentinel table")
}
