package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/dirk.krummacker/contact-book/internal/config"
	"gitlab.com/dirk.krummacker/contact-book/internal/model"
)

// contactColumns are the columns returned by the select statement.
var contactColumns = []string{"id", "name", "phone", "company", "email", "avatar"}

// createMockObjects builds a mock database handle and a mock object for defining our expected SQL
// calls.
func createMockObjects(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	return db, mock
}

// expectInitialize instructs the mock object to expect that the table is ensured and that all
// statements are being prepared.
func expectInitialize(mock sqlmock.Sqlmock) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS contacts").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare("INSERT INTO contacts")
	mock.ExpectPrepare("SELECT (.+) FROM contacts ORDER BY id DESC")
	mock.ExpectPrepare("UPDATE contacts SET")
	mock.ExpectPrepare("DELETE FROM contacts WHERE id")
}

// initializeNativeBackend sets up the native backend with the mock database.
func initializeNativeBackend(t *testing.T, db *sql.DB) *NativeBackend {
	backend, err := NewNativeBackend(db, config.DriverSQLite)
	require.NoError(t, err)
	require.NoError(t, backend.Initialize(context.Background()))
	return backend
}

// TestNativeInitialize expects the table to be created with an auto-incrementing primary key and
// the statements to be prepared.
func TestNativeInitialize(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	expectInitialize(mock)
	initializeNativeBackend(t, db)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestNativeInitializeTwice expects that a second initialization only ensures the table again. It
// neither drops the table nor prepares the statements a second time.
func TestNativeInitializeTwice(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	expectInitialize(mock)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS contacts").
		WillReturnResult(sqlmock.NewResult(0, 0))

	backend := initializeNativeBackend(t, db)
	require.NoError(t, backend.Initialize(context.Background()))

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestNativeInitializeSchemaFailure expects the error of the create statement to be returned
// without preparing any statement.
func TestNativeInitializeSchemaFailure(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS contacts").
		WillReturnError(errors.New("disk I/O error"))

	backend, err := NewNativeBackend(db, config.DriverSQLite)
	require.NoError(t, err)
	err = backend.Initialize(context.Background())
	assert.ErrorContains(t, err, "disk I/O error")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestNativeInitializePrepareFailure expects the error of a failing prepare to be returned.
func TestNativeInitializePrepareFailure(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS contacts").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare("INSERT INTO contacts")
	mock.ExpectPrepare("SELECT (.+) FROM contacts").
		WillReturnError(errors.New("no such table"))

	backend, err := NewNativeBackend(db, config.DriverSQLite)
	require.NoError(t, err)
	err = backend.Initialize(context.Background())
	assert.ErrorContains(t, err, "no such table")
}

// TestNativeUnsupportedDriver expects that only known drivers are accepted.
func TestNativeUnsupportedDriver(t *testing.T) {
	db, _ := createMockObjects(t)
	defer db.Close()

	_, err := NewNativeBackend(db, "oracle")
	assert.Error(t, err)
}

// TestNativeMySQLSchema expects the mysql dialect for the auto-incrementing key.
func TestNativeMySQLSchema(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	mock.ExpectExec("id INTEGER PRIMARY KEY AUTO_INCREMENT").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectPrepare("INSERT INTO contacts")
	mock.ExpectPrepare("SELECT (.+) FROM contacts")
	mock.ExpectPrepare("UPDATE contacts")
	mock.ExpectPrepare("DELETE FROM contacts")

	backend, err := NewNativeBackend(db, config.DriverMySQL)
	require.NoError(t, err)
	require.NoError(t, backend.Initialize(context.Background()))
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestNativeList expects all rows in the order the database returns them.
func TestNativeList(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	expectInitialize(mock)
	rows := mock.NewRows(contactColumns).
		AddRow(3, "Carla", "+420 333", "", "", "").
		AddRow(2, "Berta", "+420 222", "ACME", "berta@acme.com", "").
		AddRow(1, "Aaron", "+420 111", "", "", "aaron.png")
	mock.ExpectQuery("SELECT (.+) FROM contacts ORDER BY id DESC").
		WillReturnRows(rows)

	backend := initializeNativeBackend(t, db)
	contacts, err := backend.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Contact{
		{Id: 3, Name: "Carla", Phone: "+420 333"},
		{Id: 2, Name: "Berta", Phone: "+420 222", Company: "ACME", Email: "berta@acme.com"},
		{Id: 1, Name: "Aaron", Phone: "+420 111", Avatar: "aaron.png"},
	}, contacts)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestNativeListEmpty expects an empty, non-nil slice when there are no contacts.
func TestNativeListEmpty(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	expectInitialize(mock)
	mock.ExpectQuery("SELECT (.+) FROM contacts").
		WillReturnRows(mock.NewRows(contactColumns))

	backend := initializeNativeBackend(t, db)
	contacts, err := backend.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, contacts)
	assert.Empty(t, contacts)
}

// TestNativeListFailure expects the query error to be returned.
func TestNativeListFailure(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	expectInitialize(mock)
	mock.ExpectQuery("SELECT (.+) FROM contacts").
		WillReturnError(errors.New("database is locked"))

	backend := initializeNativeBackend(t, db)
	_, err := backend.List(context.Background())
	assert.ErrorContains(t, err, "database is locked")
}

// TestNativeCreate expects that all fields but the id are inserted and that the new id is reported.
func TestNativeCreate(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	expectInitialize(mock)
	mock.ExpectExec("INSERT INTO contacts").
		WithArgs("Erika Mustermann", "+49 0815 4711", "ACME", "erika@acme.com", "").
		WillReturnResult(sqlmock.NewResult(42, 1))

	backend := initializeNativeBackend(t, db)
	result, err := backend.Create(context.Background(), model.Contact{
		Id:      7,
		Name:    "Erika Mustermann",
		Phone:   "+49 0815 4711",
		Company: "ACME",
		Email:   "erika@acme.com",
	})
	require.NoError(t, err)
	assert.Equal(t, Result{LastInsertId: 42, RowsAffected: 1}, result)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestNativeCreateFailure expects the error of the insert to be returned.
func TestNativeCreateFailure(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	expectInitialize(mock)
	mock.ExpectExec("INSERT INTO contacts").
		WillReturnError(errors.New("NOT NULL constraint failed: contacts.name"))

	backend := initializeNativeBackend(t, db)
	_, err := backend.Create(context.Background(), model.Contact{Phone: "1"})
	assert.ErrorContains(t, err, "NOT NULL constraint failed")
}

// TestNativeUpdate expects every field to be replaced on the row with the given id.
func TestNativeUpdate(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	expectInitialize(mock)
	mock.ExpectExec("UPDATE contacts SET").
		WithArgs("Rudi Völler", "+49 1234567890", "DFB", "rudi@dfb.de", "rudi.png", int64(17)).
		WillReturnResult(sqlmock.NewResult(-1, 1))

	backend := initializeNativeBackend(t, db)
	rows, err := backend.Update(context.Background(), model.Contact{
		Id:      17,
		Name:    "Rudi Völler",
		Phone:   "+49 1234567890",
		Company: "DFB",
		Email:   "rudi@dfb.de",
		Avatar:  "rudi.png",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestNativeUpdateUnknownID expects zero affected rows and no error.
func TestNativeUpdateUnknownID(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	expectInitialize(mock)
	mock.ExpectExec("UPDATE contacts SET").
		WithArgs("Rudi Völler", "1", "", "", "", int64(9999)).
		WillReturnResult(sqlmock.NewResult(-1, 0))

	backend := initializeNativeBackend(t, db)
	rows, err := backend.Update(context.Background(), model.Contact{Id: 9999, Name: "Rudi Völler", Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestNativeDelete expects the number of deleted rows to be reported.
func TestNativeDelete(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	expectInitialize(mock)
	mock.ExpectExec("DELETE FROM contacts WHERE id").
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(-1, 1))
	mock.ExpectExec("DELETE FROM contacts WHERE id").
		WithArgs(int64(9999)).
		WillReturnResult(sqlmock.NewResult(-1, 0))

	backend := initializeNativeBackend(t, db)
	rows, err := backend.Delete(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
	rows, err = backend.Delete(context.Background(), 9999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestNativeDeleteFailure expects the error of the delete to be returned.
func TestNativeDeleteFailure(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()

	expectInitialize(mock)
	mock.ExpectExec("DELETE FROM contacts").
		WillReturnError(errors.New("database is locked"))

	backend := initializeNativeBackend(t, db)
	_, err := backend.Delete(context.Background(), 1)
	assert.ErrorContains(t, err, "database is locked")
}
