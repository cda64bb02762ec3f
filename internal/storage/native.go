package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"gitlab.com/dirk.krummacker/contact-book/internal/config"
	"gitlab.com/dirk.krummacker/contact-book/internal/model"
)

// schemas holds the contacts table definition per driver. Both are create-if-not-exists.
var schemas = map[string]string{
	config.DriverSQLite: `CREATE TABLE IF NOT EXISTS contacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		phone TEXT,
		company TEXT,
		email TEXT,
		avatar TEXT
	)`,
	config.DriverMySQL: `CREATE TABLE IF NOT EXISTS contacts (
		id INTEGER PRIMARY KEY AUTO_INCREMENT,
		name TEXT NOT NULL,
		phone TEXT,
		company TEXT,
		email TEXT,
		avatar TEXT
	)`,
}

const (
	insertContact = `INSERT INTO contacts (name, phone, company, email, avatar) VALUES (:name, :phone, :company, :email, :avatar)`

	// Optional columns may hold NULL when rows were written by other tools.
	selectContacts = `SELECT id, name, COALESCE(phone, '') AS phone, COALESCE(company, '') AS company, COALESCE(email, '') AS email, COALESCE(avatar, '') AS avatar FROM contacts ORDER BY id DESC`

	updateContact = `UPDATE contacts SET name=:name, phone=:phone, company=:company, email=:email, avatar=:avatar WHERE id=:id`

	deleteContact = `DELETE FROM contacts WHERE id=?`
)

// NativeBackend implements [Backend] on top of a SQL database.
type NativeBackend struct {
	db     *sqlx.DB
	schema string

	mu        sync.Mutex
	insert    *sqlx.NamedStmt
	selectAll *sqlx.Stmt
	update    *sqlx.NamedStmt
	deleteId  *sqlx.Stmt
}

var _ Backend = (*NativeBackend)(nil)

// NewNativeBackend wraps sqlDB for the given driver name. The database can be a real one for
// production use or a mock database within unit tests.
func NewNativeBackend(sqlDB *sql.DB, driver string) (*NativeBackend, error) {
	schema, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return &NativeBackend{db: sqlx.NewDb(sqlDB, driver), schema: schema}, nil
}

// Initialize ensures the contacts table exists and, on the first successful call, prepares all
// statements.
func (b *NativeBackend) Initialize(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.db.ExecContext(ctx, b.schema); err != nil {
		return fmt.Errorf("could not create contacts table: %w", err)
	}
	if b.insert != nil {
		return nil
	}

	insert, err := b.db.PrepareNamedContext(ctx, insertContact)
	if err != nil {
		return fmt.Errorf("could not prepare insert: %w", err)
	}
	selectAll, err := b.db.PreparexContext(ctx, selectContacts)
	if err != nil {
		insert.Close()
		return fmt.Errorf("could not prepare select: %w", err)
	}
	update, err := b.db.PrepareNamedContext(ctx, updateContact)
	if err != nil {
		insert.Close()
		selectAll.Close()
		return fmt.Errorf("could not prepare update: %w", err)
	}
	deleteId, err := b.db.PreparexContext(ctx, deleteContact)
	if err != nil {
		insert.Close()
		selectAll.Close()
		update.Close()
		return fmt.Errorf("could not prepare delete: %w", err)
	}
	b.insert, b.selectAll, b.update, b.deleteId = insert, selectAll, update, deleteId
	return nil
}

func (b *NativeBackend) List(ctx context.Context) ([]model.Contact, error) {
	contacts := []model.Contact{}
	if err := b.selectAll.SelectContext(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (b *NativeBackend) Create(ctx context.Context, contact model.Contact) (Result, error) {
	result, err := b.insert.ExecContext(ctx, &contact)
	if err != nil {
		return Result{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return Result{}, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return Result{}, err
	}
	return Result{LastInsertId: id, RowsAffected: rows}, nil
}

func (b *NativeBackend) Update(ctx context.Context, contact model.Contact) (int64, error) {
	result, err := b.update.ExecContext(ctx, &contact)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (b *NativeBackend) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := b.deleteId.ExecContext(ctx, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Close releases the prepared statements and the database handle.
func (b *NativeBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var errs []error
	if b.insert != nil {
		errs = append(errs, b.insert.Close(), b.selectAll.Close(), b.update.Close(), b.deleteId.Close())
		b.insert, b.selectAll, b.update, b.deleteId = nil, nil, nil, nil
	}
	errs = append(errs, b.db.Close())
	return errors.Join(errs...)
}
