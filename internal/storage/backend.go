// Package storage persists contacts behind one CRUD contract.
//
// A Facade dispatches to exactly one Backend for its whole lifetime: the NativeBackend talks SQL to
// an embedded (or server hosted) database, the MockBackend keeps the contacts in memory when no
// native database is available. Both return the contacts ordered by descending id and report the
// number of affected rows for every write, so callers never need to know which one is active.
package storage

import (
	"context"

	"gitlab.com/dirk.krummacker/contact-book/internal/model"
)

// DatabaseName identifies the native database. It is not configurable.
const DatabaseName = "contact_book_db"

// Result describes the outcome of a successful create.
type Result struct {
	LastInsertId int64
	RowsAffected int64
}

// Backend is the capability shared by the native database and the in-memory mock store.
//
// Update and Delete report zero affected rows when the id is unknown; that is not an error.
type Backend interface {
	// Initialize prepares the backend. It may be called more than once and never drops data.
	Initialize(ctx context.Context) error

	// List returns all contacts, ordered by descending id.
	List(ctx context.Context) ([]model.Contact, error)

	// Create stores a new contact under a freshly assigned id. The Id of the argument is ignored.
	Create(ctx context.Context, contact model.Contact) (Result, error)

	// Update replaces all fields except the id of the contact with the same id.
	Update(ctx context.Context, contact model.Contact) (int64, error)

	// Delete removes the contact with the given id.
	Delete(ctx context.Context, id int64) (int64, error)
}
