package storage

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"

	"gitlab.com/dirk.krummacker/contact-book/internal/config"
	"gitlab.com/dirk.krummacker/contact-book/internal/model"
)

// Backend kinds reported by [Facade.Kind].
const (
	KindNative = "native"
	KindMock   = "mock"
)

// Platform reports whether the host provides a native database.
type Platform interface {
	NativeDatabaseAvailable() bool
}

// StaticPlatform is a [Platform] whose answer is fixed, usually taken from the configuration.
type StaticPlatform bool

func (p StaticPlatform) NativeDatabaseAvailable() bool {
	return bool(p)
}

// Facade is the single CRUD contract over contacts. It holds one backend, chosen at construction,
// and rejects every operation until Initialize has succeeded.
type Facade struct {
	backend Backend
	kind    string
	log     zerolog.Logger
	ready   atomic.Bool
}

// New returns a facade over backend. The kind is derived from the backend's type.
func New(backend Backend, logger zerolog.Logger) *Facade {
	kind := KindNative
	if _, ok := backend.(*MockBackend); ok {
		kind = KindMock
	}
	return &Facade{backend: backend, kind: kind, log: logger}
}

// Open asks the platform once whether a native database is available and builds the facade over
// the matching backend. Without a native database the mock store is seeded with [SampleContacts].
func Open(cfg config.DatabaseConfig, platform Platform, logger zerolog.Logger) (*Facade, error) {
	if !platform.NativeDatabaseAvailable() {
		logger.Warn().Msg("no native database available, using in-memory mock store")
		return New(NewMockBackend(SampleContacts()...), logger), nil
	}
	sqlDB, err := OpenDatabase(cfg)
	if err != nil {
		return nil, &InitializationError{Err: err}
	}
	backend, err := NewNativeBackend(sqlDB, cfg.Driver)
	if err != nil {
		sqlDB.Close()
		return nil, &InitializationError{Err: err}
	}
	return New(backend, logger), nil
}

// Kind returns KindNative or KindMock.
func (f *Facade) Kind() string {
	return f.kind
}

// Initialize prepares the backend. It is safe to call again; existing contacts are kept.
func (f *Facade) Initialize(ctx context.Context) error {
	if err := f.backend.Initialize(ctx); err != nil {
		return &InitializationError{Err: err}
	}
	if !f.ready.Swap(true) {
		f.log.Info().Str("backend", f.kind).Msg("storage initialized")
	}
	return nil
}

// List returns all contacts, most recently created first.
func (f *Facade) List(ctx context.Context) ([]model.Contact, error) {
	if !f.ready.Load() {
		return nil, ErrNotInitialized
	}
	contacts, err := f.backend.List(ctx)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	return contacts, nil
}

// Create stores contact under a new id. The Id of the argument is ignored.
func (f *Facade) Create(ctx context.Context, contact model.Contact) (Result, error) {
	if !f.ready.Load() {
		return Result{}, ErrNotInitialized
	}
	result, err := f.backend.Create(ctx, contact)
	if err != nil {
		return Result{}, &WriteError{Op: "create", Err: err}
	}
	return result, nil
}

// Update replaces the contact with the same id and returns the number of affected rows, which is
// zero when there is no such contact.
func (f *Facade) Update(ctx context.Context, contact model.Contact) (int64, error) {
	if !f.ready.Load() {
		return 0, ErrNotInitialized
	}
	rows, err := f.backend.Update(ctx, contact)
	if err != nil {
		return 0, &WriteError{Op: "update", Err: err}
	}
	return rows, nil
}

// Delete removes the contact with the given id and returns the number of affected rows, which is
// zero when there is no such contact.
func (f *Facade) Delete(ctx context.Context, id int64) (int64, error) {
	if !f.ready.Load() {
		return 0, ErrNotInitialized
	}
	rows, err := f.backend.Delete(ctx, id)
	if err != nil {
		return 0, &WriteError{Op: "delete", Err: err}
	}
	return rows, nil
}

// Close releases the backend if it holds resources. The facade cannot be used afterwards.
func (f *Facade) Close() error {
	f.ready.Store(false)
	if closer, ok := f.backend.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

