package storage

import (
	"context"
	"slices"
	"sync"

	"gitlab.com/dirk.krummacker/contact-book/internal/model"
)

// SampleContacts returns the contacts a fresh mock store is seeded with, in seeding order. The last
// one gets the highest id and is listed first.
func SampleContacts() []model.Contact {
	return []model.Contact{
		{Name: "李大華", Phone: "0987-654-321", Company: "範例實業", Email: "lee@example.com"},
		{Name: "王小明", Phone: "0912-345-678", Company: "測試科技", Email: "wang@test.com"},
	}
}

// MockBackend implements [Backend] in memory. It stands in for the database when the platform has
// no native one. Contacts are kept newest first, i.e. by descending id.
type MockBackend struct {
	mu       sync.Mutex
	seed     []model.Contact
	seeded   bool
	lastId   int64
	contacts []model.Contact
}

var _ Backend = (*MockBackend)(nil)

// NewMockBackend returns an empty mock store that is seeded with seed on its first Initialize.
func NewMockBackend(seed ...model.Contact) *MockBackend {
	return &MockBackend{seed: seed}
}

// Initialize seeds the store once. Later calls leave the contacts alone.
func (s *MockBackend) Initialize(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seeded {
		return nil
	}
	for _, contact := range s.seed {
		s.insert(contact)
	}
	s.seeded = true
	return nil
}

func (s *MockBackend) List(_ context.Context) ([]model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.contacts), nil
}

func (s *MockBackend) Create(_ context.Context, contact model.Contact) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.insert(contact)
	return Result{LastInsertId: id, RowsAffected: 1}, nil
}

func (s *MockBackend) Update(_ context.Context, contact model.Contact) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.indexOf(contact.Id)
	if index < 0 {
		return 0, nil
	}
	s.contacts[index] = contact
	return 1, nil
}

func (s *MockBackend) Delete(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.indexOf(id)
	if index < 0 {
		return 0, nil
	}
	s.contacts = slices.Delete(s.contacts, index, index+1)
	return 1, nil
}

// insert assigns the next id and puts the contact at the head. The caller holds the lock.
func (s *MockBackend) insert(contact model.Contact) int64 {
	s.lastId++
	contact.Id = s.lastId
	s.contacts = slices.Insert(s.contacts, 0, contact)
	return contact.Id
}

// indexOf returns the position of the contact with the given id, or -1.
func (s *MockBackend) indexOf(id int64) int {
	return slices.IndexFunc(s.contacts, func(c model.Contact) bool { return c.Id == id })
}
