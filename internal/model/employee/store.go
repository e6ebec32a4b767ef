package employee

import (
	"strings"
	"sync"
)

// Store exposes employee persistence for HTTP handlers.
type Store interface {
	List() []Employee
	Get(id int) (Employee, error)
	Create(in Input) (Employee, error)
	Update(id int, patch Patch) (Employee, error)
	Delete(id int) (Employee, error)
}

// MemoryStore implements Store with an in-memory slice. Insertion order is
// preserved and ids are assigned from a monotonic counter, so an id is never
// handed out twice during the life of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	items  []Employee
	nextID int
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied employees.
func NewMemoryStore(items []Employee) *MemoryStore {
	s := &MemoryStore{
		items:  append([]Employee(nil), items...),
		nextID: 1,
	}
	for _, item := range s.items {
		if item.ID >= s.nextID {
			s.nextID = item.ID + 1
		}
	}
	return s
}

// List returns every employee in insertion order.
func (s *MemoryStore) List() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Employee{}, s.items...)
}

// Get looks up an employee by identifier.
func (s *MemoryStore) Get(id int) (Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Employee{}, ErrNotFound
	}
	return s.items[idx], nil
}

// Create validates the input, assigns the next id and appends the record.
func (s *MemoryStore) Create(in Input) (Employee, error) {
	if err := in.Validate(); err != nil {
		return Employee{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := Employee{
		ID:     s.nextID,
		Name:   strings.TrimSpace(*in.Name),
		Salary: *in.Salary,
	}
	s.nextID++
	s.items = append(s.items, item)
	return item, nil
}

// Update overwrites the fields present in patch and returns the new record.
func (s *MemoryStore) Update(id int, patch Patch) (Employee, error) {
	if err := patch.Validate(); err != nil {
		return Employee{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Employee{}, ErrNotFound
	}

	item := &s.items[idx]
	if patch.Name != nil {
		item.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Salary != nil {
		item.Salary = *patch.Salary
	}
	return *item, nil
}

// Delete removes the employee, keeping the relative order of the rest, and
// returns the record as it was at removal time.
func (s *MemoryStore) Delete(id int) (Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Employee{}, ErrNotFound
	}
	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return removed, nil
}

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(id int) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
