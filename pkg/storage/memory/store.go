package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
)

// Store is an in-process PersonStore. It keeps serialized snapshots so readers
// never observe a partially applied mutation.
type Store struct {
	mu      sync.RWMutex
	persons map[string][]byte
}

// New creates an empty Store.
func New() *Store {
	return &Store{persons: make(map[string][]byte)}
}

// Make sure we conform to the interface
var _ storage.PersonStore = (*Store)(nil)

// GetPerson returns a copy of the stored person.
func (s *Store) GetPerson(ctx context.Context, personID string) (*models.Person, error) {
	s.mu.RLock()
	raw, ok := s.persons[personID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrPersonNotFound, personID)
	}
	return decode(raw)
}

// SavePerson stores a copy of the person when its version matches the stored one.
func (s *Store) SavePerson(ctx context.Context, person *models.Person) (*models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := s.persons[person.ID]; ok {
		current, err := decode(raw)
		if err != nil {
			return nil, err
		}
		if current.Version != person.Version {
			return nil, storage.ErrVersionConflict
		}
	}

	saved := *person
	saved.Version = person.Version + 1
	raw, err := json.Marshal(&saved)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal person: %w", err)
	}
	s.persons[person.ID] = raw

	person.Version = saved.Version
	return decode(raw)
}

// FindPersonByFraudCaseID scans for the person holding the fraud case.
func (s *Store) FindPersonByFraudCaseID(ctx context.Context, fraudCaseID string) (*models.Person, error) {
	persons, err := s.ListPersons(ctx)
	if err != nil {
		return nil, err
	}
	for i := range persons {
		if persons[i].FindFraudCase(fraudCaseID) >= 0 {
			return &persons[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no person holds fraud case %s", storage.ErrPersonNotFound, fraudCaseID)
}

// ListPersons returns copies of all persons ordered by id.
func (s *Store) ListPersons(ctx context.Context) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	persons := make([]models.Person, 0, len(s.persons))
	for _, raw := range s.persons {
		p, err := decode(raw)
		if err != nil {
			return nil, err
		}
		persons = append(persons, *p)
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].ID < persons[j].ID })
	return persons, nil
}

func decode(raw []byte) (*models.Person, error) {
	var p models.Person
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal person: %w", err)
	}
	return &p, nil
}
