package storage

import (
	"context"

	"github.com/kontist/mock-solaris-sub001/pkg/models"
)

// PersonReader defines the read side of the person store.
type PersonReader interface {
	// GetPerson retrieves a full copy of the person aggregate.
	GetPerson(ctx context.Context, personID string) (*models.Person, error)

	// FindPersonByFraudCaseID retrieves the person owning the fraud case.
	// It returns ErrPersonNotFound when no person holds the case.
	FindPersonByFraudCaseID(ctx context.Context, fraudCaseID string) (*models.Person, error)

	// ListPersons retrieves every person in the store.
	ListPersons(ctx context.Context) ([]models.Person, error)
}

// PersonWriter defines the write side of the person store.
type PersonWriter interface {
	// SavePerson writes the whole aggregate. The write succeeds only when the stored
	// version equals person.Version; the returned person carries the new version.
	SavePerson(ctx context.Context, person *models.Person) (*models.Person, error)
}

// PersonStore is the unit of persistence and the optimistic concurrency boundary.
type PersonStore interface {
	PersonReader
	PersonWriter
}
