package accounts

import (
	"context"

	"github.com/kontist/mock-solaris-sub001/pkg/clock"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
)

// Store recomputes the account balances of every person before it is saved.
type Store struct {
	storage.PersonStore
	clock   clock.Clock
	accruer OverdraftAccruer
}

// NewStore wraps next. A nil accruer books no interest.
func NewStore(next storage.PersonStore, clk clock.Clock, accruer OverdraftAccruer) *Store {
	if accruer == nil {
		accruer = NoopAccruer{}
	}
	return &Store{PersonStore: next, clock: clk, accruer: accruer}
}

// Make sure we conform to the interface
var _ storage.PersonStore = (*Store)(nil)

func (s *Store) SavePerson(ctx context.Context, person *models.Person) (*models.Person, error) {
	if err := Apply(ctx, person, s.clock.Now(), s.accruer); err != nil {
		return nil, err
	}
	return s.PersonStore.SavePerson(ctx, person)
}
