package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Save And Get", func(t *testing.T) {
		s := New()
		saved, err := s.SavePerson(ctx, &models.Person{ID: "p-1", FirstName: "Ada"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), saved.Version)

		got, err := s.GetPerson(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.FirstName)
		assert.Equal(t, int64(1), got.Version)
	})

	t.Run("Not Found", func(t *testing.T) {
		_, err := New().GetPerson(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrPersonNotFound)
	})

	t.Run("Copies Are Isolated", func(t *testing.T) {
		s := New()
		_, err := s.SavePerson(ctx, &models.Person{ID: "p-1", FraudCases: []models.FraudCase{{ID: "fc-1"}}})
		require.NoError(t, err)

		got, err := s.GetPerson(ctx, "p-1")
		require.NoError(t, err)
		got.FraudCases[0].ID = "changed"

		again, err := s.GetPerson(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, "fc-1", again.FraudCases[0].ID)
	})

	t.Run("Stale Save Conflicts", func(t *testing.T) {
		s := New()
		_, err := s.SavePerson(ctx, &models.Person{ID: "p-1"})
		require.NoError(t, err)

		first, _ := s.GetPerson(ctx, "p-1")
		second, _ := s.GetPerson(ctx, "p-1")

		first.FirstName = "first"
		_, err = s.SavePerson(ctx, first)
		require.NoError(t, err)

		second.FirstName = "second"
		_, err = s.SavePerson(ctx, second)
		assert.ErrorIs(t, err, storage.ErrVersionConflict)

		got, _ := s.GetPerson(ctx, "p-1")
		assert.Equal(t, "first", got.FirstName)
	})

	t.Run("Concurrent Writers Lose No Update Silently", func(t *testing.T) {
		s := New()
		_, err := s.SavePerson(ctx, &models.Person{ID: "p-1"})
		require.NoError(t, err)

		var wg sync.WaitGroup
		var mu sync.Mutex
		succeeded := 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					p, err := s.GetPerson(ctx, "p-1")
					if err != nil {
						return
					}
					p.Transactions = append(p.Transactions, models.Transaction{ID: "tx"})
					if _, err := s.SavePerson(ctx, p); err == nil {
						mu.Lock()
						succeeded++
						mu.Unlock()
						return
					}
				}
			}()
		}
		wg.Wait()

		got, err := s.GetPerson(ctx, "p-1")
		require.NoError(t, err)
		assert.Equal(t, 20, succeeded)
		assert.Len(t, got.Transactions, 20)
	})

	t.Run("Find By Fraud Case", func(t *testing.T) {
		s := New()
		_, _ = s.SavePerson(ctx, &models.Person{ID: "p-1"})
		_, _ = s.SavePerson(ctx, &models.Person{ID: "p-2", FraudCases: []models.FraudCase{{ID: "fc-9"}}})

		got, err := s.FindPersonByFraudCaseID(ctx, "fc-9")
		require.NoError(t, err)
		assert.Equal(t, "p-2", got.ID)

		_, err = s.FindPersonByFraudCaseID(ctx, "fc-0")
		assert.ErrorIs(t, err, storage.ErrPersonNotFound)
	})
}
