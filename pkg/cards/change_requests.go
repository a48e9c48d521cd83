package cards

import (
	"context"
	"fmt"

	"github.com/kontist/mock-solaris-sub001/pkg/changerequest"
	"github.com/kontist/mock-solaris-sub001/pkg/limits"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// PINChange is the delta of a card_pin_change request. Only the hash is stored.
type PINChange struct {
	CardID  string `json:"card_id"`
	PINHash string `json:"pin_hash"`
}

// LimitsChange is the delta of a card_limits_change request.
type LimitsChange struct {
	CardID string                   `json:"card_id"`
	Limits models.CardLimitSettings `json:"limits"`
}

// CardResponse is the response body of a confirmed card change.
type CardResponse struct {
	ID     string            `json:"id"`
	Status models.CardStatus `json:"status"`
}

// RegisterHandlers binds the card change request methods.
func (s *Service) RegisterHandlers(r *changerequest.Registry) {
	changerequest.Register(r, models.ChangeRequestMethodCardPINChange, s.applyPINChange)
	changerequest.Register(r, models.ChangeRequestMethodCardLimitsChange, s.applyLimitsChange)
}

// RequestPINChange opens a change request that sets the card PIN once confirmed.
func (s *Service) RequestPINChange(ctx context.Context, personID, cardID, pin string) (*changerequest.Response, error) {
	hash, err := hashPIN(pin)
	if err != nil {
		return nil, err
	}

	person, card, err := s.load(ctx, personID, cardID)
	if err != nil {
		return nil, err
	}

	return s.changeRequests.Create(ctx, person, models.ChangeRequestMethodCardPINChange, PINChange{
		CardID:  card.Card.ID,
		PINHash: hash,
	})
}

// RequestLimitsChange opens a change request that replaces the card limits once confirmed.
func (s *Service) RequestLimitsChange(ctx context.Context, personID, cardID string, settings models.CardLimitSettings) (*changerequest.Response, error) {
	if err := limits.ValidateCardLimits(settings); err != nil {
		return nil, err
	}

	person, card, err := s.load(ctx, personID, cardID)
	if err != nil {
		return nil, err
	}

	return s.changeRequests.Create(ctx, person, models.ChangeRequestMethodCardLimitsChange, LimitsChange{
		CardID: card.Card.ID,
		Limits: settings,
	})
}

func (s *Service) applyPINChange(ctx context.Context, person *models.Person, delta PINChange) (any, error) {
	card, err := findCard(person, delta.CardID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	card.Details.PINHash = delta.PINHash
	card.Details.PINChangedAt = &now

	s.logger.InfoContext(ctx, "card PIN changed", "person_id", person.ID, "card_id", card.Card.ID)
	return CardResponse{ID: card.Card.ID, Status: card.Card.Status}, nil
}

func (s *Service) applyLimitsChange(ctx context.Context, person *models.Person, delta LimitsChange) (any, error) {
	if err := limits.ValidateCardLimits(delta.Limits); err != nil {
		return nil, err
	}

	card, err := findCard(person, delta.CardID)
	if err != nil {
		return nil, err
	}
	card.Details.Limits = delta.Limits

	s.logger.InfoContext(ctx, "card limits changed", "person_id", person.ID, "card_id", card.Card.ID)
	return delta.Limits, nil
}

func findCard(person *models.Person, cardID string) (*models.CardData, error) {
	if person.Account == nil {
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}
	card := person.Account.FindCard(cardID)
	if card == nil {
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}
	return card, nil
}

// VerifyPIN reports whether pin matches the card's stored hash.
func VerifyPIN(card *models.CardData, pin string) bool {
	if card.Details.PINHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(card.Details.PINHash), []byte(pin)) == nil
}
