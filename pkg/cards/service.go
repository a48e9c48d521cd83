package cards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/kontist/mock-solaris-sub001/pkg/changerequest"
	"github.com/kontist/mock-solaris-sub001/pkg/clock"
	"github.com/kontist/mock-solaris-sub001/pkg/limits"
	"github.com/kontist/mock-solaris-sub001/pkg/mapping"
	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"github.com/kontist/mock-solaris-sub001/pkg/storage"
	"github.com/kontist/mock-solaris-sub001/pkg/webhooks"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrCardNotFound is returned when the person has no card with the given id.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidPIN is returned for PINs that are not exactly four digits.
	ErrInvalidPIN = errors.New("PIN must be exactly 4 digits")
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// ChangeRequestCreator opens a change request on a person.
type ChangeRequestCreator interface {
	Create(ctx context.Context, person *models.Person, method models.ChangeRequestMethod, delta any) (*changerequest.Response, error)
}

// Service implements the card domain functions.
type Service struct {
	store          storage.PersonStore
	sender         webhooks.Sender
	changeRequests ChangeRequestCreator
	clock          clock.Clock
	logger         *slog.Logger
}

func NewService(store storage.PersonStore, sender webhooks.Sender, changeRequests ChangeRequestCreator, clk clock.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:          store,
		sender:         sender,
		changeRequests: changeRequests,
		clock:          clk,
		logger:         logger,
	}
}

// SetStatus moves the card to status and emits CARD_LIFECYCLE_EVENT.
func (s *Service) SetStatus(ctx context.Context, personID, cardID string, status models.CardStatus) (*models.CardData, error) {
	person, card, err := s.load(ctx, personID, cardID)
	if err != nil {
		return nil, err
	}

	from := card.Card.Status
	card.Card.Status = status

	if _, err := s.store.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to save card status: %w", err)
	}

	s.logger.InfoContext(ctx, "card status changed", "person_id", personID, "card_id", cardID, "from", from, "to", status)
	s.emit(ctx, webhooks.EventCardLifecycleEvent, mapping.ToCardPayload(card))

	return card, nil
}

// UpdateLimits replaces the configured limits after checking them against the issuer ceilings.
func (s *Service) UpdateLimits(ctx context.Context, personID, cardID string, settings models.CardLimitSettings) (*models.CardLimitSettings, error) {
	if err := limits.ValidateCardLimits(settings); err != nil {
		return nil, err
	}

	person, card, err := s.load(ctx, personID, cardID)
	if err != nil {
		return nil, err
	}
	card.Details.Limits = settings

	if _, err := s.store.SavePerson(ctx, person); err != nil {
		return nil, fmt.Errorf("failed to save card limits: %w", err)
	}
	return &card.Details.Limits, nil
}

func (s *Service) load(ctx context.Context, personID, cardID string) (*models.Person, *models.CardData, error) {
	person, err := s.store.GetPerson(ctx, personID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get person for card: %w", err)
	}
	card, err := findCard(person, cardID)
	if err != nil {
		return nil, nil, err
	}
	return person, card, nil
}

func (s *Service) emit(ctx context.Context, eventType webhooks.EventType, payload any) {
	if err := s.sender.Send(ctx, eventType, payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to send webhook", "event_type", eventType, "error", err)
	}
}

func hashPIN(pin string) (string, error) {
	if !pinPattern.MatchString(pin) {
		return "", ErrInvalidPIN
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}
