package limits

import (
	"fmt"
	"strings"

	"github.com/kontist/mock-solaris-sub001/pkg/models"
	"go.uber.org/multierr"
)

// Issuer-wide ceilings no configured limit may exceed.
const (
	MaxDailyAmountCents   int64 = 1_000_000
	MaxMonthlyAmountCents int64 = 2_500_000
)

// DefaultLimits are assigned to new cards.
var DefaultLimits = models.CardLimitSettings{
	CardPresent: models.CardLimits{
		Daily:   models.LimitWindow{MaxAmountCents: 150_000, MaxTransactions: 15},
		Monthly: models.LimitWindow{MaxAmountCents: 1_000_000, MaxTransactions: 100},
	},
	CardNotPresent: models.CardLimits{
		Daily:   models.LimitWindow{MaxAmountCents: 150_000, MaxTransactions: 15},
		Monthly: models.LimitWindow{MaxAmountCents: 1_000_000, MaxTransactions: 100},
	},
}

type reasons struct {
	amountDaily, useDaily, amountMonthly, useMonthly models.DeclineReason
}

var (
	cardPresentReasons = reasons{
		amountDaily:   models.DeclineReasonCardPresentAmountLimitReachedDaily,
		useDaily:      models.DeclineReasonCardPresentUseLimitReachedDaily,
		amountMonthly: models.DeclineReasonCardPresentAmountLimitReachedMonthly,
		useMonthly:    models.DeclineReasonCardPresentUseLimitReachedMonthly,
	}
	cardNotPresentReasons = reasons{
		amountDaily:   models.DeclineReasonCardNotPresentAmountLimitReachedDaily,
		useDaily:      models.DeclineReasonCardNotPresentUseLimitReachedDaily,
		amountMonthly: models.DeclineReasonCardNotPresentAmountLimitReachedMonthly,
		useMonthly:    models.DeclineReasonCardNotPresentUseLimitReachedMonthly,
	}
)

// Validate compares usage with the limits of the mode class and returns the
// reason of the first violated check, or "" when every check passes. Usage equal
// to a limit is within it.
func Validate(usage Usage, limits models.CardLimits, cardPresent bool) models.DeclineReason {
	r := cardNotPresentReasons
	if cardPresent {
		r = cardPresentReasons
	}

	switch {
	case usage.Daily.Amount > limits.Daily.MaxAmountCents:
		return r.amountDaily
	case usage.Daily.Transactions > limits.Daily.MaxTransactions:
		return r.useDaily
	case usage.Monthly.Amount > limits.Monthly.MaxAmountCents:
		return r.amountMonthly
	case usage.Monthly.Transactions > limits.Monthly.MaxTransactions:
		return r.useMonthly
	}
	return ""
}

// ValidationError lists every problem found in a set of card limits.
type ValidationError struct {
	Problems []string
	err      error
}

func (e *ValidationError) Error() string {
	return "invalid card limits: " + e.err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// ValidateCardLimits checks configured limits against the issuer ceilings and
// rejects negative values. All problems are reported together.
func ValidateCardLimits(settings models.CardLimitSettings) error {
	var err error
	err = multierr.Append(err, validateMode("card_present", settings.CardPresent))
	err = multierr.Append(err, validateMode("card_not_present", settings.CardNotPresent))
	if err == nil {
		return nil
	}

	errs := multierr.Errors(err)
	problems := make([]string, 0, len(errs))
	for _, e := range errs {
		problems = append(problems, e.Error())
	}
	return &ValidationError{Problems: problems, err: err}
}

func validateMode(mode string, l models.CardLimits) error {
	var err error
	err = multierr.Append(err, validateWindow(mode+".daily", l.Daily, MaxDailyAmountCents))
	err = multierr.Append(err, validateWindow(mode+".monthly", l.Monthly, MaxMonthlyAmountCents))
	return err
}

func validateWindow(field string, w models.LimitWindow, ceiling int64) error {
	var err error
	if w.MaxAmountCents < 0 {
		err = multierr.Append(err, fmt.Errorf("%s.max_amount_cents must not be negative", field))
	}
	if w.MaxAmountCents > ceiling {
		err = multierr.Append(err, fmt.Errorf("%s.max_amount_cents must not exceed %s", field, formatEUR(ceiling)))
	}
	if w.MaxTransactions < 0 {
		err = multierr.Append(err, fmt.Errorf("%s.max_transactions must not be negative", field))
	}
	return err
}

func formatEUR(cents int64) string {
	s := fmt.Sprintf("%d", cents/100)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return "€" + b.String()
}
