package models

// DeclineReason is the closed set of causes attached to a rejected authorization.
type DeclineReason string

const (
	DeclineReasonCardBlocked       DeclineReason = "CARD_BLOCKED"
	DeclineReasonCardInactive      DeclineReason = "CARD_INACTIVE"
	DeclineReasonInsufficientFunds DeclineReason = "INSUFFICIENT_FUNDS"
	DeclineReasonFraudSuspected    DeclineReason = "FRAUD_SUSPECTED"
	DeclineReasonIncorrectPIN      DeclineReason = "INCORRECT_PIN"
	DeclineReasonExpiredCard       DeclineReason = "EXPIRED_CARD"

	DeclineReasonCardPresentAmountLimitReachedDaily      DeclineReason = "CARD_PRESENT_AMOUNT_LIMIT_REACHED_DAILY"
	DeclineReasonCardPresentUseLimitReachedDaily         DeclineReason = "CARD_PRESENT_USE_LIMIT_REACHED_DAILY"
	DeclineReasonCardPresentAmountLimitReachedMonthly    DeclineReason = "CARD_PRESENT_AMOUNT_LIMIT_REACHED_MONTHLY"
	DeclineReasonCardPresentUseLimitReachedMonthly       DeclineReason = "CARD_PRESENT_USE_LIMIT_REACHED_MONTHLY"
	DeclineReasonCardNotPresentAmountLimitReachedDaily   DeclineReason = "CARD_NOT_PRESENT_AMOUNT_LIMIT_REACHED_DAILY"
	DeclineReasonCardNotPresentUseLimitReachedDaily      DeclineReason = "CARD_NOT_PRESENT_USE_LIMIT_REACHED_DAILY"
	DeclineReasonCardNotPresentAmountLimitReachedMonthly DeclineReason = "CARD_NOT_PRESENT_AMOUNT_LIMIT_REACHED_MONTHLY"
	DeclineReasonCardNotPresentUseLimitReachedMonthly    DeclineReason = "CARD_NOT_PRESENT_USE_LIMIT_REACHED_MONTHLY"
)

var declineReasons = map[DeclineReason]struct{}{
	DeclineReasonCardBlocked:                             {},
	DeclineReasonCardInactive:                            {},
	DeclineReasonInsufficientFunds:                       {},
	DeclineReasonFraudSuspected:                          {},
	DeclineReasonIncorrectPIN:                            {},
	DeclineReasonExpiredCard:                             {},
	DeclineReasonCardPresentAmountLimitReachedDaily:      {},
	DeclineReasonCardPresentUseLimitReachedDaily:         {},
	DeclineReasonCardPresentAmountLimitReachedMonthly:    {},
	DeclineReasonCardPresentUseLimitReachedMonthly:       {},
	DeclineReasonCardNotPresentAmountLimitReachedDaily:   {},
	DeclineReasonCardNotPresentUseLimitReachedDaily:      {},
	DeclineReasonCardNotPresentAmountLimitReachedMonthly: {},
	DeclineReasonCardNotPresentUseLimitReachedMonthly:    {},
}

// Valid reports whether r is a member of the enumeration.
func (r DeclineReason) Valid() bool {
	_, ok := declineReasons[r]
	return ok
}
