package subscription

import "strings"

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusPastDue  Status = "PAST_DUE"
	StatusCanceled Status = "CANCELED"
)

var AllStatuses = []Status{StatusActive, StatusInactive, StatusPastDue, StatusCanceled}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPastDue, StatusCanceled:
		return true
	}
	return false
}

// StatusFromProvider maps a payment-provider subscription status onto ours.
// Unrecognised values map to INACTIVE.
func StatusFromProvider(s string) Status {
	switch strings.ToLower(s) {
	case "active", "trialing":
		return StatusActive
	case "past_due", "unpaid":
		return StatusPastDue
	case "canceled", "cancelled", "incomplete_expired":
		return StatusCanceled
	default:
		return StatusInactive
	}
}
