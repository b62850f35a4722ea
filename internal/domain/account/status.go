package account

import (
	"strings"

	"github.com/dietdesk/dietdesk/internal/shared/errors"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	// StatusSuspended exists in older rows only; it reads as INACTIVE.
	StatusSuspended Status = "SUSPENDED"
)

// Normalize collapses SUSPENDED into INACTIVE.
func (s Status) Normalize() Status {
	if s == StatusSuspended {
		return StatusInactive
	}
	return s
}

func (s Status) IsActive() bool {
	return s == StatusActive
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusActive, StatusInactive, StatusSuspended:
		return st.Normalize(), nil
	}
	return "", errors.NewValidationError("invalid account status", s)
}
