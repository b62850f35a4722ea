package subscription

import "errors"

var (
	// ErrExternalIDTaken reports a lost race on the unique external subscription id.
	ErrExternalIDTaken = errors.New("external subscription id already attached")
	ErrPlanSlugExists  = errors.New("plan slug already exists")
)
