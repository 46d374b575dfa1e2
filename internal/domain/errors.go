package domain

import "errors"

var (
	// ErrMissingAttributes is returned when a profile is created without any facts
	ErrMissingAttributes = errors.New("tax payer attributes must be provided")

	// ErrUnknownTaxYear is returned when a tax-year identifier has no rule set
	ErrUnknownTaxYear = errors.New("a valid tax year was not provided")
)
