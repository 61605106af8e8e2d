package services

import "errors"

// Error variables
var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidProfileName  = errors.New("missing profile name")
	ErrInvalidLabel        = errors.New("missing transaction label")
	ErrInvalidAmount       = errors.New("transaction amount must not be 0")
	ErrInvalidTag          = errors.New("invalid transaction tag")
)
