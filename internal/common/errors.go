// Package common defines shared constants and sentinel errors used across
// AffiliatePro components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrSerialization = errors.New("serialization failure")

	// Directory errors.
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Catalog errors.
	ErrUnknownTier = errors.New("unknown tier")
	ErrNotFound    = errors.New("not found")

	// Input validation.
	ErrValidation = errors.New("validation error")

	// Session and membership flow errors.
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrUpgradeNotAllowed  = errors.New("target tier is not above current tier")
	ErrWithdrawDisabled   = errors.New("withdrawals are disabled")
	ErrBelowMinimum       = errors.New("amount is below minimum withdrawal")
	ErrWithdrawNotAllowed = errors.New("tier is not allowed to withdraw")
	ErrProductLocked      = errors.New("product requires a higher tier")

	// Admin gate errors.
	ErrAdminDisabled = errors.New("admin access is not configured")
	ErrInvalidToken  = errors.New("invalid token")
)
