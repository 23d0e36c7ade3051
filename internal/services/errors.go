package services

import "errors"

var (
	// ErrSelfReferral rejects a referral edge pointing back at its referrer.
	ErrSelfReferral = errors.New("self referral rejected")

	// ErrInvalidPhone rejects phone numbers outside the +998 format.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrSelfRemoval rejects an admin trying to remove themself.
	ErrSelfRemoval = errors.New("admin cannot remove themself")

	// ErrPhoneAlreadySet marks a repeated phone submission. Callers treat
	// it as a no-op.
	ErrPhoneAlreadySet = errors.New("phone already set")
)
