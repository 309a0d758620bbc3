package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrDuplicateCode is returned when an authorization code value collides
	ErrDuplicateCode = errors.New("authorization code already exists")

	// ErrCodeUsed is returned when marking a code that was already redeemed
	ErrCodeUsed = errors.New("authorization code already used")

	// ErrCodeExpired is returned when marking a code past its expiry
	ErrCodeExpired = errors.New("authorization code expired")

	// ErrInsufficientInventory is returned when a debit would drive inventory below zero
	ErrInsufficientInventory = errors.New("insufficient inventory")

	// ErrInvalidProduct is returned when saving a product that breaks an invariant
	ErrInvalidProduct = errors.New("invalid product")
)
