package service

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidCode     = errors.New("invalid authorization code")
	ErrCodeNotFound    = errors.New("authorization code not found")
	ErrCodeAlreadyUsed = errors.New("authorization code already used")
	ErrCodeExpired     = errors.New("authorization code expired")
	ErrUserNotFound    = errors.New("user not found")
)

// Catalogue and checkout errors
var (
	// ErrProductNotFound covers both missing and non-active products
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidPagination = errors.New("invalid pagination parameters")
	ErrEmptyCatalogue    = errors.New("catalogue is empty")
	ErrInvalidCheckout   = errors.New("invalid checkout request")
)

// UnavailableReason explains why a product cannot be purchased
type UnavailableReason string

const (
	ReasonNotFound              UnavailableReason = "not_found"
	ReasonInactive              UnavailableReason = "inactive"
	ReasonInsufficientInventory UnavailableReason = "insufficient_inventory"
)

// ItemUnavailableError is returned when a checkout line fails availability
type ItemUnavailableError struct {
	ProductID string
	Reason    UnavailableReason
	Available int
	Requested int
}

func (e *ItemUnavailableError) Error() string {
	switch e.Reason {
	case ReasonNotFound:
		return fmt.Sprintf("product %s not found", e.ProductID)
	case ReasonInactive:
		return fmt.Sprintf("product %s is not available for purchase", e.ProductID)
	case ReasonInsufficientInventory:
		return fmt.Sprintf("insufficient inventory for product %s: available %d, requested %d",
			e.ProductID, e.Available, e.Requested)
	default:
		return fmt.Sprintf("product %s is unavailable", e.ProductID)
	}
}

// InventoryUpdateError is returned when a debit fails after validation passed.
// Every earlier debit of the same checkout has been rolled back.
type InventoryUpdateError struct {
	ProductID string
	Err       error
}

func (e *InventoryUpdateError) Error() string {
	return fmt.Sprintf("failed to update inventory for product %s: %v", e.ProductID, e.Err)
}

func (e *InventoryUpdateError) Unwrap() error {
	return e.Err
}
