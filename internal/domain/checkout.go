package domain

import "github.com/shopspring/decimal"

// PaymentIntentStatusPending is the only status this service assigns
const PaymentIntentStatusPending = "pending"

// CheckoutLine is one requested product and quantity
type CheckoutLine struct {
	ProductID string
	Quantity  int
}

// PaymentIntent records a pending charge; no payment network is contacted
type PaymentIntent struct {
	ID     string
	Status string
	Amount decimal.Decimal
}

// PricedLine is a checkout line with its unit price and subtotal
type PricedLine struct {
	ProductID string
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// CheckoutResult is the outcome of a successful checkout
type CheckoutResult struct {
	Success       bool
	TotalAmount   decimal.Decimal
	Currency      string
	PaymentIntent PaymentIntent
	Items         []PricedLine
}
