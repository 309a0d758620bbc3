package dto

import "github.com/shopspring/decimal"

// LoginResponse carries a freshly issued authorization code
type LoginResponse struct {
	AuthorizationCode string `json:"authorizationCode"`
	ExpiresIn         int    `json:"expiresIn"`
}

// TokenResponse represents an access token grant
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}

// UserResponse represents a user response
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// VariantResponse is a product variant
type VariantResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	SKU   string `json:"sku,omitempty"`
}

// ProductResponse is a catalogue product
type ProductResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Status    string            `json:"status"`
	Price     decimal.Decimal   `json:"price"`
	Inventory int               `json:"inventory"`
	Variants  []VariantResponse `json:"variants"`
}

// PaginationResponse describes the returned page
type PaginationResponse struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// ProductListResponse is a page of products
type ProductListResponse struct {
	Products   []ProductResponse  `json:"products"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaymentIntentResponse is the pending charge created by checkout
type PaymentIntentResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Amount decimal.Decimal `json:"amount"`
}

// CheckoutLineResponse is a priced checkout line
type CheckoutLineResponse struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CheckoutResponse represents a successful checkout
type CheckoutResponse struct {
	Success       bool                   `json:"success"`
	TotalAmount   decimal.Decimal        `json:"totalAmount"`
	Currency      string                 `json:"currency"`
	PaymentIntent PaymentIntentResponse  `json:"paymentIntent"`
	Items         []CheckoutLineResponse `json:"items"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
