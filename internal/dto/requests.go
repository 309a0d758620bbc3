package dto

// LoginRequest represents a login request. The 320 character limit is
// checked after trimming, by the auth service.
type LoginRequest struct {
	Email string `json:"email" binding:"required,max=1024"`
}

// TokenRequest represents an authorization code exchange request
type TokenRequest struct {
	Code string `json:"code" binding:"required,max=500"`
}

// CheckoutItem is one line of a checkout request
type CheckoutItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=1000"`
}

// CheckoutRequest represents a checkout request
type CheckoutRequest struct {
	Items []CheckoutItem `json:"items" binding:"required,min=1,max=50,dive"`
}

// ListProductsQuery holds catalogue pagination parameters
type ListProductsQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}
