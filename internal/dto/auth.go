package dto

// Auth Request DTOs

// RegisterRequest contains user registration data forwarded to the backend
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	BaseCurrency string `json:"base_currency" validate:"omitempty,currency_code"`
}

// LoginRequest contains login credentials forwarded to the backend
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Auth Response DTOs

// TokenResponse carries the backend-issued bearer token
type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   float64 `json:"expires_in,omitempty"`
}

// RegisterResponse is the created user's profile
type RegisterResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	BaseCurrency string `json:"base_currency"`
}
