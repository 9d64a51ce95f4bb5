package models

// User is the upstream account owner. The gateway never stores users; it
// only relays registration and echoes the profile back.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	BaseCurrency string `json:"base_currency"`
}

// TokenResponse is the upstream login result, forwarded to the caller
// verbatim. The gateway never mints or verifies tokens itself.
type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   float64 `json:"expires_in"`
}
