package upstream

import (
	"context"

	"ledgerview/internal/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BaseCurrency string `json:"base_currency"`
}

// Login exchanges credentials for an upstream bearer token. The gateway
// relays the token response without inspecting or storing it.
func (c *Client) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	var token models.TokenResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// Register creates an upstream user and returns the created profile.
func (c *Client) Register(ctx context.Context, email, password, baseCurrency string) (*models.User, error) {
	var user models.User
	req := registerRequest{Email: email, Password: password, BaseCurrency: baseCurrency}
	if err := c.post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
