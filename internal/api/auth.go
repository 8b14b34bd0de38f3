package api

import (
	"context"

	"salonadmin/internal/models"
)

// Login authenticates with email and password. Tokens are not stored here;
// the auth manager owns the session lifecycle.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var auth models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.post(ctx, "/api/v1/auth/login", req, &auth, "auth_login"); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Register creates a new account and returns the same shape as Login.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	var auth models.AuthResponse
	if err := c.post(ctx, "/api/v1/auth/register", req, &auth, "auth_register"); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Profile fetches the current user's record.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/api/v1/auth/profile", nil, &user, "auth_profile"); err != nil {
		return nil, err
	}
	return &user, nil
}
