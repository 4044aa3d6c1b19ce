package api

import (
	"context"
	"net/http"
	"time"

	"github.com/pluggkompis/pluggkompis_bot/internal/model"
)

// LoginResult is what the backend hands back for valid credentials.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      model.User
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      userDTO   `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", requestOptions{
		body: loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: resp.Token, ExpiresAt: resp.ExpiresAt, User: toUser(resp.User)}, nil
}

// Me returns the user behind token.
func (c *Client) Me(ctx context.Context, token string) (*model.User, error) {
	var dto userDTO
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", requestOptions{token: token}, &dto); err != nil {
		return nil, err
	}
	u := toUser(dto)
	return &u, nil
}

func (c *Client) Children(ctx context.Context, token string) ([]model.Child, error) {
	var dtos []childDTO
	if err := c.do(ctx, http.MethodGet, "/api/children", requestOptions{token: token}, &dtos); err != nil {
		return nil, err
	}
	children := make([]model.Child, 0, len(dtos))
	for _, d := range dtos {
		children = append(children, toChild(d))
	}
	return children, nil
}
