package rbacapi

import (
	"context"
	"net/http"

	"github.com/Egor213/RBACPanel/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, username, password string) (domain.TokenResponse, error) {
	var resp domain.TokenResponse
	err := c.Do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Username: username, Password: password}, &resp)
	return resp, err
}

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	var user domain.User
	if err := c.Do(ctx, http.MethodPost, "/auth/register", "", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := c.Do(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) TestToken(ctx context.Context, token string) error {
	return c.Do(ctx, http.MethodGet, "/auth/test-token", token, nil, nil)
}

func (c *Client) Health(ctx context.Context) Result {
	return c.Get(ctx, "", "/health")
}
