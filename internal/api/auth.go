package api

import (
	"context"
	"net/http"

	"hrsync/internal/entity"
)

func (c *Client) Login(ctx context.Context, email, password string) (any, error) {
	return c.anonymous(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) Register(ctx context.Context, data entity.Record) (any, error) {
	return c.anonymous(ctx, http.MethodPost, "/auth/register", data)
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.post(ctx, "/auth/logout", nil)
	return err
}

func (c *Client) Me(ctx context.Context) (any, error) {
	return c.get(ctx, "/auth/me", nil)
}

func (c *Client) UpdateProfile(ctx context.Context, data entity.Record) (any, error) {
	return c.put(ctx, "/auth/update", data)
}
