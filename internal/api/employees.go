package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"hrsync/internal/entity"
)

type ListEmployeesParams struct {
	Page       int
	Limit      int
	Department string
	Search     string
}

func (c *Client) ListEmployees(ctx context.Context, p ListEmployeesParams) (any, error) {
	query := url.Values{}
	if p.Page > 0 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		query.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Department != "" {
		query.Set("department", p.Department)
	}
	if p.Search != "" {
		query.Set("search", p.Search)
	}
	return c.get(ctx, "/employees", query)
}

func (c *Client) EmployeeStatistics(ctx context.Context) (any, error) {
	return c.get(ctx, "/employees/statistics", nil)
}

func (c *Client) CurrentEmployee(ctx context.Context) (any, error) {
	return c.get(ctx, "/employees/me", nil)
}

func (c *Client) UpdateCurrentEmployee(ctx context.Context, data entity.Record) (any, error) {
	return c.put(ctx, "/employees/me", data)
}

func (c *Client) GetEmployee(ctx context.Context, id string) (any, error) {
	return c.get(ctx, "/employees/"+url.PathEscape(id), nil)
}

func (c *Client) CreateEmployee(ctx context.Context, data entity.Record) (any, error) {
	return c.post(ctx, "/employees", data)
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, data entity.Record) (any, error) {
	return c.put(ctx, "/employees/"+url.PathEscape(id), data)
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) (any, error) {
	return c.del(ctx, "/employees/"+url.PathEscape(id))
}

func (c *Client) DeletedEmployees(ctx context.Context) (any, error) {
	return c.get(ctx, "/employees/deleted", nil)
}

func (c *Client) RestoreEmployee(ctx context.Context, id string) (any, error) {
	return c.post(ctx, fmt.Sprintf("/employees/%s/restore", url.PathEscape(id)), nil)
}

func (c *Client) UpdateEmployeeRole(ctx context.Context, id, userID, role string) (any, error) {
	return c.patch(ctx, fmt.Sprintf("/employees/%s/role", url.PathEscape(id)), map[string]string{
		"userId": userID,
		"role":   role,
	})
}
