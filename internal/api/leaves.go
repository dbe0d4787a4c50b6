package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"hrsync/internal/entity"
)

func leavePath(employeeID string, rest string) string {
	return fmt.Sprintf("/employees/%s/leaves%s", url.PathEscape(employeeID), rest)
}

func (c *Client) ListLeaves(ctx context.Context, employeeID string, page, limit int) (any, error) {
	return c.get(ctx, leavePath(employeeID, ""), pageQuery(page, limit))
}

func (c *Client) CreateLeave(ctx context.Context, employeeID string, data entity.Record) (any, error) {
	return c.post(ctx, leavePath(employeeID, ""), data)
}

func (c *Client) GetLeave(ctx context.Context, employeeID, leaveID string) (any, error) {
	return c.get(ctx, leavePath(employeeID, "/"+url.PathEscape(leaveID)), nil)
}

func (c *Client) UpdateLeave(ctx context.Context, employeeID, leaveID string, data entity.Record) (any, error) {
	return c.put(ctx, leavePath(employeeID, "/"+url.PathEscape(leaveID)), data)
}

func (c *Client) DeleteLeave(ctx context.Context, employeeID, leaveID string) (any, error) {
	return c.del(ctx, leavePath(employeeID, "/"+url.PathEscape(leaveID)))
}

func (c *Client) ApproveLeave(ctx context.Context, employeeID, leaveID string, data entity.Record) (any, error) {
	return c.patch(ctx, leavePath(employeeID, "/"+url.PathEscape(leaveID)+"/approve"), data)
}

func (c *Client) ReviseLeave(ctx context.Context, employeeID, leaveID string, data entity.Record) (any, error) {
	return c.patch(ctx, leavePath(employeeID, "/"+url.PathEscape(leaveID)+"/revise"), data)
}

func (c *Client) PendingLeaves(ctx context.Context, page, limit int) (any, error) {
	return c.get(ctx, "/employees/any/leaves/pending", pageQuery(page, limit))
}

type AllLeavesParams struct {
	Status string
	Type   string
	Page   int
	Limit  int
}

// AllLeaves filters by status and type server-side. Date-range filtering
// is the store's job: the backend does not support it.
func (c *Client) AllLeaves(ctx context.Context, p AllLeavesParams) (any, error) {
	query := pageQuery(p.Page, p.Limit)
	if p.Status != "" {
		query.Set("status", p.Status)
	}
	if p.Type != "" {
		query.Set("type", p.Type)
	}
	return c.get(ctx, "/employees/any/leaves/all", query)
}

func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query
}
