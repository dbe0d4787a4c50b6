package api

import (
	"context"
	"fmt"
	"net/url"

	"hrsync/internal/entity"
)

func advancePath(employeeID string, rest string) string {
	return fmt.Sprintf("/employees/%s/advances%s", url.PathEscape(employeeID), rest)
}

func (c *Client) ListAdvances(ctx context.Context, employeeID string) (any, error) {
	return c.get(ctx, advancePath(employeeID, ""), nil)
}

func (c *Client) CreateAdvance(ctx context.Context, employeeID string, data entity.Record) (any, error) {
	return c.post(ctx, advancePath(employeeID, ""), data)
}

func (c *Client) UpdateAdvance(ctx context.Context, employeeID, advanceID string, data entity.Record) (any, error) {
	return c.put(ctx, advancePath(employeeID, "/"+url.PathEscape(advanceID)), data)
}

func (c *Client) DeleteAdvance(ctx context.Context, employeeID, advanceID string) (any, error) {
	return c.del(ctx, advancePath(employeeID, "/"+url.PathEscape(advanceID)))
}

func (c *Client) ApproveAdvance(ctx context.Context, employeeID, advanceID string, data entity.Record) (any, error) {
	return c.patch(ctx, advancePath(employeeID, "/"+url.PathEscape(advanceID)+"/approve"), data)
}

// PendingRequestSummary feeds the pending-requests poller for privileged
// roles.
func (c *Client) PendingRequestSummary(ctx context.Context) (any, error) {
	return c.get(ctx, "/employees/any/requests/pending", nil)
}
