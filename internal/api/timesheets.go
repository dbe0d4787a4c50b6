package api

import (
	"context"
	"fmt"
	"net/url"

	"hrsync/internal/entity"
)

func timesheetPath(employeeID string, rest string) string {
	return fmt.Sprintf("/employees/%s/timesheets%s", url.PathEscape(employeeID), rest)
}

func (c *Client) ListTimesheets(ctx context.Context, employeeID string, page, limit int) (any, error) {
	return c.get(ctx, timesheetPath(employeeID, ""), pageQuery(page, limit))
}

func (c *Client) CreateTimesheet(ctx context.Context, employeeID string, data entity.Record) (any, error) {
	return c.post(ctx, timesheetPath(employeeID, ""), data)
}

func (c *Client) UpdateTimesheet(ctx context.Context, employeeID, timesheetID string, data entity.Record) (any, error) {
	return c.put(ctx, timesheetPath(employeeID, "/"+url.PathEscape(timesheetID)), data)
}

func (c *Client) DeleteTimesheet(ctx context.Context, employeeID, timesheetID string) (any, error) {
	return c.del(ctx, timesheetPath(employeeID, "/"+url.PathEscape(timesheetID)))
}

func (c *Client) ApproveTimesheet(ctx context.Context, employeeID, timesheetID string, data entity.Record) (any, error) {
	return c.patch(ctx, timesheetPath(employeeID, "/"+url.PathEscape(timesheetID)+"/approve"), data)
}
