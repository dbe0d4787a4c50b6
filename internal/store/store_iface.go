package store

import (
	"context"

	"hrsync/internal/api"
	"hrsync/internal/entity"
)

// The stores talk to the backend through these narrow interfaces so tests
// can substitute fakes for *api.Client.

type PersonnelAPI interface {
	ListEmployees(ctx context.Context, p api.ListEmployeesParams) (any, error)
	EmployeeStatistics(ctx context.Context) (any, error)
	DeletedEmployees(ctx context.Context) (any, error)
	CreateEmployee(ctx context.Context, data entity.Record) (any, error)
	UpdateEmployee(ctx context.Context, id string, data entity.Record) (any, error)
	DeleteEmployee(ctx context.Context, id string) (any, error)
	RestoreEmployee(ctx context.Context, id string) (any, error)
	UpdateEmployeeRole(ctx context.Context, id, userID, role string) (any, error)
}

type LeaveAPI interface {
	ListLeaves(ctx context.Context, employeeID string, page, limit int) (any, error)
	CreateLeave(ctx context.Context, employeeID string, data entity.Record) (any, error)
	UpdateLeave(ctx context.Context, employeeID, leaveID string, data entity.Record) (any, error)
	DeleteLeave(ctx context.Context, employeeID, leaveID string) (any, error)
	ApproveLeave(ctx context.Context, employeeID, leaveID string, data entity.Record) (any, error)
	ReviseLeave(ctx context.Context, employeeID, leaveID string, data entity.Record) (any, error)
	PendingLeaves(ctx context.Context, page, limit int) (any, error)
	AllLeaves(ctx context.Context, p api.AllLeavesParams) (any, error)
}

type AdvanceAPI interface {
	ListAdvances(ctx context.Context, employeeID string) (any, error)
	CreateAdvance(ctx context.Context, employeeID string, data entity.Record) (any, error)
	UpdateAdvance(ctx context.Context, employeeID, advanceID string, data entity.Record) (any, error)
	DeleteAdvance(ctx context.Context, employeeID, advanceID string) (any, error)
	ApproveAdvance(ctx context.Context, employeeID, advanceID string, data entity.Record) (any, error)
}

type TimesheetAPI interface {
	ListTimesheets(ctx context.Context, employeeID string, page, limit int) (any, error)
	CreateTimesheet(ctx context.Context, employeeID string, data entity.Record) (any, error)
	UpdateTimesheet(ctx context.Context, employeeID, timesheetID string, data entity.Record) (any, error)
	DeleteTimesheet(ctx context.Context, employeeID, timesheetID string) (any, error)
	ApproveTimesheet(ctx context.Context, employeeID, timesheetID string, data entity.Record) (any, error)
}

type PendingAPI interface {
	PendingRequestSummary(ctx context.Context) (any, error)
}
