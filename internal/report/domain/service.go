package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/staffdeck/staffdeck/internal/auth/domain"
)

var (
	ErrInvalidText      = errors.New("report text is required")
	ErrInvalidDate      = errors.New("report date is required")
	ErrPermissionDenied = errors.New("actor is not permitted to view these reports")
)

// SubmitResult tells the caller whether a submission created a new entry
// or replaced the day's existing one.
type SubmitResult string

const (
	SubmitCreated SubmitResult = "created"
	SubmitUpdated SubmitResult = "updated"
)

// RangePreset names a relative date window resolved against "today".
type RangePreset string

const (
	PresetToday     RangePreset = "today"
	PresetThisWeek  RangePreset = "this_week"
	PresetThisMonth RangePreset = "this_month"
	PresetThisYear  RangePreset = "this_year"
	PresetAllTime   RangePreset = "all_time"
)

type Service interface {
	Submit(ctx context.Context, employeeID snowflake.ID, date time.Time, text string) (SubmitResult, error)
	ListForEmployee(ctx context.Context, actor authdomain.Identity, employeeID snowflake.ID, dateRange DateRange) ([]DailyReport, error)
	ListForBranch(ctx context.Context, branchID snowflake.ID, dateRange DateRange, roleLevel int) ([]ReportListItem, error)
	ListForCompany(ctx context.Context, filter ListFilter) ([]ReportListItem, error)
	ListAll(ctx context.Context, dateRange DateRange, employeeName string) ([]ReportListItem, error)
	ResolvePreset(preset RangePreset, now time.Time) DateRange
}
