package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// DateRange bounds listings inclusively on both ends.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ListFilter narrows report listings. Zero values mean "no filter" except
// Range, which is always applied.
type ListFilter struct {
	Range        DateRange
	CompanyID    snowflake.ID
	BranchID     snowflake.ID
	RoleLevel    int
	EmployeeName string
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByEmployeeAndDate(ctx context.Context, employeeID snowflake.ID, date time.Time) (*DailyReport, error)
	Create(ctx context.Context, report DailyReport) error
	UpdateText(ctx context.Context, id snowflake.ID, text string) error
	ListForEmployee(ctx context.Context, employeeID snowflake.ID, dateRange DateRange) ([]DailyReport, error)
	ListForBranch(ctx context.Context, branchID snowflake.ID, dateRange DateRange, roleLevel int) ([]ReportListItem, error)
	ListForCompany(ctx context.Context, filter ListFilter) ([]ReportListItem, error)
	ListAll(ctx context.Context, dateRange DateRange, employeeName string) ([]ReportListItem, error)
}
