// Package pdf renders report exports with maroto.
package pdf

import (
	"context"
	"io"
	"time"

	"github.com/staffdeck/staffdeck/internal/config"
	"go.uber.org/fx"
)

// ReportRow is one daily report entry in an export.
type ReportRow struct {
	Date       time.Time
	FullName   string
	RoleName   string
	BranchName string
	Text       string
}

// ReportData is a rendered export: a heading, the window it covers and the
// rows grouped the way the caller wants them read.
type ReportData struct {
	Heading  string
	Subtitle string
	From     time.Time
	To       time.Time
	Rows     []ReportRow
}

// GroupBy picks the left-hand grouping column of the table.
type GroupBy string

const (
	GroupByNone   GroupBy = ""
	GroupByBranch GroupBy = "branch"
	GroupByName   GroupBy = "name"
)

type Provider interface {
	// EmployeeReport renders one employee's reports, date-ordered.
	EmployeeReport(ctx context.Context, data ReportData) (io.Reader, error)
	// BranchReport renders a branch's reports grouped by employee.
	BranchReport(ctx context.Context, data ReportData) (io.Reader, error)
	// CompanyReport renders a company's reports grouped by branch.
	CompanyReport(ctx context.Context, data ReportData) (io.Reader, error)
	// RoleReport renders one role level's reports across branches.
	RoleReport(ctx context.Context, data ReportData) (io.Reader, error)
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

type provider struct {
	cfg *config.ExportConfigHolder
}

func New(cfg *config.ExportConfigHolder) Provider {
	return &provider{cfg: cfg}
}
