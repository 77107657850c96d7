// Package dashboard serves the read-only aggregates behind the landing
// pages. Everything here is a query; nothing mutates.
package dashboard

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	branchdomain "github.com/staffdeck/staffdeck/internal/branch/domain"
	messagedomain "github.com/staffdeck/staffdeck/internal/message/domain"
	"gorm.io/gorm"
)

// AdminOverview is the platform-wide snapshot.
type AdminOverview struct {
	CompanyCount   int64                     `json:"company_count"`
	BranchCount    int64                     `json:"branch_count"`
	EmployeeCount  int64                     `json:"employee_count"`
	UnreadMessages int64                     `json:"unread_messages"`
	RecentMessages []messagedomain.InboxItem `json:"recent_messages"`
}

// CompanyOverview is one company's snapshot.
type CompanyOverview struct {
	BranchEmployeeCounts []branchdomain.BranchEmployeeCount `json:"branch_employee_counts"`
	TaskTotal            int64                              `json:"task_total"`
	TaskCompleted        int64                              `json:"task_completed"`
	CompletionRate       float64                            `json:"completion_rate"`
	UnreadMessages       int64                              `json:"unread_messages"`
}

// EmployeeOverview is one employee's snapshot.
type EmployeeOverview struct {
	PendingTasks  int64 `json:"pending_tasks"`
	ReportedToday bool  `json:"reported_today"`
}

type Service interface {
	AdminOverview(ctx context.Context) (*AdminOverview, error)
	CompanyOverview(ctx context.Context, companyID snowflake.ID) (*CompanyOverview, error)
	EmployeeOverview(ctx context.Context, employeeID snowflake.ID, now time.Time) (*EmployeeOverview, error)
}

const recentMessageLimit = 5

type service struct {
	db          *gorm.DB
	branchRepo  branchdomain.Repository
	messageRepo messagedomain.Repository
}

func NewService(db *gorm.DB, branchRepo branchdomain.Repository, messageRepo messagedomain.Repository) Service {
	return &service{db: db, branchRepo: branchRepo, messageRepo: messageRepo}
}

func (s *service) AdminOverview(ctx context.Context) (*AdminOverview, error) {
	overview := AdminOverview{}

	counts := []struct {
		table string
		dest  *int64
	}{
		{"companies", &overview.CompanyCount},
		{"branches", &overview.BranchCount},
		{"employees", &overview.EmployeeCount},
	}
	for _, c := range counts {
		if err := s.db.WithContext(ctx).Table(c.table).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	unread, err := s.messageRepo.UnreadCountForAdmin(ctx)
	if err != nil {
		return nil, err
	}
	overview.UnreadMessages = unread

	inbox, err := s.messageRepo.AdminInbox(ctx)
	if err != nil {
		return nil, err
	}
	if len(inbox) > recentMessageLimit {
		inbox = inbox[:recentMessageLimit]
	}
	overview.RecentMessages = inbox

	return &overview, nil
}

func (s *service) CompanyOverview(ctx context.Context, companyID snowflake.ID) (*CompanyOverview, error) {
	overview := CompanyOverview{}

	counts, err := s.branchRepo.EmployeeCounts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	overview.BranchEmployeeCounts = counts

	if err := s.db.WithContext(ctx).
		Table("tasks").
		Where("company_id = ?", companyID).
		Count(&overview.TaskTotal).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Table("tasks").
		Where("company_id = ? AND is_completed = ?", companyID, true).
		Count(&overview.TaskCompleted).Error; err != nil {
		return nil, err
	}
	overview.CompletionRate = CompletionRate(overview.TaskCompleted, overview.TaskTotal)

	unread, err := s.messageRepo.UnreadCountForCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	overview.UnreadMessages = unread

	return &overview, nil
}

func (s *service) EmployeeOverview(ctx context.Context, employeeID snowflake.ID, now time.Time) (*EmployeeOverview, error) {
	overview := EmployeeOverview{}

	err := s.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM (
			SELECT t.id FROM tasks t
			WHERE t.employee_id = ? AND t.is_completed = ?
			UNION ALL
			SELECT t.id FROM tasks t
			JOIN task_assignments a ON a.task_id = t.id
			WHERE a.employee_id = ? AND a.is_completed = ?
		) pending`,
		employeeID, false, employeeID, false,
	).Scan(&overview.PendingTasks).Error
	if err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var reported int64
	err = s.db.WithContext(ctx).
		Table("daily_reports").
		Where("employee_id = ? AND report_date = ?", employeeID, today).
		Count(&reported).Error
	if err != nil {
		return nil, err
	}
	overview.ReportedToday = reported > 0

	return &overview, nil
}

// CompletionRate returns completed/total as a fraction, zero when nothing
// has been assigned yet.
func CompletionRate(completed, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}
