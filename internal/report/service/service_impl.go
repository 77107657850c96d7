package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/staffdeck/staffdeck/internal/auth/domain"
	"github.com/staffdeck/staffdeck/internal/config"
	employeedomain "github.com/staffdeck/staffdeck/internal/employee/domain"
	"github.com/staffdeck/staffdeck/internal/policy"
	"github.com/staffdeck/staffdeck/internal/report/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db           *gorm.DB
	repo         domain.Repository
	employeeRepo employeedomain.Repository
	exportCfg    *config.ExportConfigHolder
	genID        *snowflake.Node
	log          *zap.Logger
}

func NewService(
	conn *gorm.DB,
	repo domain.Repository,
	employeeRepo employeedomain.Repository,
	exportCfg *config.ExportConfigHolder,
	genID *snowflake.Node,
	log *zap.Logger,
) domain.Service {
	return &service{
		db:           conn,
		repo:         repo,
		employeeRepo: employeeRepo,
		exportCfg:    exportCfg,
		genID:        genID,
		log:          log,
	}
}

func (s *service) Submit(ctx context.Context, employeeID snowflake.ID, date time.Time, text string) (domain.SubmitResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrInvalidText
	}
	if date.IsZero() {
		return "", domain.ErrInvalidDate
	}
	day := truncateToDay(date)

	result := domain.SubmitCreated
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		existing, err := repo.FindByEmployeeAndDate(ctx, employeeID, day)
		if err != nil {
			return err
		}
		if existing != nil {
			result = domain.SubmitUpdated
			return repo.UpdateText(ctx, existing.ID, text)
		}
		return repo.Create(ctx, domain.DailyReport{
			ID:         s.genID.Generate(),
			EmployeeID: employeeID,
			ReportDate: day,
			ReportText: text,
			CreatedAt:  time.Now().UTC(),
		})
	})
	if err != nil {
		return "", err
	}

	s.log.Info("daily report submitted",
		zap.String("employee_id", employeeID.String()),
		zap.String("report_date", day.Format("2006-01-02")),
		zap.String("result", string(result)),
	)
	return result, nil
}

func (s *service) ListForEmployee(ctx context.Context, actor authdomain.Identity, employeeID snowflake.ID, dateRange domain.DateRange) ([]domain.DailyReport, error) {
	if actor.IsEmployee() && actor.ID != employeeID {
		target, err := s.employeeRepo.GetByID(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		if target == nil || target.CompanyID != actor.CompanyID {
			return nil, domain.ErrPermissionDenied
		}
		if !policy.CanViewReportsOf(actor.RoleLevel, target.RoleLevel) {
			return nil, domain.ErrPermissionDenied
		}
	}
	return s.repo.ListForEmployee(ctx, employeeID, dateRange)
}

func (s *service) ListForBranch(ctx context.Context, branchID snowflake.ID, dateRange domain.DateRange, roleLevel int) ([]domain.ReportListItem, error) {
	return s.repo.ListForBranch(ctx, branchID, dateRange, roleLevel)
}

func (s *service) ListForCompany(ctx context.Context, filter domain.ListFilter) ([]domain.ReportListItem, error) {
	return s.repo.ListForCompany(ctx, filter)
}

func (s *service) ListAll(ctx context.Context, dateRange domain.DateRange, employeeName string) ([]domain.ReportListItem, error) {
	return s.repo.ListAll(ctx, dateRange, strings.TrimSpace(employeeName))
}

// ResolvePreset turns a named window into inclusive day bounds. Weeks start
// on Monday.
func (s *service) ResolvePreset(preset domain.RangePreset, now time.Time) domain.DateRange {
	today := truncateToDay(now)

	switch preset {
	case domain.PresetThisWeek:
		weekday := int(today.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return domain.DateRange{From: today.AddDate(0, 0, -(weekday - 1)), To: today}
	case domain.PresetThisMonth:
		return domain.DateRange{
			From: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC),
			To:   today,
		}
	case domain.PresetThisYear:
		return domain.DateRange{
			From: time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC),
			To:   today,
		}
	case domain.PresetAllTime:
		years := s.exportCfg.Get().AllTimeLookbackYears
		return domain.DateRange{From: today.AddDate(-years, 0, 0), To: today}
	default:
		return domain.DateRange{From: today, To: today}
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
