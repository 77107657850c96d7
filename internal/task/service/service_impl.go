package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	branchdomain "github.com/staffdeck/staffdeck/internal/branch/domain"
	employeedomain "github.com/staffdeck/staffdeck/internal/employee/domain"
	"github.com/staffdeck/staffdeck/internal/policy"
	"github.com/staffdeck/staffdeck/internal/task/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db           *gorm.DB
	repo         domain.Repository
	branchRepo   branchdomain.Repository
	employeeRepo employeedomain.Repository
	genID        *snowflake.Node
	log          *zap.Logger
}

func NewService(
	conn *gorm.DB,
	repo domain.Repository,
	branchRepo branchdomain.Repository,
	employeeRepo employeedomain.Repository,
	genID *snowflake.Node,
	log *zap.Logger,
) domain.Service {
	return &service{
		db:           conn,
		repo:         repo,
		branchRepo:   branchRepo,
		employeeRepo: employeeRepo,
		genID:        genID,
		log:          log,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateTaskRequest) (*domain.Task, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, domain.ErrInvalidDescription
	}
	if req.BranchID != 0 && req.EmployeeID != 0 {
		return nil, domain.ErrBothTargets
	}
	if req.BranchID == 0 && req.EmployeeID == 0 {
		return nil, domain.ErrNoTarget
	}

	task := domain.Task{
		ID:              s.genID.Generate(),
		CompanyID:       req.CompanyID,
		TaskDescription: description,
		DueDate:         req.DueDate,
		CreatedAt:       time.Now().UTC(),
	}

	var assignees []snowflake.ID
	if req.BranchID != 0 {
		branch, err := s.branchRepo.GetByID(ctx, req.BranchID)
		if err != nil {
			return nil, err
		}
		if branch == nil || branch.CompanyID != req.CompanyID {
			return nil, domain.ErrTargetNotFound
		}
		if req.Actor.IsEmployee() && !policy.IsManagement(req.Actor.RoleLevel) {
			return nil, domain.ErrPermissionDenied
		}

		assignees, err = s.repo.ActiveBranchEmployees(ctx, req.BranchID)
		if err != nil {
			return nil, err
		}
		if len(assignees) == 0 {
			return nil, domain.ErrNoActiveEmployees
		}
		branchID := req.BranchID
		task.BranchID = &branchID
	} else {
		target, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return nil, err
		}
		if target == nil || target.CompanyID != req.CompanyID {
			return nil, domain.ErrTargetNotFound
		}
		if req.Actor.IsEmployee() && !policy.CanAssignTaskTo(req.Actor.RoleLevel, target.RoleLevel) {
			return nil, domain.ErrPermissionDenied
		}
		employeeID := req.EmployeeID
		task.EmployeeID = &employeeID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, task); err != nil {
			return err
		}
		if len(assignees) == 0 {
			return nil
		}
		assignments := make([]domain.Assignment, 0, len(assignees))
		for _, employeeID := range assignees {
			assignments = append(assignments, domain.Assignment{
				ID:         s.genID.Generate(),
				TaskID:     task.ID,
				EmployeeID: employeeID,
				CreatedAt:  task.CreatedAt,
			})
		}
		return repo.CreateAssignments(ctx, assignments)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("task created",
		zap.String("task_id", task.ID.String()),
		zap.String("company_id", req.CompanyID.String()),
		zap.Int("assignments", len(assignees)),
	)
	return &task, nil
}

func (s *service) Complete(ctx context.Context, taskID, employeeID snowflake.ID) (domain.CompleteOutcome, error) {
	outcome := domain.OutcomeNotAssignee

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		task, err := repo.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return domain.ErrNotFound
		}
		if task.IsCompleted {
			outcome = domain.OutcomeAlreadyCompleted
			return nil
		}
		now := time.Now().UTC()

		if task.EmployeeID != nil {
			if *task.EmployeeID != employeeID {
				outcome = domain.OutcomeNotAssignee
				return nil
			}
			if err := repo.CompleteTask(ctx, taskID, employeeID, now); err != nil {
				return err
			}
			outcome = domain.OutcomeTaskCompleted
			return nil
		}

		assignment, err := repo.GetAssignment(ctx, taskID, employeeID)
		if err != nil {
			return err
		}

		alreadyDone := assignment != nil && assignment.IsCompleted
		if assignment != nil && !alreadyDone {
			if err := repo.CompleteAssignment(ctx, assignment.ID, now); err != nil {
				return err
			}
		}

		level, err := repo.RoleLevelOf(ctx, employeeID)
		if err != nil {
			return err
		}
		// Management completes the whole branch task in one stroke, even
		// without an assignment of their own (hired after the snapshot).
		if policy.IsManagement(level) {
			if err := repo.CompleteTask(ctx, taskID, employeeID, now); err != nil {
				return err
			}
			outcome = domain.OutcomeTaskCompleted
			return nil
		}

		if assignment == nil {
			outcome = domain.OutcomeNotAssignee
			return nil
		}

		if alreadyDone {
			outcome = domain.OutcomeAlreadyCompleted
			return nil
		}

		pending, err := repo.PendingAssignments(ctx, taskID)
		if err != nil {
			return err
		}
		if pending == 0 {
			if err := repo.CompleteTask(ctx, taskID, employeeID, now); err != nil {
				return err
			}
			outcome = domain.OutcomeTaskCompleted
			return nil
		}
		outcome = domain.OutcomeRecorded
		return nil
	})
	if err != nil {
		return outcome, err
	}

	if outcome == domain.OutcomeTaskCompleted {
		s.log.Info("task completed",
			zap.String("task_id", taskID.String()),
			zap.String("completed_by", employeeID.String()),
		)
	}
	return outcome, nil
}

func (s *service) Reopen(ctx context.Context, taskID snowflake.ID) error {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return domain.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.ResetTask(ctx, taskID); err != nil {
			return err
		}
		return repo.ResetAssignments(ctx, taskID)
	})
	if err != nil {
		return err
	}

	s.log.Info("task reopened", zap.String("task_id", taskID.String()))
	return nil
}

func (s *service) Delete(ctx context.Context, taskID snowflake.ID) error {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return domain.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteAssignments(ctx, taskID); err != nil {
			return err
		}
		return repo.Delete(ctx, taskID)
	})
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	return task, nil
}

func (s *service) ListForCompany(ctx context.Context, companyID snowflake.ID, status domain.StatusFilter) ([]domain.TaskListItem, error) {
	return s.repo.ListForCompany(ctx, companyID, status)
}

func (s *service) ListForEmployee(ctx context.Context, employeeID snowflake.ID, status domain.StatusFilter) ([]domain.EmployeeTaskItem, error) {
	return s.repo.ListForEmployee(ctx, employeeID, status)
}

func (s *service) BranchProgress(ctx context.Context, taskID snowflake.ID) (*domain.Progress, error) {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	if task.BranchID == nil {
		return nil, domain.ErrNotBranchTask
	}
	return s.repo.Progress(ctx, taskID)
}
