package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/branch/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	repo  domain.Repository
	genID *snowflake.Node
	log   *zap.Logger
}

func NewService(conn *gorm.DB, repo domain.Repository, genID *snowflake.Node, log *zap.Logger) domain.Service {
	return &service{db: conn, repo: repo, genID: genID, log: log}
}

func (s *service) CreateMain(ctx context.Context, req domain.CreateBranchRequest) (*domain.Branch, error) {
	name := strings.TrimSpace(req.BranchName)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	if existing, err := s.repo.FindByName(ctx, req.CompanyID, name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	branch := domain.Branch{
		ID:           s.genID.Generate(),
		CompanyID:    req.CompanyID,
		BranchName:   name,
		IsMainBranch: true,
		Location:     strings.TrimSpace(req.Location),
		BranchHead:   strings.TrimSpace(req.BranchHead),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return &branch, nil
}

func (s *service) CreateSub(ctx context.Context, req domain.CreateBranchRequest) (*domain.Branch, error) {
	name := strings.TrimSpace(req.BranchName)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.ParentBranchID == 0 {
		return nil, domain.ErrParentRequired
	}

	parent, err := s.repo.GetByID(ctx, req.ParentBranchID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrParentNotFound
	}
	if parent.CompanyID != req.CompanyID {
		return nil, domain.ErrParentCompanyMismatch
	}
	if !parent.IsActive {
		return nil, domain.ErrParentInactive
	}

	if existing, err := s.repo.FindByName(ctx, req.CompanyID, name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	parentID := req.ParentBranchID
	branch := domain.Branch{
		ID:             s.genID.Generate(),
		CompanyID:      req.CompanyID,
		ParentBranchID: &parentID,
		BranchName:     name,
		IsMainBranch:   false,
		Location:       strings.TrimSpace(req.Location),
		BranchHead:     strings.TrimSpace(req.BranchHead),
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return &branch, nil
}

func (s *service) ListAll(ctx context.Context) ([]domain.BranchListItem, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListByCompany(ctx context.Context, companyID snowflake.ID) ([]domain.BranchListItem, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *service) ListActive(ctx context.Context, companyID snowflake.ID) ([]domain.Branch, error) {
	return s.repo.ListActive(ctx, companyID)
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Branch, error) {
	branch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	return branch, nil
}

func (s *service) ParentCandidates(ctx context.Context, companyID, excludeID snowflake.ID) ([]domain.Branch, error) {
	return s.repo.ParentCandidates(ctx, companyID, excludeID)
}

func (s *service) SubBranches(ctx context.Context, parentBranchID snowflake.ID) ([]domain.Branch, error) {
	return s.repo.SubBranches(ctx, parentBranchID)
}

func (s *service) Update(ctx context.Context, req domain.UpdateBranchRequest) error {
	name := strings.TrimSpace(req.BranchName)
	if name == "" {
		return domain.ErrInvalidName
	}

	branch, err := s.repo.GetByID(ctx, req.BranchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return domain.ErrNotFound
	}

	if name != branch.BranchName {
		if existing, err := s.repo.FindByName(ctx, branch.CompanyID, name); err != nil {
			return err
		} else if existing != nil && existing.ID != branch.ID {
			return domain.ErrDuplicateName
		}
	}

	branch.BranchName = name
	branch.Location = strings.TrimSpace(req.Location)
	branch.BranchHead = strings.TrimSpace(req.BranchHead)

	// Parent moves apply to sub-branches only; a main branch never gets one.
	if !branch.IsMainBranch && req.ParentBranchID != 0 {
		if req.ParentBranchID == branch.ID {
			return domain.ErrParentSelf
		}
		parent, err := s.repo.GetByID(ctx, req.ParentBranchID)
		if err != nil {
			return err
		}
		if parent == nil {
			return domain.ErrParentNotFound
		}
		if parent.CompanyID != branch.CompanyID {
			return domain.ErrParentCompanyMismatch
		}
		parentID := req.ParentBranchID
		branch.ParentBranchID = &parentID
	}

	return s.repo.Update(ctx, *branch)
}

func (s *service) SetStatus(ctx context.Context, id snowflake.ID, isActive bool) error {
	branch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return domain.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).SetStatusCascade(ctx, id, isActive)
	})
	if err != nil {
		return err
	}

	s.log.Info("branch status updated",
		zap.String("branch_id", id.String()),
		zap.Bool("is_active", isActive),
	)
	return nil
}

func (s *service) Employees(ctx context.Context, branchID snowflake.ID) ([]domain.BranchEmployee, error) {
	return s.repo.Employees(ctx, branchID)
}

func (s *service) EmployeeCounts(ctx context.Context, companyID snowflake.ID) ([]domain.BranchEmployeeCount, error) {
	return s.repo.EmployeeCounts(ctx, companyID)
}
