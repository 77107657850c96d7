package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/staffdeck/staffdeck/internal/auth/domain"
	"github.com/staffdeck/staffdeck/internal/auth/password"
	branchdomain "github.com/staffdeck/staffdeck/internal/branch/domain"
	"github.com/staffdeck/staffdeck/internal/employee/domain"
	"github.com/staffdeck/staffdeck/internal/policy"
	roledomain "github.com/staffdeck/staffdeck/internal/role/domain"
	"github.com/staffdeck/staffdeck/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultProfilePic = "https://www.gravatar.com/avatar/00000000000000000000000000000000?d=mp&f=y"

type service struct {
	db         *gorm.DB
	repo       domain.Repository
	branchRepo branchdomain.Repository
	roleRepo   roledomain.Repository
	genID      *snowflake.Node
	log        *zap.Logger
}

func NewService(
	conn *gorm.DB,
	repo domain.Repository,
	branchRepo branchdomain.Repository,
	roleRepo roledomain.Repository,
	genID *snowflake.Node,
	log *zap.Logger,
) domain.Service {
	return &service{
		db:         conn,
		repo:       repo,
		branchRepo: branchRepo,
		roleRepo:   roleRepo,
		genID:      genID,
		log:        log,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateEmployeeRequest) (*domain.Employee, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, domain.ErrInvalidUsername
	}
	if req.Password == "" {
		return nil, domain.ErrInvalidPassword
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, domain.ErrInvalidFullName
	}

	// Employee actors create accounts only inside their own branch, and
	// only management levels may do it at all.
	if req.Actor.IsEmployee() {
		if !policy.CanCreateEmployees(req.Actor.RoleLevel) {
			return nil, domain.ErrPermissionDenied
		}
		if req.Actor.BranchID != req.BranchID {
			return nil, domain.ErrPermissionDenied
		}
	}

	branch, err := s.branchRepo.GetByID(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrBranchNotFound
	}
	if req.Actor.IsCompany() && branch.CompanyID != req.Actor.ID {
		return nil, domain.ErrPermissionDenied
	}

	role, err := s.roleRepo.GetByID(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil || role.CompanyID != branch.CompanyID {
		return nil, domain.ErrRoleNotFound
	}

	if existing, err := s.repo.FindByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	picURL := strings.TrimSpace(req.ProfilePicURL)
	if picURL == "" {
		picURL = defaultProfilePic
	}

	employee := domain.Employee{
		ID:            s.genID.Generate(),
		BranchID:      req.BranchID,
		RoleID:        req.RoleID,
		Username:      username,
		PasswordHash:  hash,
		FullName:      fullName,
		ProfilePicURL: picURL,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, err
	}

	s.log.Info("employee created",
		zap.String("employee_id", employee.ID.String()),
		zap.String("branch_id", req.BranchID.String()),
		zap.Int("role_level", role.RoleLevel),
	)
	return &employee, nil
}

func (s *service) List(ctx context.Context, filter domain.ListFilter) ([]domain.EmployeeDetail, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.EmployeeDetail, error) {
	detail, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	return detail, nil
}

func (s *service) SetStatus(ctx context.Context, actor authdomain.Identity, id snowflake.ID, isActive bool) error {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}

	switch {
	case actor.IsAdmin():
		// unrestricted
	case actor.IsCompany():
		if target.CompanyID != actor.ID {
			return domain.ErrPermissionDenied
		}
	case actor.IsEmployee():
		if target.CompanyID != actor.CompanyID {
			return domain.ErrPermissionDenied
		}
		if !policy.CanDeactivate(actor.RoleLevel, target.RoleLevel) {
			return domain.ErrPermissionDenied
		}
	default:
		return domain.ErrPermissionDenied
	}

	if err := s.repo.UpdateStatus(ctx, id, isActive); err != nil {
		return err
	}

	s.log.Info("employee status updated",
		zap.String("employee_id", id.String()),
		zap.Bool("is_active", isActive),
	)
	return nil
}

func (s *service) UpdateRole(ctx context.Context, id, roleID snowflake.ID) error {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}

	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil || role.CompanyID != target.CompanyID {
		return domain.ErrRoleNotFound
	}
	return s.repo.UpdateRole(ctx, id, roleID)
}

func (s *service) UpdateBranch(ctx context.Context, id, branchID snowflake.ID) error {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}

	branch, err := s.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return domain.ErrBranchNotFound
	}
	if branch.CompanyID != target.CompanyID {
		return domain.ErrPermissionDenied
	}
	return s.repo.UpdateBranch(ctx, id, branchID)
}

func (s *service) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	if req.NewPassword == "" {
		return domain.ErrInvalidPassword
	}

	employee, err := s.findAccount(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	if !password.Verify(req.CurrentPassword, employee.PasswordHash) {
		return domain.ErrWrongPassword
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, req.EmployeeID, hash)
}

func (s *service) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) error {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return domain.ErrInvalidFullName
	}
	if _, err := s.findAccount(ctx, req.EmployeeID); err != nil {
		return err
	}
	return s.repo.UpdateProfile(ctx, req.EmployeeID, fullName, strings.TrimSpace(req.ProfilePicURL))
}

func (s *service) findAccount(ctx context.Context, id snowflake.ID) (*domain.Employee, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return account, nil
}
