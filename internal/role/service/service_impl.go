package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/policy"
	"github.com/staffdeck/staffdeck/internal/role/domain"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(db *gorm.DB, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{db: db, repo: repo, genID: genID}
}

func (s *service) WithTx(tx *gorm.DB) domain.Service {
	return &service{db: tx, repo: s.repo.WithTx(tx), genID: s.genID}
}

func (s *service) List(ctx context.Context, companyID snowflake.ID) ([]domain.Role, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Role, error) {
	role, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}
	return role, nil
}

func (s *service) Create(ctx context.Context, req domain.CreateRoleRequest) (*domain.Role, error) {
	name := strings.TrimSpace(req.RoleName)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.RoleLevel < policy.LevelManager || req.RoleLevel > policy.LevelGeneralEmployee {
		return nil, domain.ErrInvalidLevel
	}

	existing, err := s.repo.FindByName(ctx, req.CompanyID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	role := domain.Role{
		ID:        s.genID.Generate(),
		CompanyID: req.CompanyID,
		RoleName:  name,
		RoleLevel: req.RoleLevel,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateRoleRequest) (*domain.Role, error) {
	name := strings.TrimSpace(req.RoleName)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.RoleLevel < policy.LevelManager || req.RoleLevel > policy.LevelGeneralEmployee {
		return nil, domain.ErrInvalidLevel
	}

	role, err := s.repo.GetByID(ctx, req.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}

	role.RoleName = name
	role.RoleLevel = req.RoleLevel
	if err := s.repo.Update(ctx, *role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *service) Delete(ctx context.Context, roleID, replacementRoleID snowflake.ID) error {
	if replacementRoleID == 0 {
		return domain.ErrReplacementRequired
	}
	if roleID == replacementRoleID {
		return domain.ErrSameRole
	}

	role, err := s.repo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.ErrNotFound
	}

	replacement, err := s.repo.GetByID(ctx, replacementRoleID)
	if err != nil {
		return err
	}
	if replacement == nil {
		return domain.ErrReplacementRequired
	}
	if replacement.CompanyID != role.CompanyID {
		return domain.ErrCompanyMismatch
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.ReassignEmployees(ctx, roleID, replacementRoleID); err != nil {
			return err
		}
		return repo.Delete(ctx, roleID)
	})
}

func (s *service) ManagerRoles(ctx context.Context, companyID snowflake.ID) ([]domain.Role, error) {
	return s.repo.ManagerRoles(ctx, companyID)
}

func (s *service) EnsureDefaults(ctx context.Context, companyID snowflake.ID) error {
	count, err := s.repo.CountByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	defaults := []struct {
		name  string
		level int
	}{
		{policy.NameManager, policy.LevelManager},
		{policy.NameAsstManager, policy.LevelAsstManager},
		{policy.NameGeneralEmployee, policy.LevelGeneralEmployee},
	}
	for _, d := range defaults {
		role := domain.Role{
			ID:        s.genID.Generate(),
			CompanyID: companyID,
			RoleName:  d.name,
			RoleLevel: d.level,
			CreatedAt: now,
		}
		if err := s.repo.Create(ctx, role); err != nil {
			return err
		}
	}
	return nil
}
