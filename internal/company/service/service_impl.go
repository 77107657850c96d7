package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/staffdeck/staffdeck/internal/auth/password"
	"github.com/staffdeck/staffdeck/internal/company/domain"
	roledomain "github.com/staffdeck/staffdeck/internal/role/domain"
	"github.com/staffdeck/staffdeck/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultProfilePic = "https://www.gravatar.com/avatar/00000000000000000000000000000000?d=mp&f=y"

type service struct {
	db      *gorm.DB
	repo    domain.Repository
	roleSvc roledomain.Service
	genID   *snowflake.Node
	log     *zap.Logger
}

func NewService(conn *gorm.DB, repo domain.Repository, roleSvc roledomain.Service, genID *snowflake.Node, log *zap.Logger) domain.Service {
	return &service{
		db:      conn,
		repo:    repo,
		roleSvc: roleSvc,
		genID:   genID,
		log:     log,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateCompanyRequest) (*domain.Company, error) {
	name := strings.TrimSpace(req.CompanyName)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, domain.ErrInvalidUsername
	}
	if req.Password == "" {
		return nil, domain.ErrInvalidPassword
	}

	// Pre-checks keep the failure message friendly; the unique indexes are
	// the backstop for the concurrent-creation race.
	if existing, err := s.repo.FindByName(ctx, name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateName
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

	company := domain.Company{
		ID:            s.genID.Generate(),
		CompanyName:   name,
		Slug:          slug.Make(name),
		Username:      username,
		PasswordHash:  hash,
		ProfilePicURL: picURL,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, company); err != nil {
			return err
		}
		// The default role set must land in the same transaction as the
		// company row; a separate session could not see it yet.
		return s.roleSvc.WithTx(tx).EnsureDefaults(ctx, company.ID)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, err
	}

	s.log.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("company_name", company.CompanyName),
	)
	return &company, nil
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]domain.Company, error) {
	return s.repo.List(ctx, activeOnly)
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Company, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

func (s *service) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) error {
	name := strings.TrimSpace(req.CompanyName)
	if name == "" {
		return domain.ErrInvalidName
	}

	company, err := s.repo.GetByID(ctx, req.CompanyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}

	if name != company.CompanyName {
		if existing, err := s.repo.FindByName(ctx, name); err != nil {
			return err
		} else if existing != nil && existing.ID != company.ID {
			return domain.ErrDuplicateName
		}
	}

	return s.repo.UpdateProfile(ctx, req.CompanyID, name, strings.TrimSpace(req.ProfilePicURL))
}

func (s *service) ResetPassword(ctx context.Context, id snowflake.ID, currentPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidPassword
	}

	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	if !password.Verify(currentPassword, company.PasswordHash) {
		return domain.ErrWrongPassword
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

func (s *service) SetStatus(ctx context.Context, id snowflake.ID, isActive bool) error {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).SetStatusCascade(ctx, id, isActive)
	})
	if err != nil {
		return err
	}

	s.log.Info("company status updated",
		zap.String("company_id", id.String()),
		zap.Bool("is_active", isActive),
	)
	return nil
}
