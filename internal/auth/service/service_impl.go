package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/auth/domain"
	"github.com/staffdeck/staffdeck/internal/auth/password"
	"github.com/staffdeck/staffdeck/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db    *gorm.DB
	repo  domain.Repository
	cfg   config.Config
	genID *snowflake.Node
	log   *zap.Logger
}

func NewService(conn *gorm.DB, repo domain.Repository, cfg config.Config, genID *snowflake.Node, log *zap.Logger) domain.Service {
	return &service{db: conn, repo: repo, cfg: cfg, genID: genID, log: log}
}

func (s *service) Authenticate(ctx context.Context, username, password string) (domain.Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	if identity, ok := s.checkAdmin(username, password); ok {
		return identity, nil
	}

	company, err := s.repo.FindCompanyByUsername(ctx, username)
	if err != nil {
		return domain.Identity{}, err
	}
	if company != nil {
		return s.checkCompany(company, password)
	}

	employee, err := s.repo.FindEmployeeByUsername(ctx, username)
	if err != nil {
		return domain.Identity{}, err
	}
	if employee != nil {
		return s.checkEmployee(employee, password)
	}

	return domain.Identity{}, domain.ErrInvalidCredentials
}

func (s *service) checkAdmin(username, pass string) (domain.Identity, bool) {
	if s.cfg.AdminUsername == "" {
		return domain.Identity{}, false
	}
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername))
	passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(s.cfg.AdminPassword))
	if userMatch&passMatch != 1 {
		return domain.Identity{}, false
	}
	return domain.Identity{
		Kind:     domain.KindAdmin,
		ID:       domain.AdminID,
		Username: s.cfg.AdminUsername,
		FullName: "Admin",
	}, true
}

func (s *service) checkCompany(company *domain.CompanyAuth, pass string) (domain.Identity, error) {
	if !password.Verify(pass, company.PasswordHash) {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	if !company.IsActive {
		return domain.Identity{}, domain.ErrInactiveAccount
	}
	return domain.Identity{
		Kind:          domain.KindCompany,
		ID:            company.ID,
		Username:      company.Username,
		FullName:      company.CompanyName,
		ProfilePicURL: company.ProfilePicURL,
	}, nil
}

func (s *service) checkEmployee(employee *domain.EmployeeAuth, pass string) (domain.Identity, error) {
	if !password.Verify(pass, employee.PasswordHash) {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	// The whole chain has to be live: employee, branch and company.
	if !employee.IsActive || !employee.BranchIsActive || !employee.CompanyIsActive {
		return domain.Identity{}, domain.ErrInactiveAccount
	}
	return employeeIdentity(employee), nil
}

func employeeIdentity(employee *domain.EmployeeAuth) domain.Identity {
	return domain.Identity{
		Kind:          domain.KindEmployee,
		ID:            employee.ID,
		Username:      employee.Username,
		FullName:      employee.FullName,
		ProfilePicURL: employee.ProfilePicURL,
		BranchID:      employee.BranchID,
		BranchName:    employee.BranchName,
		CompanyID:     employee.CompanyID,
		CompanyName:   employee.CompanyName,
		RoleID:        employee.RoleID,
		RoleName:      employee.RoleName,
		RoleLevel:     employee.RoleLevel,
	}
}

func (s *service) Login(ctx context.Context, username, pass string) (domain.Identity, string, error) {
	identity, err := s.Authenticate(ctx, username, pass)
	if err != nil {
		return domain.Identity{}, "", err
	}

	token, err := newToken()
	if err != nil {
		return domain.Identity{}, "", err
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:           s.genID.Generate(),
		TokenHash:    hashToken(token),
		IdentityKind: identity.Kind,
		IdentityID:   identity.ID,
		ExpiresAt:    now.Add(time.Duration(s.cfg.SessionTTLHours) * time.Hour),
		CreatedAt:    now,
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return domain.Identity{}, "", err
	}

	// Opportunistic cleanup keeps the table from growing unbounded.
	if err := s.repo.DeleteExpiredSessions(ctx, now); err != nil {
		s.log.Warn("expired session cleanup failed", zap.Error(err))
	}

	s.log.Info("login",
		zap.String("kind", string(identity.Kind)),
		zap.String("username", identity.Username),
	)
	return identity, token, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	session, err := s.repo.FindSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.repo.DeleteSession(ctx, session.ID)
}

func (s *service) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrSessionNotFound
	}

	session, err := s.repo.FindSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		return domain.Identity{}, err
	}
	if session == nil || session.ExpiresAt.Before(time.Now().UTC()) {
		return domain.Identity{}, domain.ErrSessionNotFound
	}

	switch session.IdentityKind {
	case domain.KindAdmin:
		return domain.Identity{
			Kind:     domain.KindAdmin,
			ID:       domain.AdminID,
			Username: s.cfg.AdminUsername,
			FullName: "Admin",
		}, nil
	case domain.KindCompany:
		company, err := s.repo.FindCompanyByID(ctx, session.IdentityID)
		if err != nil {
			return domain.Identity{}, err
		}
		if company == nil || !company.IsActive {
			return domain.Identity{}, domain.ErrSessionNotFound
		}
		return domain.Identity{
			Kind:          domain.KindCompany,
			ID:            company.ID,
			Username:      company.Username,
			FullName:      company.CompanyName,
			ProfilePicURL: company.ProfilePicURL,
		}, nil
	case domain.KindEmployee:
		employee, err := s.repo.FindEmployeeByID(ctx, session.IdentityID)
		if err != nil {
			return domain.Identity{}, err
		}
		if employee == nil || !employee.IsActive || !employee.BranchIsActive || !employee.CompanyIsActive {
			return domain.Identity{}, domain.ErrSessionNotFound
		}
		return employeeIdentity(employee), nil
	default:
		return domain.Identity{}, domain.ErrSessionNotFound
	}
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
