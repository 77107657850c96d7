package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/staffdeck/staffdeck/internal/auth/domain"
	"github.com/staffdeck/staffdeck/internal/auth/password"
	authrepo "github.com/staffdeck/staffdeck/internal/auth/repository"
	branchdomain "github.com/staffdeck/staffdeck/internal/branch/domain"
	companydomain "github.com/staffdeck/staffdeck/internal/company/domain"
	"github.com/staffdeck/staffdeck/internal/config"
	employeedomain "github.com/staffdeck/staffdeck/internal/employee/domain"
	"github.com/staffdeck/staffdeck/internal/policy"
	roledomain "github.com/staffdeck/staffdeck/internal/role/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	svc  domain.Service
	node *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&companydomain.Company{},
		&branchdomain.Branch{},
		&roledomain.Role{},
		&employeedomain.Employee{},
		&domain.Session{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{
		AdminUsername:   "root",
		AdminPassword:   "root-secret",
		SessionTTLHours: 12,
	}
	svc := NewService(db, authrepo.NewRepository(db), cfg, node, zap.NewNop())
	return &fixture{db: db, svc: svc, node: node}
}

func (f *fixture) addCompany(t *testing.T, username, pass string, active bool) companydomain.Company {
	t.Helper()
	hash, err := password.Hash(pass)
	require.NoError(t, err)
	company := companydomain.Company{
		ID:           f.node.Generate(),
		CompanyName:  "Co " + username,
		Slug:         username,
		Username:     username,
		PasswordHash: hash,
		IsActive:     active,
	}
	require.NoError(t, f.db.Create(&company).Error)
	return company
}

func (f *fixture) addEmployee(t *testing.T, username, pass string, companyActive, branchActive, employeeActive bool) employeedomain.Employee {
	t.Helper()
	company := f.addCompany(t, "owner-"+username, "irrelevant", companyActive)
	branch := branchdomain.Branch{
		ID:           f.node.Generate(),
		CompanyID:    company.ID,
		BranchName:   "HQ " + username,
		IsMainBranch: true,
		IsActive:     branchActive,
	}
	require.NoError(t, f.db.Create(&branch).Error)
	role := roledomain.Role{
		ID:        f.node.Generate(),
		CompanyID: company.ID,
		RoleName:  policy.NameGeneralEmployee,
		RoleLevel: policy.LevelGeneralEmployee,
	}
	require.NoError(t, f.db.Create(&role).Error)

	hash, err := password.Hash(pass)
	require.NoError(t, err)
	employee := employeedomain.Employee{
		ID:           f.node.Generate(),
		BranchID:     branch.ID,
		RoleID:       role.ID,
		Username:     username,
		PasswordHash: hash,
		FullName:     username,
		IsActive:     employeeActive,
	}
	require.NoError(t, f.db.Create(&employee).Error)
	return employee
}

func TestCredentialChainOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// A company that shadows the admin username never wins: the admin
	// pair is checked first.
	f.addCompany(t, "root", "company-pass", true)

	identity, err := f.svc.Authenticate(ctx, "root", "root-secret")
	require.NoError(t, err)
	assert.Equal(t, domain.KindAdmin, identity.Kind)
	assert.Equal(t, domain.AdminID, identity.ID)

	// With the wrong admin password the same username falls to the
	// companies table.
	identity, err = f.svc.Authenticate(ctx, "root", "company-pass")
	require.NoError(t, err)
	assert.Equal(t, domain.KindCompany, identity.Kind)

	// A company username match with a bad password fails outright rather
	// than falling through to employees.
	f.addEmployee(t, "shared", "employee-pass", true, true, true)
	company := f.addCompany(t, "shared2", "company-pass", true)
	_ = company
	_, err = f.svc.Authenticate(ctx, "shared2", "employee-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	identity, err = f.svc.Authenticate(ctx, "shared", "employee-pass")
	require.NoError(t, err)
	assert.Equal(t, domain.KindEmployee, identity.Kind)
	assert.Equal(t, policy.LevelGeneralEmployee, identity.RoleLevel)
	assert.NotEmpty(t, identity.BranchName)
}

func TestInactiveChainRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.addEmployee(t, "e-inactive", "pass", true, true, false)
	_, err := f.svc.Authenticate(ctx, "e-inactive", "pass")
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)

	f.addEmployee(t, "b-inactive", "pass", true, false, true)
	_, err = f.svc.Authenticate(ctx, "b-inactive", "pass")
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)

	f.addEmployee(t, "c-inactive", "pass", false, true, true)
	_, err = f.svc.Authenticate(ctx, "c-inactive", "pass")
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)

	f.addCompany(t, "dormant", "pass", false)
	_, err = f.svc.Authenticate(ctx, "dormant", "pass")
	assert.ErrorIs(t, err, domain.ErrInactiveAccount)
}

func TestSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	company := f.addCompany(t, "acme", "pass", true)

	identity, token, err := f.svc.Login(ctx, "acme", "pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, company.ID, identity.ID)

	resolved, err := f.svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, domain.KindCompany, resolved.Kind)
	assert.Equal(t, company.ID, resolved.ID)

	// Deactivating the company kills the live session.
	require.NoError(t, f.db.Model(&companydomain.Company{}).
		Where("id = ?", company.ID).
		Update("is_active", false).Error)
	_, err = f.svc.Resolve(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	require.NoError(t, f.db.Model(&companydomain.Company{}).
		Where("id = ?", company.ID).
		Update("is_active", true).Error)

	require.NoError(t, f.svc.Logout(ctx, token))
	_, err = f.svc.Resolve(ctx, token)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Logout of an unknown token is a no-op.
	require.NoError(t, f.svc.Logout(ctx, "bogus"))
}
