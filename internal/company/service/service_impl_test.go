package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/staffdeck/staffdeck/internal/auth/password"
	branchdomain "github.com/staffdeck/staffdeck/internal/branch/domain"
	"github.com/staffdeck/staffdeck/internal/company/domain"
	companyrepo "github.com/staffdeck/staffdeck/internal/company/repository"
	employeedomain "github.com/staffdeck/staffdeck/internal/employee/domain"
	"github.com/staffdeck/staffdeck/internal/policy"
	roledomain "github.com/staffdeck/staffdeck/internal/role/domain"
	rolerepo "github.com/staffdeck/staffdeck/internal/role/repository"
	roleservice "github.com/staffdeck/staffdeck/internal/role/service"
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
		&domain.Company{},
		&branchdomain.Branch{},
		&roledomain.Role{},
		&employeedomain.Employee{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	roleSvc := roleservice.NewService(db, rolerepo.NewRepository(db), node)
	svc := NewService(db, companyrepo.NewRepository(db), roleSvc, node, zap.NewNop())

	return &fixture{db: db, svc: svc, node: node}
}

func (f *fixture) createCompany(t *testing.T, name, username string) *domain.Company {
	t.Helper()
	company, err := f.svc.Create(context.Background(), domain.CreateCompanyRequest{
		CompanyName: name,
		Username:    username,
		Password:    "secret",
	})
	require.NoError(t, err)
	return company
}

func TestCreateSeedsDefaultRoles(t *testing.T) {
	f := newFixture(t)
	company := f.createCompany(t, "Acme Pvt Ltd", "acme")

	assert.Equal(t, "acme-pvt-ltd", company.Slug)
	assert.True(t, company.IsActive)
	assert.True(t, password.Verify("secret", company.PasswordHash))

	// The company insert and the role seed share one transaction; all
	// three defaults must exist right after Create returns.
	var roles []roledomain.Role
	require.NoError(t, f.db.
		Where("company_id = ?", company.ID).
		Order("role_level").
		Find(&roles).Error)
	require.Len(t, roles, 3)
	assert.Equal(t, policy.NameManager, roles[0].RoleName)
	assert.Equal(t, policy.LevelManager, roles[0].RoleLevel)
	assert.Equal(t, policy.NameAsstManager, roles[1].RoleName)
	assert.Equal(t, policy.NameGeneralEmployee, roles[2].RoleName)
}

func TestCreateRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	f.createCompany(t, "Acme Pvt Ltd", "acme")
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateCompanyRequest{
		CompanyName: "Acme Pvt Ltd",
		Username:    "other",
		Password:    "secret",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = f.svc.Create(ctx, domain.CreateCompanyRequest{
		CompanyName: "Globex",
		Username:    "acme",
		Password:    "secret",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestSetStatusCascadesToBranchesAndEmployees(t *testing.T) {
	f := newFixture(t)
	company := f.createCompany(t, "Acme Pvt Ltd", "acme")
	ctx := context.Background()

	var role roledomain.Role
	require.NoError(t, f.db.
		Where("company_id = ? AND role_level = ?", company.ID, policy.LevelGeneralEmployee).
		First(&role).Error)

	branch := branchdomain.Branch{
		ID:           f.node.Generate(),
		CompanyID:    company.ID,
		BranchName:   "HQ",
		IsMainBranch: true,
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(&branch).Error)

	employee := employeedomain.Employee{
		ID:           f.node.Generate(),
		BranchID:     branch.ID,
		RoleID:       role.ID,
		Username:     "carol",
		PasswordHash: "x",
		FullName:     "carol",
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(&employee).Error)

	require.NoError(t, f.svc.SetStatus(ctx, company.ID, false))

	reloaded, err := f.svc.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)

	var reloadedBranch branchdomain.Branch
	require.NoError(t, f.db.Where("id = ?", branch.ID).First(&reloadedBranch).Error)
	assert.False(t, reloadedBranch.IsActive)

	var reloadedEmployee employeedomain.Employee
	require.NoError(t, f.db.Where("id = ?", employee.ID).First(&reloadedEmployee).Error)
	assert.False(t, reloadedEmployee.IsActive)

	// Reactivation walks the same cascade back up.
	require.NoError(t, f.svc.SetStatus(ctx, company.ID, true))
	require.NoError(t, f.db.Where("id = ?", employee.ID).First(&reloadedEmployee).Error)
	assert.True(t, reloadedEmployee.IsActive)
}

func TestResetPasswordVerifiesCurrent(t *testing.T) {
	f := newFixture(t)
	company := f.createCompany(t, "Acme Pvt Ltd", "acme")
	ctx := context.Background()

	err := f.svc.ResetPassword(ctx, company.ID, "wrong", "newsecret")
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	require.NoError(t, f.svc.ResetPassword(ctx, company.ID, "secret", "newsecret"))

	reloaded, err := f.svc.GetByID(ctx, company.ID)
	require.NoError(t, err)
	assert.True(t, password.Verify("newsecret", reloaded.PasswordHash))
}
