package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/staffdeck/staffdeck/internal/branch/domain"
	branchrepo "github.com/staffdeck/staffdeck/internal/branch/repository"
	companydomain "github.com/staffdeck/staffdeck/internal/company/domain"
	employeedomain "github.com/staffdeck/staffdeck/internal/employee/domain"
	"github.com/staffdeck/staffdeck/internal/policy"
	roledomain "github.com/staffdeck/staffdeck/internal/role/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	svc     domain.Service
	node    *snowflake.Node
	company companydomain.Company
	role    roledomain.Role
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&companydomain.Company{},
		&domain.Branch{},
		&roledomain.Role{},
		&employeedomain.Employee{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &fixture{
		db:   db,
		node: node,
		svc:  NewService(db, branchrepo.NewRepository(db), node, zap.NewNop()),
	}

	f.company = companydomain.Company{
		ID:           node.Generate(),
		CompanyName:  "Acme Pvt Ltd",
		Slug:         "acme-pvt-ltd",
		Username:     "acme",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&f.company).Error)

	f.role = roledomain.Role{
		ID:        node.Generate(),
		CompanyID: f.company.ID,
		RoleName:  policy.NameGeneralEmployee,
		RoleLevel: policy.LevelGeneralEmployee,
	}
	require.NoError(t, db.Create(&f.role).Error)

	return f
}

func (f *fixture) addEmployee(t *testing.T, branchID snowflake.ID, name string) employeedomain.Employee {
	t.Helper()
	employee := employeedomain.Employee{
		ID:           f.node.Generate(),
		BranchID:     branchID,
		RoleID:       f.role.ID,
		Username:     name,
		PasswordHash: "x",
		FullName:     name,
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(&employee).Error)
	return employee
}

func (f *fixture) employeeActive(t *testing.T, id snowflake.ID) bool {
	t.Helper()
	var employee employeedomain.Employee
	require.NoError(t, f.db.Where("id = ?", id).First(&employee).Error)
	return employee.IsActive
}

func TestDeactivationCascadesToDirectEmployeesOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hq, err := f.svc.CreateMain(ctx, domain.CreateBranchRequest{
		CompanyID:  f.company.ID,
		BranchName: "HQ",
	})
	require.NoError(t, err)

	support, err := f.svc.CreateSub(ctx, domain.CreateBranchRequest{
		CompanyID:      f.company.ID,
		ParentBranchID: hq.ID,
		BranchName:     "HQ Support",
	})
	require.NoError(t, err)

	hqEmployee := f.addEmployee(t, hq.ID, "carol")
	supportEmployee := f.addEmployee(t, support.ID, "dave")

	require.NoError(t, f.svc.SetStatus(ctx, hq.ID, false))

	reloaded, err := f.svc.GetByID(ctx, hq.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
	assert.False(t, f.employeeActive(t, hqEmployee.ID))

	// The sub-branch and its staff keep their own status.
	reloadedSub, err := f.svc.GetByID(ctx, support.ID)
	require.NoError(t, err)
	assert.True(t, reloadedSub.IsActive)
	assert.True(t, f.employeeActive(t, supportEmployee.ID))
}

func TestCreateSubValidatesParent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hq, err := f.svc.CreateMain(ctx, domain.CreateBranchRequest{
		CompanyID:  f.company.ID,
		BranchName: "HQ",
	})
	require.NoError(t, err)

	_, err = f.svc.CreateSub(ctx, domain.CreateBranchRequest{
		CompanyID:  f.company.ID,
		BranchName: "No Parent",
	})
	assert.ErrorIs(t, err, domain.ErrParentRequired)

	_, err = f.svc.CreateSub(ctx, domain.CreateBranchRequest{
		CompanyID:      f.company.ID,
		ParentBranchID: f.node.Generate(),
		BranchName:     "Orphan",
	})
	assert.ErrorIs(t, err, domain.ErrParentNotFound)

	other := companydomain.Company{
		ID:           f.node.Generate(),
		CompanyName:  "Globex",
		Slug:         "globex",
		Username:     "globex",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(&other).Error)

	_, err = f.svc.CreateSub(ctx, domain.CreateBranchRequest{
		CompanyID:      other.ID,
		ParentBranchID: hq.ID,
		BranchName:     "Cross Tenant",
	})
	assert.ErrorIs(t, err, domain.ErrParentCompanyMismatch)

	require.NoError(t, f.svc.SetStatus(ctx, hq.ID, false))
	_, err = f.svc.CreateSub(ctx, domain.CreateBranchRequest{
		CompanyID:      f.company.ID,
		ParentBranchID: hq.ID,
		BranchName:     "Under Closed HQ",
	})
	assert.ErrorIs(t, err, domain.ErrParentInactive)
}

func TestUpdateIgnoresParentForMainBranch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hq, err := f.svc.CreateMain(ctx, domain.CreateBranchRequest{
		CompanyID:  f.company.ID,
		BranchName: "HQ",
	})
	require.NoError(t, err)

	annex, err := f.svc.CreateSub(ctx, domain.CreateBranchRequest{
		CompanyID:      f.company.ID,
		ParentBranchID: hq.ID,
		BranchName:     "Annex",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Update(ctx, domain.UpdateBranchRequest{
		BranchID:       hq.ID,
		BranchName:     "HQ",
		ParentBranchID: annex.ID,
	}))

	reloaded, err := f.svc.GetByID(ctx, hq.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.ParentBranchID)
}
