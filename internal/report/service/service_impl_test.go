package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	authdomain "github.com/staffdeck/staffdeck/internal/auth/domain"
	branchdomain "github.com/staffdeck/staffdeck/internal/branch/domain"
	companydomain "github.com/staffdeck/staffdeck/internal/company/domain"
	"github.com/staffdeck/staffdeck/internal/config"
	employeedomain "github.com/staffdeck/staffdeck/internal/employee/domain"
	employeerepo "github.com/staffdeck/staffdeck/internal/employee/repository"
	"github.com/staffdeck/staffdeck/internal/policy"
	"github.com/staffdeck/staffdeck/internal/report/domain"
	reportrepo "github.com/staffdeck/staffdeck/internal/report/repository"
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
	branch  branchdomain.Branch
	roles   map[int]roledomain.Role
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
		&domain.DailyReport{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	holder, err := config.NewExportConfigHolder()
	require.NoError(t, err)

	f := &fixture{db: db, node: node, roles: map[int]roledomain.Role{}}

	f.company = companydomain.Company{
		ID:           node.Generate(),
		CompanyName:  "Acme Pvt Ltd",
		Slug:         "acme-pvt-ltd",
		Username:     "acme",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&f.company).Error)

	f.branch = branchdomain.Branch{
		ID:           node.Generate(),
		CompanyID:    f.company.ID,
		BranchName:   "HQ",
		IsMainBranch: true,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&f.branch).Error)

	for level := policy.LevelManager; level <= policy.LevelGeneralEmployee; level++ {
		role := roledomain.Role{
			ID:        node.Generate(),
			CompanyID: f.company.ID,
			RoleName:  policy.RoleName(level),
			RoleLevel: level,
		}
		require.NoError(t, db.Create(&role).Error)
		f.roles[level] = role
	}

	f.svc = NewService(
		db,
		reportrepo.NewRepository(db),
		employeerepo.NewRepository(db),
		holder,
		node,
		zap.NewNop(),
	)
	return f
}

func (f *fixture) addEmployee(t *testing.T, name string, level int) employeedomain.Employee {
	t.Helper()
	employee := employeedomain.Employee{
		ID:           f.node.Generate(),
		BranchID:     f.branch.ID,
		RoleID:       f.roles[level].ID,
		Username:     name,
		PasswordHash: "x",
		FullName:     name,
		IsActive:     true,
	}
	require.NoError(t, f.db.Create(&employee).Error)
	return employee
}

func employeeActor(e employeedomain.Employee, f *fixture, level int) authdomain.Identity {
	return authdomain.Identity{
		Kind:      authdomain.KindEmployee,
		ID:        e.ID,
		BranchID:  f.branch.ID,
		CompanyID: f.company.ID,
		RoleLevel: level,
	}
}

func TestSubmitTwiceUpdatesSameDay(t *testing.T) {
	f := newFixture(t)
	carol := f.addEmployee(t, "carol", policy.LevelGeneralEmployee)
	ctx := context.Background()
	day := time.Date(2026, 8, 28, 13, 45, 0, 0, time.UTC)

	result, err := f.svc.Submit(ctx, carol.ID, day, "restocked shelves")
	require.NoError(t, err)
	assert.Equal(t, domain.SubmitCreated, result)

	result, err = f.svc.Submit(ctx, carol.ID, day, "restocked shelves, closed till")
	require.NoError(t, err)
	assert.Equal(t, domain.SubmitUpdated, result)

	var count int64
	require.NoError(t, f.db.Model(&domain.DailyReport{}).
		Where("employee_id = ?", carol.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var report domain.DailyReport
	require.NoError(t, f.db.Where("employee_id = ?", carol.ID).First(&report).Error)
	assert.Equal(t, "restocked shelves, closed till", report.ReportText)
}

func TestViewGateFollowsRoleLevels(t *testing.T) {
	f := newFixture(t)
	manager := f.addEmployee(t, "alice", policy.LevelManager)
	asst := f.addEmployee(t, "bob", policy.LevelAsstManager)
	carol := f.addEmployee(t, "carol", policy.LevelGeneralEmployee)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, manager.ID, time.Now().UTC(), "reviewed the quarter")
	require.NoError(t, err)

	window := f.svc.ResolvePreset(domain.PresetThisMonth, time.Now().UTC())

	// Asst. managers see peers and below, not the manager.
	_, err = f.svc.ListForEmployee(ctx, employeeActor(asst, f, policy.LevelAsstManager), manager.ID, window)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	// General employees see only themselves.
	_, err = f.svc.ListForEmployee(ctx, employeeActor(carol, f, policy.LevelGeneralEmployee), asst.ID, window)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	reports, err := f.svc.ListForEmployee(ctx, employeeActor(manager, f, policy.LevelManager), carol.ID, window)
	require.NoError(t, err)
	assert.Empty(t, reports)

	own, err := f.svc.ListForEmployee(ctx, employeeActor(manager, f, policy.LevelManager), manager.ID, window)
	require.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestListForCompanyFilters(t *testing.T) {
	f := newFixture(t)
	manager := f.addEmployee(t, "alice", policy.LevelManager)
	carol := f.addEmployee(t, "carol", policy.LevelGeneralEmployee)
	ctx := context.Background()
	day := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)

	_, err := f.svc.Submit(ctx, manager.ID, day, "opened the store")
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, carol.ID, day, "served customers")
	require.NoError(t, err)

	window := domain.DateRange{
		From: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}

	all, err := f.svc.ListForCompany(ctx, domain.ListFilter{Range: window, CompanyID: f.company.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	generals, err := f.svc.ListForCompany(ctx, domain.ListFilter{
		Range:     window,
		CompanyID: f.company.ID,
		RoleLevel: policy.LevelGeneralEmployee,
	})
	require.NoError(t, err)
	require.Len(t, generals, 1)
	assert.Equal(t, "carol", generals[0].FullName)

	named, err := f.svc.ListAll(ctx, window, "ali")
	require.NoError(t, err)
	require.Len(t, named, 1)
	assert.Equal(t, "alice", named[0].FullName)
}

func TestResolvePresetBounds(t *testing.T) {
	f := newFixture(t)
	// A Friday.
	now := time.Date(2026, 8, 28, 16, 30, 0, 0, time.UTC)

	today := f.svc.ResolvePreset(domain.PresetToday, now)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), today.From)
	assert.Equal(t, today.From, today.To)

	week := f.svc.ResolvePreset(domain.PresetThisWeek, now)
	assert.Equal(t, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), week.From)

	month := f.svc.ResolvePreset(domain.PresetThisMonth, now)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), month.From)

	year := f.svc.ResolvePreset(domain.PresetThisYear, now)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), year.From)

	allTime := f.svc.ResolvePreset(domain.PresetAllTime, now)
	assert.True(t, allTime.From.Before(year.From))
}
