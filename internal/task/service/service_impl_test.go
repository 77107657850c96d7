package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	authdomain "github.com/staffdeck/staffdeck/internal/auth/domain"
	branchdomain "github.com/staffdeck/staffdeck/internal/branch/domain"
	branchrepo "github.com/staffdeck/staffdeck/internal/branch/repository"
	companydomain "github.com/staffdeck/staffdeck/internal/company/domain"
	employeedomain "github.com/staffdeck/staffdeck/internal/employee/domain"
	employeerepo "github.com/staffdeck/staffdeck/internal/employee/repository"
	"github.com/staffdeck/staffdeck/internal/policy"
	roledomain "github.com/staffdeck/staffdeck/internal/role/domain"
	"github.com/staffdeck/staffdeck/internal/task/domain"
	taskrepo "github.com/staffdeck/staffdeck/internal/task/repository"
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
		&domain.Task{},
		&domain.Assignment{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &fixture{
		db:    db,
		node:  node,
		roles: map[int]roledomain.Role{},
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
		taskrepo.NewRepository(db),
		branchrepo.NewRepository(db),
		employeerepo.NewRepository(db),
		node,
		zap.NewNop(),
	)
	return f
}

func (f *fixture) addEmployee(t *testing.T, name string, level int, active bool) employeedomain.Employee {
	t.Helper()
	employee := employeedomain.Employee{
		ID:           f.node.Generate(),
		BranchID:     f.branch.ID,
		RoleID:       f.roles[level].ID,
		Username:     name,
		PasswordHash: "x",
		FullName:     name,
		IsActive:     active,
	}
	require.NoError(t, f.db.Create(&employee).Error)
	return employee
}

func (f *fixture) companyActor() authdomain.Identity {
	return authdomain.Identity{Kind: authdomain.KindCompany, ID: f.company.ID}
}

func (f *fixture) branchTask(t *testing.T) *domain.Task {
	t.Helper()
	task, err := f.svc.Create(context.Background(), domain.CreateTaskRequest{
		Actor:       f.companyActor(),
		CompanyID:   f.company.ID,
		BranchID:    f.branch.ID,
		Description: "quarterly stock count",
	})
	require.NoError(t, err)
	return task
}

func (f *fixture) reloadTask(t *testing.T, id snowflake.ID) domain.Task {
	t.Helper()
	var task domain.Task
	require.NoError(t, f.db.Where("id = ?", id).First(&task).Error)
	return task
}

func TestBranchTaskRequiresAllAssignments(t *testing.T) {
	f := newFixture(t)
	first := f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	second := f.addEmployee(t, "dave", policy.LevelGeneralEmployee, true)
	third := f.addEmployee(t, "erin", policy.LevelGeneralEmployee, true)
	task := f.branchTask(t)
	ctx := context.Background()

	outcome, err := f.svc.Complete(ctx, task.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRecorded, outcome)
	assert.False(t, f.reloadTask(t, task.ID).IsCompleted)

	outcome, err = f.svc.Complete(ctx, task.ID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRecorded, outcome)

	outcome, err = f.svc.Complete(ctx, task.ID, third.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeTaskCompleted, outcome)

	reloaded := f.reloadTask(t, task.ID)
	assert.True(t, reloaded.IsCompleted)
	require.NotNil(t, reloaded.CompletedByID)
	assert.Equal(t, third.ID, *reloaded.CompletedByID)
}

func TestBranchTaskManagementOverride(t *testing.T) {
	f := newFixture(t)
	manager := f.addEmployee(t, "alice", policy.LevelManager, true)
	f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	f.addEmployee(t, "dave", policy.LevelGeneralEmployee, true)
	task := f.branchTask(t)

	outcome, err := f.svc.Complete(context.Background(), task.ID, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeTaskCompleted, outcome)

	reloaded := f.reloadTask(t, task.ID)
	assert.True(t, reloaded.IsCompleted)
	require.NotNil(t, reloaded.CompletedByID)
	assert.Equal(t, manager.ID, *reloaded.CompletedByID)

	// The override stamps only the manager's own assignment.
	var pending int64
	require.NoError(t, f.db.Model(&domain.Assignment{}).
		Where("task_id = ? AND is_completed = ?", task.ID, false).
		Count(&pending).Error)
	assert.Equal(t, int64(2), pending)
}

func TestLateHiredManagerOverridesWithoutAssignment(t *testing.T) {
	f := newFixture(t)
	f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	f.addEmployee(t, "dave", policy.LevelGeneralEmployee, true)
	task := f.branchTask(t)

	// Hired after the snapshot: no assignment row, but the override still
	// applies to management.
	manager := f.addEmployee(t, "alice", policy.LevelManager, true)

	outcome, err := f.svc.Complete(context.Background(), task.ID, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeTaskCompleted, outcome)

	reloaded := f.reloadTask(t, task.ID)
	assert.True(t, reloaded.IsCompleted)
	require.NotNil(t, reloaded.CompletedByID)
	assert.Equal(t, manager.ID, *reloaded.CompletedByID)
}

func TestLateHiredGeneralEmployeeIsNotAssignee(t *testing.T) {
	f := newFixture(t)
	f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	task := f.branchTask(t)

	late := f.addEmployee(t, "erin", policy.LevelGeneralEmployee, true)

	outcome, err := f.svc.Complete(context.Background(), task.ID, late.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotAssignee, outcome)
	assert.False(t, f.reloadTask(t, task.ID).IsCompleted)
}

func TestCompleteAlreadyCompletedIsNoOp(t *testing.T) {
	f := newFixture(t)
	manager := f.addEmployee(t, "alice", policy.LevelManager, true)
	task := f.branchTask(t)
	ctx := context.Background()

	_, err := f.svc.Complete(ctx, task.ID, manager.ID)
	require.NoError(t, err)

	outcome, err := f.svc.Complete(ctx, task.ID, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyCompleted, outcome)
}

func TestIndividualTaskWrongCompleter(t *testing.T) {
	f := newFixture(t)
	carol := f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	dave := f.addEmployee(t, "dave", policy.LevelGeneralEmployee, true)
	ctx := context.Background()

	task, err := f.svc.Create(ctx, domain.CreateTaskRequest{
		Actor:       f.companyActor(),
		CompanyID:   f.company.ID,
		EmployeeID:  carol.ID,
		Description: "file the returns",
	})
	require.NoError(t, err)

	outcome, err := f.svc.Complete(ctx, task.ID, dave.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNotAssignee, outcome)
	assert.False(t, f.reloadTask(t, task.ID).IsCompleted)

	outcome, err = f.svc.Complete(ctx, task.ID, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeTaskCompleted, outcome)
}

func TestReopenResetsTaskAndAssignments(t *testing.T) {
	f := newFixture(t)
	manager := f.addEmployee(t, "alice", policy.LevelManager, true)
	f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	task := f.branchTask(t)
	ctx := context.Background()

	_, err := f.svc.Complete(ctx, task.ID, manager.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Reopen(ctx, task.ID))

	reloaded := f.reloadTask(t, task.ID)
	assert.False(t, reloaded.IsCompleted)
	assert.Nil(t, reloaded.CompletedByID)
	assert.Nil(t, reloaded.CompletedAt)

	var completed int64
	require.NoError(t, f.db.Model(&domain.Assignment{}).
		Where("task_id = ? AND is_completed = ?", task.ID, true).
		Count(&completed).Error)
	assert.Zero(t, completed)

	// Reopening a pending task changes nothing and reports no error.
	require.NoError(t, f.svc.Reopen(ctx, task.ID))
}

func TestBranchSnapshotExcludesInactiveAndLaterHires(t *testing.T) {
	f := newFixture(t)
	f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	f.addEmployee(t, "dave", policy.LevelGeneralEmployee, false)
	task := f.branchTask(t)

	f.addEmployee(t, "erin", policy.LevelGeneralEmployee, true)

	var count int64
	require.NoError(t, f.db.Model(&domain.Assignment{}).
		Where("task_id = ?", task.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateRejectsAmbiguousTargets(t *testing.T) {
	f := newFixture(t)
	carol := f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateTaskRequest{
		Actor:       f.companyActor(),
		CompanyID:   f.company.ID,
		BranchID:    f.branch.ID,
		EmployeeID:  carol.ID,
		Description: "double target",
	})
	assert.ErrorIs(t, err, domain.ErrBothTargets)

	_, err = f.svc.Create(ctx, domain.CreateTaskRequest{
		Actor:       f.companyActor(),
		CompanyID:   f.company.ID,
		Description: "no target",
	})
	assert.ErrorIs(t, err, domain.ErrNoTarget)
}

func TestAssignmentGateForEmployeeActors(t *testing.T) {
	f := newFixture(t)
	manager := f.addEmployee(t, "alice", policy.LevelManager, true)
	asst := f.addEmployee(t, "bob", policy.LevelAsstManager, true)
	carol := f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	ctx := context.Background()

	asstActor := authdomain.Identity{
		Kind:      authdomain.KindEmployee,
		ID:        asst.ID,
		BranchID:  f.branch.ID,
		CompanyID: f.company.ID,
		RoleLevel: policy.LevelAsstManager,
	}

	// Asst. managers delegate downward only.
	_, err := f.svc.Create(ctx, domain.CreateTaskRequest{
		Actor:       asstActor,
		CompanyID:   f.company.ID,
		EmployeeID:  manager.ID,
		Description: "upward delegation",
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = f.svc.Create(ctx, domain.CreateTaskRequest{
		Actor:       asstActor,
		CompanyID:   f.company.ID,
		EmployeeID:  carol.ID,
		Description: "downward delegation",
	})
	assert.NoError(t, err)

	// General employees cannot assign branch tasks.
	carolActor := authdomain.Identity{
		Kind:      authdomain.KindEmployee,
		ID:        carol.ID,
		BranchID:  f.branch.ID,
		CompanyID: f.company.ID,
		RoleLevel: policy.LevelGeneralEmployee,
	}
	_, err = f.svc.Create(ctx, domain.CreateTaskRequest{
		Actor:       carolActor,
		CompanyID:   f.company.ID,
		BranchID:    f.branch.ID,
		Description: "branch task from the floor",
	})
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestBranchProgressOrdering(t *testing.T) {
	f := newFixture(t)
	f.addEmployee(t, "alice", policy.LevelManager, true)
	carol := f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	f.addEmployee(t, "bob", policy.LevelAsstManager, true)
	task := f.branchTask(t)
	ctx := context.Background()

	_, err := f.svc.Complete(ctx, task.ID, carol.ID)
	require.NoError(t, err)

	progress, err := f.svc.BranchProgress(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.Total)
	assert.Equal(t, 1, progress.Completed)
	require.Len(t, progress.Assignments, 3)
	assert.Equal(t, "alice", progress.Assignments[0].FullName)
	assert.Equal(t, "bob", progress.Assignments[1].FullName)
	assert.Equal(t, "carol", progress.Assignments[2].FullName)
}

func TestListForEmployeeMergesDirectAndBranchTasks(t *testing.T) {
	f := newFixture(t)
	carol := f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	f.addEmployee(t, "dave", policy.LevelGeneralEmployee, true)
	ctx := context.Background()

	branchTask := f.branchTask(t)
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	direct, err := f.svc.Create(ctx, domain.CreateTaskRequest{
		Actor:       f.companyActor(),
		CompanyID:   f.company.ID,
		EmployeeID:  carol.ID,
		Description: "close the till",
		DueDate:     &due,
	})
	require.NoError(t, err)

	items, err := f.svc.ListForEmployee(ctx, carol.ID, domain.StatusAll)
	require.NoError(t, err)
	require.Len(t, items, 2)

	_, err = f.svc.Complete(ctx, direct.ID, carol.ID)
	require.NoError(t, err)

	// The pending filter follows the row the employee owns: the branch
	// assignment is still open even though the direct task is done.
	pending, err := f.svc.ListForEmployee(ctx, carol.ID, domain.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, branchTask.ID, pending[0].ID)
}

func TestListOrdersByDueDateThenUndated(t *testing.T) {
	f := newFixture(t)
	carol := f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	ctx := context.Background()

	directTask := func(description string, due *time.Time) {
		_, err := f.svc.Create(ctx, domain.CreateTaskRequest{
			Actor:       f.companyActor(),
			CompanyID:   f.company.ID,
			EmployeeID:  carol.ID,
			Description: description,
			DueDate:     due,
		})
		require.NoError(t, err)
	}

	later := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	sooner := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	directTask("no deadline", nil)
	directTask("later deadline", &later)
	directTask("sooner deadline", &sooner)

	items, err := f.svc.ListForCompany(ctx, f.company.ID, domain.StatusAll)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "sooner deadline", items[0].TaskDescription)
	assert.Equal(t, "later deadline", items[1].TaskDescription)
	assert.Equal(t, "no deadline", items[2].TaskDescription)

	mine, err := f.svc.ListForEmployee(ctx, carol.ID, domain.StatusAll)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "sooner deadline", mine[0].TaskDescription)
	assert.Equal(t, "no deadline", mine[2].TaskDescription)
}

func TestDeleteRemovesAssignments(t *testing.T) {
	f := newFixture(t)
	f.addEmployee(t, "carol", policy.LevelGeneralEmployee, true)
	task := f.branchTask(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Delete(ctx, task.ID))

	var count int64
	require.NoError(t, f.db.Model(&domain.Assignment{}).
		Where("task_id = ?", task.ID).
		Count(&count).Error)
	assert.Zero(t, count)

	_, err := f.svc.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
