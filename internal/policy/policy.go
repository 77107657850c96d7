// Package policy holds the role-hierarchy permission rules. All decisions are
// pure functions over ordinal role levels, where a lower level means more
// authority.
package policy

// Role levels. Lower value = more senior.
const (
	LevelManager         = 1
	LevelAsstManager     = 2
	LevelGeneralEmployee = 3
)

// Canonical role names seeded for every company.
const (
	NameManager         = "Manager"
	NameAsstManager     = "Asst. Manager"
	NameGeneralEmployee = "General Employee"
)

// RoleLevel maps a role name to its level. Unknown names fall back to the
// least-privileged level.
func RoleLevel(roleName string) int {
	switch roleName {
	case NameManager:
		return LevelManager
	case NameAsstManager:
		return LevelAsstManager
	default:
		return LevelGeneralEmployee
	}
}

// RoleName maps a role level to its canonical name.
func RoleName(level int) string {
	switch level {
	case LevelManager:
		return NameManager
	case LevelAsstManager:
		return NameAsstManager
	default:
		return NameGeneralEmployee
	}
}

// CanCreateEmployees reports whether an employee at actorLevel may create
// employee accounts. Managers and assistant managers can.
func CanCreateEmployees(actorLevel int) bool {
	return actorLevel <= LevelAsstManager
}

// CanAssignTaskTo reports whether actorLevel may assign tasks to targetLevel.
// Managers assign downward, assistant managers only to general employees,
// general employees to no one.
func CanAssignTaskTo(actorLevel, targetLevel int) bool {
	switch actorLevel {
	case LevelManager:
		return targetLevel >= LevelAsstManager
	case LevelAsstManager:
		return targetLevel == LevelGeneralEmployee
	default:
		return false
	}
}

// CanViewReportsOf reports whether actorLevel may view daily reports written
// by targetLevel.
func CanViewReportsOf(actorLevel, targetLevel int) bool {
	switch actorLevel {
	case LevelManager:
		return true
	case LevelAsstManager:
		return targetLevel >= LevelAsstManager
	default:
		return actorLevel == targetLevel
	}
}

// CanDeactivate reports whether actorLevel may deactivate or reactivate an
// employee at targetLevel. Managers act on strictly junior levels, assistant
// managers only on general employees.
func CanDeactivate(actorLevel, targetLevel int) bool {
	switch actorLevel {
	case LevelManager:
		return targetLevel > actorLevel
	case LevelAsstManager:
		return targetLevel == LevelGeneralEmployee
	default:
		return false
	}
}

// IsManagement reports whether the level short-circuits branch task consensus.
func IsManagement(level int) bool {
	return level <= LevelAsstManager
}
