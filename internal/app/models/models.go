package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin      RoleType = "ADMIN"
	RoleDean       RoleType = "DEAN"
	RoleHOD        RoleType = "HOD"
	RoleInstructor RoleType = "INSTRUCTOR"
)

// Valid reports whether the role is one of the known roles
func (r RoleType) Valid() bool {
	switch r {
	case RoleAdmin, RoleDean, RoleHOD, RoleInstructor:
		return true
	}
	return false
}

// EvaluatorRole identifies which evaluator seat an evaluation belongs to.
// Only HOD and DEAN act as evaluators.
type EvaluatorRole string

const (
	EvaluatorHOD  EvaluatorRole = "HOD"
	EvaluatorDean EvaluatorRole = "DEAN"
)

// Valid reports whether the evaluator role is known
func (r EvaluatorRole) Valid() bool {
	return r == EvaluatorHOD || r == EvaluatorDean
}

// ConfigScope defines the reach of a grading configuration
type ConfigScope string

const (
	ScopeGlobal ConfigScope = "GLOBAL"
	ScopeCycle  ConfigScope = "CYCLE"
)
