package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	CollegeRepository       *CollegeRepository
	DepartmentRepository    *DepartmentRepository
	CycleRepository         *CycleRepository
	AppraisalRepository     *AppraisalRepository
	EvaluationRepository    *EvaluationRepository
	GradingConfigRepository *GradingConfigRepository
	AppealRepository        *AppealRepository
	SignatureRepository     *SignatureRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		CollegeRepository:       NewCollegeRepository(db),
		DepartmentRepository:    NewDepartmentRepository(db),
		CycleRepository:         NewCycleRepository(db),
		AppraisalRepository:     NewAppraisalRepository(db),
		EvaluationRepository:    NewEvaluationRepository(db),
		GradingConfigRepository: NewGradingConfigRepository(db),
		AppealRepository:        NewAppealRepository(db),
		SignatureRepository:     NewSignatureRepository(db),
	}
}
