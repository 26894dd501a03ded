package services

// Services defined in this package:
// - AuthService: Handles login and profile retrieval
// - DirectoryService: Read-only organization directory lookups
// - OrgService: College and department administration
// - CycleService: Appraisal cycle management and activation
// - GradingService: Grading configuration management and resolution
// - WorkflowService: The appraisal state machine (send/approve/appeal)
// - AppealService: Administrative appeal listing and resolution
//
// Services depend on narrow store interfaces declared here rather than on
// the concrete repositories, so the workflow logic can be tested without a
// database. The pgx repositories satisfy these interfaces.

import (
	"context"

	"github.com/acadeval/appraisehub/internal/app/models"
)

// AppraisalStore is the slice of appraisal persistence the workflow needs
type AppraisalStore interface {
	GetByID(ctx context.Context, id int64) (*models.Appraisal, error)
	GetByFacultyAndCycle(ctx context.Context, facultyID, cycleID int64) (*models.Appraisal, error)
	GetOrCreate(ctx context.Context, facultyID, cycleID int64) (*models.Appraisal, error)
	MarkSent(ctx context.Context, id int64) error
	Transition(ctx context.Context, id int64, from, to models.AppraisalStatus) error
	SaveScores(ctx context.Context, id int64, scores models.CategoryScores, total float64) error
	ReturnWithAppeal(ctx context.Context, appraisalID, raisedByID int64, message string) error
	ListForHOD(ctx context.Context, cycleID, departmentID, hodID int64) ([]*models.Appraisal, error)
	ListForDean(ctx context.Context, cycleID, collegeID int64) ([]*models.Appraisal, error)
}

// EvaluationStore persists evaluator score sheets
type EvaluationStore interface {
	GetByAppraisalAndRole(ctx context.Context, appraisalID int64, role models.EvaluatorRole) (*models.Evaluation, error)
	Upsert(ctx context.Context, ev *models.Evaluation) error
}

// SignatureStore is the append-only sign-off audit trail
type SignatureStore interface {
	Append(ctx context.Context, sig *models.Signature) error
	ListByAppraisal(ctx context.Context, appraisalID int64) ([]*models.Signature, error)
}

// CycleStore provides cycle lookups and activation
type CycleStore interface {
	Create(ctx context.Context, cycle *models.AppraisalCycle) error
	GetByID(ctx context.Context, id int64) (*models.AppraisalCycle, error)
	GetActive(ctx context.Context) (*models.AppraisalCycle, error)
	GetAll(ctx context.Context) ([]*models.AppraisalCycle, error)
	Activate(ctx context.Context, id int64) error
}

// AffiliationStore resolves organizational facts about users
type AffiliationStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAffiliation(ctx context.Context, userID int64) (*models.Affiliation, error)
}

// ConfigStore persists grading configurations
type ConfigStore interface {
	GetCandidates(ctx context.Context, cycleID int64) ([]*models.GradingConfig, error)
	UpsertGlobal(ctx context.Context, cfg *models.GradingConfig) error
	UpsertCycle(ctx context.Context, cycleID int64, cfg *models.GradingConfig) error
}

// AppealStore persists appeals
type AppealStore interface {
	GetByID(ctx context.Context, id int64) (*models.Appeal, error)
	List(ctx context.Context, openOnly bool, page, pageSize int) ([]*models.Appeal, int64, error)
	ListByAppraisal(ctx context.Context, appraisalID int64) ([]*models.Appeal, error)
	Resolve(ctx context.Context, id, resolvedByID int64, note string) (*models.Appeal, error)
}

// CacheInvalidator is the fire-and-forget cache notification hook
type CacheInvalidator interface {
	Invalidate(path string)
}
