package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/acadeval/appraisehub/internal/app/auth"
	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
)

func ptr(v int64) *int64 { return &v }

// fakeAppraisalStore mirrors the guarded-update semantics of the SQL layer
// in memory.
type fakeAppraisalStore struct {
	appraisals map[int64]*models.Appraisal
	appeals    []*models.Appeal
	nextID     int64

	failAppealInsert bool
}

func newFakeAppraisalStore() *fakeAppraisalStore {
	return &fakeAppraisalStore{
		appraisals: make(map[int64]*models.Appraisal),
		nextID:     1,
	}
}

func (f *fakeAppraisalStore) GetByID(_ context.Context, id int64) (*models.Appraisal, error) {
	a, ok := f.appraisals[id]
	if !ok {
		return nil, apperrors.ErrAppraisalNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppraisalStore) GetByFacultyAndCycle(_ context.Context, facultyID, cycleID int64) (*models.Appraisal, error) {
	for _, a := range f.appraisals {
		if a.FacultyID == facultyID && a.CycleID == cycleID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, apperrors.ErrAppraisalNotFound
}

func (f *fakeAppraisalStore) GetOrCreate(ctx context.Context, facultyID, cycleID int64) (*models.Appraisal, error) {
	if a, err := f.GetByFacultyAndCycle(ctx, facultyID, cycleID); err == nil {
		return a, nil
	}
	a := &models.Appraisal{
		ID:        f.nextID,
		FacultyID: facultyID,
		CycleID:   cycleID,
		Status:    models.StatusNew,
	}
	f.nextID++
	f.appraisals[a.ID] = a
	copied := *a
	return &copied, nil
}

func (f *fakeAppraisalStore) classifyMiss(id int64) error {
	if _, ok := f.appraisals[id]; !ok {
		return apperrors.ErrAppraisalNotFound
	}
	return apperrors.ErrNotActionable
}

func (f *fakeAppraisalStore) MarkSent(_ context.Context, id int64) error {
	a, ok := f.appraisals[id]
	if !ok || !a.Status.CanSend() {
		return f.classifyMiss(id)
	}
	a.Status = models.StatusSent
	return nil
}

func (f *fakeAppraisalStore) Transition(_ context.Context, id int64, from, to models.AppraisalStatus) error {
	a, ok := f.appraisals[id]
	if !ok || a.Status != from {
		return f.classifyMiss(id)
	}
	a.Status = to
	return nil
}

func (f *fakeAppraisalStore) SaveScores(_ context.Context, id int64, scores models.CategoryScores, total float64) error {
	a, ok := f.appraisals[id]
	if !ok {
		return apperrors.ErrAppraisalNotFound
	}
	a.Scores = scores
	a.TotalScore = total
	if a.Status == models.StatusNew {
		a.Status = models.StatusSent
	}
	return nil
}

func (f *fakeAppraisalStore) ReturnWithAppeal(_ context.Context, appraisalID, raisedByID int64, message string) error {
	a, ok := f.appraisals[appraisalID]
	if !ok || a.Status != models.StatusSent {
		return f.classifyMiss(appraisalID)
	}
	if f.failAppealInsert {
		// Transactional: the status write rolls back with the failed insert.
		return errors.New("insert failed")
	}
	a.Status = models.StatusReturned
	f.appeals = append(f.appeals, &models.Appeal{
		AppraisalID: appraisalID,
		RaisedByID:  raisedByID,
		Message:     message,
	})
	return nil
}

func (f *fakeAppraisalStore) ListForHOD(_ context.Context, cycleID, departmentID, hodID int64) ([]*models.Appraisal, error) {
	var out []*models.Appraisal
	for _, a := range f.appraisals {
		if a.CycleID == cycleID && a.FacultyID != hodID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppraisalStore) ListForDean(_ context.Context, cycleID, collegeID int64) ([]*models.Appraisal, error) {
	return nil, nil
}

type fakeEvaluationStore struct {
	evaluations map[int64]map[models.EvaluatorRole]*models.Evaluation
}

func newFakeEvaluationStore() *fakeEvaluationStore {
	return &fakeEvaluationStore{evaluations: make(map[int64]map[models.EvaluatorRole]*models.Evaluation)}
}

func (f *fakeEvaluationStore) GetByAppraisalAndRole(_ context.Context, appraisalID int64, role models.EvaluatorRole) (*models.Evaluation, error) {
	if ev, ok := f.evaluations[appraisalID][role]; ok {
		copied := *ev
		return &copied, nil
	}
	return nil, apperrors.ErrEvaluationNotFound
}

func (f *fakeEvaluationStore) Upsert(_ context.Context, ev *models.Evaluation) error {
	if f.evaluations[ev.AppraisalID] == nil {
		f.evaluations[ev.AppraisalID] = make(map[models.EvaluatorRole]*models.Evaluation)
	}
	copied := *ev
	f.evaluations[ev.AppraisalID][ev.EvaluatorRole] = &copied
	return nil
}

type fakeSignatureStore struct {
	signatures []*models.Signature
	failAppend bool
}

func (f *fakeSignatureStore) Append(_ context.Context, sig *models.Signature) error {
	if f.failAppend {
		return errors.New("audit store unavailable")
	}
	f.signatures = append(f.signatures, sig)
	return nil
}

func (f *fakeSignatureStore) ListByAppraisal(_ context.Context, appraisalID int64) ([]*models.Signature, error) {
	var out []*models.Signature
	for _, sig := range f.signatures {
		if sig.AppraisalID == appraisalID {
			out = append(out, sig)
		}
	}
	return out, nil
}

type fakeCycleStore struct {
	active *models.AppraisalCycle
}

func (f *fakeCycleStore) Create(_ context.Context, _ *models.AppraisalCycle) error { return nil }
func (f *fakeCycleStore) GetByID(_ context.Context, _ int64) (*models.AppraisalCycle, error) {
	return f.active, nil
}
func (f *fakeCycleStore) GetAll(_ context.Context) ([]*models.AppraisalCycle, error) { return nil, nil }
func (f *fakeCycleStore) Activate(_ context.Context, _ int64) error                  { return nil }

func (f *fakeCycleStore) GetActive(_ context.Context) (*models.AppraisalCycle, error) {
	if f.active == nil {
		return nil, apperrors.ErrActiveCycleRequired
	}
	return f.active, nil
}

type fakeUserStore struct {
	affiliations map[int64]*models.Affiliation
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	if aff, ok := f.affiliations[id]; ok {
		return &models.User{ID: id, Role: aff.Role, DepartmentID: aff.DepartmentID}, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetAffiliation(_ context.Context, userID int64) (*models.Affiliation, error) {
	if aff, ok := f.affiliations[userID]; ok {
		return aff, nil
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeCache struct {
	paths []string
}

func (f *fakeCache) Invalidate(path string) {
	f.paths = append(f.paths, path)
}

// fixture wires a department with an HOD and an instructor, an active cycle
// and the instructor's appraisal.
type fixture struct {
	svc        *WorkflowService
	appraisals *fakeAppraisalStore
	evals      *fakeEvaluationStore
	sigs       *fakeSignatureStore
	cycles     *fakeCycleStore
	cache      *fakeCache

	hod        models.Affiliation
	instructor models.Affiliation
	appraisal  *models.Appraisal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	appraisals := newFakeAppraisalStore()
	evals := newFakeEvaluationStore()
	sigs := &fakeSignatureStore{}
	cycles := &fakeCycleStore{active: &models.AppraisalCycle{ID: 1, Name: "2025/2026", IsActive: true}}
	users := &fakeUserStore{affiliations: map[int64]*models.Affiliation{
		1: {UserID: 1, Role: models.RoleHOD, DepartmentID: ptr(5)},
		2: {UserID: 2, Role: models.RoleInstructor, DepartmentID: ptr(5)},
	}}
	cache := &fakeCache{}

	guard := auth.NewEvaluatorGuard(appraisals, users)
	svc := NewWorkflowService(appraisals, evals, sigs, cycles, users, guard, cache, zerolog.Nop())

	appraisal, err := appraisals.GetOrCreate(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	return &fixture{
		svc:        svc,
		appraisals: appraisals,
		evals:      evals,
		sigs:       sigs,
		cycles:     cycles,
		cache:      cache,
		hod:        models.Affiliation{UserID: 1, Role: models.RoleHOD, DepartmentID: ptr(5)},
		instructor: models.Affiliation{UserID: 2, Role: models.RoleInstructor, DepartmentID: ptr(5)},
		appraisal:  appraisal,
	}
}

func (f *fixture) status(t *testing.T) models.AppraisalStatus {
	t.Helper()
	a, err := f.appraisals.GetByID(context.Background(), f.appraisal.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	return a.Status
}

func completeEvaluation() *dto.SaveEvaluationRequest {
	return &dto.SaveEvaluationRequest{
		Performance: &dto.PerformanceSection{
			ResearchPts:          10,
			UniversityServicePts: 5,
			CommunityServicePts:  5,
			TeachingQualityPts:   20,
		},
		Capabilities: &dto.CapabilitiesSection{Total: 15},
	}
}

func TestSaveEvaluationPromotesAndAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if f.status(t) != models.StatusNew {
		t.Fatalf("precondition: status = %v, want new", f.status(t))
	}

	if _, err := f.svc.SaveEvaluation(ctx, f.hod, f.appraisal.ID, completeEvaluation()); err != nil {
		t.Fatalf("SaveEvaluation() error = %v", err)
	}

	a, _ := f.appraisals.GetByID(ctx, f.appraisal.ID)
	if a.Status != models.StatusSent {
		t.Errorf("status = %v, want sent after first save", a.Status)
	}
	if a.TotalScore != 55 {
		t.Errorf("totalScore = %v, want 55", a.TotalScore)
	}
}

func TestSaveEvaluationDeniedForWrongEvaluator(t *testing.T) {
	f := newFixture(t)

	outsider := models.Affiliation{UserID: 9, Role: models.RoleHOD, DepartmentID: ptr(7)}
	_, err := f.svc.SaveEvaluation(context.Background(), outsider, f.appraisal.ID, completeEvaluation())
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("SaveEvaluation() error = %v, want ErrPermissionDenied", err)
	}
}

func TestSendIncompleteEvaluation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// No evaluation at all.
	err := f.svc.Send(ctx, f.hod, f.appraisal.ID)
	if !errors.Is(err, apperrors.ErrIncompleteEvaluation) {
		t.Errorf("Send() error = %v, want ErrIncompleteEvaluation", err)
	}

	// Performance only; capabilities section missing.
	if _, err := f.svc.SaveEvaluation(ctx, f.hod, f.appraisal.ID, &dto.SaveEvaluationRequest{
		Performance: &dto.PerformanceSection{ResearchPts: 10},
	}); err != nil {
		t.Fatalf("SaveEvaluation() error = %v", err)
	}
	err = f.svc.Send(ctx, f.hod, f.appraisal.ID)
	if !errors.Is(err, apperrors.ErrIncompleteEvaluation) {
		t.Errorf("Send() error = %v, want ErrIncompleteEvaluation", err)
	}
}

func TestSendCompleteEvaluation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.SaveEvaluation(ctx, f.hod, f.appraisal.ID, completeEvaluation()); err != nil {
		t.Fatalf("SaveEvaluation() error = %v", err)
	}

	if err := f.svc.Send(ctx, f.hod, f.appraisal.ID); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if f.status(t) != models.StatusSent {
		t.Errorf("status = %v, want sent", f.status(t))
	}
	if len(f.cache.paths) == 0 {
		t.Error("Send() did not schedule a cache invalidation")
	}
	if len(f.sigs.signatures) != 0 {
		t.Errorf("Send() appended %d signatures, want 0", len(f.sigs.signatures))
	}
}

func TestApprove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.SaveEvaluation(ctx, f.hod, f.appraisal.ID, completeEvaluation()); err != nil {
		t.Fatalf("SaveEvaluation() error = %v", err)
	}

	if err := f.svc.Approve(ctx, 2, f.appraisal.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	if f.status(t) != models.StatusComplete {
		t.Errorf("status = %v, want complete", f.status(t))
	}
	if len(f.sigs.signatures) != 1 {
		t.Fatalf("signatures = %d, want 1", len(f.sigs.signatures))
	}
	if f.sigs.signatures[0].Note != "Approved" {
		t.Errorf("signature note = %q, want Approved", f.sigs.signatures[0].Note)
	}
}

func TestApproveDeniedForOtherUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.SaveEvaluation(ctx, f.hod, f.appraisal.ID, completeEvaluation()); err != nil {
		t.Fatalf("SaveEvaluation() error = %v", err)
	}

	err := f.svc.Approve(ctx, 1, f.appraisal.ID)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("Approve() error = %v, want ErrPermissionDenied", err)
	}
}

func TestApproveNotActionableFromNew(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Approve(context.Background(), 2, f.appraisal.ID)
	if !errors.Is(err, apperrors.ErrNotActionable) {
		t.Errorf("Approve() error = %v, want ErrNotActionable", err)
	}
}

func TestApproveSignatureFailureSwallowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sigs.failAppend = true

	if _, err := f.svc.SaveEvaluation(ctx, f.hod, f.appraisal.ID, completeEvaluation()); err != nil {
		t.Fatalf("SaveEvaluation() error = %v", err)
	}

	if err := f.svc.Approve(ctx, 2, f.appraisal.ID); err != nil {
		t.Fatalf("Approve() error = %v, want nil despite signature failure", err)
	}
	if f.status(t) != models.StatusComplete {
		t.Errorf("status = %v, want complete", f.status(t))
	}
}

func TestAppeal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.SaveEvaluation(ctx, f.hod, f.appraisal.ID, completeEvaluation()); err != nil {
		t.Fatalf("SaveEvaluation() error = %v", err)
	}

	if err := f.svc.Appeal(ctx, 2, "disagree"); err != nil {
		t.Fatalf("Appeal() error = %v", err)
	}

	if f.status(t) != models.StatusReturned {
		t.Errorf("status = %v, want returned", f.status(t))
	}
	if len(f.appraisals.appeals) != 1 {
		t.Fatalf("appeals = %d, want 1", len(f.appraisals.appeals))
	}
	if f.appraisals.appeals[0].Message != "disagree" {
		t.Errorf("appeal message = %q, want disagree", f.appraisals.appeals[0].Message)
	}
}

func TestAppealRequiresActiveCycle(t *testing.T) {
	f := newFixture(t)
	f.cycles.active = nil

	err := f.svc.Appeal(context.Background(), 2, "disagree")
	if !errors.Is(err, apperrors.ErrActiveCycleRequired) {
		t.Errorf("Appeal() error = %v, want ErrActiveCycleRequired", err)
	}
}

func TestAppealNotActionableFromNew(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Appeal(context.Background(), 2, "disagree")
	if !errors.Is(err, apperrors.ErrNotActionable) {
		t.Errorf("Appeal() error = %v, want ErrNotActionable", err)
	}
}

func TestAppealAtomicity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.SaveEvaluation(ctx, f.hod, f.appraisal.ID, completeEvaluation()); err != nil {
		t.Fatalf("SaveEvaluation() error = %v", err)
	}
	f.appraisals.failAppealInsert = true

	if err := f.svc.Appeal(ctx, 2, "disagree"); err == nil {
		t.Fatal("Appeal() error = nil, want failure")
	}

	if f.status(t) != models.StatusSent {
		t.Errorf("status = %v, want sent unchanged after failed appeal", f.status(t))
	}
	if len(f.appraisals.appeals) != 0 {
		t.Errorf("appeals = %d, want 0", len(f.appraisals.appeals))
	}
}

func TestResendAfterReturn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.SaveEvaluation(ctx, f.hod, f.appraisal.ID, completeEvaluation()); err != nil {
		t.Fatalf("SaveEvaluation() error = %v", err)
	}
	if err := f.svc.Appeal(ctx, 2, "disagree"); err != nil {
		t.Fatalf("Appeal() error = %v", err)
	}
	if f.status(t) != models.StatusReturned {
		t.Fatalf("status = %v, want returned", f.status(t))
	}

	if err := f.svc.Send(ctx, f.hod, f.appraisal.ID); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if f.status(t) != models.StatusSent {
		t.Errorf("status = %v, want sent after rework", f.status(t))
	}
}

func TestSendClosedWhenComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.SaveEvaluation(ctx, f.hod, f.appraisal.ID, completeEvaluation()); err != nil {
		t.Fatalf("SaveEvaluation() error = %v", err)
	}
	if err := f.svc.Approve(ctx, 2, f.appraisal.ID); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	err := f.svc.Send(ctx, f.hod, f.appraisal.ID)
	if !errors.Is(err, apperrors.ErrNotActionable) {
		t.Errorf("Send() error = %v, want ErrNotActionable", err)
	}
}

func TestRecalculateTotalNoEvaluation(t *testing.T) {
	f := newFixture(t)

	if err := f.svc.RecalculateTotal(context.Background(), f.appraisal.ID, models.EvaluatorHOD); err != nil {
		t.Errorf("RecalculateTotal() error = %v, want nil no-op", err)
	}
	if f.status(t) != models.StatusNew {
		t.Errorf("status = %v, want new untouched", f.status(t))
	}
}

func TestMyAppraisalLazyCreation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, sigs, err := f.svc.MyAppraisal(ctx, 7)
	if err != nil {
		t.Fatalf("MyAppraisal() error = %v", err)
	}
	if a.Status != models.StatusNew {
		t.Errorf("status = %v, want new", a.Status)
	}
	if len(sigs) != 0 {
		t.Errorf("signatures = %d, want 0", len(sigs))
	}

	again, _, err := f.svc.MyAppraisal(ctx, 7)
	if err != nil {
		t.Fatalf("MyAppraisal() error = %v", err)
	}
	if again.ID != a.ID {
		t.Errorf("second MyAppraisal() returned id %d, want %d", again.ID, a.ID)
	}
}

func TestMyAppraisalRequiresActiveCycle(t *testing.T) {
	f := newFixture(t)
	f.cycles.active = nil

	_, _, err := f.svc.MyAppraisal(context.Background(), 2)
	if !errors.Is(err, apperrors.ErrActiveCycleRequired) {
		t.Errorf("MyAppraisal() error = %v, want ErrActiveCycleRequired", err)
	}
}

func TestListEvaluateesRoleScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.ListEvaluatees(ctx, f.hod); err != nil {
		t.Errorf("ListEvaluatees(hod) error = %v", err)
	}

	_, err := f.svc.ListEvaluatees(ctx, f.instructor)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("ListEvaluatees(instructor) error = %v, want ErrPermissionDenied", err)
	}

	deanNoCollege := models.Affiliation{UserID: 8, Role: models.RoleDean}
	_, err = f.svc.ListEvaluatees(ctx, deanNoCollege)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("ListEvaluatees(dean without college) error = %v, want ErrPermissionDenied", err)
	}
}
