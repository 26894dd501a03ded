package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/app/repositories"
)

// OrgService handles college and department administration
type OrgService struct {
	collegeRepo    *repositories.CollegeRepository
	departmentRepo *repositories.DepartmentRepository
	logger         zerolog.Logger
}

// NewOrgService creates a new OrgService
func NewOrgService(
	collegeRepo *repositories.CollegeRepository,
	departmentRepo *repositories.DepartmentRepository,
	logger zerolog.Logger,
) *OrgService {
	return &OrgService{
		collegeRepo:    collegeRepo,
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// CreateCollege creates a new college
func (s *OrgService) CreateCollege(ctx context.Context, req *dto.CreateCollegeRequest) (*models.College, error) {
	college := &models.College{
		Name: req.Name,
		Code: req.Code,
	}

	if err := s.collegeRepo.Create(ctx, college); err != nil {
		return nil, err
	}

	return college, nil
}

// ListColleges returns all colleges
func (s *OrgService) ListColleges(ctx context.Context) ([]*models.College, error) {
	return s.collegeRepo.GetAll(ctx)
}

// CreateDepartment creates a new department under an existing college
func (s *OrgService) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	if _, err := s.collegeRepo.GetByID(ctx, req.CollegeID); err != nil {
		return nil, err
	}

	department := &models.Department{
		CollegeID: req.CollegeID,
		Name:      req.Name,
		Code:      req.Code,
	}

	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}

	return department, nil
}

// ListDepartments returns departments, optionally filtered by college
func (s *OrgService) ListDepartments(ctx context.Context, collegeID *int64) ([]*models.Department, error) {
	return s.departmentRepo.GetAll(ctx, collegeID)
}

// ReassignDepartment moves a department to another college. Departments are
// owned by reference, so the move is a single foreign key update.
func (s *OrgService) ReassignDepartment(ctx context.Context, departmentID, collegeID int64) error {
	if _, err := s.collegeRepo.GetByID(ctx, collegeID); err != nil {
		return err
	}

	return s.departmentRepo.Reassign(ctx, departmentID, collegeID)
}
