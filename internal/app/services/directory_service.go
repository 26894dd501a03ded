package services

import (
	"context"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/app/repositories"
	"github.com/acadeval/appraisehub/internal/pkg/helpers"
)

// DirectoryService is the read-only organization directory. It supplies
// identity, role and affiliation facts; it never mutates anything.
type DirectoryService struct {
	userRepo *repositories.UserRepository
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(userRepo *repositories.UserRepository) *DirectoryService {
	return &DirectoryService{
		userRepo: userRepo,
	}
}

// ResolveAffiliation returns the organizational view of a user. Results must
// not be cached across requests; affiliations can change.
func (s *DirectoryService) ResolveAffiliation(ctx context.Context, userID int64) (*models.Affiliation, error) {
	return s.userRepo.GetAffiliation(ctx, userID)
}

// ListUsers returns the administrative user listing, paginated
func (s *DirectoryService) ListUsers(ctx context.Context, page, pageSize int) (*dto.UserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserListItem, 0, len(users))
	for _, user := range users {
		item := dto.UserListItem{
			ID:               user.ID,
			Email:            user.Email,
			FirstName:        user.FirstName,
			LastName:         user.LastName,
			Role:             string(user.Role),
			DepartmentID:     user.DepartmentID,
			ManagedCollegeID: user.ManagedCollegeID,
		}
		if user.Department != nil {
			item.DepartmentName = &user.Department.Name
		}
		items = append(items, item)
	}

	return &dto.UserListResponse{
		Users:      items,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}
