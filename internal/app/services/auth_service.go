package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/app/repositories"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
	"github.com/acadeval/appraisehub/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo       *repositories.UserRepository
	departmentRepo *repositories.DepartmentRepository
	jwtService     *auth.JWTService
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	departmentRepo *repositories.DepartmentRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		jwtService:     jwtService,
		logger:         logger,
	}
}

// Login authenticates a user by email and password and issues a token.
// Failed lookups and bad passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Error retrieving user during login")
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Error generating token")
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// GetProfile returns the authenticated user's own profile
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &dto.UserProfile{
		ID:               user.ID,
		Email:            user.Email,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		Role:             string(user.Role),
		DepartmentID:     user.DepartmentID,
		ManagedCollegeID: user.ManagedCollegeID,
	}

	if user.DepartmentID != nil {
		department, err := s.departmentRepo.GetByID(ctx, *user.DepartmentID)
		if err == nil {
			profile.DepartmentName = &department.Name
			profile.CollegeID = &department.CollegeID
		} else if !errors.Is(err, apperrors.ErrDepartmentNotFound) {
			s.logger.Warn().Err(err).Int64("departmentID", *user.DepartmentID).Msg("Error loading department for profile")
		}
	}

	return profile, nil
}
