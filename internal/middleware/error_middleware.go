package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/pkg/apperrors"
)

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	})
}

// HandleAPIError maps application errors onto HTTP responses. Controllers
// call it for any error coming out of the service layer.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, 401, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrUnauthenticated):
		respond(c, 401, dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, 401, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, 401, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, 403, dto.ErrorCodeForbidden, "Account is disabled")

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, 403, dto.ErrorCodeForbidden, "Permission denied")

	// Workflow
	case errors.Is(err, apperrors.ErrNotActionable):
		respond(c, 409, dto.ErrorCodeNotActionable, "Appraisal status does not allow this action")
	case errors.Is(err, apperrors.ErrIncompleteEvaluation):
		respond(c, 400, dto.ErrorCodeIncompleteEvaluation, "Both evaluation sections must be scored before sending")
	case errors.Is(err, apperrors.ErrActiveCycleRequired):
		respond(c, 400, dto.ErrorCodeActiveCycleRequired, "No active appraisal cycle")
	case errors.Is(err, apperrors.ErrAppealAlreadyResolved):
		respond(c, 409, dto.ErrorCodeConflict, "Appeal has already been resolved")
	case errors.Is(err, apperrors.ErrConfigNotFound):
		respond(c, 404, dto.ErrorCodeConfigNotFound, "No grading configuration resolvable for cycle")

	// Lookups
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrAppraisalNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Appraisal not found")
	case errors.Is(err, apperrors.ErrEvaluationNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Evaluation not found")
	case errors.Is(err, apperrors.ErrCycleNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Appraisal cycle not found")
	case errors.Is(err, apperrors.ErrAppealNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Appeal not found")
	case errors.Is(err, apperrors.ErrCollegeNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "College not found")
	case errors.Is(err, apperrors.ErrDepartmentNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Department not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, 404, dto.ErrorCodeResourceNotFound, "Resource not found")

	// Uniqueness conflicts
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, 409, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrCollegeAlreadyExists):
		respond(c, 409, dto.ErrorCodeResourceAlreadyExists, "College already exists")
	case errors.Is(err, apperrors.ErrDepartmentExists):
		respond(c, 409, dto.ErrorCodeResourceAlreadyExists, "Department already exists")
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, 409, dto.ErrorCodeConflict, "Conflict")

	// Validation
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, 400, dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(c, 400, dto.ErrorCodeValidationFailed, err.Error())

	default:
		respond(c, 500, dto.ErrorCodeInternalServer, "Internal server error")
	}
}
