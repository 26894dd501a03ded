package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextEmail    = "userEmail"
)

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.APIResponse{
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	})
}

// JWTAuth validates the bearer token and stores the caller's identity on the
// request context.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing or malformed")
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			if err == auth.ErrExpiredToken {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// RoleRequired restricts a route to the given roles. Must run after JWTAuth.
func RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	allowed := make(map[models.RoleType]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role := models.RoleType(c.GetString(ContextUserRole))
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.APIResponse{
				Error:     dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
				Timestamp: time.Now(),
			})
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated user's ID from the request context
func GetUserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

// GetUserRole returns the authenticated user's role from the request context
func GetUserRole(c *gin.Context) models.RoleType {
	return models.RoleType(c.GetString(ContextUserRole))
}
