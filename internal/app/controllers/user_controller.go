package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/app/services"
	"github.com/acadeval/appraisehub/internal/middleware"
	"github.com/acadeval/appraisehub/internal/pkg/helpers"
)

// UserController handles administrative user listing
type UserController struct {
	directoryService *services.DirectoryService
}

// NewUserController creates a new UserController
func NewUserController(directoryService *services.DirectoryService) *UserController {
	return &UserController{
		directoryService: directoryService,
	}
}

// ListUsers returns the user directory, paginated
// @Summary List users
// @Description Lists all users with their affiliations, paginated
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.UserListResponse} "Users retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	users, err := c.directoryService.ListUsers(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      users,
		Timestamp: time.Now(),
	})
}
