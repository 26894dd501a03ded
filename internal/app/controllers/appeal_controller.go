package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/app/services"
	"github.com/acadeval/appraisehub/internal/middleware"
	"github.com/acadeval/appraisehub/internal/pkg/helpers"
)

// AppealController handles administrative appeal endpoints
type AppealController struct {
	appealService *services.AppealService
}

// NewAppealController creates a new AppealController
func NewAppealController(appealService *services.AppealService) *AppealController {
	return &AppealController{
		appealService: appealService,
	}
}

// ListAppeals returns appeals, optionally only unresolved ones
// @Summary List appeals
// @Description Lists appeals newest first; pass open=true for unresolved ones only
// @Tags appeals
// @Produce json
// @Security BearerAuth
// @Param open query bool false "Only unresolved appeals"
// @Param page query int false "Page number"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.AppealListResponse} "Appeals retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appeals [get]
func (c *AppealController) ListAppeals(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	openOnly := ctx.Query("open") == "true"

	appeals, err := c.appealService.List(ctx, openOnly, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      appeals,
		Timestamp: time.Now(),
	})
}

// ListAppraisalAppeals returns the appeal history of one appraisal
// @Summary List appraisal appeals
// @Description Lists the appeals raised against one appraisal, oldest first
// @Tags appeals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appraisal ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AppealResponse} "Appeals retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid appraisal ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appraisals/{id}/appeals [get]
func (c *AppealController) ListAppraisalAppeals(ctx *gin.Context) {
	id, ok := parseAppraisalID(ctx)
	if !ok {
		return
	}

	appeals, err := c.appealService.ListByAppraisal(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.AppealResponse, 0, len(appeals))
	for _, appeal := range appeals {
		items = append(items, dto.FromAppeal(appeal))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// ResolveAppeal closes an open appeal
// @Summary Resolve an appeal
// @Description Closes an open appeal with an administrative note; the appraisal's status is unchanged
// @Tags appeals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appeal ID"
// @Param request body dto.ResolveAppealRequest true "Resolution note"
// @Success 200 {object} dto.APIResponse{data=dto.AppealResponse} "Appeal resolved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Appeal not found"
// @Failure 409 {object} dto.ErrorResponse "Appeal already resolved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appeals/{id}/resolve [post]
func (c *AppealController) ResolveAppeal(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid appeal ID")
		errorDetail = errorDetail.WithDetails("Appeal ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.ResolveAppealRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid resolution data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	appeal, err := c.appealService.Resolve(ctx, id, middleware.GetUserID(ctx), req.ResolutionNote)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromAppeal(appeal),
		Timestamp: time.Now(),
	})
}
