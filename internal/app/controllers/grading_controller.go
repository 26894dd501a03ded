package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/app/services"
	"github.com/acadeval/appraisehub/internal/middleware"
)

// GradingController handles grading configuration administration
type GradingController struct {
	gradingService *services.GradingService
}

// NewGradingController creates a new GradingController
func NewGradingController(gradingService *services.GradingService) *GradingController {
	return &GradingController{
		gradingService: gradingService,
	}
}

func parseCycleID(ctx *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(param), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid cycle ID")
		errorDetail = errorDetail.WithDetails("Cycle ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// GetEffectiveConfig resolves the config governing a cycle
// @Summary Resolve effective grading config
// @Description Returns the grading configuration governing the given cycle, preferring a cycle-scoped config over the global fallback
// @Tags grading
// @Produce json
// @Security BearerAuth
// @Param cycleId path int true "Cycle ID"
// @Success 200 {object} dto.APIResponse{data=dto.GradingConfigResponse} "Config resolved"
// @Failure 400 {object} dto.ErrorResponse "Invalid cycle ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No config resolvable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cycles/{cycleId}/grading-config [get]
func (c *GradingController) GetEffectiveConfig(ctx *gin.Context) {
	cycleID, ok := parseCycleID(ctx, "cycleId")
	if !ok {
		return
	}

	cfg, err := c.gradingService.ResolveEffectiveConfig(ctx, cycleID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromGradingConfig(cfg),
		Timestamp: time.Now(),
	})
}

// UpsertGlobalConfig creates or replaces the global fallback config
// @Summary Upsert global grading config
// @Description Creates or replaces the system-wide fallback grading configuration
// @Tags grading
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertGradingConfigRequest true "Configuration"
// @Success 200 {object} dto.APIResponse{data=dto.GradingConfigResponse} "Config saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid configuration data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grading-configs/global [put]
func (c *GradingController) UpsertGlobalConfig(ctx *gin.Context) {
	var req dto.UpsertGradingConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid configuration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	cfg, err := c.gradingService.UpsertGlobal(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromGradingConfig(cfg),
		Timestamp: time.Now(),
	})
}

// UpsertCycleConfig creates or replaces a cycle-scoped config
// @Summary Upsert cycle grading config
// @Description Creates or replaces the grading configuration scoped to one cycle
// @Tags grading
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cycleId path int true "Cycle ID"
// @Param request body dto.UpsertGradingConfigRequest true "Configuration"
// @Success 200 {object} dto.APIResponse{data=dto.GradingConfigResponse} "Config saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid configuration data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Cycle not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cycles/{cycleId}/grading-config [put]
func (c *GradingController) UpsertCycleConfig(ctx *gin.Context) {
	cycleID, ok := parseCycleID(ctx, "cycleId")
	if !ok {
		return
	}

	var req dto.UpsertGradingConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid configuration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	cfg, err := c.gradingService.UpsertCycle(ctx, cycleID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromGradingConfig(cfg),
		Timestamp: time.Now(),
	})
}
