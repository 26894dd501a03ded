package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/app/services"
	"github.com/acadeval/appraisehub/internal/middleware"
)

// CycleController handles appraisal cycle administration
type CycleController struct {
	cycleService *services.CycleService
}

// NewCycleController creates a new CycleController
func NewCycleController(cycleService *services.CycleService) *CycleController {
	return &CycleController{
		cycleService: cycleService,
	}
}

func cycleResponse(cycle *models.AppraisalCycle) dto.CycleResponse {
	return dto.CycleResponse{
		ID:        cycle.ID,
		Name:      cycle.Name,
		StartDate: cycle.StartDate,
		EndDate:   cycle.EndDate,
		IsActive:  cycle.IsActive,
	}
}

// CreateCycle creates a new appraisal cycle
// @Summary Create a cycle
// @Description Creates a new, inactive appraisal cycle
// @Tags cycles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCycleRequest true "Cycle information"
// @Success 201 {object} dto.APIResponse{data=dto.CycleResponse} "Cycle created"
// @Failure 400 {object} dto.ErrorResponse "Invalid cycle data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cycles [post]
func (c *CycleController) CreateCycle(ctx *gin.Context) {
	var req dto.CreateCycleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid cycle data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	cycle, err := c.cycleService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      cycleResponse(cycle),
		Timestamp: time.Now(),
	})
}

// ListCycles returns all cycles
// @Summary List cycles
// @Description Lists all appraisal cycles, newest first
// @Tags cycles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CycleResponse} "Cycles retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cycles [get]
func (c *CycleController) ListCycles(ctx *gin.Context) {
	cycles, err := c.cycleService.List(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.CycleResponse, 0, len(cycles))
	for _, cycle := range cycles {
		items = append(items, cycleResponse(cycle))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// GetActiveCycle returns the single active cycle
// @Summary Get active cycle
// @Description Returns the currently active appraisal cycle
// @Tags cycles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CycleResponse} "Active cycle retrieved"
// @Failure 400 {object} dto.ErrorResponse "No active appraisal cycle"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cycles/active [get]
func (c *CycleController) GetActiveCycle(ctx *gin.Context) {
	cycle, err := c.cycleService.GetActive(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      cycleResponse(cycle),
		Timestamp: time.Now(),
	})
}

// ActivateCycle makes the target cycle the active one
// @Summary Activate a cycle
// @Description Activates the target cycle, deactivating all others atomically
// @Tags cycles
// @Produce json
// @Security BearerAuth
// @Param cycleId path int true "Cycle ID"
// @Success 200 {object} dto.APIResponse{data=dto.CycleResponse} "Cycle activated"
// @Failure 400 {object} dto.ErrorResponse "Invalid cycle ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Cycle not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cycles/{cycleId}/activate [post]
func (c *CycleController) ActivateCycle(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("cycleId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid cycle ID")
		errorDetail = errorDetail.WithDetails("Cycle ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	cycle, err := c.cycleService.Activate(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      cycleResponse(cycle),
		Timestamp: time.Now(),
	})
}
