package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/app/services"
	"github.com/acadeval/appraisehub/internal/middleware"
)

// EvaluationController handles evaluator score entry
type EvaluationController struct {
	workflowService  *services.WorkflowService
	directoryService *services.DirectoryService
}

// NewEvaluationController creates a new EvaluationController
func NewEvaluationController(workflowService *services.WorkflowService, directoryService *services.DirectoryService) *EvaluationController {
	return &EvaluationController{
		workflowService:  workflowService,
		directoryService: directoryService,
	}
}

// SaveEvaluation records the caller's scored sections for an appraisal
// @Summary Save evaluation
// @Description Records the calling evaluator's scored sections and recalculates the appraisal total
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appraisal ID"
// @Param request body dto.SaveEvaluationRequest true "Scored sections"
// @Success 200 {object} dto.APIResponse{data=dto.EvaluationResponse} "Evaluation saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid evaluation data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller may not evaluate this appraisal"
// @Failure 404 {object} dto.ErrorResponse "Appraisal not found"
// @Failure 409 {object} dto.ErrorResponse "Appraisal is complete"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appraisals/{id}/evaluation [put]
func (c *EvaluationController) SaveEvaluation(ctx *gin.Context) {
	id, ok := parseAppraisalID(ctx)
	if !ok {
		return
	}

	var req dto.SaveEvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid evaluation data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if req.Performance == nil && req.Capabilities == nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "At least one evaluation section is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	actor, err := c.directoryService.ResolveAffiliation(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	evaluation, err := c.workflowService.SaveEvaluation(ctx, *actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.FromEvaluation(evaluation),
		Timestamp: time.Now(),
	})
}
