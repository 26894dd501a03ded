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

// AppraisalController handles the appraisal workflow endpoints: the faculty
// member's own appraisal surface and the evaluator's worklist and actions.
type AppraisalController struct {
	workflowService  *services.WorkflowService
	directoryService *services.DirectoryService
}

// NewAppraisalController creates a new AppraisalController
func NewAppraisalController(workflowService *services.WorkflowService, directoryService *services.DirectoryService) *AppraisalController {
	return &AppraisalController{
		workflowService:  workflowService,
		directoryService: directoryService,
	}
}

func parseAppraisalID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid appraisal ID")
		errorDetail = errorDetail.WithDetails("Appraisal ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// MyAppraisal returns the caller's appraisal for the active cycle
// @Summary Get own appraisal
// @Description Returns the caller's appraisal for the active cycle, creating it on first access
// @Tags appraisals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AppraisalResponse} "Appraisal retrieved"
// @Failure 400 {object} dto.ErrorResponse "No active appraisal cycle"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appraisals/me [get]
func (c *AppraisalController) MyAppraisal(ctx *gin.Context) {
	appraisal, signatures, err := c.workflowService.MyAppraisal(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.FromAppraisal(appraisal)
	for _, sig := range signatures {
		resp.Signatures = append(resp.Signatures, dto.FromSignature(sig))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}

// Approve completes the caller's own sent appraisal
// @Summary Approve own appraisal
// @Description Accepts the evaluation; moves the appraisal from sent to complete and signs it off
// @Tags appraisals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appraisal ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Appraisal approved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the appraised faculty member"
// @Failure 404 {object} dto.ErrorResponse "Appraisal not found"
// @Failure 409 {object} dto.ErrorResponse "Appraisal is not in sent status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appraisals/{id}/approve [post]
func (c *AppraisalController) Approve(ctx *gin.Context) {
	id, ok := parseAppraisalID(ctx)
	if !ok {
		return
	}

	if err := c.workflowService.Approve(ctx, middleware.GetUserID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Appraisal approved"},
		Timestamp: time.Now(),
	})
}

// Appeal disputes the caller's sent appraisal in the active cycle
// @Summary Appeal own appraisal
// @Description Returns the caller's sent appraisal to the evaluator and records the dispute
// @Tags appraisals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AppealRequest false "Appeal message"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Appeal recorded"
// @Failure 400 {object} dto.ErrorResponse "No active appraisal cycle"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Appraisal is not in sent status"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appraisals/me/appeal [post]
func (c *AppraisalController) Appeal(ctx *gin.Context) {
	var req dto.AppealRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid appeal data")
			errorDetail = errorDetail.WithDetails(err.Error())
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	if err := c.workflowService.Appeal(ctx, middleware.GetUserID(ctx), req.Message); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Appeal recorded"},
		Timestamp: time.Now(),
	})
}

// ListEvaluatees returns the appraisals the caller evaluates in the active cycle
// @Summary List evaluatees
// @Description Lists the appraisals the caller is responsible for evaluating in the active cycle
// @Tags appraisals
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EvaluateeResponse} "Evaluatees retrieved"
// @Failure 400 {object} dto.ErrorResponse "No active appraisal cycle"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an evaluator"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /evaluatees [get]
func (c *AppraisalController) ListEvaluatees(ctx *gin.Context) {
	actor, err := c.directoryService.ResolveAffiliation(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	appraisals, err := c.workflowService.ListEvaluatees(ctx, *actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.EvaluateeResponse, 0, len(appraisals))
	for _, a := range appraisals {
		item := dto.EvaluateeResponse{
			AppraisalID: a.ID,
			FacultyID:   a.FacultyID,
			Status:      a.Status,
			TotalScore:  a.TotalScore,
		}
		if a.Faculty != nil {
			item.FacultyName = a.Faculty.FirstName + " " + a.Faculty.LastName
		}
		items = append(items, item)
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// GetReview returns the appraisal with the caller's evaluation
// @Summary Get evaluator review
// @Description Returns an appraisal together with the calling evaluator's own evaluation
// @Tags appraisals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appraisal ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewResponse} "Review retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller may not evaluate this appraisal"
// @Failure 404 {object} dto.ErrorResponse "Appraisal not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appraisals/{id}/review [get]
func (c *AppraisalController) GetReview(ctx *gin.Context) {
	id, ok := parseAppraisalID(ctx)
	if !ok {
		return
	}

	actor, err := c.directoryService.ResolveAffiliation(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	appraisal, evaluation, err := c.workflowService.GetReview(ctx, *actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ReviewResponse{
			Appraisal:  dto.FromAppraisal(appraisal),
			Evaluation: dto.FromEvaluation(evaluation),
		},
		Timestamp: time.Now(),
	})
}

// Send submits the caller's completed evaluation
// @Summary Send evaluation
// @Description Submits the calling evaluator's completed evaluation, moving the appraisal to sent
// @Tags appraisals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appraisal ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Appraisal sent"
// @Failure 400 {object} dto.ErrorResponse "Evaluation sections incomplete"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Caller may not evaluate this appraisal"
// @Failure 404 {object} dto.ErrorResponse "Appraisal not found"
// @Failure 409 {object} dto.ErrorResponse "Appraisal is complete"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /appraisals/{id}/send [post]
func (c *AppraisalController) Send(ctx *gin.Context) {
	id, ok := parseAppraisalID(ctx)
	if !ok {
		return
	}

	actor, err := c.directoryService.ResolveAffiliation(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.workflowService.Send(ctx, *actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Appraisal sent"},
		Timestamp: time.Now(),
	})
}
