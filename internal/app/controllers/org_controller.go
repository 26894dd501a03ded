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

// OrgController handles college and department administration
type OrgController struct {
	orgService *services.OrgService
}

// NewOrgController creates a new OrgController
func NewOrgController(orgService *services.OrgService) *OrgController {
	return &OrgController{
		orgService: orgService,
	}
}

// CreateCollege creates a new college
// @Summary Create a college
// @Description Creates a new top-level college
// @Tags organization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCollegeRequest true "College information"
// @Success 201 {object} dto.APIResponse{data=dto.CollegeResponse} "College created"
// @Failure 400 {object} dto.ErrorResponse "Invalid college data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "College already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /colleges [post]
func (c *OrgController) CreateCollege(ctx *gin.Context) {
	var req dto.CreateCollegeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid college data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	college, err := c.orgService.CreateCollege(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.CollegeResponse{ID: college.ID, Name: college.Name, Code: college.Code},
		Timestamp: time.Now(),
	})
}

// ListColleges returns all colleges
// @Summary List colleges
// @Description Lists all colleges
// @Tags organization
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CollegeResponse} "Colleges retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /colleges [get]
func (c *OrgController) ListColleges(ctx *gin.Context) {
	colleges, err := c.orgService.ListColleges(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.CollegeResponse, 0, len(colleges))
	for _, college := range colleges {
		items = append(items, dto.CollegeResponse{ID: college.ID, Name: college.Name, Code: college.Code})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// CreateDepartment creates a new department
// @Summary Create a department
// @Description Creates a new department under an existing college
// @Tags organization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDepartmentRequest true "Department information"
// @Success 201 {object} dto.APIResponse{data=dto.DepartmentResponse} "Department created"
// @Failure 400 {object} dto.ErrorResponse "Invalid department data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "College not found"
// @Failure 409 {object} dto.ErrorResponse "Department already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [post]
func (c *OrgController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid department data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	department, err := c.orgService.CreateDepartment(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.DepartmentResponse{
			ID:        department.ID,
			CollegeID: department.CollegeID,
			Name:      department.Name,
			Code:      department.Code,
		},
		Timestamp: time.Now(),
	})
}

// ListDepartments returns departments, optionally filtered by college
// @Summary List departments
// @Description Lists departments, optionally filtered by college
// @Tags organization
// @Produce json
// @Security BearerAuth
// @Param collegeId query int false "Filter by college ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.DepartmentResponse} "Departments retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid college ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [get]
func (c *OrgController) ListDepartments(ctx *gin.Context) {
	var collegeID *int64
	if raw := ctx.Query("collegeId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid college ID")
			errorDetail = errorDetail.WithDetails("College ID must be a valid number")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		collegeID = &parsed
	}

	departments, err := c.orgService.ListDepartments(ctx, collegeID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.DepartmentResponse, 0, len(departments))
	for _, department := range departments {
		items = append(items, dto.DepartmentResponse{
			ID:        department.ID,
			CollegeID: department.CollegeID,
			Name:      department.Name,
			Code:      department.Code,
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      items,
		Timestamp: time.Now(),
	})
}

// ReassignDepartment moves a department to another college
// @Summary Reassign a department
// @Description Moves a department to another college
// @Tags organization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param request body dto.ReassignDepartmentRequest true "Target college"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Department reassigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Department or college not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id}/reassign [post]
func (c *OrgController) ReassignDepartment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid department ID")
		errorDetail = errorDetail.WithDetails("Department ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.ReassignDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid reassignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.orgService.ReassignDepartment(ctx, id, req.CollegeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Department reassigned"},
		Timestamp: time.Now(),
	})
}
