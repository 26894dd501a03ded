package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/acadeval/appraisehub/internal/app/controllers"
	"github.com/acadeval/appraisehub/internal/app/models"
	"github.com/acadeval/appraisehub/internal/app/models/dto"
	"github.com/acadeval/appraisehub/internal/middleware"
	"github.com/acadeval/appraisehub/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	jwtService *auth.JWTService,
	authController *controllers.AuthController,
	appraisalController *controllers.AppraisalController,
	evaluationController *controllers.EvaluationController,
	cycleController *controllers.CycleController,
	gradingController *controllers.GradingController,
	appealController *controllers.AppealController,
	orgController *controllers.OrgController,
	userController *controllers.UserController,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", authController.Login)
	}

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService))
	{
		authenticated.GET("/auth/me", authController.GetProfile)

		// Faculty surface: own appraisal, approval and appeal
		appraisals := authenticated.Group("/appraisals")
		{
			appraisals.GET("/me", appraisalController.MyAppraisal)
			appraisals.POST("/me/appeal", appraisalController.Appeal)
			appraisals.POST("/:id/approve", appraisalController.Approve)

			// Evaluator surface
			evaluators := appraisals.Group("")
			evaluators.Use(middleware.RoleRequired(models.RoleHOD, models.RoleDean))
			{
				evaluators.GET("/:id/review", appraisalController.GetReview)
				evaluators.PUT("/:id/evaluation", evaluationController.SaveEvaluation)
				evaluators.POST("/:id/send", appraisalController.Send)
			}

			appraisals.GET("/:id/appeals",
				middleware.RoleRequired(models.RoleAdmin),
				appealController.ListAppraisalAppeals)
		}

		authenticated.GET("/evaluatees",
			middleware.RoleRequired(models.RoleHOD, models.RoleDean),
			appraisalController.ListEvaluatees)

		// Cycles: read for all authenticated users, management for admins
		cycles := authenticated.Group("/cycles")
		{
			cycles.GET("", cycleController.ListCycles)
			cycles.GET("/active", cycleController.GetActiveCycle)
			cycles.GET("/:cycleId/grading-config", gradingController.GetEffectiveConfig)

			cyclesAdmin := cycles.Group("")
			cyclesAdmin.Use(middleware.RoleRequired(models.RoleAdmin))
			{
				cyclesAdmin.POST("", cycleController.CreateCycle)
				cyclesAdmin.POST("/:cycleId/activate", cycleController.ActivateCycle)
				cyclesAdmin.PUT("/:cycleId/grading-config", gradingController.UpsertCycleConfig)
			}
		}

		// Admin-only administration
		admin := authenticated.Group("")
		admin.Use(middleware.RoleRequired(models.RoleAdmin))
		{
			admin.PUT("/grading-configs/global", gradingController.UpsertGlobalConfig)

			admin.GET("/appeals", appealController.ListAppeals)
			admin.POST("/appeals/:id/resolve", appealController.ResolveAppeal)

			admin.POST("/colleges", orgController.CreateCollege)
			admin.POST("/departments", orgController.CreateDepartment)
			admin.POST("/departments/:id/reassign", orgController.ReassignDepartment)

			admin.GET("/users", userController.ListUsers)
		}

		// Organization reads for all authenticated users
		authenticated.GET("/colleges", orgController.ListColleges)
		authenticated.GET("/departments", orgController.ListDepartments)
	}
}
