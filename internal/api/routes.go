package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"questfit/coach-app/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	planService service.PlanService,
	coachService service.CoachService,
	sessionService service.SessionService,
	scheduleService service.ScheduleService,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService)
	coachHandler := NewCoachHandler(coachService)
	sessionHandler := NewSessionHandler(sessionService)
	scheduleHandler := NewScheduleHandler(scheduleService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := currentUserID(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		// --- Plans ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.GET("/active", planHandler.GetActivePlan)
			planGroup.GET("/:planId", planHandler.GetPlan)
		}

		// POST /api/v1/programs/generate - LLM-backed multi-week program
		protected.POST("/programs/generate", planHandler.GenerateProgram)

		// --- Coach engine ---
		coachGroup := protected.Group("/coach")
		{
			coachGroup.GET("/days/:dayIndex/blueprint", coachHandler.GetBlueprint)
			coachGroup.POST("/preview", coachHandler.PreviewExercise)
			coachGroup.GET("/cycle", coachHandler.GetCycle)
			coachGroup.POST("/cycle/advance", coachHandler.AdvanceCycle)
			coachGroup.GET("/settings", coachHandler.GetSettings)
			coachGroup.PUT("/settings", coachHandler.UpdateSettings)
		}

		// --- Sessions ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.StartSession)
			sessionGroup.GET("/open", sessionHandler.GetOpenSession)
			sessionGroup.POST("/:sessionId/sets", sessionHandler.LogSet)
			sessionGroup.POST("/:sessionId/finish", sessionHandler.FinishSession)
		}

		// --- Gamification read models ---
		protected.GET("/stats", sessionHandler.GetStats)
		protected.GET("/quests/week", sessionHandler.GetWeeklyQuest)

		// --- Weekly schedule ---
		scheduleGroup := protected.Group("/schedule")
		{
			scheduleGroup.GET("/week", scheduleHandler.GetWeek)
			scheduleGroup.PATCH("/:date", scheduleHandler.MarkDay)
		}
	}
}
