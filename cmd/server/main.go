package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"questfit/coach-app/internal/api"
	"questfit/coach-app/internal/coach"
	"questfit/coach-app/internal/config"
	"questfit/coach-app/internal/llm"
	"questfit/coach-app/internal/repository/mongo"
	"questfit/coach-app/internal/service"
)

func main() {
	log.Println("Starting Coach App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("training_plans"))
		mongo.EnsureLogIndexes(ctx, appDB.Collection("exercise_logs"))
		mongo.EnsureSessionIndexes(ctx, appDB.Collection("workout_sessions"))
		mongo.EnsureScheduleIndexes(ctx, appDB.Collection("scheduled_workouts"))
		mongo.EnsureStatsIndexes(ctx, appDB.Collection("user_stats"), appDB.Collection("weekly_quests"))
		mongo.EnsureSettingsIndexes(ctx, appDB.Collection("coach_settings"), appDB.Collection("exercise_variants"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	logRepo := mongo.NewMongoLogRepository(appDB)
	sessionRepo := mongo.NewMongoSessionRepository(appDB)
	scheduleRepo := mongo.NewMongoScheduleRepository(appDB)
	statsRepo := mongo.NewMongoStatsRepository(appDB)
	settingsRepo := mongo.NewMongoSettingsRepository(appDB)

	// --- Progression Policy ---
	policy := coach.Policy{
		CycleWeeks:          cfg.Coach.CycleWeeks,
		PlateauWindow:       cfg.Coach.PlateauWindow,
		DeloadSetFloor:      cfg.Coach.DeloadSetFloor,
		DeloadLoadFactor:    cfg.Coach.DeloadLoadFactor,
		StrengthResetFactor: cfg.Coach.StrengthResetFactor,
		RepFailureDropKg:    cfg.Coach.RepFailureDropKg,
		DefaultRepMin:       cfg.Coach.DefaultRepMin,
		DefaultRepMax:       cfg.Coach.DefaultRepMax,
	}

	// --- LLM Program Generator ---
	// Optional: without an API key the template generator still works and
	// only the /programs/generate endpoint reports unavailable.
	var generator llm.Client
	generator, err = llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			log.Println("WARN: OpenAI API key not set, program generation disabled.")
			generator = nil
		} else {
			log.Fatalf("FATAL: Failed to initialize LLM client: %v", err)
		}
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	coachService := service.NewCoachService(policy, planRepo, logRepo, settingsRepo)
	planService := service.NewPlanService(planRepo, generator)
	sessionService := service.NewSessionService(sessionRepo, logRepo, statsRepo, scheduleRepo, planRepo, coachService)
	scheduleService := service.NewScheduleService(scheduleRepo, planRepo)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, planService, coachService, sessionService, scheduleService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
