package main

import (
	"alcyxob/gym-app/internal/api"
	"alcyxob/gym-app/internal/config"
	"alcyxob/gym-app/internal/repository/mongo"
	"alcyxob/gym-app/internal/service"
	"alcyxob/gym-app/internal/storage"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.Info("starting gym app server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.WithField("database", cfg.Database.Name).Info("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureMemberIndexes(ctx, appDB.Collection("members"))
		mongo.EnsureTrainerIndexes(ctx, appDB.Collection("trainers"))
		mongo.EnsureClassIndexes(ctx, appDB.Collection("classes"))
		mongo.EnsureBookingIndexes(ctx, appDB.Collection("bookings"))
		mongo.EnsureInvoiceIndexes(ctx, appDB.Collection("invoices"))
		mongo.EnsurePaymentIndexes(ctx, appDB.Collection("payments"))
		mongo.EnsureProgressIndexes(ctx, appDB.Collection("progress"))
		mongo.EnsureWorkoutPlanIndexes(ctx, appDB.Collection("workout_plans"))
		mongo.EnsureWorkoutSessionIndexes(ctx, appDB.Collection("workout_sessions"))
		mongo.EnsureAttendanceIndexes(ctx, appDB.Collection("attendance"))
		mongo.EnsureExerciseIndexes(ctx, appDB.Collection("exercises"))
		log.Info("index creation process completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(
		context.Background(),
		cfg.S3.Endpoint,
		cfg.S3.Region,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BucketName,
	)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize S3 storage")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	memberRepo := mongo.NewMongoMemberRepository(appDB)
	trainerRepo := mongo.NewMongoTrainerRepository(appDB)
	classRepo := mongo.NewMongoClassRepository(appDB)
	bookingRepo := mongo.NewMongoBookingRepository(appDB)
	invoiceRepo := mongo.NewMongoInvoiceRepository(appDB)
	paymentRepo := mongo.NewMongoPaymentRepository(appDB)
	progressRepo := mongo.NewMongoProgressRepository(appDB)
	planRepo := mongo.NewMongoWorkoutPlanRepository(appDB)
	sessionRepo := mongo.NewMongoWorkoutSessionRepository(appDB)
	attendanceRepo := mongo.NewMongoAttendanceRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)

	// --- Initialize Services ---
	svcs := api.Services{
		Auth:       service.NewAuthService(userRepo, memberRepo, trainerRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		Member:     service.NewMemberService(memberRepo, userRepo, trainerRepo),
		Trainer:    service.NewTrainerService(trainerRepo, userRepo),
		Class:      service.NewClassService(classRepo, trainerRepo, userRepo),
		Booking:    service.NewBookingService(bookingRepo, classRepo, memberRepo),
		Billing:    service.NewBillingService(invoiceRepo, paymentRepo, memberRepo),
		Progress:   service.NewProgressService(progressRepo, fileStorage),
		Workout:    service.NewWorkoutService(planRepo, sessionRepo, exerciseRepo),
		Attendance: service.NewAttendanceService(attendanceRepo, memberRepo),
		Exercise:   service.NewExerciseService(exerciseRepo),
		Analytics:  service.NewAnalyticsService(memberRepo, userRepo, paymentRepo, attendanceRepo, bookingRepo),
	}

	// --- Initialize Gin Engine ---
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, svcs)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.WithField("address", cfg.Server.Address).Info("server starting")

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen and serve error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exiting")
}
