package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/rapor-go-api/internal/config"
	"github.com/noah-isme/rapor-go-api/internal/database"
	"github.com/noah-isme/rapor-go-api/internal/handler"
	"github.com/noah-isme/rapor-go-api/internal/middleware"
	"github.com/noah-isme/rapor-go-api/internal/models"
	"github.com/noah-isme/rapor-go-api/internal/repository"
	"github.com/noah-isme/rapor-go-api/internal/router"
	"github.com/noah-isme/rapor-go-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Class{},
		&models.Student{},
		&models.Subject{},
		&models.SubjectPart{},
		&models.Exam{},
		&models.ExamSubjectSetting{},
		&models.ExamSubjectPartSetting{},
		&models.Mark{},
		&models.Result{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, event fanout degraded")
		} else {
			defer natsConn.Close()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	classRepo := repository.NewClassRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	examRepo := repository.NewExamRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	markRepo := repository.NewMarkRepository(db)
	resultRepo := repository.NewResultRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	resultCache := service.NewResultCache(redisClient, cfg.ResultCacheTTL, logger)
	eventPublisher := service.NewResultEventPublisher(redisClient, natsConn, cfg.EventChannel, logger)

	activityService := service.NewActivityService(activityRepo, logger)
	resultService := service.NewResultService(examRepo, subjectRepo, studentRepo, settingsRepo, markRepo, resultRepo, resultCache, eventPublisher, logger)
	publishService := service.NewPublishService(examRepo, resultRepo, resultCache, eventPublisher, activityService, logger)
	markService := service.NewMarkService(examRepo, subjectRepo, settingsRepo, markRepo, resultRepo, resultService, activityService, validate, logger)
	classService := service.NewClassService(classRepo, validate, logger)
	studentService := service.NewStudentService(studentRepo, classRepo, validate, logger)
	subjectService := service.NewSubjectService(subjectRepo, classRepo, validate, logger)
	examService := service.NewExamService(examRepo, classRepo, validate, logger)
	settingsService := service.NewSettingsService(examRepo, settingsRepo, resultService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ClassHandler:        handler.NewClassHandler(classService, logger),
		StudentHandler:      handler.NewStudentHandler(studentService, logger),
		SubjectHandler:      handler.NewSubjectHandler(subjectService, logger),
		ExamHandler:         handler.NewExamHandler(examService, settingsService, logger),
		MarkHandler:         handler.NewMarkHandler(markService, logger),
		ResultHandler:       handler.NewResultHandler(resultService, publishService, logger),
		PublicResultHandler: handler.NewPublicResultHandler(publishService, logger),
		ActivityHandler:     handler.NewActivityHandler(activityService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
