package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/voicepick-service/internal/application"
	"github.com/wms-platform/voicepick-service/internal/infrastructure/events"
	"github.com/wms-platform/voicepick-service/internal/infrastructure/layoutyaml"
	mongoRepo "github.com/wms-platform/voicepick-service/internal/infrastructure/mongodb"
	"github.com/wms-platform/voicepick-service/pkg/kafka"
	"github.com/wms-platform/voicepick-service/pkg/logging"
	"github.com/wms-platform/voicepick-service/pkg/metrics"
	"github.com/wms-platform/voicepick-service/pkg/middleware"
	"github.com/wms-platform/voicepick-service/pkg/mongodb"
)

const serviceName = "voicepick-service"

func main() {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting voicepick-service API")

	config := loadConfig()
	ctx := context.Background()

	m := metrics.New(serviceName)
	logger.Info("Metrics initialized")

	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	taskRepo := mongoRepo.NewWorkTaskRepository(mongoClient, logger)
	workerRepo := mongoRepo.NewWorkerRepository(mongoClient, logger)
	assignmentRepo := mongoRepo.NewAssignmentRepository(mongoClient, logger)
	auditRepo := mongoRepo.NewAuditLogRepository(mongoClient, logger)
	layoutRepo := mongoRepo.NewLayoutRepository(mongoClient, logger)

	for name, ensure := range map[string]func(context.Context) error{
		"work_queue":         taskRepo.EnsureIndexes,
		"workers":            workerRepo.EnsureIndexes,
		"work_assignments":   assignmentRepo.EnsureIndexes,
		"work_queue_history": auditRepo.EnsureIndexes,
		"warehouse_layouts":  layoutRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			logger.WithError(err).Warn("Failed to ensure indexes", "collection", name)
		}
	}

	var publisher *events.KafkaPublisher
	if config.KafkaEnabled {
		producer := kafka.NewProducer(config.Kafka, config.Kafka.Topics.WorkQueueEvents, logger, m)
		publisher = events.NewKafkaPublisher(producer)
		defer publisher.Close()
		logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)
	} else {
		logger.Warn("Kafka publishing disabled")
	}

	var layoutSource application.LayoutSource = layoutRepo
	if config.LayoutDir != "" {
		fileProvider, err := layoutyaml.NewFileProvider(config.LayoutDir)
		if err != nil {
			logger.WithError(err).Error("Failed to load layout files", "dir", config.LayoutDir)
			os.Exit(1)
		}
		layoutSource = fileProvider
		logger.Info("Layouts loaded from files", "dir", config.LayoutDir)
	}
	layoutCache := application.NewLayoutCache(layoutSource, logger)

	locationService := application.NewLocationService(layoutCache, m, logger)

	queueService := newQueueService(taskRepo, workerRepo, assignmentRepo, auditRepo, publisher, m, logger)

	middleware.InitValidator()

	router := gin.New()
	middleware.Setup(router, logger)
	router.Use(middleware.MetricsMiddleware(m))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName, logConfig.Version))
	router.GET("/ready", middleware.ReadinessCheck(map[string]func() error{
		"mongodb": func() error { return mongoClient.Ping(ctx) },
	}))
	middleware.MetricsEndpoint(router, m)

	responder := middleware.NewErrorResponder(logger)
	apiV1 := router.Group("/api/v1")

	locations := apiV1.Group("/locations")
	{
		locations.GET("/parse", parseLocationHandler(locationService, responder))
		locations.POST("/generate", generateLocationHandler(locationService, responder))
		locations.GET("/voice", voicePromptHandler(locationService, responder))
		locations.GET("/equipment", equipmentHandler(locationService, responder))
		locations.GET("/aisles/:section/:aisle", enumerateAisleHandler(locationService, responder))
		locations.GET("/stats", layoutStatsHandler(locationService, responder))
	}

	workQueue := apiV1.Group("/work-queue")
	{
		workQueue.POST("", createTaskHandler(queueService, responder))
		workQueue.GET("", listQueueHandler(queueService, responder))
		workQueue.GET("/stats", queueStatsHandler(queueService, responder))
		workQueue.GET("/next", nextForWorkerHandler(queueService, responder))
		workQueue.GET("/role/:role", workByRoleHandler(queueService, responder))
		workQueue.GET("/worker/:pin/current", currentWorkHandler(queueService, responder))
		workQueue.GET("/:taskId", getTaskHandler(queueService, responder))
		workQueue.GET("/:taskId/history", taskHistoryHandler(queueService, responder))
		workQueue.POST("/:taskId/assign", assignTaskHandler(queueService, responder))
		workQueue.POST("/:taskId/start", startTaskHandler(queueService, responder))
		workQueue.POST("/:taskId/complete", completeTaskHandler(queueService, responder))
		workQueue.POST("/:taskId/cancel", cancelTaskHandler(queueService, responder))
	}

	workers := apiV1.Group("/workers")
	{
		workers.GET("/:pin", lookupWorkerHandler(queueService, responder))
		workers.GET("/role/:role", workersByRoleHandler(queueService, responder))
	}

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
}

func newQueueService(
	taskRepo *mongoRepo.WorkTaskRepository,
	workerRepo *mongoRepo.WorkerRepository,
	assignmentRepo *mongoRepo.AssignmentRepository,
	auditRepo *mongoRepo.AuditLogRepository,
	publisher *events.KafkaPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
) *application.QueueService {
	if publisher == nil {
		return application.NewQueueService(taskRepo, workerRepo, assignmentRepo, auditRepo, nil, m, logger)
	}
	return application.NewQueueService(taskRepo, workerRepo, assignmentRepo, auditRepo, publisher, m, logger)
}

// Config holds application configuration
type Config struct {
	ServerAddr   string
	MongoDB      *mongodb.Config
	Kafka        *kafka.Config
	KafkaEnabled bool
	LayoutDir    string
}

func loadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		MongoDB: mongodb.DefaultConfig(
			getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			getEnv("MONGODB_DATABASE", "voicepick"),
		),
		Kafka:        kafka.DefaultConfig(getEnv("KAFKA_BROKERS", "localhost:9092"), serviceName),
		KafkaEnabled: getEnv("KAFKA_ENABLED", "true") == "true",
		LayoutDir:    getEnv("LAYOUT_DIR", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
