// File: homecollect/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homecollect/config"
	"homecollect/cron"
	"homecollect/database"
	"homecollect/database/repository"
	"homecollect/handlers"
	"homecollect/middleware"
	"homecollect/routes"
	"homecollect/services/booking"
	"homecollect/services/collector"
	"homecollect/services/notification"
	"homecollect/services/storage"
	"homecollect/services/team"
	"homecollect/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Stores.
	var stores *repository.Stores
	var mongoClient *mongo.Client
	switch config.AppConfig.StoreBackend {
	case "memory":
		logger.Warn("Using in-memory stores; data is lost on restart")
		stores = repository.NewMemoryStores()
	default:
		if err := database.InitDB(); err != nil {
			logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
		}
		mongoClient = database.MongoClient
		stores = repository.NewMongoStores(database.Database())
	}
	idxCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := stores.EnsureIndexes(idxCtx); err != nil {
		logger.Fatal("main: failed to ensure indexes", zap.Error(err))
	}
	cancel()

	cache := utils.GetCacheClient()
	loc := config.Location()

	// Notifications: FCM push when credentials are present, log-only otherwise.
	fcm, err := utils.FirebaseMessaging(ctx, config.AppConfig.FirebaseCredentialsFile)
	if err != nil {
		logger.Warn("Push notifications disabled", zap.Error(err))
	}
	delivery := notification.NewDefaultNotificationService(nil, logger)
	if fcm != nil {
		delivery.Push = fcm
	}

	var notifier notification.Notifier = delivery
	var worker *cron.NotificationWorker
	var queue *asynq.Client
	if config.AppConfig.NotifyAsync {
		opt := cron.QueueRedisOpt()
		queue = asynq.NewClient(opt)
		notifier = notification.NewTaskNotifier(queue, config.NotifyTimeout())
		worker = cron.NewNotificationWorker(opt, delivery, logger)
		worker.Start()
	}

	// Sample images.
	var images storage.ImageStore = storage.DisabledImageStore{}
	if cld, err := storage.NewCloudinaryImageStore(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	); err != nil {
		logger.Warn("Sample image uploads disabled", zap.Error(err))
	} else {
		images = cld
	}

	// Services.
	teamService := team.NewTeamService(stores.Teams, cache, config.TeamCacheTTL(), logger)
	bookingService := booking.NewBookingService(stores, teamService, notifier, logger, loc, config.NotifyTimeout())
	collectorService := collector.NewCollectorService(stores, images, logger, loc)

	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewSlotHandler(bookingService),
		handlers.NewBookingHandler(bookingService),
		handlers.NewCollectorHandler(collectorService),
		handlers.NewTeamHandler(teamService),
	)

	utils.StartHealthMonitor(ctx, []*redis.Client{cache}, mongoClient, 30*time.Second)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	router.Use(middleware.RequestTimeout(time.Duration(config.AppConfig.RequestTimeoutSeconds) * time.Second))
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	stop()

	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		_ = queue.Close()
	}
	if cache != nil {
		_ = cache.Close()
	}
	if err := database.Close(shutdownCtx); err != nil {
		logger.Error("main: failed to close MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
