package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventify/config"
	"eventify/cron"
	"eventify/database"
	bookingRepo "eventify/database/repository/bookings"
	categoryRepo "eventify/database/repository/category"
	draftRepo "eventify/database/repository/draft"
	serviceRepo "eventify/database/repository/service"
	"eventify/handlers"
	"eventify/middleware"
	"eventify/routes"
	"eventify/services/booking"
	"eventify/services/catalog"
	"eventify/services/listing"
	"eventify/services/publisher"
	"eventify/services/storage"
	"eventify/services/tasks"
	"eventify/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitDraftCache()
	db := database.DB()

	rootCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(rootCtx, utils.GetDraftCacheClient(), database.MongoClient, time.Minute)

	// repositories.
	categories := categoryRepo.NewMongoCategoryRepo(db)
	services := serviceRepo.NewMongoServiceRepo(db)
	bookings := bookingRepo.NewMongoBookingRepo(db)
	drafts := draftRepo.NewRedisDraftStore(utils.GetDraftCacheClient(), 2*config.AppConfig.DraftTTL)

	if path := config.AppConfig.CatalogFile; path != "" {
		seed, err := catalog.LoadFile(path)
		if err != nil {
			logger.Fatal("main: failed to load category catalog", zap.String("path", path), zap.Error(err))
		}
		if err := categories.Upsert(rootCtx, seed); err != nil {
			logger.Fatal("main: failed to seed categories", zap.Error(err))
		}
	}
	catalogService := catalog.NewService(categories, logger)
	if err := catalogService.Reload(rootCtx); err != nil {
		logger.Warn("main: category catalog not loaded, will retry on first use", zap.Error(err))
	}

	images, err := storage.NewCloudinaryImageStore(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
		config.AppConfig.CloudinaryFolder,
		logger,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary image store: %v", err)
	}

	// background tasks.
	queue := asynq.NewClient(cron.RedisOpt())
	defer queue.Close()
	scheduler := tasks.NewScheduler(queue)

	previews, err := listing.NewDiskPreviewStore(config.AppConfig.PreviewDir)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to prepare preview directory: %v", err)
	}

	// services.
	pub := publisher.NewPublisher(services, images, scheduler, logger)
	var sender listing.Sender = publisher.NewLocalSender(pub, previews.Open)
	if url := config.AppConfig.ListingAPIURL; url != "" {
		sender = listing.NewHTTPSender(url, previews.Open)
		logger.Info("main: submitting listings to remote API", zap.String("url", url))
	}

	draftService := &listing.DraftService{
		Store:      drafts,
		Services:   services,
		Schemas:    catalogService,
		Reconciler: listing.NewReconciler(previews, logger),
		Submitter:  listing.NewSubmitter(sender, logger),
		Expiry:     scheduler,
		TTL:        config.AppConfig.DraftTTL,
		Logger:     logger,
	}
	bookingService := booking.NewService(services, bookings,
		booking.Calculator{EnforceMaxQty: config.AppConfig.BookingEnforceMaxQty}, logger)

	worker := cron.StartWorker(cron.NewMux(images, draftService, logger), logger)

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := &handlers.HandlerBundle{
		Catalog:  handlers.NewCatalogHandler(catalogService),
		Drafts:   handlers.NewDraftHandler(draftService),
		Services: handlers.NewServiceHandler(pub, services),
		Booking:  handlers.NewBookingHandler(bookingService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
