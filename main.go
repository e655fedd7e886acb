package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zela/config"
	croninit "zela/cron"
	"zela/database"
	bookingRepoPkg "zela/database/repository/booking"
	packageRepoPkg "zela/database/repository/servicepackage"
	"zela/handlers"
	"zela/middleware"
	"zela/routes"
	"zela/services/booking"
	"zela/services/catalog"
	"zela/services/ledger"
	"zela/services/notification"
	"zela/services/payment"
	"zela/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	pkgRepo := packageRepoPkg.NewMongoPackageRepo()
	bkRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	creditLedger := ledger.NewDefaultCreditLedger(pkgRepo, logger)
	catalogStore := catalog.NewMongoStore(logger)
	gateway := payment.NewStripeGateway(config.AppConfig.StripeKey, logger)

	queueOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	notifier := notification.NewQueueService(queueOpt, logger)
	defer notifier.Close()

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := booking.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	bookingService := &booking.DefaultBookingSessionService{
		Catalog:  catalogStore,
		Sessions: sessionStore,
		Ledger:   creditLedger,
		Gateway:  gateway,
		Bookings: bkRepo,
		Notifier: notifier,
		Logger:   logger,
	}

	// Background workers.
	croninit.InitNotificationWorker(&notification.LogSender{Logger: logger})
	expirySweep := croninit.StartExpirySweep(pkgRepo, logger)
	defer expirySweep.Stop()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		Packages: handlers.NewPackageHandler(creditLedger, logger),
		Services: handlers.NewServiceHandler(catalogStore, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("starting server on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("forced shutdown: %v", err)
	}
	logger.Info("server exited cleanly")
}
