package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/railtraits/traits-backend/internal/config"
	"github.com/railtraits/traits-backend/internal/database"
	"github.com/railtraits/traits-backend/internal/graph"
	"github.com/railtraits/traits-backend/internal/handlers"
	"github.com/railtraits/traits-backend/internal/middleware"
	"github.com/railtraits/traits-backend/internal/services"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Traits reservation backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Two relational handles: operator mutations go through the admin role,
	// customer operations through the base role.
	logger.Info("Connecting to relational store...")
	adminDB, err := database.NewConnection(cfg.Database, database.RoleAdmin)
	if err != nil {
		logger.Fatalf("Failed to connect as admin: %v", err)
	}
	defer adminDB.Close()

	baseDB, err := database.NewConnection(cfg.Database, database.RoleBase)
	if err != nil {
		logger.Fatalf("Failed to connect as base user: %v", err)
	}
	defer baseDB.Close()

	if err := database.Setup(adminDB); err != nil {
		logger.Fatalf("Failed to initialize schema: %v", err)
	}
	logger.Info("Relational store ready")

	ctx := context.Background()
	logger.Info("Connecting to graph store...")
	graphClient, err := graph.New(ctx, cfg.Graph.URI, cfg.Graph.Username, cfg.Graph.Password, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to graph store: %v", err)
	}
	defer graphClient.Close(ctx)
	logger.Info("Graph store ready")

	// Admin-handle repositories for operator mutations.
	stationRepo := database.NewStationRepository(adminDB)
	segmentRepo := database.NewSegmentRepository(adminDB)
	trainRepo := database.NewTrainRepository(adminDB)
	scheduleRepo := database.NewScheduleRepository(adminDB)
	tripRepo := database.NewTripRepository(adminDB)
	outboxRepo := database.NewOutboxRepository(adminDB)
	userRepo := database.NewUserRepository(adminDB)

	// Base-handle repositories for customer reads and purchases.
	baseStationRepo := database.NewStationRepository(baseDB)
	baseTrainRepo := database.NewTrainRepository(baseDB)
	baseTripRepo := database.NewTripRepository(baseDB)
	baseUserRepo := database.NewUserRepository(baseDB)
	ticketRepo := database.NewTicketRepository(baseDB)

	networkService := services.NewNetworkService(stationRepo, segmentRepo, graphClient, logger)
	trainService := services.NewTrainService(trainRepo, graphClient, logger)
	scheduleService := services.NewScheduleService(
		adminDB, trainRepo, stationRepo, segmentRepo, scheduleRepo, tripRepo, outboxRepo,
		graphClient, logger,
	)
	searchService := services.NewSearchService(baseStationRepo, baseTripRepo, graphClient, cfg.Search.MaxLegs, logger)
	bookingService := services.NewBookingService(baseUserRepo, ticketRepo, logger)
	userService := services.NewUserService(userRepo, logger)
	// Status reads are a customer operation and go through the base role.
	trainStatusService := services.NewTrainService(baseTrainRepo, graphClient, logger)

	outboxService := services.NewOutboxService(outboxRepo, graphClient, cfg.Outbox.FlushInterval, logger)
	outboxService.Start()
	defer outboxService.Stop()
	logger.Info("Graph outbox worker started")

	adminHandler := handlers.NewAdminHandler(networkService, trainService, scheduleService, logger)
	searchHandler := handlers.NewSearchHandler(searchService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	userHandler := handlers.NewUserHandler(userService, trainStatusService, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := baseDB.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": version})
	})

	v1 := router.Group("/api/v1")
	{
		admin := v1.Group("/admin")
		{
			admin.POST("/stations", adminHandler.AddStation)
			admin.POST("/connections", adminHandler.ConnectStations)
			admin.POST("/trains", adminHandler.AddTrain)
			admin.PATCH("/trains/:name", adminHandler.UpdateTrain)
			admin.DELETE("/trains/:name", adminHandler.DeleteTrain)
			admin.POST("/schedules", adminHandler.AddSchedule)
		}

		v1.POST("/search", searchHandler.SearchConnections)
		v1.POST("/tickets", bookingHandler.BuyTicket)
		v1.POST("/users", userHandler.AddUser)
		v1.DELETE("/users/:email", userHandler.DeleteUser)
		v1.GET("/users/:email/purchases", bookingHandler.GetPurchaseHistory)
		v1.GET("/trains/:name/status", userHandler.GetTrainStatus)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Infof("Listening on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Forced shutdown: %v", err)
	}
	logger.Info("Server stopped")
}
