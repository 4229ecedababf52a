package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yaseeradam/smartlink-backend/controllers"
	"github.com/yaseeradam/smartlink-backend/database"
	"github.com/yaseeradam/smartlink-backend/logger"
	"github.com/yaseeradam/smartlink-backend/middleware"
	"github.com/yaseeradam/smartlink-backend/realtime"
	"github.com/yaseeradam/smartlink-backend/repository"
	"github.com/yaseeradam/smartlink-backend/routes"
	"github.com/yaseeradam/smartlink-backend/services"
	"github.com/yaseeradam/smartlink-backend/storage"
)

const tokenTTL = 7 * 24 * time.Hour

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic("config load failed: " + err.Error())
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()
	log := logger.Log

	mongoClient, db, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("MongoDB connection failed", zap.Error(err))
	}
	defer database.Disconnect(mongoClient)

	indexCtx, cancelIdx := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.EnsureIndexes(indexCtx, db); err != nil {
		cancelIdx()
		log.Fatal("Index creation failed", zap.Error(err))
	}
	cancelIdx()

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("Redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	// --- Repositories ---
	userRepo := repository.NewMongoUserRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	clusterRepo := repository.NewMongoClusterRepository(db)
	notificationRepo := repository.NewMongoNotificationRepository(db)
	ratingRepo := repository.NewMongoRatingRepository(db)
	reviewRepo := repository.NewMongoReviewRepository(db)
	disputeRepo := repository.NewMongoDisputeRepository(db)
	chatRepo := repository.NewMongoChatRepository(db)
	resetTokens := repository.NewResetTokenStore(redisClient, services.ResetTokenTTL)

	// --- Services ---
	publisher := realtime.NewRedisPublisher(redisClient)
	notificationService := services.NewNotificationService(notificationRepo, publisher, log)
	authService := services.NewAuthService(userRepo, resetTokens, cfg.JWTSecret, tokenTTL, log)
	userService := services.NewUserService(userRepo, log)
	productService := services.NewProductService(productRepo, log)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, notificationService, log)
	clusterService := services.NewClusterService(clusterRepo, orderRepo, userRepo, notificationService, log)
	ratingService := services.NewRatingService(ratingRepo, reviewRepo, disputeRepo, orderRepo, userRepo, productRepo, log)
	chatService := services.NewChatService(chatRepo, userRepo, publisher, log)

	// --- Controllers ---
	controllers.RegisterValidators()
	ctrls := routes.Controllers{
		Auth:          controllers.NewAuthController(authService),
		Users:         controllers.NewUserController(userService, ratingService),
		Products:      controllers.NewProductController(productService, ratingService),
		Orders:        controllers.NewOrderController(orderService),
		Clusters:      controllers.NewClusterController(clusterService),
		Ratings:       controllers.NewRatingController(ratingService),
		Notifications: controllers.NewNotificationController(notificationService),
		Chats:         controllers.NewChatController(chatService),
	}

	if cfg.S3Bucket != "" {
		presigner, err := storage.NewPresigner(context.Background(), cfg.S3Bucket, cfg.S3BaseURL)
		if err != nil {
			log.Warn("S3 presigner init failed, uploads disabled", zap.Error(err))
		} else {
			ctrls.Uploads = controllers.NewUploadController(presigner)
		}
	}

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.RateLimit())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.Register(r, ctrls, authService)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
