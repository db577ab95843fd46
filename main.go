package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz-engine/internal/config"
	"quiz-engine/internal/db"
	"quiz-engine/internal/event"
	"quiz-engine/internal/handlers"
	"quiz-engine/internal/middleware"
	"quiz-engine/internal/repository"
	"quiz-engine/internal/service"
	"quiz-engine/pkg/discovery"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	config.ServiceConfig = cfg
	gin.SetMode(cfg.Server.GinMode)

	if err := db.InitMongo(cfg.MongoDB.URI, cfg.MongoDB.Timeout); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	database := db.Client.Database(cfg.MongoDB.Database)

	// RabbitMQ event publisher
	var publisher *event.EventPublisher
	if cfg.RabbitMQ.URI != "" && cfg.RabbitMQ.Exchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, session events will not be published")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Repositories
	survivalRepo := repository.NewSurvivalSessionRepository(database)
	timeAttackRepo := repository.NewTimeAttackSessionRepository(database)
	questionRepo := repository.NewQuestionRepository(database)
	answerRepo := repository.NewAnswerRepository(database)
	opnRepo := repository.NewOPNRepository(database)

	// Services
	survivalService := service.NewSurvivalService(survivalRepo, questionRepo)
	timeAttackService := service.NewTimeAttackService(timeAttackRepo, questionRepo)
	answerService := service.NewAnswerService(answerRepo)
	opnService := service.NewOPNService(opnRepo, rdb)

	// Handlers
	survivalHandler := handlers.NewSurvivalHandler(survivalService, answerService)
	timeAttackHandler := handlers.NewTimeAttackHandler(timeAttackService, answerService)
	opnHandler := handlers.NewOPNHandler(opnService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Requested-With"},
		MaxAge:       12 * time.Hour,
	}))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"success": false,
			"error":   "Method not allowed",
		})
	})

	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if !db.IsConnected() {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"service":        cfg.Server.ServiceName,
			"status":         status,
			"events_enabled": publisher != nil,
			"timestamp":      time.Now(),
		})
	})

	r.POST("/survival-mode", func(c *gin.Context) {
		survivalHandler.Handle(c)
		if publisher != nil {
			publisher.Publish(event.SurvivalModeRequested, gin.H{"timestamp": time.Now()})
		}
	})

	r.POST("/time-attack-mode", func(c *gin.Context) {
		timeAttackHandler.Handle(c)
		if publisher != nil {
			publisher.Publish(event.TimeAttackModeRequested, gin.H{"timestamp": time.Now()})
		}
	})

	r.GET("/survival-mode/sessions/:id/answers", survivalHandler.SessionAnswers)
	r.GET("/time-attack-mode/sessions/:id/answers", timeAttackHandler.SessionAnswers)

	r.GET("/public/opn/leaderboard", opnHandler.Leaderboard)

	protected := r.Group("/protected/opn")
	protected.Use(middleware.RequireUser(cfg.Auth.JWTSecret))
	{
		protected.POST("/calculate", func(c *gin.Context) {
			opnHandler.Calculate(c)
			if publisher != nil {
				publisher.Publish(event.OPNIndexRecalculated, gin.H{"timestamp": time.Now()})
			}
		})
	}

	// Consul registration
	var registry *discovery.ServiceRegistry
	if cfg.Consul.Enabled {
		var err error
		registry, err = discovery.NewServiceRegistry(cfg)
		if err != nil {
			log.Fatalf("Failed to create service registry: %v", err)
		}
		if err := registry.Register(); err != nil {
			log.Fatalf("Failed to register with Consul: %v", err)
		}
	}

	srv := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down")

	if registry != nil {
		_ = registry.Deregister()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := db.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
}
