package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/unedp/careers/config"
	"github.com/unedp/careers/internal/api/handlers"
	"github.com/unedp/careers/internal/api/middleware"
	"github.com/unedp/careers/internal/api/routes"
	"github.com/unedp/careers/internal/cache"
	"github.com/unedp/careers/internal/credstore"
	"github.com/unedp/careers/internal/logger"
	"github.com/unedp/careers/internal/mailer"
	mongorepo "github.com/unedp/careers/internal/repositories/mongo"
	pgrepo "github.com/unedp/careers/internal/repositories/postgres"
	"github.com/unedp/careers/internal/services"
	"github.com/unedp/careers/internal/storage"
	"github.com/unedp/careers/internal/upload"
	"github.com/unedp/careers/internal/workers"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	l.Info("PostgreSQL connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	l.Info("Redis connected")

	// Init MongoDB (audit trail)
	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	l.Info("MongoDB connected")

	ctx := context.Background()

	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		log.Fatal("GCS_BUCKET environment variable is not set")
	}
	store, err := storage.NewGCSStore(ctx, bucket)
	if err != nil {
		log.Fatalf("GCS init error: %v", err)
	}
	defer store.Close()

	tokenSecret := os.Getenv("UPLOAD_TOKEN_SECRET")
	if tokenSecret == "" {
		log.Fatal("UPLOAD_TOKEN_SECRET environment variable is not set")
	}
	broker := upload.NewBroker(store, store, tokenSecret)

	creds, err := credstore.NewGoTrueStore()
	if err != nil {
		log.Fatalf("credential store init error: %v", err)
	}

	send, err := mailer.NewResendMailer()
	if err != nil {
		log.Fatalf("mailer init error: %v", err)
	}

	// Repositories
	db := config.PostgresDB
	mdb := config.MongoDatabase()
	jobRepo := pgrepo.NewJobRepo(db)
	appRepo := pgrepo.NewApplicationRepo(db)
	adminRepo := pgrepo.NewAdminUserRepo(db)
	outboxRepo := pgrepo.NewOutboxRepo(db)
	newsRepo := pgrepo.NewNewsletterRepo(db)
	eventRepo := mongorepo.NewEventRepo(mdb)

	// Services
	rcache := cache.NewRedisCache(config.RedisClient)
	adminSvc := services.NewAdminService(adminRepo, creds, rcache, eventRepo, l)
	appSvc := services.NewApplicationService(appRepo, jobRepo, broker, eventRepo, l)
	jobSvc := services.NewJobService(jobRepo, eventRepo, l)
	newsSvc := services.NewNewsletterService(newsRepo)

	// Notification outbox worker
	outbox := &workers.OutboxWorker{
		Outbox: outboxRepo,
		Mailer: send,
		Logger: l,
	}
	if err := outbox.Start(ctx); err != nil {
		log.Fatalf("outbox worker error: %v", err)
	}

	// HTTP
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Admins:       adminSvc,
		Applications: handlers.NewApplicationHandler(appSvc),
		Uploads:      handlers.NewUploadHandler(broker),
		Jobs:         handlers.NewJobHandler(jobSvc),
		Auth:         handlers.NewAuthHandler(creds, adminSvc),
		Newsletter:   handlers.NewNewsletterHandler(newsSvc),
		Events:       handlers.NewEventHandler(eventRepo),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
