package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"brandoraBack/internal/backend"
	"brandoraBack/internal/config"
	"brandoraBack/internal/events"
	"brandoraBack/internal/handlers"
	"brandoraBack/internal/loader"
	"brandoraBack/internal/notify"
	"brandoraBack/internal/repositories"
	"brandoraBack/internal/services"
	"brandoraBack/internal/storage"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config

	jobHub   *JobHub
	notifier *notify.Notifier

	subscriptionService *services.SubscriptionService
	orderService        *services.OrderService
	planService         *services.PlanService

	subscriptionHandler  *handlers.SubscriptionHandler
	planHandler          *handlers.PlanHandler
	orderHandler         *handlers.OrderHandler
	creditPackageHandler *handlers.CreditPackageHandler
	brandMessageHandler  *handlers.BrandMessageHandler
	projectHandler       *handlers.ProjectHandler
	scraperHandler       *handlers.ScraperHandler
	notificationHandler  *handlers.NotificationHandler
	stateHandler         *handlers.StateHandler
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, fcm *messaging.Client, producer *events.Producer, errorLog, infoLog *log.Logger) *application {
	// Repositories
	manifestRepo := repositories.ManifestRepository{DB: db}
	jobRepo := repositories.ScrapeJobRepository{DB: db}
	apiKeyRepo := repositories.APIKeyRepository{DB: db}
	deviceTokenRepo := repositories.DeviceTokenRepository{DB: db}

	// One loader group deduplicates concurrent fetches across all resources.
	loads := &loader.Group{}
	client := backend.NewClient(&http.Client{Timeout: 30 * time.Second}, cfg.Backend.BaseURL)

	uploader := storage.NewUploader(storage.Config{
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		Endpoint:  cfg.Storage.Endpoint,
		PublicURL: cfg.Storage.PublicURL,
	})

	jobHub := NewJobHub(errorLog)

	// Services
	subscriptionService := &services.SubscriptionService{Backend: client, Loads: loads}
	planService := &services.PlanService{Backend: client, Loads: loads}
	orderService := &services.OrderService{Backend: client, Loads: loads}
	creditPackageService := &services.CreditPackageService{Backend: client, Loads: loads}
	brandMessageService := &services.BrandMessageService{Backend: client, Loads: loads}
	projectService := &services.ProjectService{Backend: client, Redis: rdb}
	scraperService := &services.ScraperService{
		Backend:   client,
		Manifests: &manifestRepo,
		Jobs:      &jobRepo,
		Keys:      &apiKeyRepo,
		Snapshots: uploader,
		Events:    producer,
		Hub:       jobHub,
		ErrorLog:  errorLog,
	}

	notifier := &notify.Notifier{
		Messaging: fcm,
		Redis:     rdb,
		Tokens:    &deviceTokenRepo,
		ErrorLog:  errorLog,
	}

	// Handlers
	subscriptionHandler := &handlers.SubscriptionHandler{Service: subscriptionService}
	planHandler := &handlers.PlanHandler{Service: planService}
	orderHandler := &handlers.OrderHandler{Service: orderService}
	creditPackageHandler := &handlers.CreditPackageHandler{Service: creditPackageService, Orders: orderService}
	brandMessageHandler := &handlers.BrandMessageHandler{Service: brandMessageService}
	projectHandler := &handlers.ProjectHandler{Service: projectService}
	scraperHandler := &handlers.ScraperHandler{Service: scraperService}
	notificationHandler := &handlers.NotificationHandler{Tokens: &deviceTokenRepo}
	stateHandler := &handlers.StateHandler{
		Subscriptions: subscriptionService,
		Orders:        orderService,
		BrandMessages: brandMessageService,
		Plans:         planService,
	}

	return &application{
		errorLog:             errorLog,
		infoLog:              infoLog,
		cfg:                  cfg,
		jobHub:               jobHub,
		notifier:             notifier,
		subscriptionService:  subscriptionService,
		orderService:         orderService,
		planService:          planService,
		subscriptionHandler:  subscriptionHandler,
		planHandler:          planHandler,
		orderHandler:         orderHandler,
		creditPackageHandler: creditPackageHandler,
		brandMessageHandler:  brandMessageHandler,
		projectHandler:       projectHandler,
		scraperHandler:       scraperHandler,
		notificationHandler:  notificationHandler,
		stateHandler:         stateHandler,
	}
}
