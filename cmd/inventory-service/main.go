package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Zenodus/BookstoreInventory/internal/cache"
	"github.com/Zenodus/BookstoreInventory/internal/config"
	"github.com/Zenodus/BookstoreInventory/internal/db"
	"github.com/Zenodus/BookstoreInventory/internal/discovery"
	"github.com/Zenodus/BookstoreInventory/internal/handlers"
	"github.com/Zenodus/BookstoreInventory/internal/inventory"
	"github.com/Zenodus/BookstoreInventory/internal/messaging"
	"github.com/Zenodus/BookstoreInventory/internal/publisher"
)

func main() {
	cfg := config.Load()

	// Connect to PostgreSQL
	database, err := db.NewPostgresDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Connect to Redis
	redisCache, err := cache.NewRedisCache(fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort), cfg.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	// Connect to RabbitMQ
	rabbitMQ, err := messaging.NewRabbitMQ(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rabbitMQ.Close()

	salePublisher, err := publisher.NewSalePublisher(rabbitMQ)
	if err != nil {
		log.Fatalf("Failed to create publisher: %v", err)
	}

	// Connect to Consul and register
	consul, err := discovery.NewRegistry(fmt.Sprintf("%s:%d", cfg.ConsulHost, cfg.ConsulPort))
	if err != nil {
		log.Fatalf("Failed to connect to Consul: %v", err)
	}

	err = consul.Register(discovery.Service{
		Name: cfg.ServiceName,
		ID:   cfg.ServiceID,
		Port: cfg.HTTPPort,
		Tags: []string{"api", "books", "inventory"},
	})
	if err != nil {
		log.Fatalf("Failed to register service: %v", err)
	}

	// Deregister on shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		consul.Deregister(cfg.ServiceID)
		os.Exit(0)
	}()

	// Repositories and service
	bookRepo := db.NewBookRepository(database)
	cachedBooks := db.NewCachedBookRepository(bookRepo, redisCache)
	invoiceRepo := db.NewInvoiceRepository(database)
	reorderRepo := db.NewReorderRepository(database)

	svc := inventory.NewService(cachedBooks, invoiceRepo, reorderRepo, database)

	// Handlers and routes
	router := handlers.NewRouter(
		handlers.NewBookHandler(svc),
		handlers.NewSaleHandler(svc, salePublisher),
		handlers.NewReorderHandler(svc, salePublisher),
	)

	log.Printf("🚀 %s starting on http://localhost:%d", cfg.ServiceName, cfg.HTTPPort)
	log.Println("   Registered with Consul")
	router.Run(fmt.Sprintf(":%d", cfg.HTTPPort))
}
