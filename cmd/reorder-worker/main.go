package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Zenodus/BookstoreInventory/internal/config"
	"github.com/Zenodus/BookstoreInventory/internal/consumer"
	"github.com/Zenodus/BookstoreInventory/internal/db"
	"github.com/Zenodus/BookstoreInventory/internal/inventory"
	"github.com/Zenodus/BookstoreInventory/internal/messaging"
	"github.com/Zenodus/BookstoreInventory/internal/publisher"
)

func main() {
	cfg := config.Load()

	// Connect to PostgreSQL (shared with the inventory service)
	database, err := db.NewPostgresDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

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

	// The worker reads and writes through the same service core as the
	// HTTP surface; no cache layer here, its writes must be direct.
	bookRepo := db.NewBookRepository(database)
	invoiceRepo := db.NewInvoiceRepository(database)
	reorderRepo := db.NewReorderRepository(database)
	svc := inventory.NewService(bookRepo, invoiceRepo, reorderRepo, database)

	messages, err := rabbitMQ.Consume(messaging.SaleCompletedQueue)
	if err != nil {
		log.Fatalf("Failed to consume messages: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down...")
		cancel()
		rabbitMQ.Close()
	}()

	reorderConsumer := consumer.NewReorderConsumer(svc, salePublisher, cfg.LowStockThreshold)
	log.Printf("🚀 Reorder worker starting | threshold: %d", cfg.LowStockThreshold)
	reorderConsumer.ProcessSaleCompleted(ctx, messages)
}
