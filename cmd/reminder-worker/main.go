package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrewsnewton/couplespace-sub003/internal/repository"
	"github.com/andrewsnewton/couplespace-sub003/internal/worker"
	"github.com/andrewsnewton/couplespace-sub003/pkg/config"
	"github.com/andrewsnewton/couplespace-sub003/pkg/database"
	"github.com/andrewsnewton/couplespace-sub003/pkg/kafka"
	"github.com/andrewsnewton/couplespace-sub003/pkg/logger"
)

const serviceName = "reminder-worker"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := &logger.Config{
		Level:       cfg.App.Environment,
		ServiceName: serviceName,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting reminder worker...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()

	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:       cfg.Kafka.Brokers,
		ClientID:      cfg.Kafka.ClientID,
		MaxRetries:    3,
		RetryInterval: time.Second,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Kafka connection failed: %v", err))
	}
	defer producer.Close()
	appLog.Info(fmt.Sprintf("Kafka connected (topic: %s)", cfg.Kafka.ReminderTopic))

	eventRepo := repository.NewPostgresEventRepository(db.Pool())

	w := worker.NewReminderWorker(eventRepo, producer, &worker.ReminderWorkerConfig{
		CronSpec:  cfg.Reminder.CronSpec,
		Lookahead: cfg.Reminder.Lookahead,
		BatchSize: cfg.Reminder.BatchSize,
		Topic:     cfg.Kafka.ReminderTopic,
	})

	if err := w.Start(ctx); err != nil {
		appLog.Fatal(fmt.Sprintf("Failed to start reminder worker: %v", err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down reminder worker...")

	cancel()
	w.Stop()

	appLog.Info("Reminder worker exited gracefully")
}
