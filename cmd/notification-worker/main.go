package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/ksen61/kursovaya4petshop2/internal/config"
	"github.com/ksen61/kursovaya4petshop2/internal/messaging"
	"github.com/ksen61/kursovaya4petshop2/internal/repository"
	"github.com/ksen61/kursovaya4petshop2/internal/service"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "notification-worker").Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	// The shop service owns the schema; the worker only shares the database.
	db, err := repository.Open(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	rabbitClient := messaging.NewClient(messaging.NewRabbitMQConfig(), log)
	if err := rabbitClient.Connect(); err != nil {
		log.Fatal().Err(err).Msg("rabbitmq connection failed")
	}
	defer rabbitClient.Close()

	publisher := messaging.NewPublisher(rabbitClient, log)
	notificationRepo := repository.NewNotificationRepository(db)
	sender := service.NewLogSender(log)
	notificationService := service.NewNotificationService(notificationRepo, sender, publisher, log)

	consumer := messaging.NewConsumer(rabbitClient, "notification-worker-queue", "notification-worker", log)
	routingKeys := []string{"orders.shop-service.order.confirmed"}
	if err := consumer.ConsumeEvents(routingKeys, notificationService.HandleOrderEvent); err != nil {
		log.Fatal().Err(err).Msg("consumer start failed")
	}

	log.Info().Strs("routing_keys", routingKeys).Msg("notification worker running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("notification worker shutting down")
}
