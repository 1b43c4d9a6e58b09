package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	if !cfg.Kafka.Enable {
		log.Fatal().Msg("Kafka is disabled. Set KAFKA_ENABLE=true to run the notifier.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := di.InitializeNotifier()

	defer func() {
		if err := notifier.Kafka.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka client")
		}
	}()

	log.Info().Str("topic", cfg.Kafka.Topic).Msg("Starting booking event notifier.")

	if err := notifier.Kafka.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic, notifier.Service.Handle); err != nil {
		log.Error().Err(err).Msg("Notifier stopped with error")

		return
	}

	log.Info().Msg("Notifier stopped.")
}
