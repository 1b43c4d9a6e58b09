package service

import (
	"context"
	"errors"
	"fmt"

	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/webhook"
	"hotel/shared/constant"
	"hotel/shared/event"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Notification forwards booking events from Kafka to the webhook.
type Notification interface {
	Handle(ctx context.Context, msg kafkaGo.Message) error
}

type serviceImpl struct {
	webhook webhook.Client
	otel    otel.Otel
}

func New(webhook webhook.Client, otel otel.Otel) Notification {
	return &serviceImpl{
		webhook: webhook,
		otel:    otel,
	}
}

// Handle delivers one message. Undecodable or unknown events are dropped so they do not block the partition.
func (s *serviceImpl) Handle(ctx context.Context, msg kafkaGo.Message) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.Handle")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	evt, err := kafka.Decode[event.Booking](msg)
	if err != nil {
		log.Warn().Err(err).Int64("offset", msg.Offset).Msg("dropping malformed booking event")

		return nil
	}

	switch evt.Type {
	case event.BookingCreated, event.BookingStatusChanged, event.BookingDeleted:
	default:
		log.Warn().Str("type", string(evt.Type)).Msg("dropping unknown booking event")

		return nil
	}

	scope.SetAttributes(map[string]any{
		"event.type": string(evt.Type),
		"booking.id": evt.BookingID,
	})

	err = s.webhook.Deliver(ctx, string(evt.Type), msg.Value)
	if errors.Is(err, webhook.ErrNotConfigured) {
		log.Debug().Str("type", string(evt.Type)).Msg("webhook not configured, event skipped")

		return nil
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", evt.BookingID).Msg("failed to deliver booking event")

		return fmt.Errorf("failed to deliver booking event: %w", err)
	}

	log.Info().Str("type", string(evt.Type)).Str("booking_id", evt.BookingID).Msg("booking event delivered")

	return nil
}
