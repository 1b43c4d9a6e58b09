// Package event publishes booking lifecycle events for downstream consumers such as the
// webhook notifier.
package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Type string

const (
	BookingCreated       Type = "booking.created"
	BookingStatusChanged Type = "booking.status_changed"
	BookingDeleted       Type = "booking.deleted"
)

// Booking is the payload carried by every booking event.
type Booking struct {
	ID             string    `json:"id"`
	Type           Type      `json:"type"`
	OccurredAt     time.Time `json:"occurred_at"`
	BookingID      string    `json:"booking_id"`
	RoomID         string    `json:"room_id"`
	RoomType       string    `json:"room_type"`
	CustomerName   string    `json:"customer_name"`
	Email          string    `json:"email"`
	CheckInDate    string    `json:"check_in_date"`
	CheckOutDate   string    `json:"check_out_date"`
	TotalPrice     string    `json:"total_price"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Actor          string    `json:"actor,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, evt Booking) error
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

type noopPublisher struct{}

// New returns a Kafka backed publisher, or one that drops events when Kafka is disabled.
func New(cfg *config.Config, client kafka.Client, otl otel.Otel) Publisher {
	if !cfg.Kafka.Enable {
		log.Info().Msg("Kafka disabled, booking events will not be published")

		return noopPublisher{}
	}

	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topic,
		otel:   otl,
	}
}

func NewKafkaPublisher(client kafka.Client, topic string, otl otel.Otel) Publisher {
	return &kafkaPublisher{client: client, topic: topic, otel: otl}
}

func (p *kafkaPublisher) Publish(ctx context.Context, evt Booking) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	if evt.ID == constant.Empty {
		evt.ID = uuid.NewString()
	}

	scope.SetAttributes(map[string]any{
		"event.type":  string(evt.Type),
		"booking.id":  evt.BookingID,
		"kafka.topic": p.topic,
	})

	err = p.client.SendMessages(ctx, p.topic, kafka.Message{Key: evt.BookingID, Value: evt})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to publish %s event: %w", evt.Type, err)
	}

	return nil
}

func (noopPublisher) Publish(_ context.Context, evt Booking) error {
	log.Debug().Str("type", string(evt.Type)).Str("booking_id", evt.BookingID).Msg("event dropped, publisher disabled")

	return nil
}
