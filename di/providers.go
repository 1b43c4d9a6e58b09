package di

import (
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	availabilityService "hotel/internal/domains/availability/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	notificationService "hotel/internal/domains/notification/service"
	roomRepository "hotel/internal/domains/room/repository"
)

// Notifier bundles what cmd/notifier needs to consume booking events.
type Notifier struct {
	Config  *config.Config
	Kafka   kafka.Client
	Service notificationService.Notification
}

func provideAvailability(rooms roomRepository.Room, bookings bookingRepository.Booking, otel otel.Otel) availabilityService.Availability {
	return availabilityService.New(rooms, bookings, otel)
}
