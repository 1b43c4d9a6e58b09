package router

import (
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/availability"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/customer"
	"hotel/internal/handlers/dashboard"
	"hotel/internal/handlers/room"

	"github.com/go-chi/chi/v5"
)

const apiPrefix = "/v1"

type DomainHandlers struct {
	Auth         auth.Handler
	Room         room.Handler
	Availability availability.Handler
	Booking      booking.Handler
	Customer     customer.Handler
	Dashboard    dashboard.Handler
}

// mounter is what every domain handler exposes to register its routes.
type mounter interface {
	Router(r chi.Router)
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{DomainHandlers: domainHandlers}
}

// SetupRoutes mounts every domain under /v1. Public and admin routes share the prefix;
// permissions.json tells them apart.
func (r *Router) SetupRoutes(router chi.Router) {
	handlers := r.DomainHandlers

	router.Route(apiPrefix, func(group chi.Router) {
		for _, domain := range []mounter{
			&handlers.Auth,
			&handlers.Room,
			&handlers.Availability,
			&handlers.Booking,
			&handlers.Customer,
			&handlers.Dashboard,
		} {
			domain.Router(group)
		}
	})
}
