package router

import (
	"tourism/internal/handlers/auth"
	"tourism/internal/handlers/boat"
	"tourism/internal/handlers/booking"
	"tourism/internal/handlers/entrancefee"
	"tourism/internal/handlers/establishment"
	"tourism/internal/handlers/payment"
	"tourism/internal/handlers/unit"
	"tourism/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth          auth.Handler
	User          user.Handler
	Establishment establishment.Handler
	EntranceFee   entrancefee.Handler
	Unit          unit.Handler
	Boat          boat.Handler
	Booking       booking.Handler
	Payment       payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Establishment.Router(routerGroup)
		r.DomainHandlers.EntranceFee.Router(routerGroup)
		r.DomainHandlers.Unit.Router(routerGroup)
		r.DomainHandlers.Boat.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
