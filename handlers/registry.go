package handlers

import (
	"sync"

	"glowbook/database/gateway"
	"glowbook/services/booking"
	"glowbook/services/catalog"
	"glowbook/services/notification"
	"glowbook/services/subscription"
)

// ManagerRegistry hands out manager instances per scope: catalog
// managers per business, booking and subscription managers per user.
// Each manager owns its cache exclusively, so scoping mirrors how the
// app screens hold their state. Two registries for the same scope would
// diverge, which is why the server holds exactly one.
type ManagerRegistry struct {
	Gateway    gateway.Gateway
	Sessions   gateway.SessionProvider
	Checkout   subscription.CheckoutSessionCreator
	Dispatcher *notification.LogDispatcher

	mu       sync.Mutex
	catalogs map[string]*catalog.DefaultCatalogManager
	bookings map[string]*booking.DefaultBookingManager
	subs     map[string]*subscription.DefaultSubscriptionManager
}

// NewManagerRegistry wires a registry over the given collaborators.
func NewManagerRegistry(gw gateway.Gateway, sessions gateway.SessionProvider,
	checkout subscription.CheckoutSessionCreator, dispatcher *notification.LogDispatcher) *ManagerRegistry {
	return &ManagerRegistry{
		Gateway:    gw,
		Sessions:   sessions,
		Checkout:   checkout,
		Dispatcher: dispatcher,
		catalogs:   make(map[string]*catalog.DefaultCatalogManager),
		bookings:   make(map[string]*booking.DefaultBookingManager),
		subs:       make(map[string]*subscription.DefaultSubscriptionManager),
	}
}

// CatalogFor returns the catalog manager for a business.
func (r *ManagerRegistry) CatalogFor(businessID string) catalog.CatalogManager {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.catalogs[businessID]
	if !ok {
		m = catalog.NewCatalogManager(r.Gateway)
		r.catalogs[businessID] = m
	}
	return m
}

// BookingFor returns the booking manager for a user, with the
// notification dispatcher subscribed to its events.
func (r *ManagerRegistry) BookingFor(userID string) booking.BookingManager {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.bookings[userID]
	if !ok {
		m = booking.NewBookingManager(r.Gateway)
		if r.Dispatcher != nil {
			m.Subscribe(r.Dispatcher.HandleBookingEvent)
		}
		r.bookings[userID] = m
	}
	return m
}

// SubscriptionFor returns the subscription manager for a user.
func (r *ManagerRegistry) SubscriptionFor(userID string) subscription.SubscriptionManager {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.subs[userID]
	if !ok {
		m = subscription.NewSubscriptionManager(r.Gateway, r.Sessions, r.Checkout)
		r.subs[userID] = m
	}
	return m
}
