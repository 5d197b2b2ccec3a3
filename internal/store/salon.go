// Package store holds the in-memory session collections. A store owns its
// collections for the lifetime of the process; the persistence gateway only
// ever receives copies. Reads hand out copies so callers can aggregate
// without holding the lock.
package store

import (
	"sync"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
)

type SalonStore struct {
	mu        sync.RWMutex
	customers []models.Customer
	bookings  []models.Booking
}

func NewSalonStore() *SalonStore {
	return &SalonStore{}
}

// Load replaces both collections, typically once at startup from the
// persistence gateway.
func (s *SalonStore) Load(customers []models.Customer, bookings []models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append([]models.Customer(nil), customers...)
	s.bookings = append([]models.Booking(nil), bookings...)
}

func (s *SalonStore) Customers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Customer(nil), s.customers...)
}

func (s *SalonStore) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Booking(nil), s.bookings...)
}

func (s *SalonStore) CustomerByID(id string) (models.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

func (s *SalonStore) CustomerByPhone(phone string) (models.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.customers {
		if c.Phone == phone {
			return c, true
		}
	}
	return models.Customer{}, false
}

func (s *SalonStore) BookingByID(id string) (models.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

// BookingsByCustomer filters the collection by owner; the statistics
// recompute runs over this slice.
func (s *SalonStore) BookingsByCustomer(customerID string) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out
}

// AddCustomer prepends, keeping newest-first order.
func (s *SalonStore) AddCustomer(c models.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append([]models.Customer{c}, s.customers...)
}

func (s *SalonStore) UpdateCustomer(c models.Customer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.customers {
		if s.customers[i].ID == c.ID {
			s.customers[i] = c
			return true
		}
	}
	return false
}

func (s *SalonStore) AddBooking(b models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append([]models.Booking{b}, s.bookings...)
}

func (s *SalonStore) UpdateBooking(b models.Booking) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == b.ID {
			s.bookings[i] = b
			return true
		}
	}
	return false
}
