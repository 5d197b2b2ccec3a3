// Package salon implements the booking/CRM mutation operations and the
// customer statistics recompute over the in-memory session store.
package salon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/store"
)

var (
	ErrNoServices       = errors.New("at least one service must be selected")
	ErrInvalidPhone     = errors.New("phone number must be 10 digits")
	ErrCustomerExists   = errors.New("customer already exists for this phone")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBooked        = errors.New("booking is not in booked status")
)

// Syncer ships the full updated collection to the persistence endpoint after
// every mutation. Write failures are logged, never rolled back: the local
// store stays authoritative for the session (at-most-once locally,
// best-effort remote).
type Syncer interface {
	WriteBookings(ctx context.Context, bookings []models.Booking) error
	WriteCustomers(ctx context.Context, customers []models.Customer) error
}

// EventPublisher announces mutations to interested consumers. A nil publisher
// disables publishing.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type CreateCustomerInput struct {
	Phone    string
	Name     string
	Birthday string
	Notes    string
}

type CreateBookingInput struct {
	CustomerID string
	Date       string
	StartTime  string
	Services   []string
	Notes      string
}

type ModifyBookingInput struct {
	Date      string
	StartTime string
	Services  []string
	Notes     string
}

type CheckoutInput struct {
	Amount        float64
	ProductAmount float64
	Notes         string
}

type Service interface {
	Customers(ctx context.Context) []models.Customer
	CreateCustomer(ctx context.Context, in CreateCustomerInput) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, in CreateCustomerInput) (*models.Customer, error)
	Bookings(ctx context.Context, date string) []models.Booking
	CustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error)
	CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	ModifyBooking(ctx context.Context, id string, in ModifyBookingInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string) (*models.Booking, error)
	MarkNoShow(ctx context.Context, id string) (*models.Booking, error)
	Checkout(ctx context.Context, id string, in CheckoutInput) (*models.Booking, error)
}

type salonService struct {
	mu       sync.Mutex // serializes mutations; reads go through the store lock
	store    *store.SalonStore
	settings models.Settings
	sync     Syncer
	events   EventPublisher
	lastIDMs int64
}

func NewService(st *store.SalonStore, settings models.Settings, syncer Syncer, events EventPublisher) Service {
	return &salonService{store: st, settings: settings, sync: syncer, events: events}
}

func (s *salonService) Customers(ctx context.Context) []models.Customer {
	return s.store.Customers()
}

func (s *salonService) CreateCustomer(ctx context.Context, in CreateCustomerInput) (*models.Customer, error) {
	if !validPhone(in.Phone) {
		return nil, ErrInvalidPhone
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.CustomerByPhone(in.Phone); ok {
		return nil, ErrCustomerExists
	}

	customer := models.Customer{
		ID:          in.Phone[1:], // identifier derived from the phone number
		Phone:       in.Phone,
		Name:        in.Name,
		Birthday:    in.Birthday,
		Notes:       in.Notes,
		CreatedAtMs: time.Now().UnixMilli(),
	}
	s.store.AddCustomer(customer)
	s.syncCustomers(ctx)
	s.publish("salon.customer.created", customer)
	return &customer, nil
}

func (s *salonService) UpdateCustomer(ctx context.Context, id string, in CreateCustomerInput) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.store.CustomerByID(id)
	if !ok {
		return nil, ErrCustomerNotFound
	}

	// Only profile fields are editable; counters belong to the recompute.
	customer.Name = in.Name
	customer.Birthday = in.Birthday
	customer.Notes = in.Notes
	s.store.UpdateCustomer(customer)
	s.syncCustomers(ctx)
	s.publish("salon.customer.updated", customer)
	return &customer, nil
}

func (s *salonService) Bookings(ctx context.Context, date string) []models.Booking {
	all := s.store.Bookings()
	if date == "" {
		return all
	}
	var out []models.Booking
	for _, b := range all {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out
}

func (s *salonService) CustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error) {
	if _, ok := s.store.CustomerByID(customerID); !ok {
		return nil, ErrCustomerNotFound
	}
	return s.store.BookingsByCustomer(customerID), nil
}

func (s *salonService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if len(in.Services) == 0 {
		return nil, ErrNoServices
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.store.CustomerByID(in.CustomerID)
	if !ok {
		return nil, ErrCustomerNotFound
	}

	sched, err := ComputeSchedule(in.Date, in.StartTime, in.Services, s.settings.ServiceDurations)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := models.Booking{
		ID:           s.nextBookingID(now),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Date:         sched.Date,
		StartTime:    sched.StartTime,
		EndTime:      sched.EndTime,
		StartMs:      sched.StartMs,
		EndMs:        sched.EndMs,
		Services:     append([]string(nil), in.Services...),
		Notes:        in.Notes,
		Status:       models.StatusBooked,
		CreatedAtMs:  now.UnixMilli(),
	}
	s.store.AddBooking(booking)
	s.syncBookings(ctx)
	s.publish("salon.booking.created", booking)
	return &booking, nil
}

func (s *salonService) ModifyBooking(ctx context.Context, id string, in ModifyBookingInput) (*models.Booking, error) {
	if len(in.Services) == 0 {
		return nil, ErrNoServices
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.store.BookingByID(id)
	if !ok {
		return nil, ErrBookingNotFound
	}

	sched, err := ComputeSchedule(in.Date, in.StartTime, in.Services, s.settings.ServiceDurations)
	if err != nil {
		return nil, err
	}

	// The modify counter fires only when a Booked booking stays Booked after
	// the edit. Edits to Paid/Canceled/NoShow bookings are allowed but never
	// count as modifications.
	isModification := booking.Status == models.StatusBooked

	booking.Date = sched.Date
	booking.StartTime = sched.StartTime
	booking.EndTime = sched.EndTime
	booking.StartMs = sched.StartMs
	booking.EndMs = sched.EndMs
	booking.Services = append([]string(nil), in.Services...)
	booking.Notes = in.Notes

	s.applyBookingUpdate(ctx, booking, isModification, "salon.booking.modified")
	return &booking, nil
}

func (s *salonService) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(ctx, id, models.StatusCanceled, "salon.booking.canceled")
}

func (s *salonService) MarkNoShow(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(ctx, id, models.StatusNoShow, "salon.booking.noshow")
}

func (s *salonService) Checkout(ctx context.Context, id string, in CheckoutInput) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.store.BookingByID(id)
	if !ok {
		return nil, ErrBookingNotFound
	}
	if booking.Status != models.StatusBooked {
		return nil, ErrNotBooked
	}

	booking.Status = models.StatusPaid
	booking.Amount = in.Amount
	booking.ProductAmount = in.ProductAmount
	if !s.settings.ProductSalesEnabled {
		booking.ProductAmount = 0
	}
	booking.CheckoutNotes = in.Notes

	s.applyBookingUpdate(ctx, booking, false, "salon.booking.paid")
	return &booking, nil
}

// transition moves a Booked booking into a terminal state. Terminal states
// are never re-entered or left through this path.
func (s *salonService) transition(ctx context.Context, id string, status models.BookingStatus, routingKey string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.store.BookingByID(id)
	if !ok {
		return nil, ErrBookingNotFound
	}
	if booking.Status != models.StatusBooked {
		return nil, ErrNotBooked
	}

	booking.Status = status
	s.applyBookingUpdate(ctx, booking, false, routingKey)
	return &booking, nil
}

// applyBookingUpdate installs the booking, ships the collection, and
// re-derives the owning customer's counters from scratch. Callers must hold
// the mutation lock.
func (s *salonService) applyBookingUpdate(ctx context.Context, booking models.Booking, countModify bool, routingKey string) {
	s.store.UpdateBooking(booking)
	s.syncBookings(ctx)

	if customer, ok := s.store.CustomerByID(booking.CustomerID); ok {
		customer = s.recomputeStats(customer, countModify)
		s.store.UpdateCustomer(customer)
		s.syncCustomers(ctx)
	}

	s.publish(routingKey, booking)
}

// recomputeStats derives the four status counters from the customer's full
// booking collection. StatsModify is the one counter not derivable from
// status; it is carried forward and bumped only when asked.
func (s *salonService) recomputeStats(customer models.Customer, countModify bool) models.Customer {
	visits, cancels, noShows := 0, 0, 0
	amount := 0.0
	for _, b := range s.store.BookingsByCustomer(customer.ID) {
		switch b.Status {
		case models.StatusPaid:
			visits++
			amount += b.Amount + b.ProductAmount
		case models.StatusCanceled:
			cancels++
		case models.StatusNoShow:
			noShows++
		}
	}

	customer.StatsVisits = visits
	customer.StatsAmount = amount
	customer.StatsCancel = cancels
	customer.StatsNoShow = noShows
	if countModify {
		customer.StatsModify++
	}
	return customer
}

func (s *salonService) syncBookings(ctx context.Context) {
	if s.sync == nil {
		return
	}
	if err := s.sync.WriteBookings(ctx, s.store.Bookings()); err != nil {
		log.Printf("[sync] bookings write failed, local state kept: %v", err)
	}
}

func (s *salonService) syncCustomers(ctx context.Context) {
	if s.sync == nil {
		return
	}
	if err := s.sync.WriteCustomers(ctx, s.store.Customers()); err != nil {
		log.Printf("[sync] customers write failed, local state kept: %v", err)
	}
}

func (s *salonService) publish(routingKey string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, payload); err != nil {
		log.Printf("[events] publish %s failed: %v", routingKey, err)
	}
}

// nextBookingID keeps the millisecond-epoch id shape while staying unique
// for back-to-back creations inside the same millisecond. Callers hold the
// mutation lock.
func (s *salonService) nextBookingID(now time.Time) string {
	ms := now.UnixMilli()
	if ms <= s.lastIDMs {
		ms = s.lastIDMs + 1
	}
	s.lastIDMs = ms
	return fmt.Sprintf("booking-%d", ms)
}

func validPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
