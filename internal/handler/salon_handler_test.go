package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/salon"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// --- Mock salon service ---

type mockSalonService struct {
	customersFn        func(ctx context.Context) []models.Customer
	createCustomerFn   func(ctx context.Context, in salon.CreateCustomerInput) (*models.Customer, error)
	updateCustomerFn   func(ctx context.Context, id string, in salon.CreateCustomerInput) (*models.Customer, error)
	bookingsFn         func(ctx context.Context, date string) []models.Booking
	customerBookingsFn func(ctx context.Context, customerID string) ([]models.Booking, error)
	createBookingFn    func(ctx context.Context, in salon.CreateBookingInput) (*models.Booking, error)
	modifyBookingFn    func(ctx context.Context, id string, in salon.ModifyBookingInput) (*models.Booking, error)
	cancelBookingFn    func(ctx context.Context, id string) (*models.Booking, error)
	markNoShowFn       func(ctx context.Context, id string) (*models.Booking, error)
	checkoutFn         func(ctx context.Context, id string, in salon.CheckoutInput) (*models.Booking, error)
}

func (m *mockSalonService) Customers(ctx context.Context) []models.Customer {
	return m.customersFn(ctx)
}

func (m *mockSalonService) CreateCustomer(ctx context.Context, in salon.CreateCustomerInput) (*models.Customer, error) {
	return m.createCustomerFn(ctx, in)
}

func (m *mockSalonService) UpdateCustomer(ctx context.Context, id string, in salon.CreateCustomerInput) (*models.Customer, error) {
	return m.updateCustomerFn(ctx, id, in)
}

func (m *mockSalonService) Bookings(ctx context.Context, date string) []models.Booking {
	return m.bookingsFn(ctx, date)
}

func (m *mockSalonService) CustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error) {
	return m.customerBookingsFn(ctx, customerID)
}

func (m *mockSalonService) CreateBooking(ctx context.Context, in salon.CreateBookingInput) (*models.Booking, error) {
	return m.createBookingFn(ctx, in)
}

func (m *mockSalonService) ModifyBooking(ctx context.Context, id string, in salon.ModifyBookingInput) (*models.Booking, error) {
	return m.modifyBookingFn(ctx, id, in)
}

func (m *mockSalonService) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	return m.cancelBookingFn(ctx, id)
}

func (m *mockSalonService) MarkNoShow(ctx context.Context, id string) (*models.Booking, error) {
	return m.markNoShowFn(ctx, id)
}

func (m *mockSalonService) Checkout(ctx context.Context, id string, in salon.CheckoutInput) (*models.Booking, error) {
	return m.checkoutFn(ctx, id, in)
}

func newSalonContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- Customers ---

func TestCreateCustomer_Success(t *testing.T) {
	mock := &mockSalonService{
		createCustomerFn: func(ctx context.Context, in salon.CreateCustomerInput) (*models.Customer, error) {
			assert.Equal(t, "0912345678", in.Phone)
			return &models.Customer{ID: "912345678", Phone: in.Phone, Name: in.Name}, nil
		},
	}
	h := NewSalonHandler(mock)

	c, rec := newSalonContext(t, http.MethodPost, "/api/v1/customers",
		`{"phone":"0912345678","name":"王小姐"}`)

	err := h.CreateCustomer(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var got models.Customer
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "912345678", got.ID)
}

func TestCreateCustomer_MissingName(t *testing.T) {
	h := NewSalonHandler(&mockSalonService{})

	c, _ := newSalonContext(t, http.MethodPost, "/api/v1/customers", `{"phone":"0912345678"}`)

	err := h.CreateCustomer(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreateCustomer_InvalidPhoneMapsTo400(t *testing.T) {
	mock := &mockSalonService{
		createCustomerFn: func(ctx context.Context, in salon.CreateCustomerInput) (*models.Customer, error) {
			return nil, salon.ErrInvalidPhone
		},
	}
	h := NewSalonHandler(mock)

	c, _ := newSalonContext(t, http.MethodPost, "/api/v1/customers", `{"phone":"123","name":"A"}`)

	err := h.CreateCustomer(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreateCustomer_DuplicateMapsTo409(t *testing.T) {
	mock := &mockSalonService{
		createCustomerFn: func(ctx context.Context, in salon.CreateCustomerInput) (*models.Customer, error) {
			return nil, salon.ErrCustomerExists
		},
	}
	h := NewSalonHandler(mock)

	c, _ := newSalonContext(t, http.MethodPost, "/api/v1/customers", `{"phone":"0912345678","name":"A"}`)

	err := h.CreateCustomer(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestUpdateCustomer_NotFoundMapsTo404(t *testing.T) {
	mock := &mockSalonService{
		updateCustomerFn: func(ctx context.Context, id string, in salon.CreateCustomerInput) (*models.Customer, error) {
			return nil, salon.ErrCustomerNotFound
		},
	}
	h := NewSalonHandler(mock)

	c, _ := newSalonContext(t, http.MethodPut, "/api/v1/customers/nobody", `{"name":"B"}`)
	c.SetParamNames("id")
	c.SetParamValues("nobody")

	err := h.UpdateCustomer(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

// --- Bookings ---

func TestListBookings_PassesDateFilter(t *testing.T) {
	mock := &mockSalonService{
		bookingsFn: func(ctx context.Context, date string) []models.Booking {
			assert.Equal(t, "20240805", date)
			return []models.Booking{{ID: "booking-1", Date: date}}
		},
	}
	h := NewSalonHandler(mock)

	c, rec := newSalonContext(t, http.MethodGet, "/api/v1/bookings?date=20240805", "")

	err := h.ListBookings(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []models.Booking
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestCreateBooking_UsesPathCustomerID(t *testing.T) {
	mock := &mockSalonService{
		createBookingFn: func(ctx context.Context, in salon.CreateBookingInput) (*models.Booking, error) {
			assert.Equal(t, "912345678", in.CustomerID)
			assert.Equal(t, []string{"洗髮", "剪髮"}, in.Services)
			return &models.Booking{ID: "booking-1", CustomerID: in.CustomerID, Status: models.StatusBooked}, nil
		},
	}
	h := NewSalonHandler(mock)

	c, rec := newSalonContext(t, http.MethodPost, "/api/v1/customers/912345678/bookings",
		`{"date":"20240805","startTime":"10:00","services":["洗髮","剪髮"]}`)
	c.SetParamNames("id")
	c.SetParamValues("912345678")

	err := h.CreateBooking(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateBooking_NoServicesMapsTo400(t *testing.T) {
	mock := &mockSalonService{
		createBookingFn: func(ctx context.Context, in salon.CreateBookingInput) (*models.Booking, error) {
			return nil, salon.ErrNoServices
		},
	}
	h := NewSalonHandler(mock)

	c, _ := newSalonContext(t, http.MethodPost, "/api/v1/customers/912345678/bookings",
		`{"date":"20240805","startTime":"10:00","services":[]}`)
	c.SetParamNames("id")
	c.SetParamValues("912345678")

	err := h.CreateBooking(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCancelBooking_TerminalMapsTo409(t *testing.T) {
	mock := &mockSalonService{
		cancelBookingFn: func(ctx context.Context, id string) (*models.Booking, error) {
			return nil, salon.ErrNotBooked
		},
	}
	h := NewSalonHandler(mock)

	c, _ := newSalonContext(t, http.MethodPost, "/api/v1/bookings/booking-1/cancel", "")
	c.SetParamNames("id")
	c.SetParamValues("booking-1")

	err := h.CancelBooking(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestCheckout_RequiresAmount(t *testing.T) {
	h := NewSalonHandler(&mockSalonService{})

	c, _ := newSalonContext(t, http.MethodPost, "/api/v1/bookings/booking-1/checkout",
		`{"productAmount":200}`)
	c.SetParamNames("id")
	c.SetParamValues("booking-1")

	err := h.Checkout(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCheckout_Success(t *testing.T) {
	mock := &mockSalonService{
		checkoutFn: func(ctx context.Context, id string, in salon.CheckoutInput) (*models.Booking, error) {
			assert.Equal(t, "booking-1", id)
			assert.Equal(t, 500.0, in.Amount)
			assert.Equal(t, 200.0, in.ProductAmount)
			return &models.Booking{ID: id, Status: models.StatusPaid, Amount: in.Amount, ProductAmount: in.ProductAmount}, nil
		},
	}
	h := NewSalonHandler(mock)

	c, rec := newSalonContext(t, http.MethodPost, "/api/v1/bookings/booking-1/checkout",
		`{"amount":500,"productAmount":200}`)
	c.SetParamNames("id")
	c.SetParamValues("booking-1")

	err := h.Checkout(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.Booking
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.StatusPaid, got.Status)
}

func TestCheckout_UnknownBookingMapsTo404(t *testing.T) {
	mock := &mockSalonService{
		checkoutFn: func(ctx context.Context, id string, in salon.CheckoutInput) (*models.Booking, error) {
			return nil, salon.ErrBookingNotFound
		},
	}
	h := NewSalonHandler(mock)

	c, _ := newSalonContext(t, http.MethodPost, "/api/v1/bookings/gone/checkout", `{"amount":500}`)
	c.SetParamNames("id")
	c.SetParamValues("gone")

	err := h.Checkout(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
