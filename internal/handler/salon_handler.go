package handler

import (
	"errors"
	"net/http"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/dto"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/salon"
	"github.com/labstack/echo/v4"
)

type SalonHandler struct {
	svc salon.Service
}

func NewSalonHandler(svc salon.Service) *SalonHandler {
	return &SalonHandler{svc: svc}
}

func (h *SalonHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/customers", h.ListCustomers)
	api.POST("/customers", h.CreateCustomer)
	api.PUT("/customers/:id", h.UpdateCustomer)
	api.GET("/customers/:id/bookings", h.ListCustomerBookings)
	api.POST("/customers/:id/bookings", h.CreateBooking)

	api.GET("/bookings", h.ListBookings)
	api.PUT("/bookings/:id", h.ModifyBooking)
	api.POST("/bookings/:id/cancel", h.CancelBooking)
	api.POST("/bookings/:id/no-show", h.MarkNoShow)
	api.POST("/bookings/:id/checkout", h.Checkout)
}

func (h *SalonHandler) ListCustomers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Customers(c.Request().Context()))
}

func (h *SalonHandler) CreateCustomer(c echo.Context) error {
	var req dto.CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	customer, err := h.svc.CreateCustomer(c.Request().Context(), salon.CreateCustomerInput{
		Phone:    req.Phone,
		Name:     req.Name,
		Birthday: req.Birthday,
		Notes:    req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, salon.ErrInvalidPhone):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, salon.ErrCustomerExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *SalonHandler) UpdateCustomer(c echo.Context) error {
	var req dto.UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	customer, err := h.svc.UpdateCustomer(c.Request().Context(), c.Param("id"), salon.CreateCustomerInput{
		Name:     req.Name,
		Birthday: req.Birthday,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, salon.ErrCustomerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *SalonHandler) ListCustomerBookings(c echo.Context) error {
	bookings, err := h.svc.CustomerBookings(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, salon.ErrCustomerNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *SalonHandler) ListBookings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Bookings(c.Request().Context(), c.QueryParam("date")))
}

func (h *SalonHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), salon.CreateBookingInput{
		CustomerID: c.Param("id"),
		Date:       req.Date,
		StartTime:  req.StartTime,
		Services:   req.Services,
		Notes:      req.Notes,
	})
	if err != nil {
		return mapBookingErr(err)
	}
	return c.JSON(http.StatusCreated, booking)
}

func (h *SalonHandler) ModifyBooking(c echo.Context) error {
	var req dto.ModifyBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	booking, err := h.svc.ModifyBooking(c.Request().Context(), c.Param("id"), salon.ModifyBookingInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		Services:  req.Services,
		Notes:     req.Notes,
	})
	if err != nil {
		return mapBookingErr(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *SalonHandler) CancelBooking(c echo.Context) error {
	booking, err := h.svc.CancelBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapBookingErr(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *SalonHandler) MarkNoShow(c echo.Context) error {
	booking, err := h.svc.MarkNoShow(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapBookingErr(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func (h *SalonHandler) Checkout(c echo.Context) error {
	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Amount == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "service amount is required")
	}

	booking, err := h.svc.Checkout(c.Request().Context(), c.Param("id"), salon.CheckoutInput{
		Amount:        *req.Amount,
		ProductAmount: req.ProductAmount,
		Notes:         req.Notes,
	})
	if err != nil {
		return mapBookingErr(err)
	}
	return c.JSON(http.StatusOK, booking)
}

func mapBookingErr(err error) error {
	switch {
	case errors.Is(err, salon.ErrNoServices):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, salon.ErrCustomerNotFound), errors.Is(err, salon.ErrBookingNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, salon.ErrNotBooked):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}
