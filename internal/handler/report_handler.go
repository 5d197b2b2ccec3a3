package handler

import (
	"net/http"
	"time"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/dto"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/report"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/salon"
	"github.com/labstack/echo/v4"
)

const rangeDateLayout = "2006-01-02"

type ReportHandler struct {
	svc salon.Service
}

func NewReportHandler(svc salon.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) RegisterRoutes(e *echo.Echo) {
	reports := e.Group("/api/v1/reports")
	reports.GET("/revenue", h.Revenue)
	reports.GET("/revenue/range", h.RangeRevenue)
	reports.GET("/service-mix", h.ServiceMix)
}

func (h *ReportHandler) Revenue(c echo.Context) error {
	bookings := h.svc.Bookings(c.Request().Context(), "")
	sum := report.Revenue(bookings, time.Now())
	return c.JSON(http.StatusOK, dto.RevenueResponse{Today: sum.Today, Week: sum.Week, Month: sum.Month})
}

func (h *ReportHandler) RangeRevenue(c echo.Context) error {
	start, err := time.ParseInLocation(rangeDateLayout, c.QueryParam("start"), time.Local)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start date, want YYYY-MM-DD")
	}
	end, err := time.ParseInLocation(rangeDateLayout, c.QueryParam("end"), time.Local)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end date, want YYYY-MM-DD")
	}
	if end.Before(start) {
		return echo.NewHTTPError(http.StatusBadRequest, "end date precedes start date")
	}

	bookings := h.svc.Bookings(c.Request().Context(), "")
	total := report.RangeRevenue(bookings, start, end)
	return c.JSON(http.StatusOK, dto.RangeRevenueResponse{
		Start: c.QueryParam("start"),
		End:   c.QueryParam("end"),
		Total: total,
	})
}

func (h *ReportHandler) ServiceMix(c echo.Context) error {
	bookings := h.svc.Bookings(c.Request().Context(), "")
	shares := report.ServiceMix(bookings)
	return c.JSON(http.StatusOK, dto.ToServiceMixResponse(shares))
}
