package handler

import (
	"errors"
	"net/http"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/dto"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/inventory"
	"github.com/labstack/echo/v4"
)

type InventoryHandler struct {
	svc inventory.Service
}

func NewInventoryHandler(svc inventory.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.GET("/products", h.ListProducts)
	api.GET("/products/:barcode", h.GetProduct)
	api.GET("/transactions", h.ListTransactions)
	api.POST("/purchases", h.Purchase)
	api.POST("/sales", h.Sale)
	api.GET("/reports/profit", h.ProfitReport)
}

func (h *InventoryHandler) ListProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Products(c.Request().Context()))
}

// GetProduct doubles as the barcode pre-check the sale flow uses before
// adding a line: unknown barcodes are an expected branch, not a fault.
func (h *InventoryHandler) GetProduct(c echo.Context) error {
	product, err := h.svc.Product(c.Request().Context(), c.Param("barcode"))
	if err != nil {
		if errors.Is(err, inventory.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, product)
}

func (h *InventoryHandler) ListTransactions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Transactions(c.Request().Context()))
}

func (h *InventoryHandler) Purchase(c echo.Context) error {
	var req dto.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	lines := make([]inventory.PurchaseLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, inventory.PurchaseLine{
			Barcode:   l.Barcode,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	tx, err := h.svc.Purchase(c.Request().Context(), inventory.PurchaseInput{
		Lines:      lines,
		Remarks:    req.Remarks,
		LocalTotal: req.LocalTotal,
	})
	if err != nil {
		return mapInventoryErr(err)
	}
	return c.JSON(http.StatusCreated, tx)
}

func (h *InventoryHandler) Sale(c echo.Context) error {
	var req dto.SaleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	lines := make([]inventory.SaleLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, inventory.SaleLine{
			Barcode:   l.Barcode,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	tx, err := h.svc.Sale(c.Request().Context(), inventory.SaleInput{
		Lines:   lines,
		Remarks: req.Remarks,
	})
	if err != nil {
		return mapInventoryErr(err)
	}
	return c.JSON(http.StatusCreated, tx)
}

func (h *InventoryHandler) ProfitReport(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ProfitByProduct(c.Request().Context()))
}

func mapInventoryErr(err error) error {
	switch {
	case errors.Is(err, inventory.ErrProductNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, inventory.ErrNoLines),
		errors.Is(err, inventory.ErrBadQuantity),
		errors.Is(err, inventory.ErrBadPrice),
		errors.Is(err, inventory.ErrZeroForeignSum):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
