package sheetd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const textMarker = "'"

// Clients prefix text fields with an apostrophe to survive spreadsheet type
// coercion. Account fields are normalized at ingest; collection rows are
// stored verbatim so the round trip is exact.
func stripMarker(v string) string {
	return strings.TrimPrefix(strings.TrimSpace(v), textMarker)
}

type rpcRequest struct {
	Action      string            `json:"action"`
	Phone       string            `json:"phone"`
	Password    string            `json:"password"`
	Name        string            `json:"name"`
	OldPassword string            `json:"oldPassword"`
	NewPassword string            `json:"newPassword"`
	SheetID     string            `json:"sheetId"`
	Operation   string            `json:"operation"`
	Type        string            `json:"type"`
	Data        []json.RawMessage `json:"data"`
}

type rpcResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Exists  *bool             `json:"exists,omitempty"`
	User    *models.User      `json:"user,omitempty"`
	Data    []json.RawMessage `json:"data,omitempty"`
}

type posWriteRequest struct {
	Transaction models.Transaction        `json:"transaction"`
	Products    map[string]models.Product `json:"products"`
}

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/rpc", h.RPC)
	e.GET("/pos/:sheetId", h.PosRead)
	e.POST("/pos/:sheetId", h.PosWrite)
}

func (h *Handler) RPC(c echo.Context) error {
	var req rpcRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: "invalid request"})
	}

	switch req.Action {
	case "check_user":
		return h.checkUser(c, req)
	case "register":
		return h.register(c, req)
	case "login":
		return h.login(c, req)
	case "change_password":
		return h.changePassword(c, req)
	case "sync":
		return h.sync(c, req)
	default:
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: "unknown action"})
	}
}

func (h *Handler) checkUser(c echo.Context, req rpcRequest) error {
	_, err := h.repo.FindAccount(c.Request().Context(), stripMarker(req.Phone))
	exists := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: err.Error()})
	}
	return c.JSON(http.StatusOK, rpcResponse{Success: true, Exists: &exists})
}

func (h *Handler) register(c echo.Context, req rpcRequest) error {
	ctx := c.Request().Context()
	phone := stripMarker(req.Phone)
	if phone == "" || stripMarker(req.Password) == "" {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: "phone and password are required"})
	}

	if _, err := h.repo.FindAccount(ctx, phone); err == nil {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: "account already registered"})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: err.Error()})
	}

	account := &Account{
		Phone:    phone,
		Password: stripMarker(req.Password),
		Name:     stripMarker(req.Name),
		SheetID:  uuid.NewString(),
	}
	if err := h.repo.CreateAccount(ctx, account); err != nil {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: err.Error()})
	}
	return c.JSON(http.StatusOK, rpcResponse{Success: true, User: accountUser(account)})
}

func (h *Handler) login(c echo.Context, req rpcRequest) error {
	account, err := h.repo.FindAccount(c.Request().Context(), stripMarker(req.Phone))
	if err != nil {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: "invalid credentials"})
	}
	// Plaintext comparison, matching the sheet backend this replaces.
	if account.Password != stripMarker(req.Password) {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: "invalid credentials"})
	}
	return c.JSON(http.StatusOK, rpcResponse{Success: true, User: accountUser(account)})
}

func (h *Handler) changePassword(c echo.Context, req rpcRequest) error {
	ctx := c.Request().Context()
	phone := stripMarker(req.Phone)

	account, err := h.repo.FindAccount(ctx, phone)
	if err != nil || account.Password != stripMarker(req.OldPassword) {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: "invalid credentials"})
	}
	if err := h.repo.UpdatePassword(ctx, phone, stripMarker(req.NewPassword)); err != nil {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: err.Error()})
	}
	return c.JSON(http.StatusOK, rpcResponse{Success: true, Message: "password changed"})
}

func (h *Handler) sync(c echo.Context, req rpcRequest) error {
	ctx := c.Request().Context()
	sheetID := stripMarker(req.SheetID)
	if sheetID == "" {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: "sheetId is required"})
	}
	if req.Type != "bookings" && req.Type != "customers" {
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: "unknown collection type"})
	}

	switch req.Operation {
	case "write":
		rows := make([]string, 0, len(req.Data))
		for _, raw := range req.Data {
			rows = append(rows, string(raw))
		}
		if err := h.repo.ReplaceCollection(ctx, sheetID, req.Type, rows); err != nil {
			return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: err.Error()})
		}
		return c.JSON(http.StatusOK, rpcResponse{Success: true})
	case "read":
		rows, err := h.repo.ListCollection(ctx, sheetID, req.Type)
		if err != nil {
			return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: err.Error()})
		}
		data := make([]json.RawMessage, 0, len(rows))
		for _, row := range rows {
			data = append(data, json.RawMessage(row.Data))
		}
		return c.JSON(http.StatusOK, rpcResponse{Success: true, Data: data})
	default:
		return c.JSON(http.StatusOK, rpcResponse{Success: false, Message: "unknown operation"})
	}
}

func (h *Handler) PosRead(c echo.Context) error {
	ctx := c.Request().Context()
	sheetID := c.Param("sheetId")

	productRows, err := h.repo.ListProducts(ctx, sheetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	txRows, err := h.repo.ListTransactions(ctx, sheetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	products := make(map[string]models.Product, len(productRows))
	for _, row := range productRows {
		products[row.Barcode] = models.Product{
			Barcode:             row.Barcode,
			Name:                row.Name,
			Quantity:            row.Quantity,
			WeightedAverageCost: row.WeightedAverageCost,
			LastUpdatedMs:       row.LastUpdatedMs,
		}
	}

	transactions := make([]models.Transaction, 0, len(txRows))
	for _, row := range txRows {
		var items []models.LineItem
		if err := json.Unmarshal([]byte(row.Items), &items); err != nil {
			items = nil
		}
		transactions = append(transactions, models.Transaction{
			ID:          row.ID,
			DateMs:      row.DateMs,
			Type:        models.TransactionType(row.Kind),
			Items:       items,
			TotalAmount: row.TotalAmount,
			TotalProfit: row.TotalProfit,
			Remarks:     row.Remarks,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"products":     products,
		"transactions": transactions,
	})
}

func (h *Handler) PosWrite(c echo.Context) error {
	ctx := c.Request().Context()
	sheetID := c.Param("sheetId")

	var req posWriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	items, err := json.Marshal(req.Transaction.Items)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid transaction items")
	}
	// Transaction first, product state second, same order as the sheet
	// script: the append-only log must never miss a recorded mutation.
	if err := h.repo.AppendTransaction(ctx, &TransactionRow{
		ID:          req.Transaction.ID,
		SheetID:     sheetID,
		DateMs:      req.Transaction.DateMs,
		Kind:        string(req.Transaction.Type),
		Items:       string(items),
		TotalAmount: req.Transaction.TotalAmount,
		TotalProfit: req.Transaction.TotalProfit,
		Remarks:     req.Transaction.Remarks,
	}); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	rows := make([]ProductRow, 0, len(req.Products))
	for _, p := range req.Products {
		rows = append(rows, ProductRow{
			SheetID:             sheetID,
			Barcode:             p.Barcode,
			Name:                p.Name,
			Quantity:            p.Quantity,
			WeightedAverageCost: p.WeightedAverageCost,
			LastUpdatedMs:       p.LastUpdatedMs,
		})
	}
	if err := h.repo.UpsertProducts(ctx, rows); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

func accountUser(a *Account) *models.User {
	return &models.User{
		Phone:    a.Phone,
		Name:     a.Name,
		SheetURL: a.SheetURL,
		SheetID:  a.SheetID,
	}
}
