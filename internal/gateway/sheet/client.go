// Package sheet is the client for the spreadsheet-backed persistence
// endpoint. Every write ships the entire collection; there is no delta
// protocol, no retry, and the contract is last-writer-wins per collection.
package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/guonaihong/gout"
)

type Client struct {
	rpcURL  string
	posURL  string
	sheetID string
}

func NewClient(baseURL, sheetID string) *Client {
	return &Client{
		rpcURL:  baseURL + "/rpc",
		posURL:  baseURL + "/pos/" + sheetID,
		sheetID: sheetID,
	}
}

type rpcResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Data    []map[string]any `json:"data,omitempty"`
}

func (c *Client) call(ctx context.Context, payload any) (*rpcResponse, error) {
	var rsp rpcResponse
	code := 0
	err := gout.POST(c.rpcURL).
		WithContext(ctx).
		SetJSON(payload).
		BindJSON(&rsp).
		Code(&code).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheet rpc: %w", err)
	}
	if code != http.StatusOK {
		return nil, fmt.Errorf("sheet rpc: http %d", code)
	}
	if !rsp.Success {
		return nil, fmt.Errorf("sheet rpc: %s", rsp.Message)
	}
	return &rsp, nil
}

func (c *Client) read(ctx context.Context, collection string) ([]map[string]any, error) {
	rsp, err := c.call(ctx, gout.H{
		"action":    "sync",
		"sheetId":   c.sheetID,
		"operation": "read",
		"type":      collection,
	})
	if err != nil {
		return nil, err
	}
	return rsp.Data, nil
}

func (c *Client) write(ctx context.Context, collection string, rows []map[string]any) error {
	_, err := c.call(ctx, gout.H{
		"action":    "sync",
		"sheetId":   c.sheetID,
		"operation": "write",
		"type":      collection,
		"data":      rows,
	})
	return err
}

func (c *Client) FetchBookings(ctx context.Context) ([]models.Booking, error) {
	rows, err := c.read(ctx, "bookings")
	if err != nil {
		return nil, err
	}
	bookings := make([]models.Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, decodeBooking(row))
	}
	return bookings, nil
}

func (c *Client) FetchCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := c.read(ctx, "customers")
	if err != nil {
		return nil, err
	}
	customers := make([]models.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, decodeCustomer(row))
	}
	return customers, nil
}

func (c *Client) WriteBookings(ctx context.Context, bookings []models.Booking) error {
	rows := make([]map[string]any, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, encodeBooking(b))
	}
	return c.write(ctx, "bookings", rows)
}

func (c *Client) WriteCustomers(ctx context.Context, customers []models.Customer) error {
	rows := make([]map[string]any, 0, len(customers))
	for _, cust := range customers {
		rows = append(rows, encodeCustomer(cust))
	}
	return c.write(ctx, "customers", rows)
}

type posSnapshot struct {
	Products     map[string]models.Product `json:"products"`
	Transactions []models.Transaction      `json:"transactions"`
}

// FetchInventory loads the full product map and transaction log in one call.
func (c *Client) FetchInventory(ctx context.Context) (map[string]models.Product, []models.Transaction, error) {
	var snap posSnapshot
	code := 0
	err := gout.GET(c.posURL).
		WithContext(ctx).
		BindJSON(&snap).
		Code(&code).
		Do()
	if err != nil {
		return nil, nil, fmt.Errorf("pos fetch: %w", err)
	}
	if code != http.StatusOK {
		return nil, nil, fmt.Errorf("pos fetch: http %d", code)
	}
	if snap.Products == nil {
		snap.Products = map[string]models.Product{}
	}
	return snap.Products, snap.Transactions, nil
}

// WriteInventory ships the full product map plus the single new transaction,
// matching the backend's append-transaction-then-overwrite-products write.
func (c *Client) WriteInventory(ctx context.Context, products map[string]models.Product, tx models.Transaction) error {
	var rsp struct {
		Status string `json:"status"`
	}
	code := 0
	err := gout.POST(c.posURL).
		WithContext(ctx).
		SetJSON(gout.H{"transaction": tx, "products": products}).
		BindJSON(&rsp).
		Code(&code).
		Do()
	if err != nil {
		return fmt.Errorf("pos write: %w", err)
	}
	if code != http.StatusOK {
		return fmt.Errorf("pos write: http %d", code)
	}
	if rsp.Status != "success" {
		raw, _ := json.Marshal(rsp)
		return fmt.Errorf("pos write rejected: %s", raw)
	}
	return nil
}
