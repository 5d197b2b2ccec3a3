// Package inventory implements the purchase/sale mutation operations and the
// weighted-average cost basis over the in-memory product map.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/SuperScalpStudio/SuperSalonSystem/internal/store"
	"github.com/google/uuid"
)

var (
	ErrNoLines         = errors.New("transaction has no line items")
	ErrBadQuantity     = errors.New("line quantity must be positive")
	ErrBadPrice        = errors.New("line unit price must not be negative")
	ErrProductNotFound = errors.New("product not found")
	ErrZeroForeignSum  = errors.New("foreign-currency line total is zero")
)

// Syncer ships the full product map plus the single new transaction to the
// persistence endpoint. Failures are logged, never rolled back.
type Syncer interface {
	WriteInventory(ctx context.Context, products map[string]models.Product, tx models.Transaction) error
}

// EventPublisher announces mutations; nil disables publishing.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type PurchaseLine struct {
	Barcode   string
	Name      string
	Quantity  int
	UnitPrice float64
}

// PurchaseInput records one stock intake. When LocalTotal is set the line
// prices are treated as foreign-currency figures and rescaled uniformly so
// their sum equals the operator-entered local total (a proportional
// allocation, not a per-line exchange rate).
type PurchaseInput struct {
	Lines      []PurchaseLine
	Remarks    string
	LocalTotal *float64
}

type SaleLine struct {
	Barcode   string
	Quantity  int
	UnitPrice float64
}

type SaleInput struct {
	Lines   []SaleLine
	Remarks string
}

// ProductProfit is the cumulative realized profit of one product across all
// sale transactions.
type ProductProfit struct {
	Barcode string  `json:"barcode"`
	Name    string  `json:"name"`
	Profit  float64 `json:"profit"`
}

type Service interface {
	Products(ctx context.Context) map[string]models.Product
	Product(ctx context.Context, barcode string) (*models.Product, error)
	Transactions(ctx context.Context) []models.Transaction
	Purchase(ctx context.Context, in PurchaseInput) (*models.Transaction, error)
	Sale(ctx context.Context, in SaleInput) (*models.Transaction, error)
	ProfitByProduct(ctx context.Context) []ProductProfit
}

type inventoryService struct {
	mu     sync.Mutex
	store  *store.InventoryStore
	sync   Syncer
	events EventPublisher
}

func NewService(st *store.InventoryStore, syncer Syncer, events EventPublisher) Service {
	return &inventoryService{store: st, sync: syncer, events: events}
}

func (s *inventoryService) Products(ctx context.Context) map[string]models.Product {
	return s.store.Products()
}

func (s *inventoryService) Product(ctx context.Context, barcode string) (*models.Product, error) {
	p, ok := s.store.ProductByBarcode(barcode)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProductNotFound, barcode)
	}
	return &p, nil
}

func (s *inventoryService) Transactions(ctx context.Context) []models.Transaction {
	return s.store.Transactions()
}

func (s *inventoryService) Purchase(ctx context.Context, in PurchaseInput) (*models.Transaction, error) {
	if err := validatePurchase(in); err != nil {
		return nil, err
	}

	lines := append([]PurchaseLine(nil), in.Lines...)
	if in.LocalTotal != nil {
		if err := rescaleToLocal(lines, *in.LocalTotal); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixMilli()
	// Lines apply sequentially against a working copy so a later line for the
	// same barcode sees the earlier line's effect instead of the stored state.
	working := make(map[string]models.Product, len(lines))
	items := make([]models.LineItem, 0, len(lines))
	total := 0.0

	for _, line := range lines {
		product, ok := working[line.Barcode]
		if !ok {
			product, ok = s.store.ProductByBarcode(line.Barcode)
		}
		if ok {
			// Blend the intake into the running cost basis:
			// newCost = (Q*C + q*p) / (Q+q). An oversold product restocked
			// exactly to zero has no units left to carry a basis, so the
			// incoming price becomes the new cost.
			oldQty := float64(product.Quantity)
			newQty := oldQty + float64(line.Quantity)
			if newQty == 0 {
				product.WeightedAverageCost = line.UnitPrice
			} else {
				product.WeightedAverageCost = (oldQty*product.WeightedAverageCost + float64(line.Quantity)*line.UnitPrice) / newQty
			}
			product.Quantity += line.Quantity
			if line.Name != "" {
				product.Name = line.Name
			}
		} else {
			product = models.Product{
				Barcode:             line.Barcode,
				Name:                line.Name,
				Quantity:            line.Quantity,
				WeightedAverageCost: line.UnitPrice,
			}
		}
		product.LastUpdatedMs = now
		working[line.Barcode] = product

		items = append(items, models.LineItem{
			Barcode:   line.Barcode,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
		total += float64(line.Quantity) * line.UnitPrice
	}

	updated := make([]models.Product, 0, len(working))
	for _, product := range working {
		updated = append(updated, product)
	}

	tx := models.Transaction{
		ID:          uuid.NewString(),
		DateMs:      now,
		Type:        models.TxPurchase,
		Items:       items,
		TotalAmount: total,
		Remarks:     in.Remarks,
	}

	s.store.Apply(updated, tx)
	s.syncInventory(ctx, tx)
	s.publish("pos.transaction.created", tx)
	return &tx, nil
}

func (s *inventoryService) Sale(ctx context.Context, in SaleInput) (*models.Transaction, error) {
	if len(in.Lines) == 0 {
		return nil, ErrNoLines
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %s", ErrBadQuantity, line.Barcode)
		}
		if line.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: %s", ErrBadPrice, line.Barcode)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Unknown barcodes reject the line before anything mutates; the caller
	// fixes or drops the line, the rest of the cart is untouched.
	for _, line := range in.Lines {
		if _, ok := s.store.ProductByBarcode(line.Barcode); !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.Barcode)
		}
	}

	now := time.Now().UnixMilli()
	// Same working-copy rule as Purchase: duplicate barcodes in one cart
	// deduct cumulatively, not each from the stored quantity.
	working := make(map[string]models.Product, len(in.Lines))
	items := make([]models.LineItem, 0, len(in.Lines))
	total, profit := 0.0, 0.0

	for _, line := range in.Lines {
		product, ok := working[line.Barcode]
		if !ok {
			product, _ = s.store.ProductByBarcode(line.Barcode)
		}

		// Stock may go negative: an oversold count is recorded, not refused.
		product.Quantity -= line.Quantity
		product.LastUpdatedMs = now
		working[line.Barcode] = product

		lineProfit := float64(line.Quantity) * (line.UnitPrice - product.WeightedAverageCost)
		items = append(items, models.LineItem{
			Barcode:   line.Barcode,
			Name:      product.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			UnitCost:  product.WeightedAverageCost,
			Profit:    lineProfit,
		})
		total += float64(line.Quantity) * line.UnitPrice
		profit += lineProfit
	}

	updated := make([]models.Product, 0, len(working))
	for _, product := range working {
		updated = append(updated, product)
	}

	tx := models.Transaction{
		ID:          uuid.NewString(),
		DateMs:      now,
		Type:        models.TxSale,
		Items:       items,
		TotalAmount: total,
		TotalProfit: &profit,
		Remarks:     in.Remarks,
	}

	s.store.Apply(updated, tx)
	s.syncInventory(ctx, tx)
	s.publish("pos.transaction.created", tx)
	return &tx, nil
}

func (s *inventoryService) ProfitByProduct(ctx context.Context) []ProductProfit {
	byBarcode := make(map[string]*ProductProfit)
	var order []string
	for _, tx := range s.store.Transactions() {
		if tx.Type != models.TxSale {
			continue
		}
		for _, item := range tx.Items {
			entry, ok := byBarcode[item.Barcode]
			if !ok {
				entry = &ProductProfit{Barcode: item.Barcode, Name: item.Name}
				byBarcode[item.Barcode] = entry
				order = append(order, item.Barcode)
			}
			entry.Profit += item.Profit
		}
	}

	out := make([]ProductProfit, 0, len(order))
	for _, barcode := range order {
		out = append(out, *byBarcode[barcode])
	}
	return out
}

func validatePurchase(in PurchaseInput) error {
	if len(in.Lines) == 0 {
		return ErrNoLines
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: %s", ErrBadQuantity, line.Barcode)
		}
		if line.UnitPrice < 0 {
			return fmt.Errorf("%w: %s", ErrBadPrice, line.Barcode)
		}
	}
	return nil
}

// rescaleToLocal scales every line price by localTotal / Σ(qty*price) so the
// purchase books in local currency while keeping the lines' proportions.
func rescaleToLocal(lines []PurchaseLine, localTotal float64) error {
	foreignSum := 0.0
	for _, line := range lines {
		foreignSum += float64(line.Quantity) * line.UnitPrice
	}
	if foreignSum == 0 {
		return ErrZeroForeignSum
	}
	factor := localTotal / foreignSum
	for i := range lines {
		lines[i].UnitPrice *= factor
	}
	return nil
}

func (s *inventoryService) syncInventory(ctx context.Context, tx models.Transaction) {
	if s.sync == nil {
		return
	}
	if err := s.sync.WriteInventory(ctx, s.store.Products(), tx); err != nil {
		log.Printf("[sync] inventory write failed, local state kept: %v", err)
	}
}

func (s *inventoryService) publish(routingKey string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(routingKey, payload); err != nil {
		log.Printf("[events] publish %s failed: %v", routingKey, err)
	}
}
