package store

import (
	"sync"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
)

type InventoryStore struct {
	mu           sync.RWMutex
	products     map[string]models.Product
	transactions []models.Transaction
}

func NewInventoryStore() *InventoryStore {
	return &InventoryStore{products: make(map[string]models.Product)}
}

func (s *InventoryStore) Load(products map[string]models.Product, transactions []models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[string]models.Product, len(products))
	for k, v := range products {
		s.products[k] = v
	}
	s.transactions = append([]models.Transaction(nil), transactions...)
}

func (s *InventoryStore) Products() map[string]models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.Product, len(s.products))
	for k, v := range s.products {
		out[k] = v
	}
	return out
}

func (s *InventoryStore) ProductByBarcode(barcode string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[barcode]
	return p, ok
}

func (s *InventoryStore) Transactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Transaction(nil), s.transactions...)
}

// Apply installs the product updates and appends the transaction as one
// atomic step. Transactions are append-only; nothing ever rewrites them.
func (s *InventoryStore) Apply(updated []models.Product, tx models.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range updated {
		s.products[p.Barcode] = p
	}
	s.transactions = append(s.transactions, tx)
}
