package models

type TransactionType string

const (
	TxPurchase TransactionType = "purchase"
	TxSale     TransactionType = "sale"
)

// Product is an inventory item keyed by barcode. Quantity is signed: selling
// past on-hand stock drives it negative rather than rejecting the sale.
// WeightedAverageCost is the running per-unit cost basis; sales never move it.
type Product struct {
	Barcode             string  `json:"barcode"`
	Name                string  `json:"name"`
	Quantity            int     `json:"quantity"`
	WeightedAverageCost float64 `json:"weightedAverageCost"`
	LastUpdatedMs       int64   `json:"lastUpdated"`
}

// LineItem is one row of a transaction. UnitCost and Profit are recorded only
// on sale lines, snapshotting the cost basis at the time of sale.
type LineItem struct {
	Barcode   string  `json:"barcode"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	UnitCost  float64 `json:"unitCost,omitempty"`
	Profit    float64 `json:"profit,omitempty"`
}

// Transaction is an append-only record of one purchase or sale. TotalProfit
// is present on sales only.
type Transaction struct {
	ID          string          `json:"id"`
	DateMs      int64           `json:"date"`
	Type        TransactionType `json:"type"`
	Items       []LineItem      `json:"items"`
	TotalAmount float64         `json:"totalAmount"`
	TotalProfit *float64        `json:"totalProfit,omitempty"`
	Remarks     string          `json:"remarks,omitempty"`
}
