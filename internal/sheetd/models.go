// Package sheetd implements the spreadsheet-style RPC backend the client
// apps sync against. The storage model mirrors the sheet it replaces:
// collections are overwritten whole on every write (last-writer-wins),
// products are upserted by barcode, and transactions are append-only.
package sheetd

import "time"

// Account is a registered user. The password is stored and compared as
// plaintext: the protocol this backend replaces does no hashing and the
// clients depend on that observable behavior.
type Account struct {
	Phone     string `gorm:"primaryKey;size:20"`
	Password  string `gorm:"not null"`
	Name      string `gorm:"not null"`
	SheetID   string `gorm:"size:64"`
	SheetURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CollectionRow is one row of a synced collection (bookings or customers),
// stored as the raw JSON object the client shipped, marker prefixes and all,
// so reads round-trip exactly what was written.
type CollectionRow struct {
	ID        uint   `gorm:"primaryKey"`
	SheetID   string `gorm:"index:idx_sheet_collection;size:64;not null"`
	Kind      string `gorm:"index:idx_sheet_collection;size:16;not null"`
	Seq       int    `gorm:"not null"`
	Data      string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// ProductRow is the Products sheet: one row per barcode per sheet.
type ProductRow struct {
	ID                  uint   `gorm:"primaryKey"`
	SheetID             string `gorm:"uniqueIndex:idx_sheet_barcode;size:64;not null"`
	Barcode             string `gorm:"uniqueIndex:idx_sheet_barcode;size:64;not null"`
	Name                string
	Quantity            int
	WeightedAverageCost float64
	LastUpdatedMs       int64
	UpdatedAt           time.Time
}

// TransactionRow is the Transactions sheet; rows are only ever appended.
type TransactionRow struct {
	ID          string `gorm:"primaryKey;size:64"`
	SheetID     string `gorm:"index;size:64;not null"`
	DateMs      int64
	Kind        string `gorm:"size:16;not null"`
	Items       string `gorm:"type:text;not null"`
	TotalAmount float64
	TotalProfit *float64
	Remarks     string
	CreatedAt   time.Time
}
