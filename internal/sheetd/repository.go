package sheetd

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	FindAccount(ctx context.Context, phone string) (*Account, error)
	CreateAccount(ctx context.Context, account *Account) error
	UpdatePassword(ctx context.Context, phone, password string) error

	ReplaceCollection(ctx context.Context, sheetID, kind string, rows []string) error
	ListCollection(ctx context.Context, sheetID, kind string) ([]CollectionRow, error)

	UpsertProducts(ctx context.Context, rows []ProductRow) error
	ListProducts(ctx context.Context, sheetID string) ([]ProductRow, error)
	AppendTransaction(ctx context.Context, row *TransactionRow) error
	ListTransactions(ctx context.Context, sheetID string) ([]TransactionRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAccount(ctx context.Context, phone string) (*Account, error) {
	var account Account
	if err := r.db.WithContext(ctx).First(&account, "phone = ?", phone).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *repository) CreateAccount(ctx context.Context, account *Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repository) UpdatePassword(ctx context.Context, phone, password string) error {
	return r.db.WithContext(ctx).
		Model(&Account{}).
		Where("phone = ?", phone).
		Update("password", password).Error
}

// ReplaceCollection implements the whole-collection overwrite: delete
// everything under (sheetID, kind), insert the new rows, one transaction.
func (r *repository) ReplaceCollection(ctx context.Context, sheetID, kind string, rows []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sheet_id = ? AND kind = ?", sheetID, kind).Delete(&CollectionRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		records := make([]CollectionRow, 0, len(rows))
		for i, data := range rows {
			records = append(records, CollectionRow{SheetID: sheetID, Kind: kind, Seq: i, Data: data})
		}
		return tx.Create(&records).Error
	})
}

func (r *repository) ListCollection(ctx context.Context, sheetID, kind string) ([]CollectionRow, error) {
	var rows []CollectionRow
	err := r.db.WithContext(ctx).
		Where("sheet_id = ? AND kind = ?", sheetID, kind).
		Order("seq ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpsertProducts(ctx context.Context, rows []ProductRow) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sheet_id"}, {Name: "barcode"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "quantity", "weighted_average_cost", "last_updated_ms", "updated_at",
		}),
	}).Create(&rows).Error
}

func (r *repository) ListProducts(ctx context.Context, sheetID string) ([]ProductRow, error) {
	var rows []ProductRow
	err := r.db.WithContext(ctx).
		Where("sheet_id = ?", sheetID).
		Order("barcode ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) AppendTransaction(ctx context.Context, row *TransactionRow) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) ListTransactions(ctx context.Context, sheetID string) ([]TransactionRow, error) {
	var rows []TransactionRow
	err := r.db.WithContext(ctx).
		Where("sheet_id = ?", sheetID).
		Order("date_ms ASC").
		Find(&rows).Error
	return rows, err
}
