package sheetd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock repository ---

type mockRepository struct {
	findAccountFn       func(ctx context.Context, phone string) (*Account, error)
	createAccountFn     func(ctx context.Context, account *Account) error
	updatePasswordFn    func(ctx context.Context, phone, password string) error
	replaceCollectionFn func(ctx context.Context, sheetID, kind string, rows []string) error
	listCollectionFn    func(ctx context.Context, sheetID, kind string) ([]CollectionRow, error)
	upsertProductsFn    func(ctx context.Context, rows []ProductRow) error
	listProductsFn      func(ctx context.Context, sheetID string) ([]ProductRow, error)
	appendTransactionFn func(ctx context.Context, row *TransactionRow) error
	listTransactionsFn  func(ctx context.Context, sheetID string) ([]TransactionRow, error)
}

func (m *mockRepository) FindAccount(ctx context.Context, phone string) (*Account, error) {
	return m.findAccountFn(ctx, phone)
}

func (m *mockRepository) CreateAccount(ctx context.Context, account *Account) error {
	return m.createAccountFn(ctx, account)
}

func (m *mockRepository) UpdatePassword(ctx context.Context, phone, password string) error {
	return m.updatePasswordFn(ctx, phone, password)
}

func (m *mockRepository) ReplaceCollection(ctx context.Context, sheetID, kind string, rows []string) error {
	return m.replaceCollectionFn(ctx, sheetID, kind, rows)
}

func (m *mockRepository) ListCollection(ctx context.Context, sheetID, kind string) ([]CollectionRow, error) {
	return m.listCollectionFn(ctx, sheetID, kind)
}

func (m *mockRepository) UpsertProducts(ctx context.Context, rows []ProductRow) error {
	return m.upsertProductsFn(ctx, rows)
}

func (m *mockRepository) ListProducts(ctx context.Context, sheetID string) ([]ProductRow, error) {
	return m.listProductsFn(ctx, sheetID)
}

func (m *mockRepository) AppendTransaction(ctx context.Context, row *TransactionRow) error {
	return m.appendTransactionFn(ctx, row)
}

func (m *mockRepository) ListTransactions(ctx context.Context, sheetID string) ([]TransactionRow, error) {
	return m.listTransactionsFn(ctx, sheetID)
}

func doRPC(t *testing.T, h *Handler, body string) rpcResponse {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/rpc", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.NoError(t, h.RPC(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var rsp rpcResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rsp))
	return rsp
}

// --- Auth actions ---

func TestRPC_CheckUser(t *testing.T) {
	repo := &mockRepository{
		findAccountFn: func(ctx context.Context, phone string) (*Account, error) {
			assert.Equal(t, "0912345678", phone)
			return &Account{Phone: phone}, nil
		},
	}
	h := NewHandler(repo)

	// The marker prefix must be stripped before the lookup.
	rsp := doRPC(t, h, `{"action":"check_user","phone":"'0912345678"}`)
	assert.True(t, rsp.Success)
	assert.NotNil(t, rsp.Exists)
	assert.True(t, *rsp.Exists)
}

func TestRPC_CheckUser_Unregistered(t *testing.T) {
	repo := &mockRepository{
		findAccountFn: func(ctx context.Context, phone string) (*Account, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	h := NewHandler(repo)

	rsp := doRPC(t, h, `{"action":"check_user","phone":"0900000000"}`)
	assert.True(t, rsp.Success)
	assert.False(t, *rsp.Exists)
}

func TestRPC_Register_AssignsSheetID(t *testing.T) {
	var created *Account
	repo := &mockRepository{
		findAccountFn: func(ctx context.Context, phone string) (*Account, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createAccountFn: func(ctx context.Context, account *Account) error {
			created = account
			return nil
		},
	}
	h := NewHandler(repo)

	rsp := doRPC(t, h, `{"action":"register","phone":"'0912345678","password":"'secret","name":"'王小姐"}`)
	assert.True(t, rsp.Success)
	assert.NotNil(t, created)
	assert.Equal(t, "0912345678", created.Phone)
	assert.Equal(t, "secret", created.Password)
	assert.NotEmpty(t, created.SheetID)
	assert.NotNil(t, rsp.User)
	assert.Equal(t, created.SheetID, rsp.User.SheetID)
}

func TestRPC_Register_DuplicatePhone(t *testing.T) {
	repo := &mockRepository{
		findAccountFn: func(ctx context.Context, phone string) (*Account, error) {
			return &Account{Phone: phone}, nil
		},
	}
	h := NewHandler(repo)

	rsp := doRPC(t, h, `{"action":"register","phone":"0912345678","password":"secret"}`)
	assert.False(t, rsp.Success)
	assert.Equal(t, "account already registered", rsp.Message)
}

func TestRPC_Login(t *testing.T) {
	repo := &mockRepository{
		findAccountFn: func(ctx context.Context, phone string) (*Account, error) {
			return &Account{Phone: phone, Password: "secret", Name: "王小姐", SheetID: "sheet-1"}, nil
		},
	}
	h := NewHandler(repo)

	rsp := doRPC(t, h, `{"action":"login","phone":"0912345678","password":"secret"}`)
	assert.True(t, rsp.Success)
	assert.Equal(t, "sheet-1", rsp.User.SheetID)

	rsp = doRPC(t, h, `{"action":"login","phone":"0912345678","password":"wrong"}`)
	assert.False(t, rsp.Success)
	assert.Equal(t, "invalid credentials", rsp.Message)
}

func TestRPC_ChangePassword(t *testing.T) {
	var newPassword string
	repo := &mockRepository{
		findAccountFn: func(ctx context.Context, phone string) (*Account, error) {
			return &Account{Phone: phone, Password: "old"}, nil
		},
		updatePasswordFn: func(ctx context.Context, phone, password string) error {
			newPassword = password
			return nil
		},
	}
	h := NewHandler(repo)

	rsp := doRPC(t, h, `{"action":"change_password","phone":"0912345678","oldPassword":"old","newPassword":"'new"}`)
	assert.True(t, rsp.Success)
	assert.Equal(t, "new", newPassword)
}

func TestRPC_ChangePassword_WrongOldPassword(t *testing.T) {
	repo := &mockRepository{
		findAccountFn: func(ctx context.Context, phone string) (*Account, error) {
			return &Account{Phone: phone, Password: "old"}, nil
		},
	}
	h := NewHandler(repo)

	rsp := doRPC(t, h, `{"action":"change_password","phone":"0912345678","oldPassword":"nope","newPassword":"new"}`)
	assert.False(t, rsp.Success)
}

func TestRPC_UnknownAction(t *testing.T) {
	h := NewHandler(&mockRepository{})

	rsp := doRPC(t, h, `{"action":"drop_tables"}`)
	assert.False(t, rsp.Success)
	assert.Equal(t, "unknown action", rsp.Message)
}

// --- Sync ---

func TestRPC_SyncWrite_ReplacesCollectionVerbatim(t *testing.T) {
	var gotSheet, gotKind string
	var gotRows []string
	repo := &mockRepository{
		replaceCollectionFn: func(ctx context.Context, sheetID, kind string, rows []string) error {
			gotSheet, gotKind, gotRows = sheetID, kind, rows
			return nil
		},
	}
	h := NewHandler(repo)

	rsp := doRPC(t, h, `{"action":"sync","sheetId":"sheet-1","operation":"write","type":"bookings","data":[{"id":"booking-1","status":"paid"}]}`)
	assert.True(t, rsp.Success)
	assert.Equal(t, "sheet-1", gotSheet)
	assert.Equal(t, "bookings", gotKind)
	assert.Len(t, gotRows, 1)
	assert.JSONEq(t, `{"id":"booking-1","status":"paid"}`, gotRows[0])
}

func TestRPC_SyncRead_ReturnsStoredRows(t *testing.T) {
	repo := &mockRepository{
		listCollectionFn: func(ctx context.Context, sheetID, kind string) ([]CollectionRow, error) {
			assert.Equal(t, "customers", kind)
			return []CollectionRow{
				{Data: `{"id":"912345678","name":"王小姐"}`},
			}, nil
		},
	}
	h := NewHandler(repo)

	rsp := doRPC(t, h, `{"action":"sync","sheetId":"sheet-1","operation":"read","type":"customers"}`)
	assert.True(t, rsp.Success)
	assert.Len(t, rsp.Data, 1)
	assert.JSONEq(t, `{"id":"912345678","name":"王小姐"}`, string(rsp.Data[0]))
}

func TestRPC_Sync_RejectsUnknownCollection(t *testing.T) {
	h := NewHandler(&mockRepository{})

	rsp := doRPC(t, h, `{"action":"sync","sheetId":"sheet-1","operation":"write","type":"products"}`)
	assert.False(t, rsp.Success)

	rsp = doRPC(t, h, `{"action":"sync","operation":"write","type":"bookings"}`)
	assert.False(t, rsp.Success)
	assert.Equal(t, "sheetId is required", rsp.Message)
}

// --- POS endpoints ---

func TestPosWrite_AppendsTransactionThenUpsertsProducts(t *testing.T) {
	var order []string
	var appended *TransactionRow
	var upserted []ProductRow
	repo := &mockRepository{
		appendTransactionFn: func(ctx context.Context, row *TransactionRow) error {
			order = append(order, "transaction")
			appended = row
			return nil
		},
		upsertProductsFn: func(ctx context.Context, rows []ProductRow) error {
			order = append(order, "products")
			upserted = rows
			return nil
		},
	}
	h := NewHandler(repo)

	body := `{
		"transaction": {"id":"tx-1","type":"sale","totalAmount":900,"totalProfit":400,
			"items":[{"barcode":"4710001","quantity":5,"unitPrice":180,"unitCost":100,"profit":400}]},
		"products": {"4710001":{"barcode":"4710001","name":"洗髮精","quantity":-2,"weightedAverageCost":100}}
	}`
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/pos/sheet-1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("sheetId")
	c.SetParamValues("sheet-1")

	assert.NoError(t, h.PosWrite(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"transaction", "products"}, order)

	assert.Equal(t, "tx-1", appended.ID)
	assert.Equal(t, "sheet-1", appended.SheetID)
	assert.Equal(t, "sale", appended.Kind)
	assert.NotNil(t, appended.TotalProfit)
	assert.Equal(t, 400.0, *appended.TotalProfit)

	assert.Len(t, upserted, 1)
	assert.Equal(t, "sheet-1", upserted[0].SheetID)
	assert.Equal(t, -2, upserted[0].Quantity)

	var rsp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rsp))
	assert.Equal(t, "success", rsp["status"])
}

func TestPosRead_ReturnsProductsAndTransactions(t *testing.T) {
	repo := &mockRepository{
		listProductsFn: func(ctx context.Context, sheetID string) ([]ProductRow, error) {
			return []ProductRow{
				{SheetID: sheetID, Barcode: "4710001", Name: "洗髮精", Quantity: 8, WeightedAverageCost: 100},
			}, nil
		},
		listTransactionsFn: func(ctx context.Context, sheetID string) ([]TransactionRow, error) {
			return []TransactionRow{
				{ID: "tx-1", SheetID: sheetID, Kind: "purchase", Items: `[{"barcode":"4710001","quantity":10,"unitPrice":100}]`, TotalAmount: 1000},
			}, nil
		},
	}
	h := NewHandler(repo)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/pos/sheet-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("sheetId")
	c.SetParamValues("sheet-1")

	assert.NoError(t, h.PosRead(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var rsp struct {
		Products     map[string]json.RawMessage `json:"products"`
		Transactions []json.RawMessage          `json:"transactions"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rsp))
	assert.Contains(t, rsp.Products, "4710001")
	assert.Len(t, rsp.Transactions, 1)
}
