package dto

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type CheckUserRequest struct {
	Phone string `json:"phone"`
}

type ChangePasswordRequest struct {
	Phone       string `json:"phone"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type CreateCustomerRequest struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Birthday string `json:"birthday,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type UpdateCustomerRequest struct {
	Name     string `json:"name"`
	Birthday string `json:"birthday,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

type CreateBookingRequest struct {
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	Services  []string `json:"services"`
	Notes     string   `json:"notes,omitempty"`
}

type ModifyBookingRequest struct {
	Date      string   `json:"date"`
	StartTime string   `json:"startTime"`
	Services  []string `json:"services"`
	Notes     string   `json:"notes,omitempty"`
}

// CheckoutRequest finalizes a booking. Amount is required and must be
// numeric; ProductAmount is optional and only honored when product sales are
// enabled.
type CheckoutRequest struct {
	Amount        *float64 `json:"amount"`
	ProductAmount float64  `json:"productAmount,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

type PurchaseLineRequest struct {
	Barcode   string  `json:"barcode"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type PurchaseRequest struct {
	Lines   []PurchaseLineRequest `json:"lines"`
	Remarks string                `json:"remarks,omitempty"`
	// LocalTotal switches the entry into foreign-currency mode: line prices
	// are rescaled proportionally so their sum equals this value.
	LocalTotal *float64 `json:"localTotal,omitempty"`
}

type SaleLineRequest struct {
	Barcode   string  `json:"barcode"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type SaleRequest struct {
	Lines   []SaleLineRequest `json:"lines"`
	Remarks string            `json:"remarks,omitempty"`
}

type ExpandRequest struct {
	Seed string `json:"seed"`
}

type ImageRequest struct {
	Prompt string `json:"prompt"`
}
