package models

type BookingStatus string

const (
	StatusBooked   BookingStatus = "booked"
	StatusPaid     BookingStatus = "paid"
	StatusCanceled BookingStatus = "canceled"
	StatusNoShow   BookingStatus = "noshow"
)

// Terminal reports whether a booking in this status has left the Booked
// lifecycle. Terminal bookings can still be edited but never return to Booked.
func (s BookingStatus) Terminal() bool {
	return s == StatusPaid || s == StatusCanceled || s == StatusNoShow
}

// Booking is a scheduled service appointment. Date is an 8-digit YYYYMMDD
// string and StartTime/EndTime are HH:MM, mirroring how the backing sheet
// stores them; StartMs/EndMs carry the same instants as millisecond epochs.
// Amount, ProductAmount and CheckoutNotes are populated only at checkout.
type Booking struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"customerName"`
	Date          string        `json:"date"`
	StartTime     string        `json:"startTime"`
	EndTime       string        `json:"endTime"`
	StartMs       int64         `json:"startMs"`
	EndMs         int64         `json:"endMs"`
	Services      []string      `json:"services"`
	Notes         string        `json:"notes,omitempty"`
	Status        BookingStatus `json:"status"`
	CreatedAtMs   int64         `json:"createdAtMs"`
	Amount        float64       `json:"amount,omitempty"`
	ProductAmount float64       `json:"productAmount,omitempty"`
	CheckoutNotes string        `json:"checkoutNotes,omitempty"`
}

// Customer carries five running counters derived from the booking collection.
// Except for StatsModify they are recomputed from scratch on every status
// change and are never independently authoritative.
type Customer struct {
	ID          string  `json:"id"`
	Phone       string  `json:"phone"`
	Name        string  `json:"name"`
	Birthday    string  `json:"birthday,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	StatsVisits int     `json:"statsVisits"`
	StatsAmount float64 `json:"statsAmount"`
	StatsCancel int     `json:"statsCancel"`
	StatsNoShow int     `json:"statsNoShow"`
	StatsModify int     `json:"statsModify"`
	CreatedAtMs int64   `json:"createdAtMs"`
}

// User is the account record held by the auth gateway. SheetID names the
// backing spreadsheet the account's collections live in.
type User struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	SheetURL string `json:"googleSheetUrl,omitempty"`
	SheetID  string `json:"sheetId,omitempty"`
}

// ServiceOption is an offered service and its scheduled duration.
type ServiceOption struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
}

// DefaultServices is the fixed service menu. Service-mix reports render
// against this list even for services with a zero share.
var DefaultServices = []ServiceOption{
	{Name: "洗髮", DurationMinutes: 30},
	{Name: "剪髮", DurationMinutes: 60},
	{Name: "染髮", DurationMinutes: 120},
	{Name: "燙髮", DurationMinutes: 180},
	{Name: "護髮", DurationMinutes: 60},
	{Name: "頭皮保養", DurationMinutes: 90},
	{Name: "其他", DurationMinutes: 30},
}

// Settings holds the per-session configuration the mutation operations read.
type Settings struct {
	ServiceDurations    map[string]int `json:"serviceDurations"`
	ProductSalesEnabled bool           `json:"productSalesEnabled"`
}

// DefaultSettings builds durations from the default service menu.
func DefaultSettings() Settings {
	durations := make(map[string]int, len(DefaultServices))
	for _, s := range DefaultServices {
		durations[s.Name] = s.DurationMinutes
	}
	return Settings{ServiceDurations: durations, ProductSalesEnabled: true}
}
