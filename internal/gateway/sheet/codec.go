package sheet

import (
	"strings"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/spf13/cast"
)

// The backing spreadsheet coerces bare strings into dates and numbers.
// Outbound string fields get a leading apostrophe to defeat that; inbound
// values get it stripped again. Numbers come back as strings just as often,
// so every numeric read goes through a lenient cast.

const textMarker = "'"

func forceText(v string) string {
	return textMarker + strings.TrimPrefix(v, textMarker)
}

func cleanText(v any) string {
	return strings.TrimPrefix(cast.ToString(v), textMarker)
}

func toFloat(v any) float64 {
	return cast.ToFloat64(cleanText(v))
}

func toInt64(v any) int64 {
	return cast.ToInt64(cleanText(v))
}

func toInt(v any) int {
	return cast.ToInt(cleanText(v))
}

func encodeBooking(b models.Booking) map[string]any {
	return map[string]any{
		"id":            forceText(b.ID),
		"customerId":    forceText(b.CustomerID),
		"customerName":  forceText(b.CustomerName),
		"date":          forceText(b.Date),
		"startTime":     forceText(b.StartTime),
		"endTime":       forceText(b.EndTime),
		"startMs":       b.StartMs,
		"endMs":         b.EndMs,
		"services":      strings.Join(b.Services, ","),
		"notes":         forceText(b.Notes),
		"status":        forceText(string(b.Status)),
		"createdAtMs":   b.CreatedAtMs,
		"amount":        b.Amount,
		"productAmount": b.ProductAmount,
		"checkoutNotes": forceText(b.CheckoutNotes),
	}
}

func decodeBooking(row map[string]any) models.Booking {
	return models.Booking{
		ID:            cleanText(row["id"]),
		CustomerID:    cleanText(row["customerId"]),
		CustomerName:  cleanText(row["customerName"]),
		Date:          cleanText(row["date"]),
		StartTime:     cleanText(row["startTime"]),
		EndTime:       cleanText(row["endTime"]),
		StartMs:       toInt64(row["startMs"]),
		EndMs:         toInt64(row["endMs"]),
		Services:      decodeServices(row["services"]),
		Notes:         cleanText(row["notes"]),
		Status:        models.BookingStatus(cleanText(row["status"])),
		CreatedAtMs:   toInt64(row["createdAtMs"]),
		Amount:        toFloat(row["amount"]),
		ProductAmount: toFloat(row["productAmount"]),
		CheckoutNotes: cleanText(row["checkoutNotes"]),
	}
}

// decodeServices accepts either a real array or the comma-joined string the
// sheet collapses it into.
func decodeServices(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, s := range t {
			out = append(out, cleanText(s))
		}
		return out
	default:
		joined := cleanText(v)
		if joined == "" {
			return nil
		}
		return strings.Split(joined, ",")
	}
}

func encodeCustomer(c models.Customer) map[string]any {
	return map[string]any{
		"id":          forceText(c.ID),
		"phone":       forceText(c.Phone),
		"name":        forceText(c.Name),
		"birthday":    forceText(c.Birthday),
		"notes":       forceText(c.Notes),
		"statsVisits": c.StatsVisits,
		"statsAmount": c.StatsAmount,
		"statsCancel": c.StatsCancel,
		"statsNoShow": c.StatsNoShow,
		"statsModify": c.StatsModify,
		"createdAtMs": c.CreatedAtMs,
	}
}

func decodeCustomer(row map[string]any) models.Customer {
	return models.Customer{
		ID:          cleanText(row["id"]),
		Phone:       cleanText(row["phone"]),
		Name:        cleanText(row["name"]),
		Birthday:    cleanText(row["birthday"]),
		Notes:       cleanText(row["notes"]),
		StatsVisits: toInt(row["statsVisits"]),
		StatsAmount: toFloat(row["statsAmount"]),
		StatsCancel: toInt(row["statsCancel"]),
		StatsNoShow: toInt(row["statsNoShow"]),
		StatsModify: toInt(row["statsModify"]),
		CreatedAtMs: toInt64(row["createdAtMs"]),
	}
}
