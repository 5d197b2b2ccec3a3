package sheet

import (
	"testing"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestForceText_PrefixesOnce(t *testing.T) {
	assert.Equal(t, "'0912345678", forceText("0912345678"))
	assert.Equal(t, "'0912345678", forceText("'0912345678"))
	assert.Equal(t, "'", forceText(""))
}

func TestCleanText_StripsMarkerAndCoerces(t *testing.T) {
	assert.Equal(t, "0912345678", cleanText("'0912345678"))
	assert.Equal(t, "plain", cleanText("plain"))
	assert.Equal(t, "42", cleanText(42))
	assert.Equal(t, "", cleanText(nil))
}

func TestNumericCasts_HandleStringsAndMarkers(t *testing.T) {
	assert.Equal(t, 12.5, toFloat("'12.5"))
	assert.Equal(t, 12.5, toFloat("12.5"))
	assert.Equal(t, 12.5, toFloat(12.5))
	assert.Equal(t, 0.0, toFloat(nil))

	assert.Equal(t, int64(1722700800000), toInt64("1722700800000"))
	assert.Equal(t, int64(1722700800000), toInt64(float64(1722700800000)))

	assert.Equal(t, 3, toInt("'3"))
	assert.Equal(t, 0, toInt(""))
}

func TestEncodeBooking_MarksTextFieldsAndJoinsServices(t *testing.T) {
	row := encodeBooking(models.Booking{
		ID:        "booking-1722700800000",
		Date:      "20240805",
		StartTime: "10:00",
		Services:  []string{"洗髮", "剪髮"},
		Status:    models.StatusBooked,
		Amount:    500,
	})

	assert.Equal(t, "'booking-1722700800000", row["id"])
	assert.Equal(t, "'20240805", row["date"])
	assert.Equal(t, "'10:00", row["startTime"])
	assert.Equal(t, "洗髮,剪髮", row["services"])
	assert.Equal(t, "'booked", row["status"])
	assert.Equal(t, 500.0, row["amount"])
}

func TestDecodeBooking_RoundTrip(t *testing.T) {
	original := models.Booking{
		ID:            "booking-1722700800000",
		CustomerID:    "912345678",
		CustomerName:  "王小姐",
		Date:          "20240805",
		StartTime:     "10:00",
		EndTime:       "11:30",
		StartMs:       1722823200000,
		EndMs:         1722828600000,
		Services:      []string{"洗髮", "剪髮"},
		Status:        models.StatusPaid,
		CreatedAtMs:   1722700800000,
		Amount:        500,
		ProductAmount: 200,
		CheckoutNotes: "帶走兩瓶護髮素",
	}

	assert.Equal(t, original, decodeBooking(encodeBooking(original)))
}

func TestDecodeBooking_StringifiedNumbers(t *testing.T) {
	booking := decodeBooking(map[string]any{
		"id":       "'booking-1",
		"startMs":  "1722823200000",
		"amount":   "'500",
		"services": "染髮",
		"status":   "paid",
	})

	assert.Equal(t, "booking-1", booking.ID)
	assert.Equal(t, int64(1722823200000), booking.StartMs)
	assert.Equal(t, 500.0, booking.Amount)
	assert.Equal(t, []string{"染髮"}, booking.Services)
	assert.Equal(t, models.StatusPaid, booking.Status)
}

func TestDecodeServices_ArrayAndStringForms(t *testing.T) {
	assert.Equal(t, []string{"洗髮", "剪髮"}, decodeServices([]any{"'洗髮", "剪髮"}))
	assert.Equal(t, []string{"洗髮", "剪髮"}, decodeServices("洗髮,剪髮"))
	assert.Nil(t, decodeServices(""))
	assert.Nil(t, decodeServices(nil))
}

func TestCustomerRoundTrip(t *testing.T) {
	original := models.Customer{
		ID:          "912345678",
		Phone:       "0912345678",
		Name:        "王小姐",
		Birthday:    "3/14",
		StatsVisits: 12,
		StatsAmount: 8400,
		StatsCancel: 1,
		StatsNoShow: 2,
		StatsModify: 3,
		CreatedAtMs: 1700000000000,
	}

	row := encodeCustomer(original)
	assert.Equal(t, "'0912345678", row["phone"])
	assert.Equal(t, original, decodeCustomer(row))
}
