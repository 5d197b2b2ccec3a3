// Package report computes revenue and service-mix rollups from the full
// booking collection. Everything here is a pure function recomputed on
// demand; nothing is incrementally maintained.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/SuperScalpStudio/SuperSalonSystem/internal/models"
)

// RevenueSummary is the day/week/month rollup relative to a reference
// instant. Revenue is the sum of service plus product amounts over Paid
// bookings keyed on their start instant.
type RevenueSummary struct {
	Today float64 `json:"today"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

// Revenue computes the standard three windows around now. The week starts
// Monday (a Sunday reference counts as day 7 of the previous week); the
// month window is the half-open calendar month.
func Revenue(bookings []models.Booking, now time.Time) RevenueSummary {
	dayStart := midnight(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	wkStart := weekStart(now)
	wkEnd := wkStart.AddDate(0, 0, 7)
	moStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	moEnd := moStart.AddDate(0, 1, 0)

	var sum RevenueSummary
	for _, b := range bookings {
		if b.Status != models.StatusPaid {
			continue
		}
		total := b.Amount + b.ProductAmount
		at := time.UnixMilli(b.StartMs).In(now.Location())

		if within(at, dayStart, dayEnd) {
			sum.Today += total
		}
		if within(at, wkStart, wkEnd) {
			sum.Week += total
		}
		if within(at, moStart, moEnd) {
			sum.Month += total
		}
	}
	return sum
}

// RangeRevenue sums Paid revenue for start instants inside the inclusive day
// range [start, end].
func RangeRevenue(bookings []models.Booking, start, end time.Time) float64 {
	lo := midnight(start).UnixMilli()
	hi := midnight(end).AddDate(0, 0, 1).UnixMilli()

	total := 0.0
	for _, b := range bookings {
		if b.Status == models.StatusPaid && b.StartMs >= lo && b.StartMs < hi {
			total += b.Amount + b.ProductAmount
		}
	}
	return total
}

// ServiceShare is one service's slice of service revenue. Percent is rounded
// to the nearest integer; the shares are not corrected to sum to 100.
type ServiceShare struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Percent int     `json:"percent"`
}

// ServiceMix splits each Paid booking's service amount evenly across its
// listed services and expresses each service's total as an integer share of
// the grand total. Services with a zero rounded share are omitted; callers
// rendering the full menu show the missing ones at 0%.
func ServiceMix(bookings []models.Booking) []ServiceShare {
	perService := make(map[string]float64)
	total := 0.0
	for _, b := range bookings {
		if b.Status != models.StatusPaid || b.Amount == 0 || len(b.Services) == 0 {
			continue
		}
		share := b.Amount / float64(len(b.Services))
		for _, name := range b.Services {
			perService[name] += share
			total += share
		}
	}

	if total == 0 {
		return nil
	}

	shares := make([]ServiceShare, 0, len(perService))
	for name, amount := range perService {
		shares = append(shares, ServiceShare{
			Name:    name,
			Amount:  amount,
			Percent: int(math.Round(amount / total * 100)),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Name < shares[j].Name
	})

	out := shares[:0]
	for _, s := range shares {
		if s.Percent > 0 {
			out = append(out, s)
		}
	}
	return out
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func weekStart(t time.Time) time.Time {
	day := int(t.Weekday())
	if day == 0 {
		day = 7 // ISO: Sunday is day 7
	}
	return midnight(t).AddDate(0, 0, -(day - 1))
}

func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && t.Before(hi)
}
