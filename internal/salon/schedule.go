package salon

import (
	"fmt"
	"time"
)

const (
	dateLayout = "20060102"
	timeLayout = "15:04"
)

// Schedule is the resolved time window of a booking.
type Schedule struct {
	Date      string
	StartTime string
	EndTime   string
	StartMs   int64
	EndMs     int64
}

// ComputeSchedule resolves a date (YYYYMMDD) and start time (HH:MM) against
// the selected services: the end instant is the start plus the sum of the
// configured per-service durations. Services missing from the duration table
// contribute zero minutes. The invariant EndMs-StartMs == Σ durations holds
// at creation and after every modification.
func ComputeSchedule(date, startTime string, services []string, durations map[string]int) (Schedule, error) {
	start, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+startTime, time.Local)
	if err != nil {
		return Schedule{}, fmt.Errorf("parse booking start: %w", err)
	}

	total := 0
	for _, name := range services {
		total += durations[name]
	}
	end := start.Add(time.Duration(total) * time.Minute)

	return Schedule{
		Date:      date,
		StartTime: start.Format(timeLayout),
		EndTime:   end.Format(timeLayout),
		StartMs:   start.UnixMilli(),
		EndMs:     end.UnixMilli(),
	}, nil
}
