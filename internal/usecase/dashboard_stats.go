package usecase

import (
	"time"

	"mindcare-backend/internal/delivery/dto"
	"mindcare-backend/internal/domain/entity"

	"github.com/shopspring/decimal"
)

const (
	activePatientWindowDays = 30
	moodSeriesLength        = 7
	monthsBeforeCurrent     = 5
	monthsAfterCurrent      = 1
)

var progressCap = decimal.NewFromInt(85)

// Placeholder series until progress is derived from real outcomes
var (
	placeholderPatientProgress = []dto.WeeklyProgress{
		{Week: "W1", Improved: 15, Stable: 12, Declined: 5},
		{Week: "W2", Improved: 18, Stable: 10, Declined: 4},
		{Week: "W3", Improved: 20, Stable: 8, Declined: 4},
		{Week: "W4", Improved: 22, Stable: 7, Declined: 3},
	}
	placeholderProgressData = []dto.ProgressMetric{
		{Name: "Anxiety", Value: 65},
		{Name: "Depression", Value: 45},
		{Name: "Sleep", Value: 80},
		{Name: "Stress", Value: 55},
	}
)

// countDistinctPatients counts patients with at least one appointment in status.
// With since set, only appointments dated on or after it count.
func countDistinctPatients(appointments []entity.Appointment, status entity.AppointmentStatus, since string) int {
	seen := make(map[string]struct{})
	for _, a := range appointments {
		if a.Status != status {
			continue
		}
		if since != "" {
			date, ok := entity.NormalizeDate(a.Date)
			if !ok || date < since {
				continue
			}
		}
		seen[a.PatientID] = struct{}{}
	}
	return len(seen)
}

func countOnDate(appointments []entity.Appointment, status entity.AppointmentStatus, day string) int {
	var n int
	for _, a := range appointments {
		if a.Status != status {
			continue
		}
		if date, ok := entity.NormalizeDate(a.Date); ok && date == day {
			n++
		}
	}
	return n
}

func countStatus(appointments []entity.Appointment, status entity.AppointmentStatus) int {
	var n int
	for _, a := range appointments {
		if a.Status == status {
			n++
		}
	}
	return n
}

// monthlyAppointments buckets live appointments into the five months before now's month,
// now's month and the month after. Unparseable dates are skipped.
func monthlyAppointments(appointments []entity.Appointment, now time.Time) []dto.MonthlyAppointmentCount {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	buckets := make([]dto.MonthlyAppointmentCount, 0, monthsBeforeCurrent+1+monthsAfterCurrent)
	index := make(map[[2]int]int)

	for offset := -monthsBeforeCurrent; offset <= monthsAfterCurrent; offset++ {
		month := first.AddDate(0, offset, 0)
		index[[2]int{month.Year(), int(month.Month())}] = len(buckets)
		buckets = append(buckets, dto.MonthlyAppointmentCount{
			Month: month.Format("Jan"),
			Year:  month.Year(),
		})
	}

	for _, a := range appointments {
		switch a.Status {
		case entity.AppointmentStatusConfirmed, entity.AppointmentStatusCompleted, entity.AppointmentStatusPending:
		default:
			continue
		}

		day, err := entity.ParseDate(a.Date, now.Location())
		if err != nil {
			continue
		}
		if i, ok := index[[2]int{day.Year(), int(day.Month())}]; ok {
			buckets[i].Count++
		}
	}

	return buckets
}

// averageMood is the mean mood rounded half away from zero to one decimal place, 0 with no entries
func averageMood(entries []entity.MoodEntry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(decimal.NewFromInt(int64(e.Value)))
	}
	return sum.Div(decimal.NewFromInt(int64(len(entries)))).Round(1)
}

// progressPercentage maps the 1-10 mood average onto a percentage capped at 85
func progressPercentage(average decimal.Decimal) decimal.Decimal {
	return decimal.Min(progressCap, average.Mul(decimal.NewFromInt(10)))
}

// moodSeries takes the newest entries (input is newest first) and returns them oldest first
func moodSeries(entries []entity.MoodEntry) []dto.MoodPoint {
	n := len(entries)
	if n > moodSeriesLength {
		n = moodSeriesLength
	}

	points := make([]dto.MoodPoint, n)
	for i := 0; i < n; i++ {
		points[n-1-i] = dto.MoodPoint{Date: entries[i].Date, Value: entries[i].Value}
	}
	return points
}
