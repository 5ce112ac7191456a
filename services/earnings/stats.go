package earnings

import (
	"context"
	"time"

	"tutorly/models"
)

// Summary is the earnings overview shown on the dashboard.
type Summary struct {
	Total             float64 `json:"total"`
	ThisMonth         float64 `json:"thisMonth"`
	ThisWeek          float64 `json:"thisWeek"`
	AverageHourlyRate float64 `json:"averageHourlyRate"`
}

func (s *DefaultEarningsService) Summary(ctx context.Context, now time.Time) Summary {
	txs := s.Repo.Transactions(ctx)
	return Summary{
		Total:             TotalEarnings(txs),
		ThisMonth:         EarningsForMonth(txs, now.Year(), now.Month()),
		ThisWeek:          EarningsForWeek(txs, WeekStart(now)),
		AverageHourlyRate: AverageHourlyRate(txs),
	}
}

func TotalEarnings(txs []models.Transaction) float64 {
	var sum float64
	for _, t := range txs {
		sum += t.Amount
	}
	return sum
}

func EarningsForMonth(txs []models.Transaction, year int, month time.Month) float64 {
	var sum float64
	for _, t := range txs {
		d, err := time.Parse(models.DateLayout, t.Date)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			sum += t.Amount
		}
	}
	return sum
}

// WeekStart is the Monday midnight opening the week containing t.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -models.DayOfWeek(day))
}

// EarningsForWeek sums transactions dated Monday through Sunday of the week
// opening at weekStart.
func EarningsForWeek(txs []models.Transaction, weekStart time.Time) float64 {
	weekEnd := weekStart.AddDate(0, 0, 7)
	var sum float64
	for _, t := range txs {
		d, err := time.ParseInLocation(models.DateLayout, t.Date, weekStart.Location())
		if err != nil {
			continue
		}
		if !d.Before(weekStart) && d.Before(weekEnd) {
			sum += t.Amount
		}
	}
	return sum
}

// AverageHourlyRate is total earnings over total billed hours; zero when no
// hours have been billed.
func AverageHourlyRate(txs []models.Transaction) float64 {
	var hours float64
	for _, t := range txs {
		hours += t.Duration
	}
	if hours <= 0 {
		return 0
	}
	return TotalEarnings(txs) / hours
}
