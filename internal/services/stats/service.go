// Package stats derives read-only summaries from the card store for the
// admin dashboard. Nothing here mutates a record.
package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/repositories"
)

// DefaultTrendMonths is the window the dashboard chart shows.
const DefaultTrendMonths = 12

type Service interface {
	Overview(ctx context.Context) (*models.Overview, error)
	MonthlyTrends(ctx context.Context, months int) (*models.MonthlyTrends, error)
}

type service struct {
	repo   repositories.ClientRepository
	policy ActivityPolicy
	now    func() time.Time
}

// NewService creates a stats service with the given activity policy.
// A nil policy falls back to the historical DiscountCardPolicy.
func NewService(repo repositories.ClientRepository, policy ActivityPolicy) Service {
	if repo == nil {
		panic("repo is required")
	}
	if policy == nil {
		policy = DiscountCardPolicy{}
	}
	return &service{
		repo:   repo,
		policy: policy,
		now:    time.Now,
	}
}

func (s *service) Overview(ctx context.Context) (*models.Overview, error) {
	total, err := s.repo.CountClients()
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	active, totalPoints, err := s.activeTotals()
	if err != nil {
		return nil, err
	}

	var average int64
	if active > 0 {
		average = int64(math.Round(float64(totalPoints) / float64(active)))
	}

	return &models.Overview{
		TotalClients:  total,
		ActiveClients: active,
		TotalPoints:   totalPoints,
		AveragePoints: average,
	}, nil
}

// activeTotals computes the active-client count and their point total.
// The historical discount-card definition maps onto the store's card-type
// aggregates; any other policy needs the full roster.
func (s *service) activeTotals() (active, totalPoints int64, err error) {
	if _, ok := s.policy.(DiscountCardPolicy); ok {
		active, err = s.repo.CountClientsByCardType(models.CardTypeDiscount)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to count active clients: %w", err)
		}
		totalPoints, err = s.repo.SumPointsByCardType(models.CardTypeDiscount)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to sum points: %w", err)
		}
		return active, totalPoints, nil
	}

	clients, err := s.repo.List()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	for _, client := range clients {
		if !s.policy.Active(client) {
			continue
		}
		active++
		totalPoints += int64(client.CurrentPoints())
	}
	return active, totalPoints, nil
}

func (s *service) MonthlyTrends(ctx context.Context, months int) (*models.MonthlyTrends, error) {
	if months <= 0 {
		months = DefaultTrendMonths
	}

	now := s.now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -(months - 1), 0)

	registrations, err := s.repo.MonthlyRegistrationCounts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get registration trend: %w", err)
	}
	active, err := s.repo.MonthlyActiveCounts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity trend: %w", err)
	}

	return &models.MonthlyTrends{
		Registrations: fillMonths(registrations, since, months),
		ActiveUsers:   fillMonths(active, since, months),
	}, nil
}

// fillMonths expands sparse aggregate rows into a dense ascending series,
// with absent months shown as zero.
func fillMonths(rows []repositories.MonthCount, since time.Time, months int) []models.MonthBucket {
	counts := make(map[[2]int]int64, len(rows))
	for _, row := range rows {
		counts[[2]int{row.Year, row.Month}] = row.Count
	}

	series := make([]models.MonthBucket, 0, months)
	cursor := since
	for i := 0; i < months; i++ {
		year, month := cursor.Year(), int(cursor.Month())
		series = append(series, models.MonthBucket{
			Year:  year,
			Month: month,
			Count: counts[[2]int{year, month}],
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return series
}
