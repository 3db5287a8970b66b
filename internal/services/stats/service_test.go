package stats

import (
	"context"
	"testing"
	"time"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtrT(v int) *int { return &v }

func seedRoster(t *testing.T, repo repositories.ClientRepository) {
	t.Helper()
	now := time.Now().UTC()

	fixtures := []*models.Client{
		{
			CardNumber: "CARD100",
			CardType:   models.CardTypePoints,
			Points:     intPtrT(7),
			LastVisit:  now,
		},
		{
			CardNumber: "DISC101",
			CardType:   models.CardTypeDiscount,
			Points:     intPtrT(10),
			LastVisit:  now.AddDate(0, -2, 0),
		},
		{
			CardNumber: "DISC102",
			CardType:   models.CardTypeDiscount,
			Points:     intPtrT(5),
			LastVisit:  now,
		},
		{
			CardNumber: "GIFT103",
			CardType:   models.CardTypeGift,
			LastVisit:  now,
		},
	}
	for _, client := range fixtures {
		client.ID = uuid.NewString()
		require.NoError(t, repo.Create(client))
	}
}

func TestOverview_DiscountCardPolicy(t *testing.T) {
	// The historical active-client definition: discount cards only.
	repo := repositories.NewMemoryClientRepository()
	seedRoster(t, repo)
	svc := NewService(repo, DiscountCardPolicy{})

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), overview.TotalClients)
	assert.Equal(t, int64(2), overview.ActiveClients)
	assert.Equal(t, int64(15), overview.TotalPoints)
	assert.Equal(t, int64(8), overview.AveragePoints) // round(15/2)
}

// scanDiscountPolicy classifies like DiscountCardPolicy but forces the
// roster-scan path in Overview.
type scanDiscountPolicy struct{}

func (scanDiscountPolicy) Name() string { return "scan-discount-cards" }
func (scanDiscountPolicy) Active(client *models.Client) bool {
	return client.CardType == models.CardTypeDiscount
}

func TestOverview_AggregatePathMatchesScan(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	seedRoster(t, repo)

	aggregated, err := NewService(repo, DiscountCardPolicy{}).Overview(context.Background())
	require.NoError(t, err)
	scanned, err := NewService(repo, scanDiscountPolicy{}).Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, scanned, aggregated)
}

func TestOverview_RecentVisitPolicy(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	seedRoster(t, repo)
	svc := NewService(repo, RecentVisitPolicy{Window: 30 * 24 * time.Hour})

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	// One discount card visited two months ago and drops out; the
	// points and gift cards visited today count in.
	assert.Equal(t, int64(3), overview.ActiveClients)
}

func TestOverview_EmptyStore(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo, nil)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), overview.TotalClients)
	assert.Equal(t, int64(0), overview.ActiveClients)
	assert.Equal(t, int64(0), overview.AveragePoints)
}

func TestMonthlyTrends_ZeroFilledAscending(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()

	reg := func(createdAt, lastVisit time.Time) {
		require.NoError(t, repo.Create(&models.Client{
			ID:         uuid.NewString(),
			CardNumber: "CARD" + uuid.NewString()[:8],
			CardType:   models.CardTypePoints,
			CreatedAt:  createdAt,
			LastVisit:  lastVisit,
		}))
	}

	jan := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	reg(jan, mar)
	reg(jan, jan)
	reg(mar, mar)

	svc := NewService(repo, nil).(*service)
	svc.now = func() time.Time {
		return time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)
	}

	trends, err := svc.MonthlyTrends(context.Background(), 4)
	require.NoError(t, err)

	require.Len(t, trends.Registrations, 4)
	require.Len(t, trends.ActiveUsers, 4)

	// January through April, ascending, gaps as zero.
	wantMonths := []int{1, 2, 3, 4}
	wantRegs := []int64{2, 0, 1, 0}
	wantActive := []int64{1, 0, 2, 0}
	for i, bucket := range trends.Registrations {
		assert.Equal(t, 2025, bucket.Year)
		assert.Equal(t, wantMonths[i], bucket.Month)
		assert.Equal(t, wantRegs[i], bucket.Count)
	}
	for i, bucket := range trends.ActiveUsers {
		assert.Equal(t, wantMonths[i], bucket.Month)
		assert.Equal(t, wantActive[i], bucket.Count)
	}
}
