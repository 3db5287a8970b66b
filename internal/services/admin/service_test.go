package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCache struct{}

func (stubCache) GetClient(context.Context, string) (*models.Client, error) {
	return nil, errors.New("cache miss")
}
func (stubCache) SetClient(context.Context, *models.Client) error { return nil }
func (stubCache) InvalidateClient(context.Context, string) error  { return nil }

func strPtr(v string) *string                        { return &v }
func cardTypePtr(v models.CardType) *models.CardType { return &v }

func seedPointsClient(t *testing.T, repo repositories.ClientRepository) *models.Client {
	t.Helper()
	points := 7
	visitPoints := 42
	bonus := 10
	client := &models.Client{
		ID:            uuid.NewString(),
		CardNumber:    "CARD123",
		FirstName:     "John",
		CardType:      models.CardTypePoints,
		Points:        &points,
		VisitPoints:   &visitPoints,
		BonusDiscount: &bonus,
		Membership:    models.MembershipGold,
		LastVisit:     time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(client))
	return client
}

func TestOverrideUpdate_PersonalFields(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo, stubCache{})
	seeded := seedPointsClient(t, repo)

	updated, err := svc.OverrideUpdate(context.Background(), seeded.ID, models.ClientUpdate{
		FirstName: strPtr("Johnny"),
		Company:   strPtr("New Corp"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Johnny", updated.FirstName)
	assert.Equal(t, "New Corp", updated.Company)
	// Untouched variant fields survive.
	assert.Equal(t, 7, *updated.Points)
	assert.Equal(t, models.MembershipGold, updated.Membership)
	// The visit timestamp is never touched on this path.
	assert.Equal(t, seeded.LastVisit, updated.LastVisit)
}

func TestOverrideUpdate_SwitchToGiftResetsFields(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo, stubCache{})
	seeded := seedPointsClient(t, repo)

	updated, err := svc.OverrideUpdate(context.Background(), seeded.ID, models.ClientUpdate{
		CardType: cardTypePtr(models.CardTypeGift),
	})
	require.NoError(t, err)

	assert.Equal(t, models.CardTypeGift, updated.CardType)
	assert.Nil(t, updated.Points)
	assert.Nil(t, updated.VisitPoints)
	assert.Nil(t, updated.BonusDiscount)
	assert.Equal(t, 0, *updated.Discount)
	require.NotNil(t, updated.Balance)
	assert.InDelta(t, 0, *updated.Balance, 0.001)
	assert.Equal(t, models.MembershipStandard, updated.Membership)
}

func TestOverrideUpdate_SwitchToPointsResetsBalance(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo, stubCache{})

	balance := 250.0
	client := &models.Client{
		ID:         uuid.NewString(),
		CardNumber: "GIFT456",
		CardType:   models.CardTypeGift,
		Balance:    &balance,
		Membership: models.MembershipStandard,
	}
	require.NoError(t, repo.Create(client))

	updated, err := svc.OverrideUpdate(context.Background(), client.ID, models.ClientUpdate{
		CardType: cardTypePtr(models.CardTypePoints),
	})
	require.NoError(t, err)

	assert.Equal(t, models.CardTypePoints, updated.CardType)
	assert.Nil(t, updated.Balance)
	assert.Equal(t, 0, *updated.Points)
	assert.Equal(t, 0, *updated.Discount)
}

func TestOverrideUpdate_ArbitraryValuesAccepted(t *testing.T) {
	// The override path skips the ledger's validation: an admin may set
	// values the guarded operations would reject.
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo, stubCache{})
	seeded := seedPointsClient(t, repo)

	points := 9999
	updated, err := svc.OverrideUpdate(context.Background(), seeded.ID, models.ClientUpdate{
		Points: &points,
	})
	require.NoError(t, err)
	assert.Equal(t, 9999, *updated.Points)
}

func TestOverrideUpdate_NotFound(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo, stubCache{})

	_, err := svc.OverrideUpdate(context.Background(), "missing", models.ClientUpdate{})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestDeleteClient(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo, stubCache{})
	seeded := seedPointsClient(t, repo)

	require.NoError(t, svc.DeleteClient(context.Background(), seeded.ID))

	_, err := repo.GetByID(seeded.ID)
	assert.ErrorIs(t, err, repositories.ErrClientNotFound)

	assert.ErrorIs(t, svc.DeleteClient(context.Background(), seeded.ID), ErrClientNotFound)
}
