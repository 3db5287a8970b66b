package repositories

import (
	"testing"
	"time"

	"github.com/vkolotikov/loyalty-bolt/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtrT(v int) *int { return &v }

func seedStore(t *testing.T, repo ClientRepository) *models.Client {
	t.Helper()

	fixtures := []*models.Client{
		{CardNumber: "CARD100", CardType: models.CardTypePoints, Points: intPtrT(7)},
		{CardNumber: "DISC101", CardType: models.CardTypeDiscount, Points: intPtrT(10)},
		{CardNumber: "DISC102", CardType: models.CardTypeDiscount, Points: intPtrT(5)},
		{CardNumber: "GIFT103", CardType: models.CardTypeGift},
	}
	for _, client := range fixtures {
		client.ID = uuid.NewString()
		require.NoError(t, repo.Create(client))
	}
	return fixtures[0]
}

func TestCountClientsByCardType(t *testing.T) {
	repo := NewMemoryClientRepository()
	seedStore(t, repo)

	discount, err := repo.CountClientsByCardType(models.CardTypeDiscount)
	require.NoError(t, err)
	assert.Equal(t, int64(2), discount)

	gift, err := repo.CountClientsByCardType(models.CardTypeGift)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gift)
}

func TestSumPointsByCardType(t *testing.T) {
	repo := NewMemoryClientRepository()
	seedStore(t, repo)

	total, err := repo.SumPointsByCardType(models.CardTypeDiscount)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)

	// Gift cards carry no point counters and sum to zero.
	total, err = repo.SumPointsByCardType(models.CardTypeGift)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestCountVisits(t *testing.T) {
	repo := NewMemoryClientRepository()
	client := seedStore(t, repo)

	count, err := repo.CountVisits(client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateVisit(&models.VisitRecord{
			ID:        uuid.NewString(),
			ClientID:  client.ID,
			Timestamp: time.Now().UTC(),
		}))
	}

	count, err = repo.CountVisits(client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
