package registration

import (
	"context"
	"regexp"
	"testing"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedNumberPattern = regexp.MustCompile(`^CARD\d{4}$`)

func floatPtrT(v float64) *float64 { return &v }

func TestRegister_GiftCardDefaults(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo)

	client, err := svc.Register(context.Background(), models.ClientRegistration{
		FirstName:      "Alice",
		LastName:       "Johnson",
		CardType:       models.CardTypeGift,
		InitialBalance: floatPtrT(100),
	})
	require.NoError(t, err)

	assert.InDelta(t, 100, *client.Balance, 0.001)
	assert.Nil(t, client.Points)
	assert.Equal(t, models.MembershipStandard, client.Membership)
	assert.Regexp(t, generatedNumberPattern, client.CardNumber)
	assert.Empty(t, client.VisitHistory)
	assert.NotEmpty(t, client.ID)
}

func TestRegister_GiftCardForcesStandardMembership(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo)

	client, err := svc.Register(context.Background(), models.ClientRegistration{
		CardType:   models.CardTypeGift,
		Membership: models.MembershipGold,
	})
	require.NoError(t, err)

	assert.Equal(t, models.MembershipStandard, client.Membership)
	assert.InDelta(t, 0, *client.Balance, 0.001)
}

func TestRegister_PointsCardDefaults(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo)

	points := 5
	client, err := svc.Register(context.Background(), models.ClientRegistration{
		CardType:      models.CardTypePoints,
		InitialPoints: &points,
		Membership:    models.MembershipGold,
		CardNumber:    "CARD123",
	})
	require.NoError(t, err)

	assert.Equal(t, "CARD123", client.CardNumber)
	assert.Equal(t, 5, *client.Points)
	assert.Equal(t, 0, *client.Discount)
	assert.Nil(t, client.Balance)
	assert.Equal(t, models.MembershipGold, client.Membership)
}

func TestRegister_DiscountCardDefaults(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo)

	discount := 15
	client, err := svc.Register(context.Background(), models.ClientRegistration{
		CardType: models.CardTypeDiscount,
		Discount: &discount,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, *client.Discount)
	assert.Equal(t, 0, *client.Points)
	assert.Nil(t, client.Balance)
	assert.Equal(t, models.MembershipStandard, client.Membership)
}

func TestRegister_DuplicateCardNumber(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo)

	require.NoError(t, repo.Create(&models.Client{
		ID:         uuid.NewString(),
		CardNumber: "CARD123",
		CardType:   models.CardTypePoints,
	}))

	_, err := svc.Register(context.Background(), models.ClientRegistration{
		CardType:   models.CardTypePoints,
		CardNumber: "CARD123",
	})
	assert.ErrorIs(t, err, ErrDuplicateCardNumber)
}

func TestRegister_InvalidCardType(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), models.ClientRegistration{
		CardType: models.CardType("platinum"),
	})
	assert.ErrorIs(t, err, ErrInvalidCardType)
}

func TestRegister_GeneratedNumbersAvoidCollisions(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	svc := NewService(repo)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		client, err := svc.Register(context.Background(), models.ClientRegistration{
			CardType: models.CardTypePoints,
		})
		require.NoError(t, err)
		assert.Regexp(t, generatedNumberPattern, client.CardNumber)
		assert.False(t, seen[client.CardNumber], "issued a duplicate card number")
		seen[client.CardNumber] = true
	}
}
