package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	to      string
	subject string
	body    string
	calls   int
	err     error
}

func (r *recordingSender) Send(ctx context.Context, to, subject, body string) error {
	r.calls++
	r.to = to
	r.subject = subject
	r.body = body
	return r.err
}

func intPtrT(v int) *int           { return &v }
func floatPtrT(v float64) *float64 { return &v }

func seedClient(t *testing.T, repo repositories.ClientRepository, client *models.Client) {
	t.Helper()
	client.ID = uuid.NewString()
	require.NoError(t, repo.Create(client))
}

func TestSendClientDetails_PointsCard(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	sender := &recordingSender{}
	svc := NewService(repo, sender)

	seedClient(t, repo, &models.Client{
		CardNumber:    "CARD123",
		CardType:      models.CardTypePoints,
		Email:         "anna@example.com",
		Points:        intPtrT(7),
		Discount:      intPtrT(5),
		BonusDiscount: intPtrT(10),
	})

	require.NoError(t, svc.SendClientDetails(context.Background(), "CARD123"))

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "anna@example.com", sender.to)
	assert.Contains(t, sender.body, "Card number: CARD123")
	assert.Contains(t, sender.body, "Points: 7")
	assert.Contains(t, sender.body, "Bonus discount: 10%")
	assert.NotContains(t, sender.body, "Balance")
}

func TestSendClientDetails_GiftCard(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	sender := &recordingSender{}
	svc := NewService(repo, sender)

	seedClient(t, repo, &models.Client{
		CardNumber: "GIFT200",
		CardType:   models.CardTypeGift,
		Email:      "bo@example.com",
		Balance:    floatPtrT(49.50),
	})

	require.NoError(t, svc.SendClientDetails(context.Background(), "GIFT200"))

	assert.Contains(t, sender.body, "Balance: 49.50")
	assert.NotContains(t, sender.body, "Points")
}

func TestSendClientDetails_NotFound(t *testing.T) {
	svc := NewService(repositories.NewMemoryClientRepository(), &recordingSender{})

	err := svc.SendClientDetails(context.Background(), "CARD999")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestSendClientDetails_NoEmail(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	sender := &recordingSender{}
	svc := NewService(repo, sender)

	seedClient(t, repo, &models.Client{
		CardNumber: "CARD300",
		CardType:   models.CardTypePoints,
		Points:     intPtrT(0),
	})

	err := svc.SendClientDetails(context.Background(), "CARD300")
	assert.ErrorIs(t, err, ErrNoEmailOnFile)
	assert.Zero(t, sender.calls)
}

func TestSendClientDetails_SenderFailure(t *testing.T) {
	repo := repositories.NewMemoryClientRepository()
	sender := &recordingSender{err: errors.New("smtp unavailable")}
	svc := NewService(repo, sender)

	seedClient(t, repo, &models.Client{
		CardNumber: "CARD400",
		CardType:   models.CardTypePoints,
		Email:      "cay@example.com",
		Points:     intPtrT(1),
	})

	err := svc.SendClientDetails(context.Background(), "CARD400")
	assert.EqualError(t, err, "smtp unavailable")
}
