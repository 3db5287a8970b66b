// Package notify delivers a card summary to the email address on file.
// The kiosk fires it after a successful scan; the back office can trigger
// it per client from the roster.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/repositories"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrNoEmailOnFile  = errors.New("client has no email address on file")
)

// Sender delivers a single message. Implementations wrap a mail provider.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender writes deliveries to the process log. It stands in for a
// provider-backed sender in development and demo deployments.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, subject, body string) error {
	log.Printf("details sent to %s", to)
	return nil
}

type Service interface {
	SendClientDetails(ctx context.Context, cardNumber string) error
}

type service struct {
	repo   repositories.ClientRepository
	sender Sender
}

// NewService creates a new details-dispatch service. A nil sender falls
// back to the log-backed one.
func NewService(repo repositories.ClientRepository, sender Sender) Service {
	if repo == nil {
		panic("repo is required")
	}
	if sender == nil {
		sender = LogSender{}
	}
	return &service{
		repo:   repo,
		sender: sender,
	}
}

func (s *service) SendClientDetails(ctx context.Context, cardNumber string) error {
	client, err := s.repo.GetByCardNumber(cardNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to get client: %w", err)
	}

	if client.Email == "" {
		return ErrNoEmailOnFile
	}

	return s.sender.Send(ctx, client.Email, "Your loyalty card details", detailsBody(client))
}

// detailsBody renders the fields legal for the card's type.
func detailsBody(client *models.Client) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Card number: %s\n", client.CardNumber)
	fmt.Fprintf(&b, "Card type: %s\n", client.CardType)

	switch client.CardType {
	case models.CardTypeGift:
		fmt.Fprintf(&b, "Balance: %.2f\n", client.CurrentBalance())
	default:
		fmt.Fprintf(&b, "Points: %d\n", client.CurrentPoints())
		if client.Discount != nil {
			fmt.Fprintf(&b, "Discount: %d%%\n", *client.Discount)
		}
	}

	if client.HasBonusDiscount() {
		fmt.Fprintf(&b, "Bonus discount: %d%%\n", *client.BonusDiscount)
	}
	return b.String()
}
