// Package registration issues new loyalty cards: it allocates card
// numbers and constructs initial records with type-appropriate defaults.
package registration

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrDuplicateCardNumber = errors.New("card number already in use")
	ErrCardNumberSpace     = errors.New("could not allocate a free card number")
	ErrInvalidCardType     = errors.New("invalid card type")
)

const (
	cardNumberPrefix = "CARD"

	// Generated numbers are 4 zero-padded digits behind the prefix.
	generateAttempts = 10
)

// Service is the registration issuer.
type Service interface {
	Register(ctx context.Context, input models.ClientRegistration) (*models.Client, error)
}

type service struct {
	repo repositories.ClientRepository
	rand *rand.Rand
}

// NewService creates a new registration service.
func NewService(repo repositories.ClientRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{
		repo: repo,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *service) Register(ctx context.Context, input models.ClientRegistration) (*models.Client, error) {
	switch input.CardType {
	case models.CardTypePoints, models.CardTypeDiscount, models.CardTypeGift:
	default:
		return nil, ErrInvalidCardType
	}

	cardNumber := input.CardNumber
	if cardNumber != "" {
		taken, err := s.repo.ExistsByCardNumber(cardNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to check card number: %w", err)
		}
		if taken {
			return nil, ErrDuplicateCardNumber
		}
	} else {
		generated, err := s.generateCardNumber()
		if err != nil {
			return nil, err
		}
		cardNumber = generated
	}

	now := time.Now().UTC()
	client := &models.Client{
		ID:          uuid.NewString(),
		CardNumber:  cardNumber,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		Gender:      input.Gender,
		DateOfBirth: input.DateOfBirth,
		Company:     input.Company,
		CardType:    input.CardType,
		LastVisit:   now,
	}

	if input.CardType == models.CardTypeGift {
		// Gift cards carry stored value only: no points, a zeroed
		// discount and a forced Standard membership.
		balance := 0.0
		if input.InitialBalance != nil {
			balance = *input.InitialBalance
		}
		client.Balance = &balance
		client.Discount = intPtr(0)
		client.Membership = models.MembershipStandard
	} else {
		points := 0
		if input.InitialPoints != nil {
			points = *input.InitialPoints
		}
		client.Points = &points

		discount := 0
		if input.Discount != nil {
			discount = *input.Discount
		}
		client.Discount = &discount

		client.Membership = input.Membership
		if client.Membership == "" {
			client.Membership = models.MembershipStandard
		}
	}

	if err := s.repo.Create(client); err != nil {
		if errors.Is(err, repositories.ErrDuplicateCardNumber) {
			return nil, ErrDuplicateCardNumber
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// generateCardNumber allocates a free system-generated number, retrying a
// bounded number of times on collision.
func (s *service) generateCardNumber() (string, error) {
	for i := 0; i < generateAttempts; i++ {
		candidate := fmt.Sprintf("%s%04d", cardNumberPrefix, s.rand.Intn(10000))
		taken, err := s.repo.ExistsByCardNumber(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check card number: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrCardNumberSpace
}

func intPtr(v int) *int {
	return &v
}
