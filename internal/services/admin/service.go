// Package admin implements back-office roster management. The override
// update path deliberately bypasses the ledger's amount and sign
// validation; only the card-type reset rule is applied.
package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/repositories"
	"github.com/vkolotikov/loyalty-bolt/internal/services/ledger"
)

var ErrClientNotFound = errors.New("client not found")

type Service interface {
	ListClients(ctx context.Context) ([]*models.Client, error)
	GetClient(ctx context.Context, id string) (*models.Client, error)

	// OverrideUpdate applies a direct field edit outside the guarded
	// ledger operations. Arbitrary values are accepted.
	OverrideUpdate(ctx context.Context, id string, update models.ClientUpdate) (*models.Client, error)

	DeleteClient(ctx context.Context, id string) error
}

type service struct {
	repo  repositories.ClientRepository
	cache ledger.CacheOperator
}

func NewService(repo repositories.ClientRepository, cache ledger.CacheOperator) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	return &service{
		repo:  repo,
		cache: cache,
	}
}

func (s *service) ListClients(ctx context.Context) ([]*models.Client, error) {
	clients, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *service) GetClient(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *service) OverrideUpdate(ctx context.Context, id string, update models.ClientUpdate) (*models.Client, error) {
	client, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	applyPersonalFields(client, update)

	if update.CardType != nil {
		client.CardType = *update.CardType
	}

	// Type reset rule: after a card type switch the record exposes only
	// the fields legal for the final type. The visit timestamp is never
	// touched on this path.
	if client.CardType == models.CardTypeGift {
		if update.Balance != nil {
			client.Balance = update.Balance
		}
		if client.Balance == nil {
			client.Balance = floatPtr(0)
		}
		client.Points = nil
		client.VisitPoints = nil
		client.Discount = intPtr(0)
		client.BonusDiscount = nil
		client.Membership = models.MembershipStandard
	} else {
		if update.Points != nil {
			client.Points = update.Points
		}
		if client.Points == nil {
			client.Points = intPtr(0)
		}
		if update.Discount != nil {
			client.Discount = update.Discount
		}
		if client.Discount == nil {
			client.Discount = intPtr(0)
		}
		client.Balance = nil
		if update.Membership != nil {
			client.Membership = *update.Membership
		}
		if client.Membership == "" {
			client.Membership = models.MembershipStandard
		}
	}

	if err := s.repo.Update(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	s.cache.InvalidateClient(ctx, client.CardNumber)
	return client, nil
}

func (s *service) DeleteClient(ctx context.Context, id string) error {
	client, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to get client: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}

	s.cache.InvalidateClient(ctx, client.CardNumber)
	return nil
}

func applyPersonalFields(client *models.Client, update models.ClientUpdate) {
	if update.FirstName != nil {
		client.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		client.LastName = *update.LastName
	}
	if update.Email != nil {
		client.Email = *update.Email
	}
	if update.Phone != nil {
		client.Phone = *update.Phone
	}
	if update.Gender != nil {
		client.Gender = *update.Gender
	}
	if update.DateOfBirth != nil {
		client.DateOfBirth = *update.DateOfBirth
	}
	if update.Company != nil {
		client.Company = *update.Company
	}
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
