package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
	"github.com/vkolotikov/loyalty-bolt/internal/repositories"

	"github.com/google/uuid"
)

type service struct {
	repo    repositories.ClientRepository
	cache   CacheOperator
	config  Config
	metrics MetricsCollector
	locks   *cardLocks
}

// NewService creates a new ledger service.
func NewService(
	repo repositories.ClientRepository,
	cache CacheOperator,
	config Config,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}

	if config.PointsCycleLimit == 0 {
		config.PointsCycleLimit = DefaultPointsCycleLimit
	}
	if config.MilestoneInterval == 0 {
		config.MilestoneInterval = DefaultMilestoneInterval
	}
	if config.BonusDiscountReward == 0 {
		config.BonusDiscountReward = DefaultBonusDiscountReward
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		repo:    repo,
		cache:   cache,
		config:  config,
		metrics: metrics,
		locks:   newCardLocks(),
	}
}

func (s *service) GetClient(ctx context.Context, cardNumber string) (*models.Client, error) {
	// Try cache first
	if client, err := s.cache.GetClient(ctx, cardNumber); err == nil {
		s.metrics.RecordCacheHit(cardNumber)
		return client, nil
	}
	s.metrics.RecordCacheMiss(cardNumber)

	client, err := s.repo.GetByCardNumber(cardNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	s.cache.SetClient(ctx, client)
	return client, nil
}

// ConfirmVisit is the only mutation path that grows the visit history;
// all milestone and cycle logic is anchored here.
func (s *service) ConfirmVisit(ctx context.Context, cardNumber string) (*models.Client, *models.VisitRecord, error) {
	defer s.locks.lock(cardNumber)()
	start := time.Now()

	client, err := s.getForUpdate(cardNumber)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	visit := &models.VisitRecord{
		ID:        uuid.NewString(),
		ClientID:  client.ID,
		Timestamp: now,
	}

	if client.CardType == models.CardTypePoints {
		// The cycle resets on the visit after the counter reaches the
		// limit, not on the visit that reaches it.
		next := client.CurrentPoints() + 1
		if client.CurrentPoints() >= s.config.PointsCycleLimit {
			next = 0
		}
		client.Points = intPtr(next)

		lifetime := 0
		if client.VisitPoints != nil {
			lifetime = *client.VisitPoints
		}
		client.VisitPoints = intPtr(lifetime + 1)

		visit.PointsEarned = intPtr(1)
		visit.TotalPoints = intPtr(next)
	}

	// Milestones count persisted visits, not the preloaded slice.
	priorVisits, err := s.repo.CountVisits(client.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count visits: %w", err)
	}
	visitNumber := int(priorVisits) + 1
	if visitNumber%s.config.MilestoneInterval == 0 &&
		(client.CardType == models.CardTypePoints || client.CardType == models.CardTypeDiscount) {
		client.BonusDiscount = intPtr(s.config.BonusDiscountReward)
	}

	client.LastVisit = now

	err = s.repo.ExecuteInTransaction(func(tx repositories.ClientRepository) error {
		if err := tx.CreateVisit(visit); err != nil {
			return err
		}
		return tx.Update(client)
	})
	if err != nil {
		s.metrics.RecordError("confirm_visit", err.Error())
		return nil, nil, ErrOperationFailed
	}

	client.VisitHistory = append(client.VisitHistory, *visit)

	s.cache.InvalidateClient(ctx, cardNumber)
	s.metrics.RecordMutation("confirm_visit", 1)
	s.metrics.RecordOperationDuration("confirm_visit", time.Since(start))

	return client, visit, nil
}

func (s *service) RedeemPoints(ctx context.Context, cardNumber string, amount int) (*models.Client, error) {
	defer s.locks.lock(cardNumber)()

	client, err := s.getForUpdate(cardNumber)
	if err != nil {
		return nil, err
	}

	if client.CardType != models.CardTypePoints {
		return nil, ErrWrongCardType
	}
	if amount <= 0 {
		s.metrics.RecordError("redeem_points", "invalid_amount")
		return nil, ErrInvalidAmount
	}
	if amount > client.CurrentPoints() {
		s.metrics.RecordError("redeem_points", "insufficient_funds")
		return nil, ErrInsufficientFunds
	}

	// Redemption is not a visit: the lifetime counter and the visit
	// history stay untouched.
	client.Points = intPtr(client.CurrentPoints() - amount)

	if err := s.persist(ctx, client); err != nil {
		s.metrics.RecordError("redeem_points", err.Error())
		return nil, ErrOperationFailed
	}

	s.metrics.RecordMutation("redeem_points", float64(amount))
	return client, nil
}

func (s *service) UseBalance(ctx context.Context, cardNumber string, amount float64) (*models.Client, error) {
	defer s.locks.lock(cardNumber)()

	client, err := s.getForUpdate(cardNumber)
	if err != nil {
		return nil, err
	}

	if client.CardType != models.CardTypeGift {
		return nil, ErrWrongCardType
	}
	if amount <= 0 {
		s.metrics.RecordError("use_balance", "invalid_amount")
		return nil, ErrInvalidAmount
	}
	if client.CurrentBalance()-amount < 0 {
		s.metrics.RecordError("use_balance", "insufficient_funds")
		return nil, ErrInsufficientFunds
	}

	client.Balance = floatPtr(client.CurrentBalance() - amount)

	if err := s.persist(ctx, client); err != nil {
		s.metrics.RecordError("use_balance", err.Error())
		return nil, ErrOperationFailed
	}

	s.metrics.RecordMutation("use_balance", amount)
	return client, nil
}

func (s *service) AdjustBalance(ctx context.Context, cardNumber string, delta float64) (*models.Client, error) {
	defer s.locks.lock(cardNumber)()

	client, err := s.getForUpdate(cardNumber)
	if err != nil {
		return nil, err
	}

	if client.CardType != models.CardTypeGift {
		return nil, ErrWrongCardType
	}
	if delta == 0 {
		return nil, ErrInvalidAmount
	}
	if client.CurrentBalance()+delta < 0 {
		s.metrics.RecordError("adjust_balance", "insufficient_funds")
		return nil, ErrInsufficientFunds
	}

	client.Balance = floatPtr(client.CurrentBalance() + delta)

	if err := s.persist(ctx, client); err != nil {
		s.metrics.RecordError("adjust_balance", err.Error())
		return nil, ErrOperationFailed
	}

	s.metrics.RecordMutation("adjust_balance", delta)
	return client, nil
}

func (s *service) ConsumeBonusDiscount(ctx context.Context, cardNumber string) (*models.Client, error) {
	defer s.locks.lock(cardNumber)()

	client, err := s.getForUpdate(cardNumber)
	if err != nil {
		return nil, err
	}

	if client.CardType != models.CardTypePoints && client.CardType != models.CardTypeDiscount {
		return nil, ErrWrongCardType
	}
	if !client.HasBonusDiscount() {
		s.metrics.RecordError("consume_bonus", "no_bonus_available")
		return nil, ErrNoBonusAvailable
	}

	client.BonusDiscount = nil

	if err := s.persist(ctx, client); err != nil {
		s.metrics.RecordError("consume_bonus", err.Error())
		return nil, ErrOperationFailed
	}

	s.metrics.RecordMutation("consume_bonus", 1)
	return client, nil
}

// getForUpdate always reads from the store, never the cache: mutations
// must compute from the persisted snapshot.
func (s *service) getForUpdate(cardNumber string) (*models.Client, error) {
	client, err := s.repo.GetByCardNumber(cardNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (s *service) persist(ctx context.Context, client *models.Client) error {
	if err := s.repo.Update(client); err != nil {
		return err
	}
	s.cache.InvalidateClient(ctx, client.CardNumber)
	return nil
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
