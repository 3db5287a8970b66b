package ledger

import (
	"context"
	"time"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
)

// Service is the card ledger: the guarded mutation paths for a client
// record. Operations on the same card number are serialized internally;
// operations across different cards proceed in parallel.
type Service interface {
	GetClient(ctx context.Context, cardNumber string) (*models.Client, error)

	// ConfirmVisit appends a visit, advances the points cycle and grants
	// the milestone bonus where applicable.
	ConfirmVisit(ctx context.Context, cardNumber string) (*models.Client, *models.VisitRecord, error)

	// RedeemPoints spends cycle points on a points card. Not a visit.
	RedeemPoints(ctx context.Context, cardNumber string, amount int) (*models.Client, error)

	// UseBalance spends stored value on a gift card.
	UseBalance(ctx context.Context, cardNumber string, amount float64) (*models.Client, error)

	// AdjustBalance applies a signed delta to a gift card (admin top-ups).
	// The non-negativity invariant holds regardless of sign.
	AdjustBalance(ctx context.Context, cardNumber string, delta float64) (*models.Client, error)

	// ConsumeBonusDiscount clears a pending milestone bonus. Calling it
	// again without a new milestone fails with ErrNoBonusAvailable.
	ConsumeBonusDiscount(ctx context.Context, cardNumber string) (*models.Client, error)
}

// Config holds the reward rules for ledger operations.
type Config struct {
	PointsCycleLimit    int
	MilestoneInterval   int
	BonusDiscountReward int
}

// CacheOperator defines the caching operations the ledger needs.
type CacheOperator interface {
	GetClient(ctx context.Context, cardNumber string) (*models.Client, error)
	SetClient(ctx context.Context, client *models.Client) error
	InvalidateClient(ctx context.Context, cardNumber string) error
}

// MetricsCollector defines the interface for collecting ledger metrics.
type MetricsCollector interface {
	RecordOperationDuration(operation string, duration time.Duration)
	RecordMutation(operation string, amount float64)
	RecordError(operation, errType string)
	RecordCacheHit(key string)
	RecordCacheMiss(key string)
}
