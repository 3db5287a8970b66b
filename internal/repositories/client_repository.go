package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
)

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrDuplicateCardNumber = errors.New("card number already in use")
	ErrInvalidClientData   = errors.New("invalid client data")
)

// MonthCount is one month's aggregate row.
type MonthCount struct {
	Year  int
	Month int
	Count int64
}

// ClientRepository defines the data access surface for the card store.
// The ledger and issuer receive it by construction; nothing outside this
// package touches the database directly.
type ClientRepository interface {
	// Core record operations
	Create(client *models.Client) error
	GetByID(id string) (*models.Client, error)
	GetByCardNumber(cardNumber string) (*models.Client, error)
	Update(client *models.Client) error
	Delete(id string) error
	List() ([]*models.Client, error)
	ExistsByCardNumber(cardNumber string) (bool, error)

	// Visit history
	CreateVisit(visit *models.VisitRecord) error
	CountVisits(clientID string) (int64, error)

	// Batch operations
	ExecuteInTransaction(fn func(ClientRepository) error) error

	// Analytics and reporting
	CountClients() (int64, error)
	CountClientsByCardType(cardType models.CardType) (int64, error)
	SumPointsByCardType(cardType models.CardType) (int64, error)
	MonthlyRegistrationCounts(ctx context.Context, since time.Time) ([]MonthCount, error)
	MonthlyActiveCounts(ctx context.Context, since time.Time) ([]MonthCount, error)
}

// AdminRepository defines data access for back-office accounts.
type AdminRepository interface {
	Create(admin *models.AdminUser) error
	GetByID(id uint) (*models.AdminUser, error)
	GetByUsername(username string) (*models.AdminUser, error)
	Update(admin *models.AdminUser) error
	IncrementTokenVersion(id uint) error
}
