package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vkolotikov/loyalty-bolt/internal/models"

	"gorm.io/gorm"
)

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{
		db: db,
	}
}

func (r *clientRepository) Create(client *models.Client) error {
	result := r.db.Create(client)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCardNumber
		}
		return fmt.Errorf("failed to create client: %w", result.Error)
	}
	return nil
}

func (r *clientRepository) GetByID(id string) (*models.Client, error) {
	var client models.Client
	err := r.db.Preload("VisitHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("timestamp ASC")
	}).First(&client, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func (r *clientRepository) GetByCardNumber(cardNumber string) (*models.Client, error) {
	var client models.Client
	err := r.db.Preload("VisitHistory", func(db *gorm.DB) *gorm.DB {
		return db.Order("timestamp ASC")
	}).Where("card_number = ?", cardNumber).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &client, nil
}

func (r *clientRepository) Update(client *models.Client) error {
	// Save skips nil pointer fields, so cleared variant fields must be
	// written explicitly. Select forces the full column set.
	result := r.db.Model(client).
		Select("*").
		Omit("VisitHistory", "created_at").
		Updates(client)
	if result.Error != nil {
		return fmt.Errorf("failed to update client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) Delete(id string) error {
	result := r.db.Delete(&models.Client{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete client: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) List() ([]*models.Client, error) {
	var clients []*models.Client
	if err := r.db.Order("created_at ASC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (r *clientRepository) ExistsByCardNumber(cardNumber string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Client{}).
		Where("card_number = ?", cardNumber).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check card number: %w", err)
	}
	return count > 0, nil
}

func (r *clientRepository) CreateVisit(visit *models.VisitRecord) error {
	if err := r.db.Create(visit).Error; err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

func (r *clientRepository) CountVisits(clientID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.VisitRecord{}).
		Where("client_id = ?", clientID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return count, nil
}

func (r *clientRepository) ExecuteInTransaction(fn func(ClientRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &clientRepository{db: tx}
		return fn(txRepo)
	})
}

func (r *clientRepository) CountClients() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Client{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return count, nil
}

func (r *clientRepository) CountClientsByCardType(cardType models.CardType) (int64, error) {
	var count int64
	err := r.db.Model(&models.Client{}).
		Where("card_type = ?", cardType).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count clients by card type: %w", err)
	}
	return count, nil
}

func (r *clientRepository) SumPointsByCardType(cardType models.CardType) (int64, error) {
	var total int64
	err := r.db.Model(&models.Client{}).
		Where("card_type = ?", cardType).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum points: %w", err)
	}
	return total, nil
}

func (r *clientRepository) MonthlyRegistrationCounts(ctx context.Context, since time.Time) ([]MonthCount, error) {
	return r.monthlyCounts(ctx, "created_at", since)
}

func (r *clientRepository) MonthlyActiveCounts(ctx context.Context, since time.Time) ([]MonthCount, error) {
	return r.monthlyCounts(ctx, "last_visit", since)
}

func (r *clientRepository) monthlyCounts(ctx context.Context, column string, since time.Time) ([]MonthCount, error) {
	var rows []MonthCount
	err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Select(fmt.Sprintf(
			"EXTRACT(YEAR FROM %s)::int AS year, EXTRACT(MONTH FROM %s)::int AS month, COUNT(*) AS count",
			column, column)).
		Where(column+" >= ?", since).
		Group("year, month").
		Order("year ASC, month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly counts: %w", err)
	}
	return rows, nil
}
