package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
)

// memoryClientRepository is an in-memory ClientRepository. It backs the
// service tests and demo deployments without PostgreSQL.
type memoryClientRepository struct {
	mu      sync.RWMutex
	clients map[string]*models.Client       // keyed by id
	visits  map[string][]models.VisitRecord // keyed by client id
}

// NewMemoryClientRepository creates an empty in-memory card store.
func NewMemoryClientRepository() ClientRepository {
	return &memoryClientRepository{
		clients: make(map[string]*models.Client),
		visits:  make(map[string][]models.VisitRecord),
	}
}

func (r *memoryClientRepository) Create(client *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.clients {
		if existing.CardNumber == client.CardNumber {
			return ErrDuplicateCardNumber
		}
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now().UTC()
	}
	r.clients[client.ID] = cloneClient(client)
	return nil
}

func (r *memoryClientRepository) GetByID(id string) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[id]
	if !ok {
		return nil, ErrClientNotFound
	}
	return r.withHistory(client), nil
}

func (r *memoryClientRepository) GetByCardNumber(cardNumber string) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, client := range r.clients {
		if client.CardNumber == cardNumber {
			return r.withHistory(client), nil
		}
	}
	return nil, ErrClientNotFound
}

func (r *memoryClientRepository) Update(client *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[client.ID]; !ok {
		return ErrClientNotFound
	}
	r.clients[client.ID] = cloneClient(client)
	return nil
}

func (r *memoryClientRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return ErrClientNotFound
	}
	delete(r.clients, id)
	delete(r.visits, id)
	return nil
}

func (r *memoryClientRepository) List() ([]*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clients := make([]*models.Client, 0, len(r.clients))
	for _, client := range r.clients {
		clients = append(clients, r.withHistory(client))
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].CreatedAt.Before(clients[j].CreatedAt)
	})
	return clients, nil
}

func (r *memoryClientRepository) ExistsByCardNumber(cardNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, client := range r.clients {
		if client.CardNumber == cardNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryClientRepository) CreateVisit(visit *models.VisitRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.visits[visit.ClientID] = append(r.visits[visit.ClientID], *visit)
	return nil
}

func (r *memoryClientRepository) CountVisits(clientID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.visits[clientID])), nil
}

// ExecuteInTransaction runs fn against the same store. The in-memory
// implementation offers no rollback; it exists for interface parity.
func (r *memoryClientRepository) ExecuteInTransaction(fn func(ClientRepository) error) error {
	return fn(r)
}

func (r *memoryClientRepository) CountClients() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.clients)), nil
}

func (r *memoryClientRepository) CountClientsByCardType(cardType models.CardType) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, client := range r.clients {
		if client.CardType == cardType {
			count++
		}
	}
	return count, nil
}

func (r *memoryClientRepository) SumPointsByCardType(cardType models.CardType) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, client := range r.clients {
		if client.CardType == cardType && client.Points != nil {
			total += int64(*client.Points)
		}
	}
	return total, nil
}

func (r *memoryClientRepository) MonthlyRegistrationCounts(ctx context.Context, since time.Time) ([]MonthCount, error) {
	return r.monthlyCounts(since, func(c *models.Client) time.Time { return c.CreatedAt })
}

func (r *memoryClientRepository) MonthlyActiveCounts(ctx context.Context, since time.Time) ([]MonthCount, error) {
	return r.monthlyCounts(since, func(c *models.Client) time.Time { return c.LastVisit })
}

func (r *memoryClientRepository) monthlyCounts(since time.Time, at func(*models.Client) time.Time) ([]MonthCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[[2]int]int64)
	for _, client := range r.clients {
		ts := at(client)
		if ts.Before(since) {
			continue
		}
		counts[[2]int{ts.Year(), int(ts.Month())}]++
	}

	rows := make([]MonthCount, 0, len(counts))
	for key, count := range counts {
		rows = append(rows, MonthCount{Year: key[0], Month: key[1], Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})
	return rows, nil
}

// withHistory returns a copy with the visit history attached in
// timestamp order, matching the SQL repository's preload.
func (r *memoryClientRepository) withHistory(client *models.Client) *models.Client {
	out := cloneClient(client)
	history := append([]models.VisitRecord(nil), r.visits[client.ID]...)
	sort.Slice(history, func(i, j int) bool {
		return history[i].Timestamp.Before(history[j].Timestamp)
	})
	out.VisitHistory = history
	return out
}

func cloneClient(client *models.Client) *models.Client {
	out := *client
	out.VisitHistory = nil
	if client.Points != nil {
		v := *client.Points
		out.Points = &v
	}
	if client.VisitPoints != nil {
		v := *client.VisitPoints
		out.VisitPoints = &v
	}
	if client.Discount != nil {
		v := *client.Discount
		out.Discount = &v
	}
	if client.Balance != nil {
		v := *client.Balance
		out.Balance = &v
	}
	if client.BonusDiscount != nil {
		v := *client.BonusDiscount
		out.BonusDiscount = &v
	}
	return &out
}
