package stats

import (
	"time"

	"github.com/vkolotikov/loyalty-bolt/internal/models"
)

// ActivityPolicy decides which clients count as "active" for the
// dashboard summary. The predicate is named and swappable because the
// historical definition is disputed; see DiscountCardPolicy.
type ActivityPolicy interface {
	Name() string
	Active(client *models.Client) bool
}

// DiscountCardPolicy reproduces the historical behavior: only
// discount-type cards count as active. This looks like a latent defect
// rather than intended domain semantics, but it is the behavior the
// dashboard has always shown, so it stays the default.
type DiscountCardPolicy struct{}

func (DiscountCardPolicy) Name() string { return "discount-cards" }

func (DiscountCardPolicy) Active(client *models.Client) bool {
	return client.CardType == models.CardTypeDiscount
}

// RecentVisitPolicy counts clients of any card type whose last confirmed
// visit falls within the window.
type RecentVisitPolicy struct {
	Window time.Duration
	Now    func() time.Time
}

func (RecentVisitPolicy) Name() string { return "recent-visit" }

func (p RecentVisitPolicy) Active(client *models.Client) bool {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return now().Sub(client.LastVisit) <= p.Window
}
