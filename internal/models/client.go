package models

import (
	"time"
)

// CardType identifies the loyalty card variant. It is fixed at
// registration; only the administrative override path may reassign it.
type CardType string

const (
	CardTypePoints   CardType = "points"
	CardTypeDiscount CardType = "discount"
	CardTypeGift     CardType = "gift"
)

// Membership tiers.
const (
	MembershipStandard = "Standard"
	MembershipGold     = "Gold"
	MembershipPlatinum = "Platinum"
)

// Client is a loyalty-card member. The card number is the natural key
// presented at the kiosk; ID is the internal identifier.
//
// Variant fields are pointers so that "absent" and "zero" stay distinct:
// a gift card has Balance set and Points nil, a points card the reverse.
type Client struct {
	ID          string   `gorm:"primarykey" json:"id"`
	CardNumber  string   `gorm:"uniqueIndex;not null" json:"cardNumber"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Gender      string   `json:"gender"`
	DateOfBirth string   `json:"dateOfBirth"`
	Company     string   `json:"company"`
	CardType    CardType `gorm:"not null" json:"cardType"`

	// points cards: bounded cycle counter (0-10) and the lifetime counter.
	Points      *int `json:"points,omitempty"`
	VisitPoints *int `json:"visitPoints,omitempty"`

	// discount cards: flat percentage, admin-set.
	Discount *int `json:"discount,omitempty"`

	// gift cards: stored value in EUR.
	Balance *float64 `json:"balance,omitempty"`

	// One-time milestone reward, points and discount cards only.
	BonusDiscount *int `json:"bonusDiscount,omitempty"`

	// Membership is admin-managed. No ledger operation promotes a tier;
	// Gold and Platinum are assigned through the override path only.
	Membership   string        `gorm:"default:'Standard'" json:"membership"`
	LastVisit    time.Time     `json:"lastVisit"`
	VisitHistory []VisitRecord `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"visitHistory"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VisitRecord is one confirmed visit. The visit history is the sole
// source of truth for visit counting and milestone detection.
type VisitRecord struct {
	ID        string    `gorm:"primarykey" json:"id"`
	ClientID  string    `gorm:"index;not null" json:"-"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`

	// Set for points cards only.
	PointsEarned *int `json:"pointsEarned,omitempty"`
	TotalPoints  *int `json:"totalPoints,omitempty"`
}

// HasBonusDiscount reports whether a non-zero bonus reward is pending.
func (c *Client) HasBonusDiscount() bool {
	return c.BonusDiscount != nil && *c.BonusDiscount != 0
}

// CurrentPoints returns the cycle counter, treating absent as zero.
func (c *Client) CurrentPoints() int {
	if c.Points == nil {
		return 0
	}
	return *c.Points
}

// CurrentBalance returns the stored value, treating absent as zero.
func (c *Client) CurrentBalance() float64 {
	if c.Balance == nil {
		return 0
	}
	return *c.Balance
}
