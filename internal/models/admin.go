package models

import "time"

// AdminUser is a back-office account allowed to manage the roster.
type AdminUser struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Password     string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'admin'" json:"role"`
	TokenVersion int    `gorm:"default:1" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
