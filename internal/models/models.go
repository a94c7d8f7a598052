package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Name     string `gorm:"size:50;not null"`
	Email    string `gorm:"uniqueIndex;size:255;not null"`
	Password string `gorm:"size:255"`
	Role     string `gorm:"size:16;not null;default:user"`
}

// Card is a catalog entry for a crypto-rewards payment card.
type Card struct {
	gorm.Model
	Name            string          `gorm:"size:120;not null" json:"name"`
	Issuer          string          `gorm:"size:120;index;not null" json:"issuer"`
	CardTier        string          `gorm:"size:120" json:"card_tier,omitempty"`
	AnnualFee       decimal.Decimal `gorm:"not null" json:"annual_fee"`
	RewardToken     string          `gorm:"size:16;index;not null" json:"reward_token"`
	RewardsRate     decimal.Decimal `gorm:"not null" json:"rewards_rate"`
	StakingRequired decimal.Decimal `gorm:"not null" json:"staking_required"`
	ImageURL        string          `gorm:"size:500" json:"image_url,omitempty"`
	WebsiteURL      string          `gorm:"size:500" json:"website_url,omitempty"`
	Description     string          `json:"description,omitempty"`
	Benefits        []string        `gorm:"serializer:json" json:"benefits"`
	IsActive        bool            `gorm:"index;not null;default:true" json:"is_active"`
}

// UserCard links a user to a catalog card they hold. One row per user+card.
type UserCard struct {
	gorm.Model
	UserID    uint   `gorm:"index;not null;uniqueIndex:idx_user_card" json:"-"`
	CardID    uint   `gorm:"not null;uniqueIndex:idx_user_card" json:"card_id"`
	Nickname  string `gorm:"size:120" json:"nickname,omitempty"`
	IsPrimary bool   `gorm:"not null;default:false" json:"is_primary"`
	Card      Card   `gorm:"foreignKey:CardID" json:"card"`
}

// RewardEntry is one manually logged reward. Immutable after creation
// except by deletion.
type RewardEntry struct {
	gorm.Model
	UserID         uint             `gorm:"index;not null" json:"-"`
	UserCardID     uint             `gorm:"index;not null" json:"user_card_id"`
	Token          string           `gorm:"size:16;not null" json:"token"` // stored uppercased
	Amount         decimal.Decimal  `gorm:"not null" json:"amount"`
	UsdValueAtEarn *decimal.Decimal `json:"usd_value_at_earn,omitempty"` // nil when the user did not record it
	EarnedAt       time.Time        `gorm:"index;not null" json:"earned_at"`
}
