package seed

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/e-n-s-o/enso/configs"
	"github.com/e-n-s-o/enso/internal/logger"
	"github.com/e-n-s-o/enso/internal/models"
	"github.com/e-n-s-o/enso/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const seedPassword = "password123"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var starterCards = []models.Card{
	{
		Name:            "Crypto.com Visa Ruby Steel",
		Issuer:          "Crypto.com",
		CardTier:        "Ruby Steel",
		AnnualFee:       dec("0"),
		RewardToken:     "CRO",
		RewardsRate:     dec("1"),
		StakingRequired: dec("400"),
		Description:     "Metal card with CRO cashback and Spotify rebate.",
		Benefits:        []string{"Spotify rebate", "Metal card", "No annual fee"},
		IsActive:        true,
	},
	{
		Name:            "Crypto.com Visa Jade Green",
		Issuer:          "Crypto.com",
		CardTier:        "Jade Green",
		AnnualFee:       dec("0"),
		RewardToken:     "CRO",
		RewardsRate:     dec("2"),
		StakingRequired: dec("4000"),
		Description:     "Mid-tier card with higher CRO cashback and lounge access.",
		Benefits:        []string{"Spotify rebate", "Netflix rebate", "Airport lounge access"},
		IsActive:        true,
	},
	{
		Name:            "Coinbase Card",
		Issuer:          "Coinbase",
		AnnualFee:       dec("0"),
		RewardToken:     "BTC",
		RewardsRate:     dec("1.5"),
		StakingRequired: dec("0"),
		Description:     "Debit card earning bitcoin back on every purchase.",
		Benefits:        []string{"Rotating reward assets", "No annual fee"},
		IsActive:        true,
	},
	{
		Name:            "Nexo Card",
		Issuer:          "Nexo",
		AnnualFee:       dec("0"),
		RewardToken:     "NEXO",
		RewardsRate:     dec("2"),
		StakingRequired: dec("0"),
		Description:     "Credit card backed by your crypto portfolio.",
		Benefits:        []string{"Credit line against crypto", "No FX fees"},
		IsActive:        true,
	},
	{
		Name:            "Binance Card",
		Issuer:          "Binance",
		AnnualFee:       dec("0"),
		RewardToken:     "BNB",
		RewardsRate:     dec("8"),
		StakingRequired: dec("600"),
		Description:     "Visa debit card with BNB cashback tiers.",
		Benefits:        []string{"Up to 8% BNB cashback"},
		IsActive:        true,
	},
	{
		Name:            "Plutus Card",
		Issuer:          "Plutus",
		AnnualFee:       dec("0"),
		RewardToken:     "PLU",
		RewardsRate:     dec("3"),
		StakingRequired: dec("0"),
		Description:     "European debit card earning PLU on purchases.",
		Benefits:        []string{"Monthly perks", "3% PLU back"},
		IsActive:        true,
	},
}

// Run seeds the bootstrap admin, a demo user and a starter catalog.
// Idempotent: skipped entirely once an admin exists.
func Run() {
	db := store.DB

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if count > 0 {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Fatal("failed to hash seed password", zap.Error(err))
	}
	hashed := string(hash)

	adminEmail := configs.AppConfig.Admin.BootstrapEmail
	if adminEmail == "" {
		adminEmail = "admin@enso.local"
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{Name: "Admin", Email: adminEmail, Password: hashed, Role: models.RoleAdmin}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		demo := models.User{Name: "Demo User", Email: "demo@enso.local", Password: hashed, Role: models.RoleUser}
		if err := tx.Create(&demo).Error; err != nil {
			return err
		}

		for i := range starterCards {
			if err := tx.Create(&starterCards[i]).Error; err != nil {
				return err
			}
		}

		demoCard := models.UserCard{UserID: demo.ID, CardID: starterCards[0].ID, IsPrimary: true}
		return tx.Create(&demoCard).Error
	})
	if err != nil {
		logger.Log.Fatal("seed failed", zap.Error(err))
	}
	logger.Log.Info("seeded admin, demo user and starter catalog",
		zap.String("admin", adminEmail),
		zap.Int("cards", len(starterCards)))
}
