package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/e-n-s-o/enso/internal/httputil"
	"github.com/e-n-s-o/enso/internal/logger"
	"github.com/e-n-s-o/enso/internal/models"
	"github.com/e-n-s-o/enso/internal/prices"
	"github.com/e-n-s-o/enso/internal/rewards"
	"github.com/e-n-s-o/enso/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LogRewardRequest struct {
	UserCardID     uint             `json:"user_card_id"`
	Token          string           `json:"token"`
	Amount         decimal.Decimal  `json:"amount"`
	UsdValueAtEarn *decimal.Decimal `json:"usd_value_at_earn"`
	EarnedAt       *time.Time       `json:"earned_at"`
}

type RewardsResponse struct {
	Entries  []models.RewardEntry              `json:"entries"`
	PerToken map[string]rewards.TokenAggregate `json:"per_token"`
	Totals   rewards.Totals                    `json:"totals"`
	Prices   map[string]prices.TokenPrice      `json:"prices"`
}

// ListRewardsHandler serves the rewards tracker: the user's ledger,
// per-token aggregates valued at live prices, and grand totals. One
// ledger read, one batched price fetch, one aggregation pass.
func ListRewardsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var entries []models.RewardEntry
	if err := store.DB.Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&entries).Error; err != nil {

		logger.Log.Error("failed to fetch reward entries", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch rewards")
		return
	}

	priceMap := Prices.GetPrices(r.Context(), rewards.Tokens(entries))
	perToken, totals := rewards.Aggregate(entries, priceMap)

	httputil.WriteJSON(w, http.StatusOK, RewardsResponse{
		Entries:  entries,
		PerToken: perToken,
		Totals:   totals,
		Prices:   priceMap,
	})
}

func LogRewardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req LogRewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Token = strings.ToUpper(strings.TrimSpace(req.Token))
	if req.Token == "" {
		httputil.WriteError(w, http.StatusBadRequest, "token is required")
		return
	}
	if req.Amount.IsNegative() {
		httputil.WriteError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}
	if req.UsdValueAtEarn != nil && req.UsdValueAtEarn.IsNegative() {
		httputil.WriteError(w, http.StatusBadRequest, "usd_value_at_earn must not be negative")
		return
	}

	// The ledger entry must reference a card the user actually holds.
	var owned models.UserCard
	err := store.DB.Where("user_id = ?", userID).First(&owned, req.UserCardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "card not found in your portfolio")
		return
	}
	if err != nil {
		logger.Log.Error("failed to fetch portfolio entry", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to log reward")
		return
	}

	earnedAt := time.Now()
	if req.EarnedAt != nil {
		earnedAt = *req.EarnedAt
	}

	entry := models.RewardEntry{
		UserID:         userID,
		UserCardID:     owned.ID,
		Token:          req.Token,
		Amount:         req.Amount,
		UsdValueAtEarn: req.UsdValueAtEarn,
		EarnedAt:       earnedAt,
	}
	if err := store.DB.Create(&entry).Error; err != nil {
		logger.Log.Error("failed to create reward entry", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to log reward")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, entry)
}

func DeleteRewardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := idParam(r)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "reward entry not found")
		return
	}

	res := store.DB.Where("user_id = ?", userID).
		Delete(&models.RewardEntry{}, id)
	if res.Error != nil {
		logger.Log.Error("failed to delete reward entry", zap.Error(res.Error))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to delete reward")
		return
	}
	if res.RowsAffected == 0 {
		httputil.WriteError(w, http.StatusNotFound, "reward entry not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
