package handlers

import (
	"net/http"

	"github.com/e-n-s-o/enso/internal/httputil"
	"github.com/e-n-s-o/enso/internal/logger"
	"github.com/e-n-s-o/enso/internal/models"
	"github.com/e-n-s-o/enso/internal/store"
	"go.uber.org/zap"
)

type DashboardSummary struct {
	MyCardsCount   int64             `json:"my_cards_count"`
	CardsAvailable int64             `json:"cards_available"`
	RecentCards    []models.UserCard `json:"recent_cards"`
}

// DashboardHandler serves the landing stats: how many cards the user
// holds, how many are in the catalog, and a short preview of the most
// recently added ones.
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var summary DashboardSummary

	if err := store.DB.Model(&models.UserCard{}).
		Where("user_id = ?", userID).
		Count(&summary.MyCardsCount).Error; err != nil {

		logger.Log.Error("failed to count portfolio", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	if err := store.DB.Model(&models.Card{}).
		Where("is_active = ?", true).
		Count(&summary.CardsAvailable).Error; err != nil {

		logger.Log.Error("failed to count catalog", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	if err := store.DB.Preload("Card").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(3).
		Find(&summary.RecentCards).Error; err != nil {

		logger.Log.Error("failed to fetch recent cards", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, summary)
}
