package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/e-n-s-o/enso/internal/httputil"
	"github.com/e-n-s-o/enso/internal/logger"
	"github.com/e-n-s-o/enso/internal/models"
	"github.com/e-n-s-o/enso/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AddCardRequest struct {
	CardID    uint   `json:"card_id"`
	Nickname  string `json:"nickname"`
	IsPrimary bool   `json:"is_primary"`
}

type UpdateCardRequest struct {
	Nickname  *string `json:"nickname"`
	IsPrimary *bool   `json:"is_primary"`
}

func ListMyCardsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var owned []models.UserCard
	if err := store.DB.Preload("Card").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&owned).Error; err != nil {

		logger.Log.Error("failed to fetch portfolio", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch your cards")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, owned)
}

func AddMyCardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req AddCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CardID == 0 {
		httputil.WriteError(w, http.StatusBadRequest, "card_id is required")
		return
	}

	var card models.Card
	if err := store.DB.Where("is_active = ?", true).First(&card, req.CardID).Error; err != nil {
		httputil.WriteError(w, http.StatusNotFound, "card not found")
		return
	}

	owned := models.UserCard{
		UserID:    userID,
		CardID:    req.CardID,
		Nickname:  req.Nickname,
		IsPrimary: req.IsPrimary,
	}
	if err := store.DB.Create(&owned).Error; err != nil {
		// unique (user_id, card_id) index
		httputil.WriteError(w, http.StatusConflict, "card already in your portfolio")
		return
	}
	owned.Card = card

	httputil.WriteJSON(w, http.StatusCreated, owned)
}

func UpdateMyCardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, okID := idParam(r)
	if !okID {
		httputil.WriteError(w, http.StatusNotFound, "card not found in your portfolio")
		return
	}

	var owned models.UserCard
	err := store.DB.Where("user_id = ?", userID).First(&owned, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "card not found in your portfolio")
		return
	}
	if err != nil {
		logger.Log.Error("failed to fetch portfolio entry", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to update your card")
		return
	}

	updates := map[string]any{}
	if req.Nickname != nil {
		updates["nickname"] = *req.Nickname
	}
	if req.IsPrimary != nil {
		updates["is_primary"] = *req.IsPrimary
	}
	if len(updates) == 0 {
		httputil.WriteError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	if err := store.DB.Model(&owned).Updates(updates).Error; err != nil {
		logger.Log.Error("failed to update portfolio entry", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to update your card")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, owned)
}

func RemoveMyCardHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := idParam(r)
	if !ok {
		httputil.WriteError(w, http.StatusNotFound, "card not found in your portfolio")
		return
	}

	res := store.DB.Where("user_id = ?", userID).
		Delete(&models.UserCard{}, id)
	if res.Error != nil {
		logger.Log.Error("failed to remove portfolio entry", zap.Error(res.Error))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to remove your card")
		return
	}
	if res.RowsAffected == 0 {
		httputil.WriteError(w, http.StatusNotFound, "card not found in your portfolio")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
