package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/e-n-s-o/enso/internal/httputil"
	"github.com/e-n-s-o/enso/internal/logger"
	"github.com/e-n-s-o/enso/internal/models"
	"github.com/e-n-s-o/enso/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CardPayload is the admin card form. Decimal fields are checked by
// hand since the rule engine only covers the scalar ones.
type CardPayload struct {
	Name            string          `json:"name" validate:"required|minLen:2"`
	Issuer          string          `json:"issuer" validate:"required"`
	CardTier        string          `json:"card_tier"`
	AnnualFee       decimal.Decimal `json:"annual_fee" validate:"-"`
	RewardToken     string          `json:"reward_token" validate:"required"`
	RewardsRate     decimal.Decimal `json:"rewards_rate" validate:"-"`
	StakingRequired decimal.Decimal `json:"staking_required" validate:"-"`
	ImageURL        string          `json:"image_url" validate:"url"`
	WebsiteURL      string          `json:"website_url" validate:"url"`
	Description     string          `json:"description"`
	Benefits        []string        `json:"benefits"`
	IsActive        bool            `json:"is_active"`
}

func (p *CardPayload) check() string {
	v := validate.Struct(p)
	if !v.Validate() {
		return v.Errors.One()
	}
	if p.AnnualFee.IsNegative() || p.RewardsRate.IsNegative() || p.StakingRequired.IsNegative() {
		return "fees, rates and staking must not be negative"
	}
	return ""
}

func (p *CardPayload) apply(card *models.Card) {
	card.Name = p.Name
	card.Issuer = p.Issuer
	card.CardTier = p.CardTier
	card.AnnualFee = p.AnnualFee
	card.RewardToken = strings.ToUpper(strings.TrimSpace(p.RewardToken))
	card.RewardsRate = p.RewardsRate
	card.StakingRequired = p.StakingRequired
	card.ImageURL = p.ImageURL
	card.WebsiteURL = p.WebsiteURL
	card.Description = p.Description
	card.Benefits = p.Benefits
	card.IsActive = p.IsActive
}

// AdminListCardsHandler lists the whole catalog, inactive cards included.
func AdminListCardsHandler(w http.ResponseWriter, r *http.Request) {
	var cards []models.Card
	if err := store.DB.Order("created_at DESC").Find(&cards).Error; err != nil {
		logger.Log.Error("failed to fetch cards", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch cards")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CardListResponse{Cards: cards, Count: len(cards)})
}

func AdminGetCardHandler(w http.ResponseWriter, r *http.Request) {
	var card models.Card
	if err := store.DB.First(&card, chi.URLParam(r, "id")).Error; err != nil {
		httputil.WriteError(w, http.StatusNotFound, "card not found")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, card)
}

func AdminCreateCardHandler(w http.ResponseWriter, r *http.Request) {
	var payload CardPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := payload.check(); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	var card models.Card
	payload.apply(&card)
	if err := store.DB.Create(&card).Error; err != nil {
		logger.Log.Error("failed to create card", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to create card")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, card)
}

func AdminUpdateCardHandler(w http.ResponseWriter, r *http.Request) {
	var payload CardPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := payload.check(); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	var card models.Card
	if err := store.DB.First(&card, chi.URLParam(r, "id")).Error; err != nil {
		httputil.WriteError(w, http.StatusNotFound, "card not found")
		return
	}

	payload.apply(&card)
	if err := store.DB.Save(&card).Error; err != nil {
		logger.Log.Error("failed to update card", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to update card")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, card)
}

// AdminDeleteCardHandler deactivates a card so existing portfolios keep
// their reference; ?hard=1 removes the row outright.
func AdminDeleteCardHandler(w http.ResponseWriter, r *http.Request) {
	var card models.Card
	if err := store.DB.First(&card, chi.URLParam(r, "id")).Error; err != nil {
		httputil.WriteError(w, http.StatusNotFound, "card not found")
		return
	}

	if r.URL.Query().Get("hard") == "1" {
		if err := store.DB.Unscoped().Delete(&card).Error; err != nil {
			logger.Log.Error("failed to delete card", zap.Error(err))
			httputil.WriteError(w, http.StatusInternalServerError, "failed to delete card")
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := store.DB.Model(&card).Update("is_active", false).Error; err != nil {
		logger.Log.Error("failed to deactivate card", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to delete card")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
