package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/e-n-s-o/enso/internal/httputil"
	"github.com/e-n-s-o/enso/internal/logger"
	"github.com/e-n-s-o/enso/internal/models"
	"github.com/e-n-s-o/enso/internal/store"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CardListResponse struct {
	Cards []models.Card `json:"cards"`
	Count int           `json:"count"`
}

type FacetsResponse struct {
	Issuers []string `json:"issuers"`
	Tokens  []string `json:"tokens"`
}

// GetCardsHandler serves the catalog grid: active cards, filtered and
// sorted by the query parameters search, issuer, token and sort.
func GetCardsHandler(w http.ResponseWriter, r *http.Request) {
	filter := store.CardFilter{
		Search: r.URL.Query().Get("search"),
		Issuer: r.URL.Query().Get("issuer"),
		Token:  r.URL.Query().Get("token"),
		Sort:   r.URL.Query().Get("sort"),
	}

	var cards []models.Card
	if err := store.CardsQuery(store.DB.Model(&models.Card{}), filter).Find(&cards).Error; err != nil {
		logger.Log.Error("failed to fetch cards", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch cards")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, CardListResponse{Cards: cards, Count: len(cards)})
}

func GetCardHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var card models.Card
	if err := store.DB.Where("is_active = ?", true).First(&card, id).Error; err != nil {
		httputil.WriteError(w, http.StatusNotFound, "card not found")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, card)
}

// CardFacetsHandler returns the distinct issuers and reward tokens of
// active cards, used to populate the filter controls.
func CardFacetsHandler(w http.ResponseWriter, r *http.Request) {
	var issuers, tokens []string

	base := store.DB.Model(&models.Card{}).Where("is_active = ?", true)
	if err := base.Distinct("issuer").Order("issuer").Pluck("issuer", &issuers).Error; err != nil {
		logger.Log.Error("failed to fetch issuers", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch facets")
		return
	}
	base = store.DB.Model(&models.Card{}).Where("is_active = ?", true)
	if err := base.Distinct("reward_token").Order("reward_token").Pluck("reward_token", &tokens).Error; err != nil {
		logger.Log.Error("failed to fetch tokens", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch facets")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FacetsResponse{Issuers: issuers, Tokens: tokens})
}

const maxCompareCards = 4

// CompareHandler returns up to four active cards side by side, in the
// order requested via ?ids=a,b,c.
func CompareHandler(w http.ResponseWriter, r *http.Request) {
	raw := strings.Split(r.URL.Query().Get("ids"), ",")
	ids := make([]uint64, 0, maxCompareCards)
	for _, s := range raw {
		id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		httputil.WriteError(w, http.StatusBadRequest, "ids parameter is required")
		return
	}
	if len(ids) > maxCompareCards {
		ids = ids[:maxCompareCards]
	}

	var cards []models.Card
	if err := store.DB.Where("is_active = ?", true).Where("id IN ?", ids).Find(&cards).Error; err != nil {
		logger.Log.Error("failed to fetch comparison cards", zap.Error(err))
		httputil.WriteError(w, http.StatusInternalServerError, "failed to fetch cards")
		return
	}
	cards = orderCardsByIDs(cards, ids)

	httputil.WriteJSON(w, http.StatusOK, CardListResponse{Cards: cards, Count: len(cards)})
}

// orderCardsByIDs rearranges fetched rows to the requested id order,
// since IN-list reads come back in whatever order the database picks.
// Ids without a matching row are skipped.
func orderCardsByIDs(cards []models.Card, ids []uint64) []models.Card {
	byID := make(map[uint64]models.Card, len(cards))
	for _, c := range cards {
		byID[uint64(c.ID)] = c
	}
	ordered := make([]models.Card, 0, len(cards))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered
}
