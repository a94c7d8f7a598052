package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/e-n-s-o/enso/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func card(id uint, name string) models.Card {
	return models.Card{Model: gorm.Model{ID: id}, Name: name}
}

func TestOrderCardsByIDs_PreservesRequestedOrder(t *testing.T) {
	fetched := []models.Card{
		card(1, "Ruby Steel"),
		card(2, "Coinbase Card"),
		card(3, "Nexo Card"),
	}

	ordered := orderCardsByIDs(fetched, []uint64{3, 1, 2})

	require.Len(t, ordered, 3)
	assert.Equal(t, "Nexo Card", ordered[0].Name)
	assert.Equal(t, "Ruby Steel", ordered[1].Name)
	assert.Equal(t, "Coinbase Card", ordered[2].Name)
}

func TestOrderCardsByIDs_SkipsMissingRows(t *testing.T) {
	fetched := []models.Card{card(2, "Coinbase Card")}

	ordered := orderCardsByIDs(fetched, []uint64{9, 2, 7})

	require.Len(t, ordered, 1)
	assert.Equal(t, "Coinbase Card", ordered[0].Name)
}

func requestWithID(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestIDParam(t *testing.T) {
	id, ok := idParam(requestWithID("42"))
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)

	for _, bad := range []string{"abc", "-1", "1.5", ""} {
		_, ok := idParam(requestWithID(bad))
		assert.False(t, ok, "id=%q", bad)
	}
}
