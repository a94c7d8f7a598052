package handlers

import (
	"testing"

	"github.com/e-n-s-o/enso/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validPayload() CardPayload {
	return CardPayload{
		Name:        "Coinbase Card",
		Issuer:      "Coinbase",
		RewardToken: "btc",
		RewardsRate: decimal.RequireFromString("1.5"),
		IsActive:    true,
	}
}

func TestCardPayload_Check(t *testing.T) {
	valid := validPayload()
	assert.Empty(t, valid.check())

	missingName := validPayload()
	missingName.Name = ""
	assert.NotEmpty(t, missingName.check())

	missingIssuer := validPayload()
	missingIssuer.Issuer = ""
	assert.NotEmpty(t, missingIssuer.check())

	negativeFee := validPayload()
	negativeFee.AnnualFee = decimal.RequireFromString("-1")
	assert.NotEmpty(t, negativeFee.check())

	badURL := validPayload()
	badURL.ImageURL = "not a url"
	assert.NotEmpty(t, badURL.check())
}

func TestCardPayload_ApplyUppercasesToken(t *testing.T) {
	payload := validPayload()

	var card models.Card
	payload.apply(&card)

	assert.Equal(t, "BTC", card.RewardToken)
	assert.Equal(t, "Coinbase Card", card.Name)
	assert.True(t, card.IsActive)
}
