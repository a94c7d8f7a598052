package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	cases := []struct {
		sort string
		want string
	}{
		{SortNewest, "created_at DESC"},
		{SortHighestReward, "rewards_rate DESC"},
		{SortLowestFee, "annual_fee ASC"},
		{SortHighestFee, "annual_fee DESC"},
		{"", "created_at DESC"},
		{"bogus", "created_at DESC"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, OrderClause(tc.sort), "sort=%q", tc.sort)
	}
}
