package store

import "gorm.io/gorm"

// Recognized values for CardFilter.Sort.
const (
	SortNewest        = "newest"
	SortHighestReward = "rewards"
	SortLowestFee     = "fee-low"
	SortHighestFee    = "fee-high"
)

// CardFilter carries user-supplied catalog filter/sort selections.
// Zero values mean "no filtering on that dimension". Values are passed
// through to the query as-is; an unrecognized sort falls back to newest.
type CardFilter struct {
	Search string
	Issuer string
	Token  string
	Sort   string
}

// OrderClause maps a sort selection to its ORDER BY expression.
func OrderClause(sort string) string {
	switch sort {
	case SortHighestReward:
		return "rewards_rate DESC"
	case SortLowestFee:
		return "annual_fee ASC"
	case SortHighestFee:
		return "annual_fee DESC"
	default:
		return "created_at DESC"
	}
}

// CardsQuery builds the catalog read for active cards. Distinct filter
// dimensions combine with AND; the search term matches name or issuer
// case-insensitively.
func CardsQuery(db *gorm.DB, f CardFilter) *gorm.DB {
	q := db.Where("is_active = ?", true)

	if f.Issuer != "" {
		q = q.Where("issuer = ?", f.Issuer)
	}
	if f.Token != "" {
		q = q.Where("reward_token = ?", f.Token)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("name ILIKE ? OR issuer ILIKE ?", pattern, pattern)
	}

	return q.Order(OrderClause(f.Sort))
}
