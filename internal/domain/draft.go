package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	maxKc = decimal.NewFromInt(math.MaxInt64)
	minKc = decimal.NewFromInt(math.MinInt64)
)

// DraftListing is a generated, not yet accepted, product description.
type DraftListing struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	EstimatedYear  string          `json:"estimatedYear"`
	SuggestedPrice decimal.Decimal `json:"suggestedPrice"`
	ConditionEval  string          `json:"conditionEval"`
}

// PriceInRange reports whether the rounded price fits a whole-crown amount.
func (d DraftListing) PriceInRange() bool {
	r := d.SuggestedPrice.Round(0)
	return !r.GreaterThan(maxKc) && !r.LessThan(minKc)
}

// PriceKc rounds the suggested price to whole crowns. The value is taken
// as returned by the service; no bounds are applied here. Callers check
// PriceInRange first.
func (d DraftListing) PriceKc() int64 {
	return d.SuggestedPrice.Round(0).IntPart()
}
