package drafting

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"porcelain/internal/domain"
)

var ErrMalformed = errors.New("malformed listing")

// wireListing mirrors the response schema; pointers detect missing fields.
type wireListing struct {
	Title          *string          `json:"title"`
	Description    *string          `json:"description"`
	EstimatedYear  *string          `json:"estimatedYear"`
	SuggestedPrice *json.RawMessage `json:"suggestedPrice"`
	ConditionEval  *string          `json:"conditionEval"`
}

// ParseListing decodes a model reply. The reply must be exactly one JSON
// object holding the five listing fields and nothing else.
func ParseListing(text string) (*domain.DraftListing, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrMalformed)
	}
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var w wireListing
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}

	var missing []string
	str := func(name string, v *string) string {
		if v == nil {
			missing = append(missing, name)
			return ""
		}
		return *v
	}
	d := domain.DraftListing{
		Title:         str("title", w.Title),
		Description:   str("description", w.Description),
		EstimatedYear: str("estimatedYear", w.EstimatedYear),
		ConditionEval: str("conditionEval", w.ConditionEval),
	}
	if w.SuggestedPrice == nil {
		missing = append(missing, "suggestedPrice")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformed, strings.Join(missing, ", "))
	}
	price, err := parsePrice(*w.SuggestedPrice)
	if err != nil {
		return nil, err
	}
	d.SuggestedPrice = price
	if !d.PriceInRange() {
		return nil, fmt.Errorf("%w: suggestedPrice %s out of range", ErrMalformed, price)
	}
	return &d, nil
}

// parsePrice accepts a bare JSON number only; quoted numbers are malformed.
func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: suggestedPrice: %v", ErrMalformed, err)
	}
	n, ok := v.(json.Number)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: suggestedPrice is not a number", ErrMalformed)
	}
	price, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: suggestedPrice: %v", ErrMalformed, err)
	}
	return price, nil
}

// MarshalListing encodes d the way the service replies; fakes use it.
func MarshalListing(d domain.DraftListing) string {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(map[string]any{
		"title":          d.Title,
		"description":    d.Description,
		"estimatedYear":  d.EstimatedYear,
		"suggestedPrice": json.Number(d.SuggestedPrice.String()),
		"conditionEval":  d.ConditionEval,
	})
	return buf.String()
}
