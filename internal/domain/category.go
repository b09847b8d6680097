package domain

import (
	"database/sql/driver"
	"fmt"
)

// Category is the fixed classification of a product.
type Category int

const (
	CategoryCups Category = iota + 1
	CategoryPlates
	CategoryTeapots
	CategorySets
	CategoryDecor
)

var categoryInfo = map[Category]struct{ slug, label string }{
	CategoryCups:    {"cups", "Hrníčky"},
	CategoryPlates:  {"plates", "Talíře"},
	CategoryTeapots: {"teapots", "Konvice"},
	CategorySets:    {"sets", "Sady"},
	CategoryDecor:   {"decor", "Dekorace"},
}

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryCups, CategoryPlates, CategoryTeapots, CategorySets, CategoryDecor}
}

func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Slug is the stable identifier used in URLs, forms and storage.
func (c Category) Slug() string { return categoryInfo[c].slug }

// Label is the Czech display name.
func (c Category) Label() string { return categoryInfo[c].label }

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return c.Slug()
}

func ParseCategory(s string) (Category, bool) {
	for c, info := range categoryInfo {
		if info.slug == s {
			return c, true
		}
	}
	return 0, false
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.Slug()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	v, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("unknown category %q", string(b))
	}
	*c = v
	return nil
}

func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return c.Slug(), nil
}

func (c *Category) Scan(src any) error {
	return scanEnum(src, c.UnmarshalText)
}

// CategoryFilter is the current shop selection. The zero value selects all.
type CategoryFilter struct {
	Category Category
}

const FilterAllSlug = "all"

func FilterOf(c Category) CategoryFilter { return CategoryFilter{Category: c} }

func (f CategoryFilter) All() bool { return f.Category == 0 }

func (f CategoryFilter) Slug() string {
	if f.All() {
		return FilterAllSlug
	}
	return f.Category.Slug()
}

func (f CategoryFilter) MarshalText() ([]byte, error) { return []byte(f.Slug()), nil }

// Matches reports whether p is visible under the filter.
func (f CategoryFilter) Matches(p Product) bool {
	return f.All() || p.Category == f.Category
}

// ParseFilter accepts "all" or a category slug.
func ParseFilter(s string) (CategoryFilter, bool) {
	if s == FilterAllSlug {
		return CategoryFilter{}, true
	}
	c, ok := ParseCategory(s)
	if !ok {
		return CategoryFilter{}, false
	}
	return FilterOf(c), true
}

// FilterProducts returns the products matching f, preserving order.
// The result is never nil.
func FilterProducts(products []Product, f CategoryFilter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func scanEnum(src any, unmarshal func([]byte) error) error {
	switch v := src.(type) {
	case string:
		return unmarshal([]byte(v))
	case []byte:
		return unmarshal(v)
	default:
		return fmt.Errorf("cannot scan %T into enum", src)
	}
}
