package domain

import (
	"database/sql/driver"
	"fmt"
)

// Condition describes the physical state of a piece.
type Condition int

const (
	ConditionMint Condition = iota + 1
	ConditionExcellent
	ConditionGood
	ConditionDamaged
)

var conditionInfo = map[Condition]struct{ slug, label string }{
	ConditionMint:      {"mint", "Výborný (Mint)"},
	ConditionExcellent: {"excellent", "Skvělý"},
	ConditionGood:      {"good", "Dobrý (běžné opotřebení)"},
	ConditionDamaged:   {"damaged", "Poškozeno (pro sběratele)"},
}

func Conditions() []Condition {
	return []Condition{ConditionMint, ConditionExcellent, ConditionGood, ConditionDamaged}
}

func (c Condition) Valid() bool {
	_, ok := conditionInfo[c]
	return ok
}

func (c Condition) Slug() string { return conditionInfo[c].slug }

func (c Condition) Label() string { return conditionInfo[c].label }

func (c Condition) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Condition(%d)", int(c))
	}
	return c.Slug()
}

func ParseCondition(s string) (Condition, bool) {
	for c, info := range conditionInfo {
		if info.slug == s {
			return c, true
		}
	}
	return 0, false
}

func (c Condition) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid condition %d", int(c))
	}
	return []byte(c.Slug()), nil
}

func (c *Condition) UnmarshalText(b []byte) error {
	v, ok := ParseCondition(string(b))
	if !ok {
		return fmt.Errorf("unknown condition %q", string(b))
	}
	*c = v
	return nil
}

func (c Condition) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid condition %d", int(c))
	}
	return c.Slug(), nil
}

func (c *Condition) Scan(src any) error {
	return scanEnum(src, c.UnmarshalText)
}
