package domain

import "golang.org/x/text/currency"

// ShopCurrency is the currency every price is expressed in.
var ShopCurrency = currency.MustParseISO("CZK")

// CartLine is a product snapshot taken when it was first added, plus a quantity.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) Subtotal() int64 { return l.Product.Price * int64(l.Quantity) }

// Ledger holds at most one line per product id. The zero value is an empty
// ledger. It is not safe for concurrent use.
type Ledger struct {
	lines []CartLine
}

// AddItem increments the line for p.ID or appends a new line with quantity 1.
func (l *Ledger) AddItem(p Product) {
	for i := range l.lines {
		if l.lines[i].Product.ID == p.ID {
			l.lines[i].Quantity++
			return
		}
	}
	l.lines = append(l.lines, CartLine{Product: p, Quantity: 1})
}

// RemoveItem drops the line for productID. Unknown ids are ignored.
func (l *Ledger) RemoveItem(productID string) {
	for i := range l.lines {
		if l.lines[i].Product.ID == productID {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			return
		}
	}
}

// Lines returns a copy of the lines in the order they were first added.
func (l *Ledger) Lines() []CartLine {
	out := make([]CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Ledger) Total() int64 {
	var total int64
	for _, line := range l.lines {
		total += line.Subtotal()
	}
	return total
}

func (l *Ledger) ItemCount() int {
	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

func (l *Ledger) Empty() bool { return len(l.lines) == 0 }
