package domain

import "fmt"

// Product is a sellable item. Products are never edited once created.
type Product struct {
	ID           string    `db:"id" json:"id" validate:"required"`
	Title        string    `db:"title" json:"title" validate:"required"`
	Description  string    `db:"description" json:"description" validate:"required"`
	Price        int64     `db:"price" json:"price" validate:"gte=0"`
	Category     Category  `db:"category" json:"category" validate:"known"`
	Condition    Condition `db:"condition" json:"condition" validate:"known"`
	ImageURL     string    `db:"image_url" json:"imageUrl" validate:"required"`
	Year         string    `db:"year" json:"year,omitempty"`
	Manufacturer string    `db:"manufacturer" json:"manufacturer,omitempty"`
}

// FormatKc renders a whole-crown amount for display.
func FormatKc(amount int64) string {
	return fmt.Sprintf("%d Kč", amount)
}
