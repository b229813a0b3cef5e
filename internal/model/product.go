package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// The catalog file stores prices as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a sellable item in the shop catalogue.
// Name is the lookup key and must be unique within a catalogue.
type Product struct {
	Name     string          `json:"name" db:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" db:"price" validate:"gte=0"`
	Stock    int             `json:"stock" db:"stock" validate:"gte=0"`
	Category string          `json:"category" db:"category"`
	Brand    string          `json:"brand,omitempty" db:"brand"`
	Unit     string          `json:"unit,omitempty" db:"unit"`
	Customer string          `json:"customer,omitempty" db:"customer"`
	Date     string          `json:"date,omitempty" db:"purchase_date"`
	SKU      string          `json:"sku,omitempty" db:"sku"`
	Expiry   string          `json:"expiry,omitempty" db:"expiry"`
	Discount string          `json:"discount,omitempty" db:"discount"`
	Notes    string          `json:"notes,omitempty" db:"notes"`
}

// Categories lists the category choices offered by the product form.
var Categories = []string{
	"Grocery",
	"Clothes",
	"Accessories",
	"Home Appliances",
	"Electronics",
	"Stationery",
}

// ProductList is the catalogue listing returned to clients. Warning is set
// when the catalogue could not be read and was treated as empty.
type ProductList struct {
	Products []Product `json:"products"`
	Count    int       `json:"count"`
	Warning  string    `json:"warning,omitempty"`
}

// LoginRequest carries operator credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
