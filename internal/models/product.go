package models

import (
	"github.com/shopspring/decimal"
)

// ProductImage references an image stored by the backend.
type ProductImage struct {
	ID  FlexID `json:"id"`
	URL string `json:"url,omitempty"`
}

// Product is a catalog item as listed by the backend.
type Product struct {
	ID          FlexID          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
	Price       decimal.Decimal `json:"price"`
	Type        string          `json:"type"`
	Inventory   int             `json:"inventory"`
	Status      string          `json:"status"`
	Images      []ProductImage  `json:"images"`
}
