package domain

import "time"

// Cart holds a buyer's pending selections. One cart per buyer; lines are
// unique per product. Line prices are snapshots taken at add time and may be
// stale; checkout re-resolves them against the catalog.
type Cart struct {
	ID         string     `json:"id"`
	BuyerID    string     `json:"buyerId"`
	TotalCents int64      `json:"totalCents"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Lines      []CartLine `json:"lineItems"`
}

type CartLine struct {
	ID             string    `json:"id"`
	CartID         string    `json:"cartId"`
	ProductID      string    `json:"productId"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Name           string    `json:"name"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
