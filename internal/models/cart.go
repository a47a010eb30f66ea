package models

// CartLine is one entry in a visitor's cart, keyed by product ID.
// Price is in minor currency units (centavos); all arithmetic on it
// stays in integers.
type CartLine struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
}

type AddLineRequest struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse carries the integer total alongside a ready-to-render
// string in the configured locale.
type CartResponse struct {
	Items             []CartLine `json:"items"`
	TotalItems        int        `json:"total_items"`
	TotalPrice        int64      `json:"total_price"`
	TotalPriceDisplay string     `json:"total_price_display"`
	IsOpen            bool       `json:"is_open"`
}
