package models

// CheckoutItem is the payment API's line shape; unit_amount carries the
// cart line price unchanged, in minor units.
type CheckoutItem struct {
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Quantity   int    `json:"quantity"`
}

type CheckoutRequest struct {
	Items []CheckoutItem `json:"items"`
}

type CheckoutSession struct {
	URL string `json:"url"`
}
