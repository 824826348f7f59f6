package models

// CartLine is one material's quantity/price/total inside a session's cart.
// Title, thumbnail and unit price are snapshotted at first add so the price
// the user saw is the price the order commits.
type CartLine struct {
	MaterialID string `json:"materialid"`
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail,omitempty"`
	UnitPrice  Money  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	LineTotal  Money  `json:"line_total"`
}

// PaymentInput is the typed payment form submitted on checkout POST.
type PaymentInput struct {
	CardNumber      string `json:"card_number"`
	CardholderName  string `json:"cardholder_name"`
	CardExpiry      string `json:"card_expiry"`
	CardCVV         string `json:"card_cvv"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
}
