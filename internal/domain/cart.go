package domain

import "time"

// CartItem is one line of a user's cart. Name, price and image are
// denormalized from the product at add-to-cart time.
type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
	ImageURL  string
	CreatedAt time.Time
}

// CartTotal computes the total amount of a set of cart lines.
func CartTotal(items []*CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
