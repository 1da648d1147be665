package domain

import "time"

// Product represents a piece of camping gear available for rent.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Stock       int
	CreatedAt   time.Time
}
