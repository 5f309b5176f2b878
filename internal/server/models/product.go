package models

// Product is a row of the products table. A nil Description is stored as NULL
// and rendered as null.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
}
