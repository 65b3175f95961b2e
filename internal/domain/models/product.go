package models

// Availability states a menu item can be in.
const (
	StatusAvailable   = "AVAILABLE"
	StatusUnavailable = "UNAVAILABLE"
)

// CategoryRef is the id+name projection of a Category embedded in a product.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is a menu item. The client never mutates a product in place;
// admin edits replace the whole record server-side.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	BasePrice   float64     `json:"basePrice"`
	Status      string      `json:"status"`
	Category    CategoryRef `json:"category"`
}

// Available reports whether the item can currently be ordered.
func (p *Product) Available() bool {
	return p.Status == StatusAvailable
}
