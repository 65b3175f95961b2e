package models

// CartItem is one cart line: a product with a positive quantity.
// The cart guarantees at most one line per product id.
type CartItem struct {
	Product  Product
	Quantity int
}

// LineTotal is the price of the line at the product's current base price.
func (i CartItem) LineTotal() float64 {
	return i.Product.BasePrice * float64(i.Quantity)
}
