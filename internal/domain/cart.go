package domain

// CartLine is one distinct purchasable item held in a cart. At most one line
// exists per product id; merging is handled by the cart reducer.
type CartLine struct {
	ProductID string  `json:"id" bson:"product_id"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Slug      string  `json:"slug" bson:"slug"`
	ImageURL  string  `json:"imageUrl" bson:"image_url"`
}

// Subtotal is the line contribution to the cart total.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CartTotal recomputes the cart total from scratch. Never cached.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
