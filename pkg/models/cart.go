package models

// CartItem is one line of the cart as persisted in local storage.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	SetName  string  `json:"setName"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Subtotal is price times quantity for the line.
func (it CartItem) Subtotal() float64 {
	return it.Price * float64(it.Quantity)
}
