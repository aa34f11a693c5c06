package models

// Product is a single sellable item belonging to a shop.
type Product struct {
	ID          string  `json:"id"`
	ShopID      string  `json:"shop_id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
}
