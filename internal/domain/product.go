package domain

// Product is a book in the storefront catalog.
type Product struct {
	ID          string  `json:"id" bson:"_id,omitempty"`
	Name        string  `json:"name" bson:"name"`
	Slug        string  `json:"slug" bson:"slug"`
	Description string  `json:"description" bson:"description"`
	Price       float64 `json:"price" bson:"price"`
	Author      string  `json:"author" bson:"author"`
	Category    string  `json:"category" bson:"category"`
	ImageID     string  `json:"imageId" bson:"image_id"`
	ImageURL    string  `json:"imageUrl" bson:"image_url"`
	IsFeatured  bool    `json:"isFeatured" bson:"is_featured"`
}
