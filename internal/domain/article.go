package domain

// Article is an editorial post shown alongside the catalog.
type Article struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Slug        string `json:"slug" bson:"slug"`
	Title       string `json:"title" bson:"title"`
	Excerpt     string `json:"excerpt" bson:"excerpt"`
	Content     string `json:"content" bson:"content"`
	ImageURL    string `json:"imageUrl" bson:"image_url"`
	ImageHint   string `json:"imageHint" bson:"image_hint"`
	Author      string `json:"author" bson:"author"`
	PublishedAt string `json:"publishedAt" bson:"published_at"`
	Likes       int64  `json:"likes" bson:"likes"`
}
