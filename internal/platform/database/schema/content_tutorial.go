package schema

// ContentTutorialTable represents the 'content.tutorial' table
type ContentTutorialTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Content     string
	VideoURL    string
	Category    string
	Status      string
	AuthorID    string
	Views       string
	CreatedAt   string
	UpdatedAt   string
}

// ContentTutorial is the schema definition for content.tutorial
var ContentTutorial = ContentTutorialTable{
	Table:       "content.tutorial",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Content:     "content",
	VideoURL:    "videourl",
	Category:    "category",
	Status:      "status",
	AuthorID:    "authorid",
	Views:       "views",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
