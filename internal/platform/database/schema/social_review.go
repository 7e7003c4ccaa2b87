package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table       string
	ID          string
	BookID      string
	UserID      string
	Rating      string
	Comment     string
	Status      string
	ModeratedBy string
	ModeratedAt string
	CreatedAt   string
	UpdatedAt   string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:       "social.review",
	ID:          "id",
	BookID:      "bookid",
	UserID:      "userid",
	Rating:      "rating",
	Comment:     "comment",
	Status:      "status",
	ModeratedBy: "moderatedby",
	ModeratedAt: "moderatedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
