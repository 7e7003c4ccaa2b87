package schema

// SocialActivityTable represents the 'social.activity' table
type SocialActivityTable struct {
	Table        string
	ID           string
	UserID       string
	Type         string
	BookID       string
	TargetUserID string
	Details      string
	CreatedAt    string
}

// SocialActivity is the schema definition for social.activity
var SocialActivity = SocialActivityTable{
	Table:        "social.activity",
	ID:           "id",
	UserID:       "userid",
	Type:         "type",
	BookID:       "bookid",
	TargetUserID: "targetuserid",
	Details:      "details",
	CreatedAt:    "createdat",
}
