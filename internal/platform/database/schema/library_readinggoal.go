package schema

// LibraryReadingGoalTable represents the 'library.readinggoal' table
type LibraryReadingGoalTable struct {
	Table       string
	ID          string
	UserID      string
	Year        string
	TargetBooks string
	CreatedAt   string
	UpdatedAt   string
}

// LibraryReadingGoal is the schema definition for library.readinggoal
var LibraryReadingGoal = LibraryReadingGoalTable{
	Table:       "library.readinggoal",
	ID:          "id",
	UserID:      "userid",
	Year:        "year",
	TargetBooks: "targetbooks",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
