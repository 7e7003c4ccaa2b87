package schema

// LibraryEntryTable represents the 'library.entry' table
type LibraryEntryTable struct {
	Table          string
	ID             string
	UserID         string
	BookID         string
	Shelf          string
	PagesRead      string
	TotalPages     string
	Percentage     string
	PersonalRating string
	DateAdded      string
	DateFinished   string
	CreatedAt      string
	UpdatedAt      string
}

// LibraryEntry is the schema definition for library.entry
var LibraryEntry = LibraryEntryTable{
	Table:          "library.entry",
	ID:             "id",
	UserID:         "userid",
	BookID:         "bookid",
	Shelf:          "shelf",
	PagesRead:      "pagesread",
	TotalPages:     "totalpages",
	Percentage:     "percentage",
	PersonalRating: "personalrating",
	DateAdded:      "dateadded",
	DateFinished:   "datefinished",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t LibraryEntryTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.BookID, t.Shelf, t.PagesRead, t.TotalPages, t.Percentage,
		t.PersonalRating, t.DateAdded, t.DateFinished, t.CreatedAt, t.UpdatedAt,
	}
}
