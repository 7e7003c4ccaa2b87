package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table          string
	ID             string
	Title          string
	Author         string
	ISBN           string
	OLID           string
	CoverImage     string
	Description    string
	PublishYear    string
	RatingsAverage string
	RatingsCount   string
	TotalShelved   string
	CreatedBy      string
	CreatedAt      string
	UpdatedAt      string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:          "catalog.book",
	ID:             "id",
	Title:          "title",
	Author:         "author",
	ISBN:           "isbn",
	OLID:           "olid",
	CoverImage:     "coverimage",
	Description:    "description",
	PublishYear:    "publishyear",
	RatingsAverage: "ratingsaverage",
	RatingsCount:   "ratingscount",
	TotalShelved:   "totalshelved",
	CreatedBy:      "createdby",
	CreatedAt:      "createdat",
	UpdatedAt:      "updatedat",
}

func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.ISBN, t.OLID, t.CoverImage, t.Description,
		t.PublishYear, t.RatingsAverage, t.RatingsCount, t.TotalShelved,
		t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	}
}
