package schema

// CatalogGenreTable represents the 'catalog.genre' table
type CatalogGenreTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedBy   string
	CreatedAt   string
}

// CatalogGenre is the schema definition for catalog.genre
var CatalogGenre = CatalogGenreTable{
	Table:       "catalog.genre",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	CreatedBy:   "createdby",
	CreatedAt:   "createdat",
}
