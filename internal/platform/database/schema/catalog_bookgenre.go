package schema

// CatalogBookGenreTable represents the 'catalog.bookgenre' join table
type CatalogBookGenreTable struct {
	Table    string
	BookID   string
	GenreID  string
	Position string
}

// CatalogBookGenre is the schema definition for catalog.bookgenre
var CatalogBookGenre = CatalogBookGenreTable{
	Table:    "catalog.bookgenre",
	BookID:   "bookid",
	GenreID:  "genreid",
	Position: "position",
}
