package entity

// Book is the catalog's view of a book, as returned by GET /books/{isbn}.
type Book struct {
	ISBN      string  `json:"isbn"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Price     float64 `json:"price"`
	Publisher string  `json:"publisher,omitempty"`
}
