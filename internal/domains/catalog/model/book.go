package model

import "strings"

// Book is one catalog entry. Quantity is the number of copies currently
// available to borrow and is the only field touched concurrently.
type Book struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
	Rating   float64 `json:"rating"`
}

// Stored field names, shared by every store driver
const (
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldCategory = "category"
	FieldImage    = "image"
	FieldQuantity = "quantity"
	FieldRating   = "rating"
)

// NormalizeID puts an identifier in the canonical string form used for comparisons.
// Ids reach the service as hex ObjectIDs, uuids or raw strings depending on the store.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// IndexByID builds an id -> Book lookup keyed by NormalizeID
func IndexByID(books []Book) map[string]*Book {
	index := make(map[string]*Book, len(books))
	for i := range books {
		index[NormalizeID(books[i].ID)] = &books[i]
	}
	return index
}

// DistinctCategories returns each category once, in first-seen order
func DistinctCategories(books []Book) []string {
	seen := make(map[string]struct{}, len(books))
	categories := make([]string, 0)

	for _, b := range books {
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		categories = append(categories, b.Category)
	}
	return categories
}
