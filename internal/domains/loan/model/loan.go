package model

import (
	"time"

	catalog "bookocean-backend/internal/domains/catalog/model"
)

// Loan records that Email holds one copy of BookID. BookID is a weak
// reference: nothing stops the book from disappearing underneath it.
type Loan struct {
	ID         string    `json:"id"`
	BookID     string    `json:"bookId"`
	Email      string    `json:"email"`
	BorrowDate time.Time `json:"borrowDate"`
	ReturnDate time.Time `json:"returnDate"`
}

// EnrichedLoan is a catalog Book merged with the loan that holds it
type EnrichedLoan struct {
	catalog.Book
	ReturnDate   time.Time `json:"returnDate"`
	BorrowedDate time.Time `json:"borrowedDate"`
	BorrowedID   string    `json:"borrowedId"`
}

// Enrich joins loans with the catalog through an id index, O(L + B).
// Loans whose book cannot be resolved are dropped. Output keeps loan order.
func Enrich(loans []Loan, books []catalog.Book) []EnrichedLoan {
	index := catalog.IndexByID(books)

	out := make([]EnrichedLoan, 0, len(loans))
	for _, l := range loans {
		book, ok := index[catalog.NormalizeID(l.BookID)]
		if !ok {
			continue
		}
		out = append(out, EnrichedLoan{
			Book:         *book,
			ReturnDate:   l.ReturnDate,
			BorrowedDate: l.BorrowDate,
			BorrowedID:   l.ID,
		})
	}
	return out
}

// BorrowResult is the outcome of the lending borrow flow
type BorrowResult struct {
	Loan Loan         `json:"loan"`
	Book catalog.Book `json:"book"`
}

// ReturnResult is the outcome of the lending return flow. Book is nil when
// the loan pointed at a book that no longer exists.
type ReturnResult struct {
	LoanID string        `json:"loanId"`
	Book   *catalog.Book `json:"book"`
}
