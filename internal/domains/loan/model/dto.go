package model

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Accepted date layouts: full timestamps or the yyyy-mm-dd a date input sends
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// ParseDate parses a borrow/return date
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func dateRule(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := ParseDate(s); err != nil {
		return validation.NewError("validation_date_format", "must be RFC3339 or YYYY-MM-DD")
	}
	return nil
}

// CreateLoanRequest - POST /borrowed and POST /borrow
type CreateLoanRequest struct {
	BookID     string `json:"bookId"`
	Email      string `json:"email"`
	BorrowDate string `json:"borrowDate"`
	ReturnDate string `json:"returnDate"`
}

func (r CreateLoanRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required.Error("bookId is required")),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("email is invalid"),
		),
		validation.Field(&r.BorrowDate,
			validation.Required.Error("borrowDate is required"),
			validation.By(dateRule),
		),
		validation.Field(&r.ReturnDate,
			validation.Required.Error("returnDate is required"),
			validation.By(dateRule),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLoan, err)
	}

	borrow, _ := ParseDate(r.BorrowDate)
	ret, _ := ParseDate(r.ReturnDate)
	if ret.Before(borrow) {
		return fmt.Errorf("%w: returnDate is before borrowDate", ErrInvalidLoan)
	}
	return nil
}

// ToLoan converts a validated request into an entity without id
func (r CreateLoanRequest) ToLoan() *Loan {
	borrow, _ := ParseDate(r.BorrowDate)
	ret, _ := ParseDate(r.ReturnDate)
	return &Loan{
		BookID:     strings.TrimSpace(r.BookID),
		Email:      r.Email,
		BorrowDate: borrow,
		ReturnDate: ret,
	}
}

// DeleteAck acknowledges a loan removal
type DeleteAck struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
