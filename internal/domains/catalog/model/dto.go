package model

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ===================================
// REQUEST DTOs
// ===================================

// BookRequest is the payload of both add-book and update-book.
// Update is a full replace of the editorial fields, quantity included.
type BookRequest struct {
	Title    string  `json:"title" yaml:"title"`
	Author   string  `json:"author" yaml:"author"`
	Category string  `json:"category" yaml:"category"`
	Image    string  `json:"image" yaml:"image"`
	Quantity int     `json:"quantity" yaml:"quantity"`
	Rating   float64 `json:"rating" yaml:"rating"`
}

func (r BookRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Author, validation.Length(0, 255)),
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Image,
			validation.When(r.Image != "", is.URL.Error("image must be a URL")),
		),
		validation.Field(&r.Quantity, validation.Min(0).Error("quantity cannot be negative")),
		validation.Field(&r.Rating, validation.Min(0.0).Error("rating cannot be negative")),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBook, err)
	}
	return nil
}

// ToBook converts the payload into an entity without id
func (r BookRequest) ToBook() *Book {
	return &Book{
		Title:    r.Title,
		Author:   r.Author,
		Category: r.Category,
		Image:    r.Image,
		Quantity: r.Quantity,
		Rating:   r.Rating,
	}
}

// ===================================
// RESPONSE DTOs
// ===================================

// UpdateAck acknowledges a full-field update
type UpdateAck struct {
	ID       string `json:"id"`
	Matched  bool   `json:"matched"`
	Modified bool   `json:"modified"`
}
