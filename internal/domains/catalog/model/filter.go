package model

import (
	"net/url"
	"sort"
	"strconv"
)

// Condition is one equality predicate: stored field == Value
type Condition struct {
	Field string
	Value interface{} // string, int or float64 depending on Field
}

// BookFilter is a conjunction of equality predicates.
// The zero value matches the whole catalog.
type BookFilter struct {
	Conditions []Condition
}

// IsEmpty reports whether the filter matches every book
func (f BookFilter) IsEmpty() bool {
	return len(f.Conditions) == 0
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindInt
	kindFloat
)

var filterableFields = map[string]fieldKind{
	FieldTitle:    kindString,
	FieldAuthor:   kindString,
	FieldCategory: kindString,
	FieldImage:    kindString,
	FieldQuantity: kindInt,
	FieldRating:   kindFloat,
}

// IsFilterableField reports whether field may appear in a BookFilter
func IsFilterableField(field string) bool {
	_, ok := filterableFields[field]
	return ok
}

// ParseBookFilter turns query parameters into a typed BookFilter.
// Unknown fields, repeated fields and values that do not parse for the
// field's type are rejected with ErrInvalidFilter. Conditions are sorted
// by field name so the generated store queries are deterministic.
func ParseBookFilter(params url.Values) (BookFilter, error) {
	fields := make([]string, 0, len(params))
	for field := range params {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	filter := BookFilter{}
	for _, field := range fields {
		values := params[field]

		kind, ok := filterableFields[field]
		if !ok {
			return BookFilter{}, NewInvalidFilterError(field, "is not filterable")
		}
		if len(values) != 1 {
			return BookFilter{}, NewInvalidFilterError(field, "must be given exactly once")
		}

		raw := values[0]
		switch kind {
		case kindInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return BookFilter{}, NewInvalidFilterError(field, "must be an integer")
			}
			filter.Conditions = append(filter.Conditions, Condition{Field: field, Value: n})
		case kindFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return BookFilter{}, NewInvalidFilterError(field, "must be a number")
			}
			filter.Conditions = append(filter.Conditions, Condition{Field: field, Value: f})
		default:
			filter.Conditions = append(filter.Conditions, Condition{Field: field, Value: raw})
		}
	}

	return filter, nil
}

// Matches evaluates the filter against an in-memory book
func (f BookFilter) Matches(b Book) bool {
	for _, cond := range f.Conditions {
		switch cond.Field {
		case FieldTitle:
			if b.Title != cond.Value {
				return false
			}
		case FieldAuthor:
			if b.Author != cond.Value {
				return false
			}
		case FieldCategory:
			if b.Category != cond.Value {
				return false
			}
		case FieldImage:
			if b.Image != cond.Value {
				return false
			}
		case FieldQuantity:
			if b.Quantity != cond.Value {
				return false
			}
		case FieldRating:
			if b.Rating != cond.Value {
				return false
			}
		default:
			return false
		}
	}
	return true
}
