package domain

import "time"

// Book is a catalog entry. OwnerID is set on create and never changes.
type Book struct {
	ID          string
	OwnerID     string
	Title       string
	Author      string
	Year        int
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookPatch carries the fields of a partial update. Nil means "leave as is".
type BookPatch struct {
	Title       *string
	Author      *string
	Year        *int
	Description *string
}

// BookFilter selects one page of an owner's books.
type BookFilter struct {
	OwnerID string
	Search  string
	Limit   int
	Offset  int
}
