package dto

import "time"

type CreateBookRequest struct {
	Title       string `json:"title" binding:"max=500"`
	Author      string `json:"author" binding:"max=500"`
	Year        *int   `json:"year"`
	Description string `json:"description" binding:"max=5000"`
}

// UpdateBookRequest is a partial update: nil = leave unchanged.
type UpdateBookRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=500"`
	Author      *string `json:"author" binding:"omitempty,max=500"`
	Year        *int    `json:"year"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
}

type BookResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListBooksResponse struct {
	Books []BookResponse `json:"books"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
	Total int            `json:"total"`
}
