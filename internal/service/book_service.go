package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	dom "github.com/RaajPratap/books-management-system/internal/domain"
	"github.com/RaajPratap/books-management-system/internal/repo"

	"github.com/google/uuid"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 5
	MaxPageSize     = 100
)

var ErrBookNotFound = fmt.Errorf("%w: book not found", dom.ErrNotFound)

// ListParams is a raw list request. Zero or negative values select defaults.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// Page is one page of an owner's books plus the metadata to page through the rest.
type Page struct {
	Items []dom.Book
	Page  int
	Pages int
	Total int
}

// BookInput holds the fields for creating a book. Year is a pointer so a
// missing year can be told apart from zero.
type BookInput struct {
	Title       string
	Author      string
	Year        *int
	Description string
}

// BookService implements the owner-scoped catalog. Every method takes the
// caller's user ID explicitly.
type BookService struct {
	repo repo.BookRepo
}

func NewBookService(r repo.BookRepo) *BookService {
	return &BookService{repo: r}
}

// NormalizeListParams clamps page and limit and trims the search term.
func NormalizeListParams(p ListParams) ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// TotalPages is ceil(total/limit). Zero books means zero pages.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// List returns one page of the owner's books, newest first.
// A page past the end yields no items, not an error.
func (s *BookService) List(ctx context.Context, ownerID string, params ListParams) (Page, error) {
	p := NormalizeListParams(params)
	total, err := s.repo.Count(ctx, ownerID, p.Search)
	if err != nil {
		return Page{}, err
	}
	out := Page{Items: []dom.Book{}, Page: p.Page, Pages: TotalPages(total, p.Limit), Total: total}

	if p.Page > out.Pages {
		return out, nil
	}
	offset := (p.Page - 1) * p.Limit
	items, err := s.repo.List(ctx, dom.BookFilter{
		OwnerID: ownerID,
		Search:  p.Search,
		Limit:   p.Limit,
		Offset:  offset,
	})
	if err != nil {
		return Page{}, err
	}
	if items != nil {
		out.Items = items
	}
	return out, nil
}

func (s *BookService) Get(ctx context.Context, ownerID, id string) (dom.Book, error) {
	if !validID(id) {
		return dom.Book{}, ErrBookNotFound
	}
	b, err := s.repo.GetByID(ctx, ownerID, id)
	return b, mapNotFound(err)
}

func (s *BookService) Create(ctx context.Context, ownerID string, in BookInput) (dom.Book, error) {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if author == "" {
		missing = append(missing, "author")
	}
	if in.Year == nil {
		missing = append(missing, "year")
	}
	if len(missing) > 0 {
		return dom.Book{}, fmt.Errorf("%w: %s required", dom.ErrValidation, strings.Join(missing, ", "))
	}
	if err := checkYear(*in.Year); err != nil {
		return dom.Book{}, err
	}
	return s.repo.Create(ctx, dom.Book{
		OwnerID:     ownerID,
		Title:       title,
		Author:      author,
		Year:        *in.Year,
		Description: strings.TrimSpace(in.Description),
	})
}

// Update changes only the supplied fields. The owner cannot be changed.
func (s *BookService) Update(ctx context.Context, ownerID, id string, patch dom.BookPatch) (dom.Book, error) {
	if !validID(id) {
		return dom.Book{}, ErrBookNotFound
	}
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return dom.Book{}, fmt.Errorf("%w: title must not be empty", dom.ErrValidation)
		}
		patch.Title = &t
	}
	if patch.Author != nil {
		a := strings.TrimSpace(*patch.Author)
		if a == "" {
			return dom.Book{}, fmt.Errorf("%w: author must not be empty", dom.ErrValidation)
		}
		patch.Author = &a
	}
	if patch.Year != nil {
		if err := checkYear(*patch.Year); err != nil {
			return dom.Book{}, err
		}
	}
	if patch.Description != nil {
		d := strings.TrimSpace(*patch.Description)
		patch.Description = &d
	}
	if patch == (dom.BookPatch{}) {
		return s.Get(ctx, ownerID, id)
	}
	b, err := s.repo.Update(ctx, ownerID, id, patch)
	return b, mapNotFound(err)
}

func (s *BookService) Delete(ctx context.Context, ownerID, id string) error {
	if !validID(id) {
		return ErrBookNotFound
	}
	return mapNotFound(s.repo.Delete(ctx, ownerID, id))
}

// checkYear keeps year within the INTEGER column.
func checkYear(year int) error {
	if year < math.MinInt32 || year > math.MaxInt32 {
		return fmt.Errorf("%w: year out of range", dom.ErrValidation)
	}
	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func mapNotFound(err error) error {
	if errors.Is(err, dom.ErrNotFound) {
		return ErrBookNotFound
	}
	return err
}
