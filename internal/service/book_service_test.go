package service

import (
	"context"
	"fmt"
	"math"
	"testing"

	dom "github.com/RaajPratap/books-management-system/internal/domain"
	"github.com/RaajPratap/books-management-system/internal/repo/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newBookService(t *testing.T) *BookService {
	t.Helper()
	return NewBookService(memory.New().Books())
}

func mustCreate(t *testing.T, s *BookService, owner, title, author string, year int) dom.Book {
	t.Helper()
	b, err := s.Create(context.Background(), owner, BookInput{Title: title, Author: author, Year: intPtr(year)})
	require.NoError(t, err)
	return b
}

func TestNormalizeListParams(t *testing.T) {
	tests := []struct {
		in   ListParams
		want ListParams
	}{
		{ListParams{}, ListParams{Page: 1, Limit: 5}},
		{ListParams{Page: -3, Limit: 0}, ListParams{Page: 1, Limit: 5}},
		{ListParams{Page: 2, Limit: 10, Search: "  go "}, ListParams{Page: 2, Limit: 10, Search: "go"}},
		{ListParams{Page: 1, Limit: 1000}, ListParams{Page: 1, Limit: MaxPageSize}},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeListParams(tc.in))
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(1, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 3, TotalPages(12, 5))
}

func TestList_Pagination(t *testing.T) {
	s := newBookService(t)
	ctx := context.Background()
	for i := 1; i <= 12; i++ {
		mustCreate(t, s, ownerA, fmt.Sprintf("Book %02d", i), "Author", 2000+i)
	}

	first, err := s.List(ctx, ownerA, ListParams{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 12, first.Total)
	assert.Equal(t, 3, first.Pages)
	require.Len(t, first.Items, 5)
	assert.Equal(t, "Book 12", first.Items[0].Title, "newest first")

	last, err := s.List(ctx, ownerA, ListParams{Page: 3, Limit: 5})
	require.NoError(t, err)
	require.Len(t, last.Items, 2)
	assert.Equal(t, "Book 01", last.Items[1].Title)

	beyond, err := s.List(ctx, ownerA, ListParams{Page: 4, Limit: 5})
	require.NoError(t, err)
	assert.NotNil(t, beyond.Items)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 4, beyond.Page)
	assert.Equal(t, 3, beyond.Pages)
	assert.Equal(t, 12, beyond.Total)
}

func TestList_Empty(t *testing.T) {
	s := newBookService(t)

	page, err := s.List(context.Background(), ownerA, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 0, page.Pages)
	assert.Equal(t, 0, page.Total)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestList_Search(t *testing.T) {
	s := newBookService(t)
	ctx := context.Background()
	mustCreate(t, s, ownerA, "Clean Code", "Robert C. Martin", 2008)
	mustCreate(t, s, ownerA, "The Pragmatic Programmer", "David Thomas", 1999)
	mustCreate(t, s, ownerA, "Introduction to Algorithms", "Thomas Cormen", 2009)
	mustCreate(t, s, ownerB, "Martin's Secret Diary", "Someone", 2020)

	all, err := s.List(ctx, ownerA, ListParams{Search: ""})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	byAuthor, err := s.List(ctx, ownerA, ListParams{Search: "MARTIN"})
	require.NoError(t, err)
	require.Len(t, byAuthor.Items, 1)
	assert.Equal(t, "Clean Code", byAuthor.Items[0].Title)

	either, err := s.List(ctx, ownerA, ListParams{Search: "thom"})
	require.NoError(t, err)
	assert.Equal(t, 2, either.Total)

	byTitle, err := s.List(ctx, ownerA, ListParams{Search: "pragmatic"})
	require.NoError(t, err)
	assert.Equal(t, 1, byTitle.Total)
}

func TestCreate_Validation(t *testing.T) {
	s := newBookService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, ownerA, BookInput{Author: "a", Year: intPtr(1)})
	assert.ErrorIs(t, err, dom.ErrValidation)
	_, err = s.Create(ctx, ownerA, BookInput{Title: "t", Author: " ", Year: intPtr(1)})
	assert.ErrorIs(t, err, dom.ErrValidation)
	_, err = s.Create(ctx, ownerA, BookInput{Title: "t", Author: "a"})
	assert.ErrorIs(t, err, dom.ErrValidation)
	assert.ErrorContains(t, err, "year")

	b, err := s.Create(ctx, ownerA, BookInput{Title: " t ", Author: "a", Year: intPtr(0), Description: " d "})
	require.NoError(t, err)
	assert.Equal(t, "t", b.Title)
	assert.Equal(t, "d", b.Description)
	assert.Equal(t, ownerA, b.OwnerID)
}

func TestOwnership_OtherOwnerSeesNotFound(t *testing.T) {
	s := newBookService(t)
	ctx := context.Background()
	b := mustCreate(t, s, ownerA, "Clean Code", "Robert C. Martin", 2008)

	_, err := s.Get(ctx, ownerB, b.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)

	_, err = s.Update(ctx, ownerB, b.ID, dom.BookPatch{Title: strPtr("mine now")})
	assert.ErrorIs(t, err, dom.ErrNotFound)

	err = s.Delete(ctx, ownerB, b.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)

	got, err := s.Get(ctx, ownerA, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clean Code", got.Title)
}

func TestGet_MalformedOrMissingID(t *testing.T) {
	s := newBookService(t)
	ctx := context.Background()

	_, err := s.Get(ctx, ownerA, "not-a-uuid")
	assert.ErrorIs(t, err, dom.ErrNotFound)
	_, err = s.Get(ctx, ownerA, uuid.NewString())
	assert.ErrorIs(t, err, dom.ErrNotFound)
}

func TestUpdate_Partial(t *testing.T) {
	s := newBookService(t)
	ctx := context.Background()
	b := mustCreate(t, s, ownerA, "Clean Code", "Robert C. Martin", 2008)

	got, err := s.Update(ctx, ownerA, b.ID, dom.BookPatch{Year: intPtr(2009)})
	require.NoError(t, err)
	assert.Equal(t, 2009, got.Year)
	assert.Equal(t, "Clean Code", got.Title)
	assert.Equal(t, "Robert C. Martin", got.Author)
	assert.Equal(t, ownerA, got.OwnerID)

	got, err = s.Update(ctx, ownerA, b.ID, dom.BookPatch{})
	require.NoError(t, err)
	assert.Equal(t, 2009, got.Year)

	_, err = s.Update(ctx, ownerA, b.ID, dom.BookPatch{Title: strPtr("  ")})
	assert.ErrorIs(t, err, dom.ErrValidation)
}

func TestDelete(t *testing.T) {
	s := newBookService(t)
	ctx := context.Background()
	b := mustCreate(t, s, ownerA, "Clean Code", "Robert C. Martin", 2008)

	require.NoError(t, s.Delete(ctx, ownerA, b.ID))
	assert.ErrorIs(t, s.Delete(ctx, ownerA, b.ID), dom.ErrNotFound)
	_, err := s.Get(ctx, ownerA, b.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)
}

func TestList_HugePageIsEmpty(t *testing.T) {
	s := newBookService(t)
	mustCreate(t, s, ownerA, "Clean Code", "Robert C. Martin", 2008)

	page, err := s.List(context.Background(), ownerA, ListParams{Page: 1<<61 + 1, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.Pages)
}

func TestYearOutOfRange(t *testing.T) {
	s := newBookService(t)
	ctx := context.Background()

	for _, year := range []int{math.MaxInt32 + 1, math.MinInt32 - 1} {
		_, err := s.Create(ctx, ownerA, BookInput{Title: "t", Author: "a", Year: intPtr(year)})
		assert.ErrorIs(t, err, dom.ErrValidation, "year %d", year)
	}

	b := mustCreate(t, s, ownerA, "Clean Code", "Robert C. Martin", math.MaxInt32)
	_, err := s.Update(ctx, ownerA, b.ID, dom.BookPatch{Year: intPtr(3000000000)})
	assert.ErrorIs(t, err, dom.ErrValidation)

	got, err := s.Get(ctx, ownerA, b.ID)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt32, got.Year)
}
