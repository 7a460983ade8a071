package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	dom "github.com/RaajPratap/books-management-system/internal/domain"

	"github.com/jackc/pgx/v5"
)

// BookRepo provides owner-scoped book persistence.
// Every method filters by owner, so another user's book behaves as missing.
type BookRepo interface {
	Create(ctx context.Context, b dom.Book) (dom.Book, error)
	GetByID(ctx context.Context, ownerID, id string) (dom.Book, error)
	List(ctx context.Context, f dom.BookFilter) ([]dom.Book, error)
	Count(ctx context.Context, ownerID, search string) (int, error)
	Update(ctx context.Context, ownerID, id string, patch dom.BookPatch) (dom.Book, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// PGBookRepo is the PostgreSQL implementation of BookRepo.
type PGBookRepo struct {
	db DB
}

// NewPGBookRepo returns a BookRepo backed by db.
func NewPGBookRepo(db DB) *PGBookRepo {
	return &PGBookRepo{db: db}
}

const bookColumns = `id, owner_id, title, author, year, description, created_at, updated_at`

// Create inserts b with a fresh id and returns the stored row.
func (r *PGBookRepo) Create(ctx context.Context, b dom.Book) (dom.Book, error) {
	id, err := newID()
	if err != nil {
		return dom.Book{}, err
	}
	query := `
		INSERT INTO books (id, owner_id, title, author, year, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + bookColumns
	out, err := scanBook(r.db.QueryRow(ctx, query, id, b.OwnerID, b.Title, b.Author, b.Year, b.Description))
	if err != nil {
		return dom.Book{}, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// GetByID returns the owner's book, or dom.ErrNotFound.
func (r *PGBookRepo) GetByID(ctx context.Context, ownerID, id string) (dom.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 AND owner_id = $2`
	b, err := scanBook(r.db.QueryRow(ctx, query, id, ownerID))
	return b, notFound(err)
}

// List returns one page of the owner's books, newest first.
func (r *PGBookRepo) List(ctx context.Context, f dom.BookFilter) ([]dom.Book, error) {
	where, args := ownerScope(f.OwnerID, f.Search)
	n := len(args)
	query := `SELECT ` + bookColumns + ` FROM books WHERE ` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	list := []dom.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return list, nil
}

// Count returns how many of the owner's books match search.
func (r *PGBookRepo) Count(ctx context.Context, ownerID, search string) (int, error) {
	where, args := ownerScope(ownerID, search)
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return int(total), nil
}

// Update applies the non-nil fields of patch in a single statement.
func (r *PGBookRepo) Update(ctx context.Context, ownerID, id string, patch dom.BookPatch) (dom.Book, error) {
	query := `
		UPDATE books SET
			title = COALESCE($3, title),
			author = COALESCE($4, author),
			year = COALESCE($5, year),
			description = COALESCE($6, description),
			updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + bookColumns
	b, err := scanBook(r.db.QueryRow(ctx, query, id, ownerID,
		patch.Title, patch.Author, patch.Year, patch.Description))
	return b, notFound(err)
}

// Delete removes the owner's book. Zero affected rows is dom.ErrNotFound.
func (r *PGBookRepo) Delete(ctx context.Context, ownerID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dom.ErrNotFound
	}
	return nil
}

// ownerScope builds the WHERE clause shared by List and Count.
// search matches title or author as a case-insensitive substring.
func ownerScope(ownerID, search string) (string, []any) {
	where := `owner_id = $1`
	args := []any{ownerID}
	if search != "" {
		where += ` AND (title ILIKE $2 ESCAPE '\' OR author ILIKE $2 ESCAPE '\')`
		args = append(args, likePattern(search))
	}
	return where, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func notFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.ErrNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func scanBook(row pgx.Row) (dom.Book, error) {
	var b dom.Book
	err := row.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Author, &b.Year, &b.Description, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}
