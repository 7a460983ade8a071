// Package memory holds in-process implementations of the repo interfaces.
// They follow the Postgres repos' semantics and back the service and router tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	dom "github.com/RaajPratap/books-management-system/internal/domain"

	"github.com/google/uuid"
)

// Store keeps users and books in maps guarded by a single mutex.
type Store struct {
	mu    sync.RWMutex
	users map[string]dom.User
	books map[string]dom.Book
	now   func() time.Time
}

func New() *Store {
	return &Store{
		users: make(map[string]dom.User),
		books: make(map[string]dom.Book),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Users returns a repo.UserRepo view of the store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Books returns a repo.BookRepo view of the store.
func (s *Store) Books() *BookRepo { return &BookRepo{s: s} }

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string) (dom.User, error) {
	if err := ctx.Err(); err != nil {
		return dom.User{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username || u.Email == email {
			return dom.User{}, dom.ErrDuplicateKey
		}
	}
	u := dom.User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    r.s.now(),
	}
	r.s.users[u.ID] = u
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	if err := ctx.Err(); err != nil {
		return dom.User{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, dom.ErrNotFound
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (dom.User, error) {
	if err := ctx.Err(); err != nil {
		return dom.User{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return dom.User{}, dom.ErrNotFound
	}
	return u, nil
}

type BookRepo struct{ s *Store }

func (r *BookRepo) Create(ctx context.Context, b dom.Book) (dom.Book, error) {
	if err := ctx.Err(); err != nil {
		return dom.Book{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = uuid.Must(uuid.NewV7()).String()
	b.CreatedAt = r.s.now()
	b.UpdatedAt = b.CreatedAt
	r.s.books[b.ID] = b
	return b, nil
}

func (r *BookRepo) GetByID(ctx context.Context, ownerID, id string) (dom.Book, error) {
	if err := ctx.Err(); err != nil {
		return dom.Book{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.books[id]
	if !ok || b.OwnerID != ownerID {
		return dom.Book{}, dom.ErrNotFound
	}
	return b, nil
}

func (r *BookRepo) List(ctx context.Context, f dom.BookFilter) ([]dom.Book, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched := r.match(f.OwnerID, f.Search)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	if f.Offset < 0 || f.Offset >= len(matched) {
		return []dom.Book{}, nil
	}
	end := len(matched)
	if f.Limit < end-f.Offset {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], nil
}

func (r *BookRepo) Count(ctx context.Context, ownerID, search string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(r.match(ownerID, search)), nil
}

func (r *BookRepo) Update(ctx context.Context, ownerID, id string, patch dom.BookPatch) (dom.Book, error) {
	if err := ctx.Err(); err != nil {
		return dom.Book{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok || b.OwnerID != ownerID {
		return dom.Book{}, dom.ErrNotFound
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Author != nil {
		b.Author = *patch.Author
	}
	if patch.Year != nil {
		b.Year = *patch.Year
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	b.UpdatedAt = r.s.now()
	r.s.books[id] = b
	return b, nil
}

func (r *BookRepo) Delete(ctx context.Context, ownerID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok || b.OwnerID != ownerID {
		return dom.ErrNotFound
	}
	delete(r.s.books, id)
	return nil
}

func (r *BookRepo) match(ownerID, search string) []dom.Book {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	needle := strings.ToLower(search)
	var out []dom.Book
	for _, b := range r.s.books {
		if b.OwnerID != ownerID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Author), needle) {
			continue
		}
		out = append(out, b)
	}
	return out
}
