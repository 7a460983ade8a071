package repo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	dom "github.com/RaajPratap/books-management-system/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var userCols = []string{"id", "username", "email", "password_hash", "created_at"}

func TestUserCreate_Success(t *testing.T) {
	mock := newMock(t)
	repo := NewPGUserRepo(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (id, username, email, password_hash)`)).
		WithArgs(pgxmock.AnyArg(), "raj", "dev@raj.codes", "hash").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow("u-1", "raj", "dev@raj.codes", "hash", now))

	u, err := repo.Create(context.Background(), "raj", "dev@raj.codes", "hash")
	require.NoError(t, err)
	assert.Equal(t, dom.User{ID: "u-1", Username: "raj", Email: "dev@raj.codes", PasswordHash: "hash", CreatedAt: now}, u)
}

func TestUserCreate_Duplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewPGUserRepo(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(pgxmock.AnyArg(), "raj", "dev@raj.codes", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), "raj", "dev@raj.codes", "hash")
	assert.ErrorIs(t, err, dom.ErrDuplicateKey)
}

func TestUserCreate_DBError(t *testing.T) {
	mock := newMock(t)
	repo := NewPGUserRepo(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WithArgs(pgxmock.AnyArg(), "raj", "dev@raj.codes", "hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), "raj", "dev@raj.codes", "hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, dom.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "db down")
}

func TestUserGetByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewPGUserRepo(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("dev@raj.codes").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow("u-1", "raj", "dev@raj.codes", "hash", now))

	u, err := repo.GetByEmail(context.Background(), "dev@raj.codes")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
}

func TestUserGetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPGUserRepo(mock)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, dom.ErrNotFound)
}
