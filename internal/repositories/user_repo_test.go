package repositories

import (
	"context"
	"testing"
	"time"

	"propertymanager/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepo_CreateDuplicateUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	u := &models.User{Username: "admin", Password: "hash", Email: "a@example.com", Role: models.RoleUser, IsActive: true}
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(u.Username, u.Password, u.Email, u.FirstName, u.LastName, u.Role, u.IsActive).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err = NewUserRepo(mock).Create(context.Background(), u)
	assert.ErrorIs(t, err, ErrUniqueViolation)
	assert.Contains(t, err.Error(), "users_username_key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	first := "Ada"
	mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("ada").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password", "email", "first_name", "last_name",
			"role", "is_active", "created_at", "updated_at"}).
			AddRow(int64(2), "ada", "$2a$10$hash", "ada@example.com", &first, (*string)(nil), "manager", true, now, now))

	u, err := NewUserRepo(mock).GetByUsername(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)
	assert.Equal(t, "$2a$10$hash", u.Password)
	assert.Equal(t, models.RoleManager, u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
