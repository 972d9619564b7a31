package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culturalite/backend/internal/domain"
)

func userProfileRows(t *testing.T, u domain.User, p domain.Profile) *sqlmock.Rows {
	t.Helper()
	return sqlmock.NewRows([]string{
		"u_id", "email", "password_hash", "first_name", "last_name", "u_created_at",
		"p_id", "role", "organization_name", "phone_number", "website", "bio",
		"avatar", "city", "country", "is_verified", "p_created_at", "p_updated_at",
	}).AddRow(
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.CreatedAt,
		p.ID, p.Role, p.OrganizationName, p.PhoneNumber, p.Website, p.Bio,
		p.Avatar, p.City, p.Country, p.IsVerified, p.CreatedAt, p.UpdatedAt,
	)
}

func testUserProfile() (domain.User, domain.Profile) {
	now := time.Now().UTC().Truncate(time.Second)
	u := domain.User{
		ID: "user-1", Email: "vendor@example.com", PasswordHash: "hash",
		FirstName: "Asha", LastName: "Iyer", CreatedAt: now,
	}
	p := domain.Profile{
		ID: "profile-1", UserID: u.ID, Role: "vendor",
		OrganizationName: "Chennai Arts Collective", CreatedAt: now, UpdatedAt: now,
	}
	return u, p
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	want, wantP := testUserProfile()

	t.Run("success_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users u JOIN profiles p").
			WithArgs("vendor@example.com").
			WillReturnRows(userProfileRows(t, want, wantP))

		u, p, err := repo.GetByEmail(context.Background(), "  Vendor@Example.COM ")
		require.NoError(t, err)
		assert.Equal(t, want.ID, u.ID)
		assert.Equal(t, wantP.Role, p.Role)
		assert.Equal(t, u.ID, p.UserID)
	})

	t.Run("not_found_mapping", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users u JOIN profiles p").
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		_, _, err := repo.GetByEmail(context.Background(), "missing@example.com")
		assert.True(t, domain.Is(err, "user_not_found"), "got %v", err)
	})

	t.Run("empty_email", func(t *testing.T) {
		_, _, err := repo.GetByEmail(context.Background(), "  ")
		assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)
	want, wantP := testUserProfile()

	mock.ExpectQuery("SELECT (.+) FROM users u JOIN profiles p").
		WithArgs("user-1").
		WillReturnRows(userProfileRows(t, want, wantP))

	u, _, err := repo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "vendor@example.com", u.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_EmailTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("vendor@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.EmailTaken(context.Background(), "Vendor@Example.com")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateWithProfile(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	u := domain.User{
		ID: "user-1", Email: "New@Example.com", PasswordHash: "hash",
		FirstName: "Ravi", LastName: "Menon",
	}
	p := domain.Profile{ID: "profile-1", Role: "vendor", OrganizationName: "Kochi Culture Hub"}

	t.Run("commits_both_inserts", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewUserRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, "new@example.com", u.PasswordHash, u.FirstName, u.LastName).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectQuery("INSERT INTO profiles").
			WithArgs(p.ID, u.ID, p.Role, p.OrganizationName, "", "", "", "", "", "", false).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectCommit()

		gotU, gotP, err := repo.CreateWithProfile(context.Background(), u, p)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", gotU.Email)
		assert.Equal(t, now, gotU.CreatedAt)
		assert.Equal(t, u.ID, gotP.UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate_email_rolls_back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewUserRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(errors.New(`duplicate key value violates unique constraint "users_email_key"`))
		mock.ExpectRollback()

		_, _, err = repo.CreateWithProfile(context.Background(), u, p)
		assert.True(t, domain.Is(err, "email_already_exists"), "got %v", err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("profile_insert_failure_rolls_back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewUserRepo(db)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO users").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))
		mock.ExpectQuery("INSERT INTO profiles").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, _, err = repo.CreateWithProfile(context.Background(), u, p)
		assert.Equal(t, domain.KindInternal, domain.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
