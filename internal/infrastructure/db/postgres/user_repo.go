package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/culturalite/backend/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const userProfileColumns = `
u.id, u.email, u.password_hash, u.first_name, u.last_name, u.created_at,
p.id, p.role, p.organization_name, p.phone_number, p.website, p.bio,
p.avatar, p.city, p.country, p.is_verified, p.created_at, p.updated_at
`

func scanUserProfile(row *sql.Row) (domain.User, domain.Profile, error) {
	var u domain.User
	var p domain.Profile
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt,
		&p.ID, &p.Role, &p.OrganizationName, &p.PhoneNumber, &p.Website, &p.Bio,
		&p.Avatar, &p.City, &p.Country, &p.IsVerified, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, domain.Profile{}, err
	}
	p.UserID = u.ID
	return u, p, nil
}

func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// ---------- auth.UserRepo ----------

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, domain.Profile, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.Profile{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userProfileColumns + `
FROM users u
JOIN profiles p ON p.user_id = u.id
WHERE u.email = $1
LIMIT 1;
`
	u, p, err := scanUserProfile(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.Profile{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.Profile{}, domain.ErrDBUnavailable(err)
	}
	return u, p, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, domain.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.Profile{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + userProfileColumns + `
FROM users u
JOIN profiles p ON p.user_id = u.id
WHERE u.id = $1
LIMIT 1;
`
	u, p, err := scanUserProfile(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.Profile{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.Profile{}, domain.ErrDBUnavailable(err)
	}
	return u, p, nil
}

func (r *UserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" {
		return false, domain.ErrMissingField("email")
	}

	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1);`
	var taken bool
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&taken); err != nil {
		return false, domain.ErrDBUnavailable(err)
	}
	return taken, nil
}

// CreateWithProfile inserts the user and its profile inside one transaction;
// a failure on either insert rolls back both.
func (r *UserRepo) CreateWithProfile(ctx context.Context, u domain.User, p domain.Profile) (domain.User, domain.Profile, error) {
	u.Email = normalizeEmail(u.Email)
	if u.ID == "" || u.Email == "" || u.PasswordHash == "" {
		return domain.User{}, domain.Profile{}, domain.ErrMissingField("user")
	}
	if p.Role == "" {
		p.Role = string(domain.RoleVendor)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.User{}, domain.Profile{}, domain.ErrDBUnavailable(err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertUser = `
INSERT INTO users (id, email, password_hash, first_name, last_name)
VALUES ($1,$2,$3,$4,$5)
RETURNING created_at;
`
	if err := tx.QueryRowContext(ctx, insertUser,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
	).Scan(&u.CreatedAt); err != nil {
		if isDuplicate(err) {
			return domain.User{}, domain.Profile{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.Profile{}, domain.ErrDBUnavailable(err)
	}

	const insertProfile = `
INSERT INTO profiles (id, user_id, role, organization_name, phone_number, website, bio, avatar, city, country, is_verified)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
RETURNING created_at, updated_at;
`
	p.UserID = u.ID
	if err := tx.QueryRowContext(ctx, insertProfile,
		p.ID, p.UserID, p.Role, p.OrganizationName, p.PhoneNumber, p.Website,
		p.Bio, p.Avatar, p.City, p.Country, p.IsVerified,
	).Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.User{}, domain.Profile{}, domain.ErrDBUnavailable(err)
	}

	if err := tx.Commit(); err != nil {
		return domain.User{}, domain.Profile{}, domain.ErrDBUnavailable(err)
	}
	return u, p, nil
}
