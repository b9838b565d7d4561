package postgres

import (
	"context"
	"database/sql"
	"errors"

	"applyapi/internal/apperr"
	"applyapi/internal/model"
	"applyapi/internal/repository"
)

// UserPostgres reads accounts from the users table. Password hashes are never selected.
type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserProvider = (*UserPostgres)(nil)

const userColumns = `id, name, email, role, photo, skills, company_name`

func (r *UserPostgres) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, q, id)
}

func (r *UserPostgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, q, email)
}

func (r *UserPostgres) getOne(ctx context.Context, q string, arg string) (*model.User, error) {
	var (
		u              model.User
		photo, company sql.NullString
		skills         []byte
	)
	err := r.db.QueryRowContext(ctx, q, arg).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &photo, &skills, &company)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Persistence("failed to load user", err)
	}
	u.Photo = photo.String
	u.CompanyName = company.String
	u.Skills = decodeSkills(skills)
	return &u, nil
}
