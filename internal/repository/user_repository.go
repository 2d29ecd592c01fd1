package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgUserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgUserRepository{pool: pool}
}

func (r *pgUserRepository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (email, fullname, password)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	return r.pool.QueryRow(ctx, query, user.Email, user.FullName, user.Password).
		Scan(&user.CreatedAt)
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT email, fullname, password, created_at
		FROM users WHERE email = $1
	`
	u := &User{}
	err := r.pool.QueryRow(ctx, query, email).Scan(&u.Email, &u.FullName, &u.Password, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *pgUserRepository) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	// Ordered by primary key so paging is deterministic.
	query := `
		SELECT email, fullname, password, created_at
		FROM users
		ORDER BY email
		LIMIT $1 OFFSET $2
	`
	args := []interface{}{filter.Limit, filter.Offset}
	if filter.Query != "" {
		query = `
			SELECT email, fullname, password, created_at
			FROM users
			WHERE fullname ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
			ORDER BY email
			LIMIT $2 OFFSET $3
		`
		args = []interface{}{filter.Query, filter.Limit, filter.Offset}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.Email, &u.FullName, &u.Password, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *pgUserRepository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE users SET fullname = $1, password = $2
		WHERE email = $3
	`
	_, err := r.pool.Exec(ctx, query, user.FullName, user.Password, user.Email)
	return err
}

func (r *pgUserRepository) Delete(ctx context.Context, email string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	return err
}
