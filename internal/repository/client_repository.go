package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgClientRepository struct {
	pool *pgxpool.Pool
}

func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &pgClientRepository{pool: pool}
}

func (r *pgClientRepository) Create(ctx context.Context, client *Client) error {
	query := `
		INSERT INTO clients (name, country)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.pool.QueryRow(ctx, query, client.Name, client.Country).Scan(&client.ID)
}

func (r *pgClientRepository) FindByID(ctx context.Context, id int64) (*Client, error) {
	query := `SELECT id, name, country FROM clients WHERE id = $1`
	c := &Client{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Country)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgClientRepository) FindByNameAndCountry(ctx context.Context, name, country string) (*Client, error) {
	query := `SELECT id, name, country FROM clients WHERE name = $1 AND country = $2`
	c := &Client{}
	err := r.pool.QueryRow(ctx, query, name, country).Scan(&c.ID, &c.Name, &c.Country)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgClientRepository) List(ctx context.Context, filter ListFilter) ([]*Client, error) {
	query := `
		SELECT id, name, country FROM clients
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	args := []interface{}{filter.Limit, filter.Offset}
	if filter.Query != "" {
		query = `
			SELECT id, name, country FROM clients
			WHERE name ILIKE '%' || $1 || '%' OR country ILIKE '%' || $1 || '%'
			ORDER BY id
			LIMIT $2 OFFSET $3
		`
		args = []interface{}{filter.Query, filter.Limit, filter.Offset}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*Client
	for rows.Next() {
		c := &Client{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Country); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *pgClientRepository) Update(ctx context.Context, client *Client) error {
	query := `UPDATE clients SET name = $1, country = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, client.Name, client.Country, client.ID)
	return err
}

func (r *pgClientRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	return err
}
