package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgProjectRepository{pool: pool}
}

func (r *pgProjectRepository) Create(ctx context.Context, project *Project) error {
	query := `
		INSERT INTO projects (pm_names, name, description, thumbnail, client, type, url, bug_report_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.pool.QueryRow(ctx, query,
		project.PMNames, project.Name, project.Description, project.Thumbnail,
		project.Client, project.Type, project.URL, project.BugReportURL,
	).Scan(&project.ID)
}

func (r *pgProjectRepository) FindByID(ctx context.Context, id int64) (*Project, error) {
	query := `
		SELECT id, pm_names, name, description, thumbnail, client, type, url, bug_report_url
		FROM projects WHERE id = $1
	`
	p := &Project{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.PMNames, &p.Name, &p.Description, &p.Thumbnail,
		&p.Client, &p.Type, &p.URL, &p.BugReportURL,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgProjectRepository) FindByNameAndClient(ctx context.Context, name, client string) (*Project, error) {
	query := `
		SELECT id, pm_names, name, description, thumbnail, client, type, url, bug_report_url
		FROM projects WHERE name = $1 AND client = $2
	`
	p := &Project{}
	err := r.pool.QueryRow(ctx, query, name, client).Scan(
		&p.ID, &p.PMNames, &p.Name, &p.Description, &p.Thumbnail,
		&p.Client, &p.Type, &p.URL, &p.BugReportURL,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgProjectRepository) List(ctx context.Context, filter ListFilter) ([]*Project, error) {
	query := `
		SELECT id, pm_names, name, description, thumbnail, client, type, url, bug_report_url
		FROM projects
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	args := []interface{}{filter.Limit, filter.Offset}
	if filter.Query != "" {
		query = `
			SELECT id, pm_names, name, description, thumbnail, client, type, url, bug_report_url
			FROM projects
			WHERE name ILIKE '%' || $1 || '%' OR pm_names ILIKE '%' || $1 || '%'
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

	var projects []*Project
	for rows.Next() {
		p := &Project{}
		if err := rows.Scan(
			&p.ID, &p.PMNames, &p.Name, &p.Description, &p.Thumbnail,
			&p.Client, &p.Type, &p.URL, &p.BugReportURL,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *pgProjectRepository) Update(ctx context.Context, project *Project) error {
	query := `
		UPDATE projects
		SET pm_names = $1, name = $2, description = $3, thumbnail = $4,
		    client = $5, type = $6, url = $7, bug_report_url = $8
		WHERE id = $9
	`
	_, err := r.pool.Exec(ctx, query,
		project.PMNames, project.Name, project.Description, project.Thumbnail,
		project.Client, project.Type, project.URL, project.BugReportURL, project.ID,
	)
	return err
}

func (r *pgProjectRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}
