// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================
// Models / Entities
// ============================================

// User is keyed by email. Password holds a bcrypt hash for local accounts
// and the empty string for OAuth-created accounts.
type User struct {
	Email     string
	FullName  string
	Password  string
	CreatedAt time.Time
}

type Client struct {
	ID      int64
	Name    string
	Country string
}

// Project references its client by name, not by id. The reference is not
// enforced; deleting a client leaves its projects dangling.
type Project struct {
	ID           int64
	PMNames      string
	Name         string
	Description  string
	Thumbnail    string
	Client       string
	Type         string
	URL          string
	BugReportURL string
}

// ListFilter narrows a paged listing. Query, when non-empty, is matched
// case-insensitively as a substring against the entity's searchable fields.
type ListFilter struct {
	Query  string
	Limit  int
	Offset int
}

// ============================================
// Repository Interfaces
// ============================================

// Lookups return (nil, nil) when no record matches; services translate
// absence into their own not-found errors.

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, email string) error
}

type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id int64) (*Client, error)
	FindByNameAndCountry(ctx context.Context, name, country string) (*Client, error)
	List(ctx context.Context, filter ListFilter) ([]*Client, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id int64) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id int64) (*Project, error)
	FindByNameAndClient(ctx context.Context, name, client string) (*Project, error)
	List(ctx context.Context, filter ListFilter) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id int64) error
}

// ============================================
// Repositories Container
// ============================================

type Repositories struct {
	UserRepo    UserRepository
	ClientRepo  ClientRepository
	ProjectRepo ProjectRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepo:    NewUserRepository(pool),
		ClientRepo:  NewClientRepository(pool),
		ProjectRepo: NewProjectRepository(pool),
	}
}

func NewMemoryRepositories() *Repositories {
	return &Repositories{
		UserRepo:    NewMemoryUserRepository(),
		ClientRepo:  NewMemoryClientRepository(),
		ProjectRepo: NewMemoryProjectRepository(),
	}
}
