package service

import (
	"errors"

	"github.com/makara-hq/portfolio-backend/internal/config"
	"github.com/makara-hq/portfolio-backend/internal/email"
	"github.com/makara-hq/portfolio-backend/internal/repository"
)

var (
	ErrNotFound             = errors.New("resource not found")
	ErrConflict             = errors.New("resource already exists")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidProjectType   = errors.New("invalid project type")
	ErrInvalidState         = errors.New("invalid or expired oauth state")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// ChangeBroadcaster publishes entity change events to connected admin
// dashboards. Implemented by socket.Broadcaster; services tolerate nil.
type ChangeBroadcaster interface {
	RecordCreated(resource string, record map[string]interface{})
	RecordUpdated(resource string, record map[string]interface{})
	RecordDeleted(resource string, id string)
}

// ListParams carries pagination and search input as received from the
// HTTP surface. Page and Limit below 1 fall back to 1 and 10.
type ListParams struct {
	Page  int
	Limit int
	Query string
}

func (p ListParams) filter() repository.ListFilter {
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = 10
	}
	return repository.ListFilter{
		Query:  p.Query,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth    AuthService
	User    UserService
	Client  ClientService
	Project ProjectService
}

type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	States      StateStore
	EmailSvc    *email.Service
	Broadcaster ChangeBroadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	return &Services{
		Auth:    NewAuthService(deps.Config, deps.Repos.UserRepo, deps.States),
		User:    NewUserService(deps.Repos.UserRepo, deps.EmailSvc, deps.Broadcaster),
		Client:  NewClientService(deps.Repos.ClientRepo, deps.Broadcaster),
		Project: NewProjectService(deps.Repos.ProjectRepo, deps.Broadcaster),
	}
}
