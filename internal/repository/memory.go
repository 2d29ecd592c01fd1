// internal/repository/memory.go
//
// In-memory repository implementations. Behaviorally equivalent to the
// postgres ones for the service layer's purposes; used when
// STORAGE_DRIVER=memory and throughout the tests.
package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func pageSlice[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ============================================
// Users
// ============================================

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]*User)}
}

func (r *memoryUserRepository) Create(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepository) List(ctx context.Context, filter ListFilter) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Same ordering as the postgres backend: primary key (email).
	emails := make([]string, 0, len(r.users))
	for email := range r.users {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	var matched []*User
	for _, email := range emails {
		u := r.users[email]
		if filter.Query != "" && !containsFold(u.FullName, filter.Query) && !containsFold(u.Email, filter.Query) {
			continue
		}
		cp := *u
		matched = append(matched, &cp)
	}
	return pageSlice(matched, filter.Limit, filter.Offset), nil
}

func (r *memoryUserRepository) Update(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.users[user.Email]; ok {
		user.CreatedAt = existing.CreatedAt
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *memoryUserRepository) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.users, email)
	return nil
}

// ============================================
// Clients
// ============================================

type memoryClientRepository struct {
	mu      sync.RWMutex
	clients map[int64]*Client
	order   []int64
	nextID  int64
}

func NewMemoryClientRepository() ClientRepository {
	return &memoryClientRepository{clients: make(map[int64]*Client), nextID: 1}
}

func (r *memoryClientRepository) Create(ctx context.Context, client *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	client.ID = r.nextID
	r.nextID++
	cp := *client
	r.clients[client.ID] = &cp
	r.order = append(r.order, client.ID)
	return nil
}

func (r *memoryClientRepository) FindByID(ctx context.Context, id int64) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memoryClientRepository) FindByNameAndCountry(ctx context.Context, name, country string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		c := r.clients[id]
		if c != nil && c.Name == name && c.Country == country {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryClientRepository) List(ctx context.Context, filter ListFilter) ([]*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Client
	for _, id := range r.order {
		c, ok := r.clients[id]
		if !ok {
			continue
		}
		if filter.Query != "" && !containsFold(c.Name, filter.Query) && !containsFold(c.Country, filter.Query) {
			continue
		}
		cp := *c
		matched = append(matched, &cp)
	}
	return pageSlice(matched, filter.Limit, filter.Offset), nil
}

func (r *memoryClientRepository) Update(ctx context.Context, client *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

func (r *memoryClientRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.clients, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ============================================
// Projects
// ============================================

type memoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[int64]*Project
	order    []int64
	nextID   int64
}

func NewMemoryProjectRepository() ProjectRepository {
	return &memoryProjectRepository{projects: make(map[int64]*Project), nextID: 1}
}

func (r *memoryProjectRepository) Create(ctx context.Context, project *Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	project.ID = r.nextID
	r.nextID++
	cp := *project
	r.projects[project.ID] = &cp
	r.order = append(r.order, project.ID)
	return nil
}

func (r *memoryProjectRepository) FindByID(ctx context.Context, id int64) (*Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memoryProjectRepository) FindByNameAndClient(ctx context.Context, name, client string) (*Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		p := r.projects[id]
		if p != nil && p.Name == name && p.Client == client {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memoryProjectRepository) List(ctx context.Context, filter ListFilter) ([]*Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Project
	for _, id := range r.order {
		p, ok := r.projects[id]
		if !ok {
			continue
		}
		if filter.Query != "" && !containsFold(p.Name, filter.Query) && !containsFold(p.PMNames, filter.Query) {
			continue
		}
		cp := *p
		matched = append(matched, &cp)
	}
	return pageSlice(matched, filter.Limit, filter.Offset), nil
}

func (r *memoryProjectRepository) Update(ctx context.Context, project *Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *project
	r.projects[project.ID] = &cp
	return nil
}

func (r *memoryProjectRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.projects, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
