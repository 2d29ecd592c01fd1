package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/makara-hq/portfolio-backend/internal/repository"
)

// ============================================
// Client Service
// ============================================

// ClientUpdate is a sparse update: nil fields are left untouched.
type ClientUpdate struct {
	Name    *string
	Country *string
}

type ClientService interface {
	Create(ctx context.Context, name, country string) (*repository.Client, error)
	Get(ctx context.Context, id int64) (*repository.Client, error)
	List(ctx context.Context, params ListParams) ([]*repository.Client, error)
	Update(ctx context.Context, id int64, upd ClientUpdate) (*repository.Client, error)
	Delete(ctx context.Context, id int64) error
}

type clientService struct {
	clientRepo  repository.ClientRepository
	broadcaster ChangeBroadcaster
}

func NewClientService(clientRepo repository.ClientRepository, broadcaster ChangeBroadcaster) ClientService {
	return &clientService{clientRepo: clientRepo, broadcaster: broadcaster}
}

func (s *clientService) Create(ctx context.Context, name, country string) (*repository.Client, error) {
	// Uniqueness invariant: no two clients share the same (name, country).
	existing, err := s.clientRepo.FindByNameAndCountry(ctx, name, country)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing client: %w", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	client := &repository.Client{Name: name, Country: country}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.RecordCreated("client", clientPayload(client))
	}
	return client, nil
}

func (s *clientService) Get(ctx context.Context, id int64) (*repository.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	if client == nil {
		return nil, ErrNotFound
	}
	return client, nil
}

func (s *clientService) List(ctx context.Context, params ListParams) ([]*repository.Client, error) {
	return s.clientRepo.List(ctx, params.filter())
}

func (s *clientService) Update(ctx context.Context, id int64, upd ClientUpdate) (*repository.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	if client == nil {
		return nil, ErrNotFound
	}

	if upd.Name != nil {
		client.Name = *upd.Name
	}
	if upd.Country != nil {
		client.Country = *upd.Country
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.RecordUpdated("client", clientPayload(client))
	}
	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id int64) error {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find client: %w", err)
	}
	if client == nil {
		return ErrNotFound
	}

	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.RecordDeleted("client", strconv.FormatInt(id, 10))
	}
	return nil
}

func clientPayload(c *repository.Client) map[string]interface{} {
	return map[string]interface{}{
		"id":      c.ID,
		"name":    c.Name,
		"country": c.Country,
	}
}
