package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/makara-hq/portfolio-backend/internal/repository"
	"github.com/makara-hq/portfolio-backend/internal/types"
)

// ============================================
// Project Service
// ============================================

// ProjectUpdate is a sparse update: nil fields are left untouched.
type ProjectUpdate struct {
	PMNames      *string
	Name         *string
	Description  *string
	Thumbnail    *string
	Client       *string
	Type         *string
	URL          *string
	BugReportURL *string
}

type ProjectService interface {
	Create(ctx context.Context, project *repository.Project) (*repository.Project, error)
	Get(ctx context.Context, id int64) (*repository.Project, error)
	List(ctx context.Context, params ListParams) ([]*repository.Project, error)
	Update(ctx context.Context, id int64, upd ProjectUpdate) (*repository.Project, error)
	Delete(ctx context.Context, id int64) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	broadcaster ChangeBroadcaster
}

func NewProjectService(projectRepo repository.ProjectRepository, broadcaster ChangeBroadcaster) ProjectService {
	return &projectService{projectRepo: projectRepo, broadcaster: broadcaster}
}

func (s *projectService) Create(ctx context.Context, project *repository.Project) (*repository.Project, error) {
	if !types.IsValidProjectType(project.Type) {
		return nil, ErrInvalidProjectType
	}

	// Uniqueness invariant: no two projects share the same (name, client).
	existing, err := s.projectRepo.FindByNameAndClient(ctx, project.Name, project.Client)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing project: %w", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.RecordCreated("project", projectPayload(project))
	}
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id int64) (*repository.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, params ListParams) ([]*repository.Project, error) {
	return s.projectRepo.List(ctx, params.filter())
}

func (s *projectService) Update(ctx context.Context, id int64, upd ProjectUpdate) (*repository.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if upd.PMNames != nil {
		project.PMNames = *upd.PMNames
	}
	if upd.Name != nil {
		project.Name = *upd.Name
	}
	if upd.Description != nil {
		project.Description = *upd.Description
	}
	if upd.Thumbnail != nil {
		project.Thumbnail = *upd.Thumbnail
	}
	if upd.Client != nil {
		project.Client = *upd.Client
	}
	if upd.Type != nil {
		if !types.IsValidProjectType(*upd.Type) {
			return nil, ErrInvalidProjectType
		}
		project.Type = *upd.Type
	}
	if upd.URL != nil {
		project.URL = *upd.URL
	}
	if upd.BugReportURL != nil {
		project.BugReportURL = *upd.BugReportURL
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.RecordUpdated("project", projectPayload(project))
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id int64) error {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find project: %w", err)
	}
	if project == nil {
		return ErrNotFound
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.RecordDeleted("project", strconv.FormatInt(id, 10))
	}
	return nil
}

func projectPayload(p *repository.Project) map[string]interface{} {
	return map[string]interface{}{
		"id":             p.ID,
		"pm_names":       p.PMNames,
		"name":           p.Name,
		"description":    p.Description,
		"thumbnail":      p.Thumbnail,
		"client":         p.Client,
		"type":           p.Type,
		"url":            p.URL,
		"bug_report_url": p.BugReportURL,
	}
}
