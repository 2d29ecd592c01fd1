package seed

import (
	"context"
	"log"

	"github.com/makara-hq/portfolio-backend/internal/repository"
	"github.com/makara-hq/portfolio-backend/internal/types"
)

// SeedData inserts sample clients and projects for development. It is a
// no-op when the store already has data.
func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	existing, err := repos.ClientRepo.List(ctx, repository.ListFilter{Limit: 1})
	if err != nil {
		log.Printf("⚠️ [Seed] Failed to check existing data: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	clients := []*repository.Client{
		{Name: "Acme Corp", Country: "Kenya"},
		{Name: "Umoja Traders", Country: "Rwanda"},
		{Name: "Baraza Media", Country: "Uganda"},
	}
	for _, c := range clients {
		if err := repos.ClientRepo.Create(ctx, c); err != nil {
			log.Printf("⚠️ [Seed] Failed to create client %s: %v", c.Name, err)
		}
	}

	projects := []*repository.Project{
		{
			PMNames:      "Jane Doe",
			Name:         "Storefront Revamp",
			Description:  "E-commerce storefront rebuild",
			Thumbnail:    "https://cdn.example.com/thumbs/storefront.png",
			Client:       "Acme Corp",
			Type:         types.ProjectTypeWeb,
			URL:          "https://store.acme.example.com",
			BugReportURL: "https://bugs.example.com/storefront",
		},
		{
			PMNames:      "John Smith, Alice King",
			Name:         "Delivery Tracker",
			Description:  "Mobile app for delivery tracking",
			Thumbnail:    "https://cdn.example.com/thumbs/tracker.png",
			Client:       "Umoja Traders",
			Type:         types.ProjectTypeApp,
			URL:          "https://tracker.umoja.example.com",
			BugReportURL: "https://bugs.example.com/tracker",
		},
	}
	for _, p := range projects {
		if err := repos.ProjectRepo.Create(ctx, p); err != nil {
			log.Printf("⚠️ [Seed] Failed to create project %s: %v", p.Name, err)
		}
	}

	log.Printf("🌱 [Seed] Seeded %d clients and %d projects", len(clients), len(projects))
}
