package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx      context.Context
	clients  ClientRepository
	projects ProjectRepository
	users    UserRepository
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.clients = NewMemoryClientRepository()
	s.projects = NewMemoryProjectRepository()
	s.users = NewMemoryUserRepository()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) TestClientIDsAreMonotonic() {
	a := &Client{Name: "Acme", Country: "Kenya"}
	b := &Client{Name: "Umoja", Country: "Rwanda"}

	s.Require().NoError(s.clients.Create(s.ctx, a))
	s.Require().NoError(s.clients.Create(s.ctx, b))

	s.Equal(int64(1), a.ID)
	s.Equal(int64(2), b.ID)
}

func (s *MemoryStoreSuite) TestClientLookups() {
	s.Run("returns nil for unknown id", func() {
		c, err := s.clients.FindByID(s.ctx, 42)
		s.Require().NoError(err)
		s.Nil(c)
	})

	s.Run("finds by name and country", func() {
		s.Require().NoError(s.clients.Create(s.ctx, &Client{Name: "Acme", Country: "Kenya"}))

		found, err := s.clients.FindByNameAndCountry(s.ctx, "Acme", "Kenya")
		s.Require().NoError(err)
		s.Require().NotNil(found)
		s.Equal("Acme", found.Name)

		// Match is exact, not case-insensitive
		none, err := s.clients.FindByNameAndCountry(s.ctx, "acme", "Kenya")
		s.Require().NoError(err)
		s.Nil(none)
	})
}

func (s *MemoryStoreSuite) TestClientListPaging() {
	for i := 0; i < 25; i++ {
		s.Require().NoError(s.clients.Create(s.ctx, &Client{
			Name:    fmt.Sprintf("Client %02d", i),
			Country: "Kenya",
		}))
	}

	s.Run("empty store slice on later pages", func() {
		page, err := s.clients.List(s.ctx, ListFilter{Limit: 10, Offset: 30})
		s.Require().NoError(err)
		s.Empty(page)
	})

	s.Run("windows follow insertion order", func() {
		page, err := s.clients.List(s.ctx, ListFilter{Limit: 10, Offset: 10})
		s.Require().NoError(err)
		s.Require().Len(page, 10)
		s.Equal("Client 10", page[0].Name)
		s.Equal("Client 19", page[9].Name)
	})

	s.Run("last page is short", func() {
		page, err := s.clients.List(s.ctx, ListFilter{Limit: 10, Offset: 20})
		s.Require().NoError(err)
		s.Len(page, 5)
	})
}

func (s *MemoryStoreSuite) TestClientSearchIsCaseInsensitiveSubstring() {
	s.Require().NoError(s.clients.Create(s.ctx, &Client{Name: "Acme Corp", Country: "Kenya"}))
	s.Require().NoError(s.clients.Create(s.ctx, &Client{Name: "Baraza", Country: "Uganda"}))

	byName, err := s.clients.List(s.ctx, ListFilter{Query: "acme", Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("Acme Corp", byName[0].Name)

	byCountry, err := s.clients.List(s.ctx, ListFilter{Query: "UGAN", Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(byCountry, 1)
	s.Equal("Baraza", byCountry[0].Name)
}

func (s *MemoryStoreSuite) TestClientUpdateAndDelete() {
	c := &Client{Name: "Acme", Country: "Kenya"}
	s.Require().NoError(s.clients.Create(s.ctx, c))

	c.Country = "Rwanda"
	s.Require().NoError(s.clients.Update(s.ctx, c))

	found, err := s.clients.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Rwanda", found.Country)

	s.Require().NoError(s.clients.Delete(s.ctx, c.ID))
	gone, err := s.clients.FindByID(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Nil(gone)

	all, err := s.clients.List(s.ctx, ListFilter{Limit: 10})
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *MemoryStoreSuite) TestProjectSearchMatchesNameAndPMNames() {
	s.Require().NoError(s.projects.Create(s.ctx, &Project{
		Name: "Storefront", PMNames: "Jane Doe", Client: "Acme", Type: "Web",
	}))
	s.Require().NoError(s.projects.Create(s.ctx, &Project{
		Name: "Tracker", PMNames: "John Smith", Client: "Umoja", Type: "App",
	}))

	byPM, err := s.projects.List(s.ctx, ListFilter{Query: "jane", Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(byPM, 1)
	s.Equal("Storefront", byPM[0].Name)

	byName, err := s.projects.List(s.ctx, ListFilter{Query: "track", Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("Tracker", byName[0].Name)
}

func (s *MemoryStoreSuite) TestProjectFindByNameAndClient() {
	s.Require().NoError(s.projects.Create(s.ctx, &Project{Name: "Storefront", Client: "Acme"}))

	found, err := s.projects.FindByNameAndClient(s.ctx, "Storefront", "Acme")
	s.Require().NoError(err)
	s.Require().NotNil(found)

	none, err := s.projects.FindByNameAndClient(s.ctx, "Storefront", "Umoja")
	s.Require().NoError(err)
	s.Nil(none)
}

func (s *MemoryStoreSuite) TestUserListOrderedByEmail() {
	s.Require().NoError(s.users.Create(s.ctx, &User{Email: "zoe@example.com", FullName: "Zoe"}))
	s.Require().NoError(s.users.Create(s.ctx, &User{Email: "amy@example.com", FullName: "Amy"}))

	users, err := s.users.List(s.ctx, ListFilter{Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal("amy@example.com", users[0].Email)
	s.Equal("zoe@example.com", users[1].Email)
}

func (s *MemoryStoreSuite) TestUserSearchMatchesNameAndEmail() {
	s.Require().NoError(s.users.Create(s.ctx, &User{Email: "jane@acme.rw", FullName: "Jane Doe"}))
	s.Require().NoError(s.users.Create(s.ctx, &User{Email: "john@umoja.rw", FullName: "John Smith"}))

	byName, err := s.users.List(s.ctx, ListFilter{Query: "DOE", Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("jane@acme.rw", byName[0].Email)

	byEmail, err := s.users.List(s.ctx, ListFilter{Query: "umoja", Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(byEmail, 1)
	s.Equal("john@umoja.rw", byEmail[0].Email)
}

func (s *MemoryStoreSuite) TestUserUpdatePreservesCreatedAt() {
	u := &User{Email: "jane@acme.rw", FullName: "Jane"}
	s.Require().NoError(s.users.Create(s.ctx, u))
	created := u.CreatedAt

	u.FullName = "Jane Doe"
	s.Require().NoError(s.users.Update(s.ctx, u))

	found, err := s.users.FindByEmail(s.ctx, "jane@acme.rw")
	s.Require().NoError(err)
	s.Equal("Jane Doe", found.FullName)
	s.Equal(created, found.CreatedAt)
}
