package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makara-hq/portfolio-backend/internal/repository"
)

func newClientService() ClientService {
	return NewClientService(repository.NewMemoryClientRepository(), nil)
}

func TestClientCreateRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := newClientService()

	first, err := svc.Create(ctx, "Acme", "Kenya")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	// Same name in a different country is a different client.
	second, err := svc.Create(ctx, "Acme", "Rwanda")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	_, err = svc.Create(ctx, "Acme", "Kenya")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestClientGetUnknownIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newClientService()

	_, err := svc.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientPartialUpdateLeavesOtherFields(t *testing.T) {
	ctx := context.Background()
	svc := newClientService()

	created, err := svc.Create(ctx, "Acme", "Uganda")
	require.NoError(t, err)

	country := "Kenya"
	updated, err := svc.Update(ctx, created.ID, ClientUpdate{Country: &country})
	require.NoError(t, err)

	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "Kenya", updated.Country)
}

func TestClientUpdateUnknownIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newClientService()

	name := "Acme"
	_, err := svc.Update(ctx, 7, ClientUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientDeleteThenGetIsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newClientService()

	created, err := svc.Create(ctx, "Acme", "Kenya")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func TestClientListDefaultsAndPaging(t *testing.T) {
	ctx := context.Background()
	svc := newClientService()

	// Empty store: empty page, not an error.
	empty, err := svc.List(ctx, ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)

	countries := []string{"Kenya", "Rwanda", "Uganda", "Tanzania", "Burundi",
		"Ghana", "Nigeria", "Senegal", "Togo", "Benin", "Mali", "Chad"}
	for i, country := range countries {
		_, err := svc.Create(ctx, "Client "+string(rune('A'+i)), country)
		require.NoError(t, err)
	}

	// Zero values fall back to page=1, limit=10.
	page1, err := svc.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, page1, 10)
	assert.Equal(t, int64(1), page1[0].ID)

	page2, err := svc.List(ctx, ListParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, int64(11), page2[0].ID)

	page, err := svc.List(ctx, ListParams{Page: 2, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page, 5)
	assert.Equal(t, int64(6), page[0].ID)
}

func TestClientListSearch(t *testing.T) {
	ctx := context.Background()
	svc := newClientService()

	_, err := svc.Create(ctx, "Acme Corp", "Kenya")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Baraza Media", "Uganda")
	require.NoError(t, err)

	matches, err := svc.List(ctx, ListParams{Query: "acme"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Acme Corp", matches[0].Name)
}
