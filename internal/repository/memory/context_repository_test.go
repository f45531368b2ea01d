package memory

import (
	"context"
	"testing"
	"time"

	"brainmode-be/internal/repository/contract"
	"brainmode-be/pkg/brain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRepositoryStoresCopies(t *testing.T) {
	repo := NewContextRepository(time.Hour, time.Minute)
	ctx := context.Background()

	c := brain.Default()
	c.Title = "inbox"
	require.NoError(t, repo.Save(ctx, "view-1", c))

	c.Title = "changed after save"

	loaded, err := repo.FindByID(ctx, "view-1")
	require.NoError(t, err)
	assert.Equal(t, "inbox", loaded.Title)

	loaded.AtomsByID.Put(brain.Atom{ID: "a"})
	again, err := repo.FindByID(ctx, "view-1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.AtomsByID.Len())
	assert.Equal(t, 1, repo.Count())
}

func TestContextRepositoryNotFound(t *testing.T) {
	repo := NewContextRepository(time.Hour, time.Minute)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, contract.ErrContextNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), contract.ErrContextNotFound)
}

func TestContextRepositoryDeleteAndExpiry(t *testing.T) {
	repo := NewContextRepository(50*time.Millisecond, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "a", brain.Default()))
	require.NoError(t, repo.Save(ctx, "b", brain.Default()))
	require.NoError(t, repo.Delete(ctx, "a"))

	_, err := repo.FindByID(ctx, "a")
	assert.ErrorIs(t, err, contract.ErrContextNotFound)

	time.Sleep(100 * time.Millisecond)
	_, err = repo.FindByID(ctx, "b")
	assert.ErrorIs(t, err, contract.ErrContextNotFound, "idle views expire")
}
