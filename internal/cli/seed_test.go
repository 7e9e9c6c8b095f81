package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookocean-backend/internal/config"
	"bookocean-backend/internal/domains/catalog/model"
	"bookocean-backend/pkg/container"
)

var sampleSeed = []byte(`
- title: Dune
  author: Frank Herbert
  category: Sci-Fi
  image: https://img.test/dune.jpg
  quantity: 3
  rating: 4.8

- title: Emma
  author: Jane Austen
  category: Classic
  quantity: 0
`)

func TestParseSeed(t *testing.T) {
	books, err := parseSeed(sampleSeed)
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, model.BookRequest{
		Title:    "Dune",
		Author:   "Frank Herbert",
		Category: "Sci-Fi",
		Image:    "https://img.test/dune.jpg",
		Quantity: 3,
		Rating:   4.8,
	}, books[0])
	assert.Equal(t, 0, books[1].Quantity)
	assert.Empty(t, books[1].Image)
}

func TestParseSeed_Empty(t *testing.T) {
	books, err := parseSeed(nil)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestParseSeed_Malformed(t *testing.T) {
	_, err := parseSeed([]byte("title: [unclosed"))
	assert.Error(t, err)
}

func memoryContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.Build(&config.Config{
		App:   config.AppConfig{Environment: "test"},
		Store: config.StoreConfig{Driver: config.StoreMemory},
		Redis: config.RedisConfig{TTL: time.Minute},
		JWT:   config.JWTConfig{Secret: "test-secret", SessionTTL: time.Hour, CookieName: "token"},
	})
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)
	return c
}

func TestSeedBooks_SkipsInvalid(t *testing.T) {
	ctx := context.Background()
	c := memoryContainer(t)

	books := []model.BookRequest{
		{Title: "Dune", Category: "Sci-Fi", Quantity: 1},
		{Title: "No category"},
		{Title: "Emma", Category: "Classic", Quantity: 2},
	}
	require.NoError(t, seedBooks(ctx, c, books, false))

	categories, err := c.BookService.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sci-Fi", "Classic"}, categories)
}

func TestSeedBooks_StopOnError(t *testing.T) {
	ctx := context.Background()
	c := memoryContainer(t)

	books := []model.BookRequest{
		{Title: "Dune", Category: "Sci-Fi", Quantity: 1},
		{Title: "No category"},
		{Title: "Emma", Category: "Classic", Quantity: 2},
	}
	err := seedBooks(ctx, c, books, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidBook)

	all, err := c.BookService.ListBooks(ctx, model.BookFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
