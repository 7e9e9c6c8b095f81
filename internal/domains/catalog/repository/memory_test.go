package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookocean-backend/internal/domains/catalog/model"
)

func seedBook(t *testing.T, repo RepositoryInterface, title, category string, quantity int) *model.Book {
	t.Helper()
	b, err := repo.Create(context.Background(), &model.Book{
		Title:    title,
		Author:   "A. Writer",
		Category: category,
		Image:    "https://img.test/" + title + ".jpg",
		Quantity: quantity,
		Rating:   4.5,
	})
	require.NoError(t, err)
	return b
}

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	created := seedBook(t, repo, "Dune", "Sci-Fi", 2)
	require.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)
}

func TestMemoryRepository_GetByID_Errors(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, model.ErrInvalidBookID)

	_, err = repo.GetByID(ctx, "6f1c2a52-8d0e-4c57-9a5f-2b1b8c8f0e11")
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestMemoryRepository_ListFilterAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	seedBook(t, repo, "Dune", "Sci-Fi", 2)
	seedBook(t, repo, "Emma", "Classic", 1)
	seedBook(t, repo, "Neuromancer", "Sci-Fi", 0)

	all, err := repo.List(ctx, model.BookFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Dune", all[0].Title)
	assert.Equal(t, "Neuromancer", all[2].Title)

	scifi, err := repo.List(ctx, model.BookFilter{Conditions: []model.Condition{
		{Field: model.FieldCategory, Value: "Sci-Fi"},
	}})
	require.NoError(t, err)
	assert.Len(t, scifi, 2)

	none, err := repo.List(ctx, model.BookFilter{Conditions: []model.Condition{
		{Field: model.FieldCategory, Value: "Poetry"},
	}})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	b := seedBook(t, repo, "Dune", "Sci-Fi", 2)

	next := *b
	next.Quantity = 7
	ack, err := repo.Update(ctx, b.ID, &next)
	require.NoError(t, err)
	assert.True(t, ack.Matched)
	assert.True(t, ack.Modified)

	ack, err = repo.Update(ctx, b.ID, &next)
	require.NoError(t, err)
	assert.True(t, ack.Matched)
	assert.False(t, ack.Modified)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)

	_, err = repo.Update(ctx, "6f1c2a52-8d0e-4c57-9a5f-2b1b8c8f0e11", &next)
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestMemoryRepository_ConcurrentIncrementsAreNotLost(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	b := seedBook(t, repo, "Dune", "Sci-Fi", 3)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementQuantity(ctx, b.ID, -1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestMemoryRepository_IncrementCanGoNegative(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	b := seedBook(t, repo, "Emma", "Classic", 0)

	got, err := repo.IncrementQuantity(ctx, b.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, -1, got.Quantity)
}

func TestMemoryRepository_DecrementIfAvailable(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	b := seedBook(t, repo, "Dune", "Sci-Fi", 3)

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		outOfStock int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.DecrementIfAvailable(ctx, b.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case model.IsOutOfStockError(err):
				outOfStock++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, successes)
	assert.Equal(t, 2, outOfStock)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)

	_, err = repo.DecrementIfAvailable(ctx, "6f1c2a52-8d0e-4c57-9a5f-2b1b8c8f0e11")
	assert.ErrorIs(t, err, model.ErrBookNotFound)
}

func TestMemoryRepository_ListImages(t *testing.T) {
	repo := NewMemoryRepository()
	seedBook(t, repo, "Dune", "Sci-Fi", 1)
	seedBook(t, repo, "Emma", "Classic", 1)

	images, err := repo.ListImages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img.test/Dune.jpg", "https://img.test/Emma.jpg"}, images)
}
