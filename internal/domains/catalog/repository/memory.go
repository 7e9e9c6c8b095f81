package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"bookocean-backend/internal/domains/catalog/model"
)

// memoryRepository keeps books in insertion order behind one mutex.
// Every operation holds the lock for its whole read-modify-write, which is
// what makes IncrementQuantity atomic for this driver.
type memoryRepository struct {
	mu    sync.Mutex
	books map[string]*model.Book
	order []string
}

// NewMemoryRepository tạo in-memory catalog (STORE_DRIVER=memory, tests)
func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		books: make(map[string]*model.Book),
	}
}

func parseMemoryID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", model.NewInvalidBookIDError(id)
	}
	return parsed.String(), nil
}

func (r *memoryRepository) Create(ctx context.Context, book *model.Book) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *book
	stored.ID = uuid.NewString()
	r.books[stored.ID] = &stored
	r.order = append(r.order, stored.ID)

	out := stored
	return &out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	key, err := parseMemoryID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[key]
	if !ok {
		return nil, model.NewBookNotFoundError(id)
	}
	out := *book
	return &out, nil
}

func (r *memoryRepository) List(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := make([]model.Book, 0, len(r.order))
	for _, id := range r.order {
		book := r.books[id]
		if filter.Matches(*book) {
			books = append(books, *book)
		}
	}
	return books, nil
}

func (r *memoryRepository) ListImages(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	images := make([]string, 0, len(r.order))
	for _, id := range r.order {
		images = append(images, r.books[id].Image)
	}
	return images, nil
}

func (r *memoryRepository) Update(ctx context.Context, id string, book *model.Book) (*model.UpdateAck, error) {
	key, err := parseMemoryID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.books[key]
	if !ok {
		return nil, model.NewBookNotFoundError(id)
	}

	next := *book
	next.ID = current.ID
	modified := next != *current
	*current = next

	return &model.UpdateAck{ID: key, Matched: true, Modified: modified}, nil
}

func (r *memoryRepository) IncrementQuantity(ctx context.Context, id string, delta int) (*model.Book, error) {
	key, err := parseMemoryID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[key]
	if !ok {
		return nil, model.NewBookNotFoundError(id)
	}
	book.Quantity += delta

	out := *book
	return &out, nil
}

func (r *memoryRepository) DecrementIfAvailable(ctx context.Context, id string) (*model.Book, error) {
	key, err := parseMemoryID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[key]
	if !ok {
		return nil, model.NewBookNotFoundError(id)
	}
	if book.Quantity <= 0 {
		return nil, model.NewOutOfStockError(id)
	}
	book.Quantity--

	out := *book
	return &out, nil
}

func (r *memoryRepository) Ping(ctx context.Context) error {
	return nil
}
