package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"bookocean-backend/internal/domains/loan/model"
)

type memoryRepository struct {
	mu    sync.RWMutex
	loans map[string]model.Loan
	order []string
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{loans: make(map[string]model.Loan)}
}

func parseMemoryID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", model.NewInvalidLoanIDError(id)
	}
	return parsed.String(), nil
}

func (r *memoryRepository) Create(ctx context.Context, loan *model.Loan) (*model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *loan
	stored.ID = uuid.NewString()
	r.loans[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return &stored, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id string) (*model.Loan, error) {
	key, err := parseMemoryID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	loan, ok := r.loans[key]
	if !ok {
		return nil, model.NewLoanNotFoundError(id)
	}
	return &loan, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id string) error {
	key, err := parseMemoryID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.loans[key]; !ok {
		return model.NewLoanNotFoundError(id)
	}
	delete(r.loans, key)

	for i, existing := range r.order {
		if existing == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *memoryRepository) ListByEmail(ctx context.Context, email string) ([]model.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loans := make([]model.Loan, 0)
	for _, id := range r.order {
		if l := r.loans[id]; l.Email == email {
			loans = append(loans, l)
		}
	}
	return loans, nil
}

func (r *memoryRepository) Ping(ctx context.Context) error {
	return nil
}
