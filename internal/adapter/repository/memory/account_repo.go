package memory

import (
	"context"
	"sync"

	"github.com/iho/goldenlock/internal/domain"
)

// AccountRepository implements usecase.AccountRepository in process memory.
//
// It guards the registry only. Balances and histories of the stored accounts
// are serialized by the account service.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	byOwner  map[string][]string
	order    []string
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
		byOwner:  make(map[string][]string),
	}
}

// Create registers account under its number.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[account.Number()]; exists {
		return domain.DuplicateAccountError{Number: account.Number()}
	}

	r.accounts[account.Number()] = account
	r.byOwner[account.Owner()] = append(r.byOwner[account.Owner()], account.Number())
	r.order = append(r.order, account.Number())
	return nil
}

// Delete removes the account registered under number.
func (r *AccountRepository) Delete(ctx context.Context, number string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, exists := r.accounts[number]
	if !exists {
		return nil
	}
	delete(r.accounts, number)
	r.order = without(r.order, number)

	owner := account.Owner()
	if owned := without(r.byOwner[owner], number); len(owned) > 0 {
		r.byOwner[owner] = owned
	} else {
		delete(r.byOwner, owner)
	}
	return nil
}

// GetByNumber retrieves an account by number.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[number]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// ListByOwner returns the accounts owned by contact in opening order.
func (r *AccountRepository) ListByOwner(ctx context.Context, contact string) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(r.byOwner[contact]), nil
}

// List returns accounts in opening order.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(page(r.order, limit, offset)), nil
}

// All returns every account in opening order.
func (r *AccountRepository) All(ctx context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(r.order), nil
}

func (r *AccountRepository) collect(numbers []string) []*domain.Account {
	accounts := make([]*domain.Account, 0, len(numbers))
	for _, n := range numbers {
		accounts = append(accounts, r.accounts[n])
	}
	return accounts
}

// without returns keys minus the first occurrence of key.
func without(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i:i], keys[i+1:]...)
		}
	}
	return keys
}

// page slices keys without ever going out of range.
func page(keys []string, limit, offset int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(keys) {
		return nil
	}
	end := len(keys)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return keys[offset:end]
}
