package memory

import (
	"context"
	"sync"

	"github.com/iho/goldenlock/internal/domain"
)

// CustomerRepository implements usecase.CustomerRepository in process memory.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
	order     []string
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

// Create registers customer under its contact number.
func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[customer.Contact]; exists {
		return domain.DuplicateCustomerError{Contact: customer.Contact}
	}

	r.customers[customer.Contact] = customer
	r.order = append(r.order, customer.Contact)
	return nil
}

// Delete removes the customer registered under contact.
func (r *CustomerRepository) Delete(ctx context.Context, contact string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.customers[contact]; !exists {
		return nil
	}
	delete(r.customers, contact)
	r.order = without(r.order, contact)
	return nil
}

// GetByContact retrieves a customer by contact number.
func (r *CustomerRepository) GetByContact(ctx context.Context, contact string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[contact]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// List returns customers in registration order.
func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := page(r.order, limit, offset)
	customers := make([]*domain.Customer, 0, len(keys))
	for _, contact := range keys {
		customers = append(customers, r.customers[contact])
	}
	return customers, nil
}
