package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iho/goldenlock/internal/domain"
)

// DirectoryUseCase resolves customers and accounts by their caller-supplied keys.
type DirectoryUseCase struct {
	customerRepo CustomerRepository
	accountRepo  AccountRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
}

// NewDirectoryUseCase creates a new DirectoryUseCase. outboxRepo may be nil.
func NewDirectoryUseCase(
	customerRepo CustomerRepository,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *DirectoryUseCase {
	return &DirectoryUseCase{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
	}
}

// CreateCustomerInput represents input for registering a customer.
type CreateCustomerInput struct {
	Name    string
	Address string
	Contact string
}

// CreateCustomer registers a new customer keyed by contact number.
func (uc *DirectoryUseCase) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	contact := domain.NormalizeContact(input.Contact)

	if err := domain.ValidateContact(contact); err != nil {
		return nil, err
	}
	if err := domain.ValidateCustomerName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateAddress(input.Address); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	customer := &domain.Customer{
		Contact:   contact,
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		CreatedAt: now,
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		AggregateID:   customer.Contact,
		AggregateType: domain.AggregateTypeCustomer,
		EventType:     domain.EventTypeCustomerCreated,
		Payload: map[string]any{
			"contact": customer.Contact,
			"name":    customer.Name,
		},
		CreatedAt: now,
	}
	if err := emit(ctx, uc.outboxRepo, uc.idGen, event); err != nil {
		// The customer must not stay registered without its event.
		if delErr := uc.customerRepo.Delete(ctx, customer.Contact); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		return nil, err
	}

	return customer, nil
}

// FindCustomer retrieves a customer by contact number.
func (uc *DirectoryUseCase) FindCustomer(ctx context.Context, contact string) (*domain.Customer, error) {
	return uc.customerRepo.GetByContact(ctx, domain.NormalizeContact(contact))
}

// ListCustomers lists customers with pagination.
func (uc *DirectoryUseCase) ListCustomers(ctx context.Context, limit, offset int) ([]*domain.Customer, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.customerRepo.List(ctx, limit, offset)
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	Contact       string
	AccountNumber string
}

// OpenAccount opens a zero-balance savings account for an existing customer.
func (uc *DirectoryUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	number := strings.TrimSpace(input.AccountNumber)
	if err := domain.ValidateAccountNumber(number); err != nil {
		return nil, err
	}

	// Customers are never removed, so an existence check ahead of the insert is enough.
	owner, err := uc.customerRepo.GetByContact(ctx, domain.NormalizeContact(input.Contact))
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUnknownCustomer
		}
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.NewAccount(number, owner.Contact, domain.AccountKindSavings, now)

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		AggregateID:   account.Number(),
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeAccountOpened,
		Payload: map[string]any{
			"account_number": account.Number(),
			"owner":          account.Owner(),
			"kind":           string(account.Kind()),
		},
		CreatedAt: now,
	}
	if err := emit(ctx, uc.outboxRepo, uc.idGen, event); err != nil {
		if delErr := uc.accountRepo.Delete(ctx, account.Number()); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		return nil, err
	}

	return account, nil
}

// FindAccount retrieves an account by number.
func (uc *DirectoryUseCase) FindAccount(ctx context.Context, number string) (*domain.Account, error) {
	return uc.accountRepo.GetByNumber(ctx, strings.TrimSpace(number))
}

// ListAccountsByCustomer returns every account owned by the customer, in opening order.
func (uc *DirectoryUseCase) ListAccountsByCustomer(ctx context.Context, contact string) ([]*domain.Account, error) {
	customer, err := uc.customerRepo.GetByContact(ctx, domain.NormalizeContact(contact))
	if err != nil {
		return nil, err
	}
	return uc.accountRepo.ListByOwner(ctx, customer.Contact)
}

// ListAccounts lists accounts with pagination.
func (uc *DirectoryUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.accountRepo.List(ctx, limit, offset)
}
