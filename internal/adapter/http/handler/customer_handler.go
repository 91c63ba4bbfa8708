package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goldenlock/internal/adapter/http/dto"
	"github.com/iho/goldenlock/internal/usecase"
)

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	bank      CommandExecutor
	directory Directory
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(bank CommandExecutor, directory Directory) *CustomerHandler {
	return &CustomerHandler{bank: bank, directory: directory}
}

// Create registers a new customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.bank.Execute(r.Context(), req.ToCommand())
	if err != nil {
		writeDomainError(w, "failed to create customer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CustomerFromDomain(result.Customer))
}

// Get retrieves a customer by contact number.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact := chi.URLParam(r, "contact")
	if contact == "" {
		writeError(w, http.StatusBadRequest, "missing contact number", "")
		return
	}

	result, err := h.bank.Execute(r.Context(), usecase.Command{
		Op:      usecase.OpFindCustomer,
		Contact: contact,
	})
	if err != nil {
		writeDomainError(w, "failed to get customer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(result.Customer))
}

// List lists customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	customers, err := h.directory.ListCustomers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list customers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListCustomersResponse{
		Customers: dto.CustomersFromDomain(customers),
		Total:     len(customers),
	})
}
