package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/goldenlock/internal/adapter/http/dto"
)

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	bank CommandExecutor
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(bank CommandExecutor) *TransferHandler {
	return &TransferHandler{bank: bank}
}

// Create moves money between two accounts.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	result, err := h.bank.Execute(r.Context(), cmd)
	if err != nil {
		writeDomainError(w, "failed to create transfer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromResult(result.Transfer))
}
