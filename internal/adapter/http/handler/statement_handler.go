package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// StatementHandler serves account statements as PDF.
type StatementHandler struct {
	directory Directory
	reader    AccountReader
	renderer  StatementRenderer
	cache     StatementCache
	logger    zerolog.Logger
}

// NewStatementHandler creates a new StatementHandler. cache may be nil.
func NewStatementHandler(
	directory Directory,
	reader AccountReader,
	renderer StatementRenderer,
	cache StatementCache,
	logger zerolog.Logger,
) *StatementHandler {
	return &StatementHandler{
		directory: directory,
		reader:    reader,
		renderer:  renderer,
		cache:     cache,
		logger:    logger,
	}
}

// Get renders the statement of an account.
func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	account, err := h.directory.FindAccount(r.Context(), number)
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	snap := h.reader.Snapshot(r.Context(), account)

	if h.cache != nil {
		data, ok, err := h.cache.Get(r.Context(), snap.Number, snap.Version)
		if err != nil {
			h.logger.Warn().Err(err).Str("account", snap.Number).Msg("statement cache read failed")
		}
		if ok {
			writePDF(w, snap.Number, "hit", data)
			return
		}
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, snap); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render statement", err.Error())
		return
	}

	if h.cache != nil {
		if err := h.cache.Put(r.Context(), snap.Number, snap.Version, buf.Bytes()); err != nil {
			h.logger.Warn().Err(err).Str("account", snap.Number).Msg("statement cache write failed")
		}
	}

	writePDF(w, snap.Number, "miss", buf.Bytes())
}

func writePDF(w http.ResponseWriter, number, cacheStatus string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"statement-%s.pdf\"", number))
	w.Header().Set("X-Statement-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
