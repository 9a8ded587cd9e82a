package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/ledger"
	"github.com/iho/moneybook/internal/usecase"
)

// maxImportBytes bounds an uploaded export document.
const maxImportBytes = 32 << 20

// DataService defines the behavior needed by DataHandler.
type DataService interface {
	Export(ctx context.Context) (*ledger.Document, error)
	Import(ctx context.Context, data []byte) (*usecase.ImportResult, error)
	ImportAsync(ctx context.Context, data []byte) <-chan usecase.ImportOutcome
}

// DataHandler handles export and import of the whole record set.
type DataHandler struct {
	dataUC DataService
	logger zerolog.Logger
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(dataUC DataService, logger zerolog.Logger) *DataHandler {
	return &DataHandler{
		dataUC: dataUC,
		logger: logger.With().Str("component", "data_handler").Logger(),
	}
}

// Export downloads every record as one JSON document.
func (h *DataHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.dataUC.Export(r.Context())
	if err != nil {
		writeDomainError(w, "failed to export data", err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="moneybook_export.json"`)
	writeJSON(w, http.StatusOK, doc)
}

// Import merges an export document into the stored records. With
// async=true the import runs in the background and 202 is returned at once.
func (h *DataHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "import document too large", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read import document", err.Error())
		return
	}

	async, err := parseBoolQuery(r, "async")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid async flag", err.Error())
		return
	}

	if async != nil && *async {
		outcome := h.dataUC.ImportAsync(r.Context(), data)
		go h.logOutcome(outcome)
		writeJSON(w, http.StatusAccepted, dto.ImportAcceptedResponse{Status: "accepted"})
		return
	}

	result, err := h.dataUC.Import(r.Context(), data)
	if err != nil {
		writeDomainError(w, "failed to import data", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *DataHandler) logOutcome(outcome <-chan usecase.ImportOutcome) {
	o, ok := <-outcome
	if !ok {
		return
	}
	if o.Err != nil {
		h.logger.Error().Err(o.Err).Msg("background import failed")
		return
	}
	h.logger.Info().
		Int("transactions", o.Result.Transactions).
		Int("accounts", o.Result.Accounts).
		Msg("background import finished")
}
