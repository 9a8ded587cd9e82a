package handler

import (
	"net/http"
	"sort"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/infrastructure/eventpublisher"
)

// BalanceProjection serves projected balances, including drafts not yet
// confirmed by the store.
type BalanceProjection interface {
	Balance(accountID string) (eventpublisher.BalanceView, bool)
	Balances() map[string]eventpublisher.BalanceView
}

// ProjectionHandler exposes the change projector's balance view.
type ProjectionHandler struct {
	projection BalanceProjection
}

// NewProjectionHandler creates a new ProjectionHandler.
func NewProjectionHandler(projection BalanceProjection) *ProjectionHandler {
	return &ProjectionHandler{projection: projection}
}

// List returns every projected balance ordered by account ID.
func (h *ProjectionHandler) List(w http.ResponseWriter, r *http.Request) {
	views := h.projection.Balances()
	out := make([]dto.ProjectedBalanceResponse, 0, len(views))
	for id, v := range views {
		out = append(out, projected(id, v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })

	writeJSON(w, http.StatusOK, dto.NewList(out))
}

// Get returns the projected balance of one account.
func (h *ProjectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	v, ok := h.projection.Balance(id)
	if !ok {
		writeError(w, http.StatusNotFound, "no projected balance", id)
		return
	}

	writeJSON(w, http.StatusOK, projected(id, v))
}

func projected(id string, v eventpublisher.BalanceView) dto.ProjectedBalanceResponse {
	return dto.ProjectedBalanceResponse{
		AccountID: id,
		Balance:   v.Balance,
		Confirmed: v.Confirmed,
		Pending:   v.Pending,
	}
}
