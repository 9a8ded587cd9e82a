package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/iho/moneybook/internal/ledger"
	"github.com/iho/moneybook/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Summary(ctx context.Context, input usecase.ReportInput) (*ledger.Summary, error)
	Breakdown(ctx context.Context, input usecase.ReportInput) ([]ledger.CategoryAmount, error)
	Budgets(ctx context.Context, input usecase.ReportInput) ([]ledger.BudgetStatus, error)
	Series(ctx context.Context, input usecase.ReportInput) ([]ledger.SeriesPoint, error)
	Monthly(ctx context.Context, input usecase.ReportInput) ([]ledger.MonthTotal, error)
	WriteCSV(ctx context.Context, w io.Writer, input usecase.ReportInput) error
}

// ReportHandler serves period reports. Every endpoint accepts start, end and
// hideLoans query parameters.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

func reportInput(r *http.Request) (usecase.ReportInput, error) {
	period, err := parsePeriodQuery(r)
	if err != nil {
		return usecase.ReportInput{}, err
	}
	hide, err := parseBoolQuery(r, "hideLoans")
	if err != nil {
		return usecase.ReportInput{}, err
	}
	return usecase.ReportInput{Period: period, HideLoanTransactions: hide}, nil
}

// serve runs one report and writes its result.
func serve[T any](w http.ResponseWriter, r *http.Request, name string, fn func(context.Context, usecase.ReportInput) (T, error)) {
	input, err := reportInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid report parameters", err.Error())
		return
	}

	out, err := fn(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to build "+name, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// Summary returns spend, income, fees and the category breakdown.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	serve(w, r, "summary", h.reportUC.Summary)
}

// Breakdown returns the category slices of the period.
func (h *ReportHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	serve(w, r, "breakdown", h.reportUC.Breakdown)
}

// Budgets compares budgets with the period's spend.
func (h *ReportHandler) Budgets(w http.ResponseWriter, r *http.Request) {
	serve(w, r, "budget report", h.reportUC.Budgets)
}

// Series returns the daily chart points.
func (h *ReportHandler) Series(w http.ResponseWriter, r *http.Request) {
	serve(w, r, "series", h.reportUC.Series)
}

// Monthly returns per-month totals.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	serve(w, r, "monthly totals", h.reportUC.Monthly)
}

// CSV downloads the period's transactions.
func (h *ReportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	input, err := reportInput(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid report parameters", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.reportUC.WriteCSV(r.Context(), &buf, input); err != nil {
		writeDomainError(w, "failed to export csv", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="transactions_%s_%s.csv"`, input.Period.Start, input.Period.End))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
