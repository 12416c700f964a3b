package handlers

import (
	"net/http"

	"github.com/hongminglow/financas-be/internal/daterange"
)

func (h *RecordsHandler) statement(w http.ResponseWriter, r *http.Request) {
	rows, err := h.records.Statement(r.Context(), owner(r), r.PathValue("cartaoId"), daterange.QueryFromValues(r.URL.Query()))
	reply(h, w, r, http.StatusOK, rows, err)
}

func (h *RecordsHandler) statementSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.records.StatementSummary(r.Context(), owner(r), r.PathValue("cartaoId"), daterange.QueryFromValues(r.URL.Query()))
	reply(h, w, r, http.StatusOK, sum, err)
}

func (h *RecordsHandler) pay(w http.ResponseWriter, r *http.Request) {
	row, err := h.records.PayInstallment(r.Context(), owner(r), r.PathValue("id"))
	reply(h, w, r, http.StatusOK, row, err)
}

func (h *RecordsHandler) undoPayment(w http.ResponseWriter, r *http.Request) {
	row, err := h.records.UndoPayment(r.Context(), owner(r), r.PathValue("id"))
	reply(h, w, r, http.StatusOK, row, err)
}
