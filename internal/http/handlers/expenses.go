package handlers

import (
	"net/http"

	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/models/dto"
)

func (h *RecordsHandler) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.records.ListExpenses(r.Context(), owner(r), daterange.QueryFromValues(r.URL.Query()))
	reply(h, w, r, http.StatusOK, expenses, err)
}

func (h *RecordsHandler) getExpense(w http.ResponseWriter, r *http.Request) {
	e, err := h.records.GetExpense(r.Context(), owner(r), r.PathValue("id"))
	reply(h, w, r, http.StatusOK, e, err)
}

// createExpense also schedules the installment rows of a credit purchase.
func (h *RecordsHandler) createExpense(w http.ResponseWriter, r *http.Request) {
	var in dto.ExpenseInput
	if err := decodeJSON(w, r, &in, false); err != nil {
		h.failures.Write(w, r, err)
		return
	}
	e, err := h.records.CreateExpense(r.Context(), owner(r), in)
	reply(h, w, r, http.StatusCreated, e, err)
}

func (h *RecordsHandler) updateExpense(w http.ResponseWriter, r *http.Request) {
	var in dto.ExpenseInput
	if err := decodeJSON(w, r, &in, false); err != nil {
		h.failures.Write(w, r, err)
		return
	}
	e, err := h.records.UpdateExpense(r.Context(), owner(r), r.PathValue("id"), in)
	reply(h, w, r, http.StatusOK, e, err)
}

func (h *RecordsHandler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	err := h.records.DeleteExpense(r.Context(), owner(r), r.PathValue("id"))
	h.deleted(w, r, err, "Despesa excluída com sucesso")
}
