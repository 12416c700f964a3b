package handlers

import (
	"net/http"

	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/http/respond"
	"github.com/hongminglow/financas-be/internal/middleware"
	"github.com/hongminglow/financas-be/internal/service"
)

// RecordsHandler serves the owner-scoped finance records: entries,
// expenses, cards, card statements and the dashboard.
type RecordsHandler struct {
	records  *service.Records
	failures *Failures
}

func NewRecordsHandler(records *service.Records, failures *Failures) *RecordsHandler {
	return &RecordsHandler{records: records, failures: failures}
}

// Register attaches every record route behind the gate.
func (h *RecordsHandler) Register(mux *http.ServeMux, gate *middleware.Gate) {
	mux.Handle("GET /api/dashboard", gate.Require(h.dashboard))

	mux.Handle("GET /api/entradas", gate.Require(h.listEntries))
	mux.Handle("POST /api/entradas", gate.Require(h.createEntry))
	mux.Handle("GET /api/entradas/{id}", gate.Require(h.getEntry))
	mux.Handle("PUT /api/entradas/{id}", gate.Require(h.updateEntry))
	mux.Handle("DELETE /api/entradas/{id}", gate.Require(h.deleteEntry))

	mux.Handle("GET /api/despesas", gate.Require(h.listExpenses))
	mux.Handle("POST /api/despesas", gate.Require(h.createExpense))
	mux.Handle("GET /api/despesas/{id}", gate.Require(h.getExpense))
	mux.Handle("PUT /api/despesas/{id}", gate.Require(h.updateExpense))
	mux.Handle("DELETE /api/despesas/{id}", gate.Require(h.deleteExpense))

	mux.Handle("GET /api/cartoes", gate.Require(h.listCards))
	mux.Handle("POST /api/cartoes", gate.Require(h.createCard))
	mux.Handle("GET /api/cartoes/{id}", gate.Require(h.getCard))
	mux.Handle("PUT /api/cartoes/{id}", gate.Require(h.updateCard))
	mux.Handle("DELETE /api/cartoes/{id}", gate.Require(h.deleteCard))

	mux.Handle("GET /api/extrato/{cartaoId}", gate.Require(h.statement))
	mux.Handle("GET /api/extrato/{cartaoId}/resumo", gate.Require(h.statementSummary))
	mux.Handle("PUT /api/extrato/{id}/pagar", gate.Require(h.pay))
	mux.Handle("PUT /api/extrato/{id}/desfazer-pagamento", gate.Require(h.undoPayment))
}

func (h *RecordsHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.records.Dashboard(r.Context(), owner(r), daterange.QueryFromValues(r.URL.Query()))
	if err != nil {
		h.failures.Write(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, d)
}

// reply writes v, or the mapped failure when err is set.
func reply[T any](h *RecordsHandler, w http.ResponseWriter, r *http.Request, status int, v T, err error) {
	if err != nil {
		h.failures.Write(w, r, err)
		return
	}
	respond.JSON(w, status, v)
}

func (h *RecordsHandler) deleted(w http.ResponseWriter, r *http.Request, err error, message string) {
	if err != nil {
		h.failures.Write(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, message)
}
