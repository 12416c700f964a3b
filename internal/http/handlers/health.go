package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/financas-be/internal/http/respond"
	"github.com/hongminglow/financas-be/internal/models"
)

// Diagnoser reports per-table reachability of the record store.
type Diagnoser interface {
	Diagnose(ctx context.Context) []models.TableStatus
}

// HealthHandler returns uptime and basic status.
type HealthHandler struct {
	startedAt time.Time
	store     Diagnoser
}

// NewHealthHandler creates the health and database diagnostics endpoints.
func NewHealthHandler(startedAt time.Time, store Diagnoser) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, store: store}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.health)
	mux.HandleFunc("GET /api/test-db", h.testDB)
}

func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"message":   "Backend funcionando!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}

// testDB never fails as a whole: a broken table is reported in its entry.
func (h *HealthHandler) testDB(w http.ResponseWriter, r *http.Request) {
	statuses := h.store.Diagnose(r.Context())
	tables := make(map[string]models.TableStatus, len(statuses))
	for _, st := range statuses {
		tables[st.Name] = st
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "TESTE DE BANCO",
		"tabelas": tables,
	})
}
