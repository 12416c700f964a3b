package handlers

import (
	"net/http"

	"github.com/hongminglow/financas-be/internal/http/respond"
	"github.com/hongminglow/financas-be/internal/models"
)

// MetaHandler serves the display label tables of every enum.
type MetaHandler struct{}

func (MetaHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/meta", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, models.LabelTables())
	})
}
