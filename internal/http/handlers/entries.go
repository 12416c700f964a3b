package handlers

import (
	"net/http"

	"github.com/hongminglow/financas-be/internal/daterange"
	"github.com/hongminglow/financas-be/internal/models/dto"
)

func (h *RecordsHandler) listEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.records.ListEntries(r.Context(), owner(r), daterange.QueryFromValues(r.URL.Query()))
	reply(h, w, r, http.StatusOK, entries, err)
}

func (h *RecordsHandler) getEntry(w http.ResponseWriter, r *http.Request) {
	e, err := h.records.GetEntry(r.Context(), owner(r), r.PathValue("id"))
	reply(h, w, r, http.StatusOK, e, err)
}

func (h *RecordsHandler) createEntry(w http.ResponseWriter, r *http.Request) {
	var in dto.EntryInput
	if err := decodeJSON(w, r, &in, false); err != nil {
		h.failures.Write(w, r, err)
		return
	}
	e, err := h.records.CreateEntry(r.Context(), owner(r), in)
	reply(h, w, r, http.StatusCreated, e, err)
}

func (h *RecordsHandler) updateEntry(w http.ResponseWriter, r *http.Request) {
	var in dto.EntryInput
	if err := decodeJSON(w, r, &in, false); err != nil {
		h.failures.Write(w, r, err)
		return
	}
	e, err := h.records.UpdateEntry(r.Context(), owner(r), r.PathValue("id"), in)
	reply(h, w, r, http.StatusOK, e, err)
}

func (h *RecordsHandler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	err := h.records.DeleteEntry(r.Context(), owner(r), r.PathValue("id"))
	h.deleted(w, r, err, "Entrada excluída com sucesso")
}
