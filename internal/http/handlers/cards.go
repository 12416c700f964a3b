package handlers

import (
	"net/http"

	"github.com/hongminglow/financas-be/internal/models/dto"
)

func (h *RecordsHandler) listCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.records.ListCards(r.Context(), owner(r))
	reply(h, w, r, http.StatusOK, cards, err)
}

func (h *RecordsHandler) getCard(w http.ResponseWriter, r *http.Request) {
	c, err := h.records.GetCard(r.Context(), owner(r), r.PathValue("id"))
	reply(h, w, r, http.StatusOK, c, err)
}

func (h *RecordsHandler) createCard(w http.ResponseWriter, r *http.Request) {
	var in dto.CardInput
	if err := decodeJSON(w, r, &in, false); err != nil {
		h.failures.Write(w, r, err)
		return
	}
	c, err := h.records.CreateCard(r.Context(), owner(r), in)
	reply(h, w, r, http.StatusCreated, c, err)
}

func (h *RecordsHandler) updateCard(w http.ResponseWriter, r *http.Request) {
	var in dto.CardInput
	if err := decodeJSON(w, r, &in, false); err != nil {
		h.failures.Write(w, r, err)
		return
	}
	c, err := h.records.UpdateCard(r.Context(), owner(r), r.PathValue("id"), in)
	reply(h, w, r, http.StatusOK, c, err)
}

func (h *RecordsHandler) deleteCard(w http.ResponseWriter, r *http.Request) {
	err := h.records.DeleteCard(r.Context(), owner(r), r.PathValue("id"))
	h.deleted(w, r, err, "Cartão excluído com sucesso")
}
