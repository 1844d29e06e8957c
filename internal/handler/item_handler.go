package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"fsanano/garden-shop/internal/model"
)

type ItemHandler struct {
	svc ItemService
	log *logrus.Logger
}

func NewItemHandler(svc ItemService, log *logrus.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, log: log}
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	it, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.ItemInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	it, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var in model.ItemInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	it, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Item eliminat correctament"})
}
