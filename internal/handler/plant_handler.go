package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"fsanano/garden-shop/internal/model"
)

type PlantHandler struct {
	svc PlantService
	log *logrus.Logger
}

func NewPlantHandler(svc PlantService, log *logrus.Logger) *PlantHandler {
	return &PlantHandler{svc: svc, log: log}
}

func (h *PlantHandler) List(w http.ResponseWriter, r *http.Request) {
	plants, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, plants)
}

func (h *PlantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	p, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PlantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.PlantInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PlantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var in model.PlantInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	p, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PlantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Planta eliminada correctament"})
}
