package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fsanano/garden-shop/internal/model"
)

type UserHandler struct {
	svc UserService
	log *logrus.Logger
}

func NewUserHandler(svc UserService, log *logrus.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

type adjustBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type balanceResponse struct {
	resultResponse
	UserID  int64           `json:"userId"`
	Balance decimal.Decimal `json:"btc"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "correu")
	if err := validate.Var(email, "required,email"); err != nil {
		writeError(w, r, h.log, model.NewValidationError("correu must be a valid email"))
		return
	}

	u, err := h.svc.GetByEmail(r.Context(), email)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.UserInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	u, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var in model.UserInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	u, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Usuari eliminat correctament"})
}

// AdjustBalance adds a signed amount to the balance. It is not bounded below zero.
func (h *UserHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "userId")
	if err != nil {
		writeResultError(w, r, h.log, err)
		return
	}

	var req adjustBalanceRequest
	if err := decode(w, r, &req); err != nil {
		writeResultError(w, r, h.log, err)
		return
	}

	balance, err := h.svc.AdjustBalance(r.Context(), id, req.Amount)
	if err != nil {
		writeResultError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{
		resultResponse: resultResponse{Success: true, Message: "Saldo actualizado con éxito"},
		UserID:         id,
		Balance:        balance,
	})
}
