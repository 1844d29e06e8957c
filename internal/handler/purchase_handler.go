package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"fsanano/garden-shop/internal/model"
)

// PurchaseObserver is told the outcome of every purchase attempt.
type PurchaseObserver interface {
	ObservePurchase(err error)
}

type PurchaseHandler struct {
	svc      PurchaseService
	observer PurchaseObserver
	log      *logrus.Logger
}

func NewPurchaseHandler(svc PurchaseService, observer PurchaseObserver, log *logrus.Logger) *PurchaseHandler {
	return &PurchaseHandler{svc: svc, observer: observer, log: log}
}

type purchaseResponse struct {
	resultResponse
	model.Receipt
}

func (h *PurchaseHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req model.PurchaseRequest
	if err := decode(w, r, &req); err != nil {
		h.observer.ObservePurchase(err)
		writeResultError(w, r, h.log, err)
		return
	}

	receipt, err := h.svc.Purchase(r.Context(), req)
	h.observer.ObservePurchase(err)
	if err != nil {
		writeResultError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, purchaseResponse{
		resultResponse: resultResponse{Success: true, Message: "Compra realizada con éxito"},
		Receipt:        receipt,
	})
}

func (h *PurchaseHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	userID, err := idParam(r, "userId")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	holdings, err := h.svc.Holdings(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}
