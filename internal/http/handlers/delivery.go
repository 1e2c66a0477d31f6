package handlers

import (
	"context"
	"errors"
	"net/http"

	"agriteranga-courier/internal/apperr"
	"agriteranga-courier/internal/domain"
	"agriteranga-courier/internal/logx"
)

// DeliveryHandler renders the delivery store's views and dispatches its
// actions. It holds no state of its own.
type DeliveryHandler struct {
	usecase deliveryUsecase
	logger  logx.Logger
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(logger logx.Logger, uc deliveryUsecase) *DeliveryHandler {
	return &DeliveryHandler{usecase: uc, logger: logger}
}

// Dashboard handles GET /dashboard: stats plus collection counts.
func (h *DeliveryHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.usecase.Snapshot()
	writeJSON(h.logger, w, r, http.StatusOK, dashboardResponse{
		Stats:          statsToResponse(snap.Stats),
		AvailableCount: len(snap.Available),
		MineCount:      len(snap.Mine),
		Loading:        snap.Loading,
		LastError:      snap.LastErr,
	})
}

// Available handles GET /deliveries/available.
func (h *DeliveryHandler) Available(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, availableListResponse(h.usecase.Snapshot()))
}

// Mine handles GET /deliveries/mine.
func (h *DeliveryHandler) Mine(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, mineListResponse(h.usecase.Snapshot()))
}

// History handles GET /deliveries/history.
func (h *DeliveryHandler) History(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, r, http.StatusOK, historyListResponse(h.usecase.Snapshot()))
}

// Details handles GET /deliveries/{id}.
func (h *DeliveryHandler) Details(w http.ResponseWriter, r *http.Request) {
	d, err := h.usecase.DeliveryDetails(r.Context(), deliveryID(r))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, detailsToResponse(d))
	default:
		h.writeActionError(w, r, err)
	}
}

// Accept handles POST /deliveries/{id}/accept.
func (h *DeliveryHandler) Accept(w http.ResponseWriter, r *http.Request) {
	err := h.usecase.AcceptDelivery(r.Context(), deliveryID(r))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "accepted"})
	default:
		h.writeActionError(w, r, err)
	}
}

// UpdateStatus handles PATCH /deliveries/{id}/status.
func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	err := h.usecase.UpdateDeliveryStatus(r.Context(), deliveryID(r), domain.DeliveryStatus(req.Status), req.Notes)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": req.Status})
	default:
		h.writeActionError(w, r, err)
	}
}

// Complete handles POST /deliveries/{id}/complete.
func (h *DeliveryHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeDeliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	err := h.usecase.CompleteDelivery(r.Context(), deliveryID(r), req.Notes)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "completed"})
	default:
		h.writeActionError(w, r, err)
	}
}

// FilterMine handles POST /deliveries/mine/filter.
func (h *DeliveryHandler) FilterMine(w http.ResponseWriter, r *http.Request) {
	var req statusFilterRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	err := h.usecase.FilterMyDeliveriesByStatus(r.Context(), domain.DeliveryStatus(req.Status))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, mineListResponse(h.usecase.Snapshot()))
	default:
		h.writeActionError(w, r, err)
	}
}

// FilterHistory handles POST /deliveries/history/filter.
func (h *DeliveryHandler) FilterHistory(w http.ResponseWriter, r *http.Request) {
	var req historyFilterRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	err := h.usecase.FilterHistoryByDateRange(r.Context(), req.DateFrom, req.DateTo, domain.DeliveryStatus(req.Status))
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, historyListResponse(h.usecase.Snapshot()))
	default:
		h.writeActionError(w, r, err)
	}
}

// AvailablePage handles POST /deliveries/available/page.
func (h *DeliveryHandler) AvailablePage(w http.ResponseWriter, r *http.Request) {
	h.changePage(w, r, h.usecase.ChangeAvailablePage)
}

// MinePage handles POST /deliveries/mine/page.
func (h *DeliveryHandler) MinePage(w http.ResponseWriter, r *http.Request) {
	h.changePage(w, r, h.usecase.ChangeMyDeliveriesPage)
}

// HistoryPage handles POST /deliveries/history/page.
func (h *DeliveryHandler) HistoryPage(w http.ResponseWriter, r *http.Request) {
	h.changePage(w, r, h.usecase.ChangeHistoryPage)
}

// Refresh handles POST /refresh: a manual full reload.
func (h *DeliveryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.usecase.RefreshAll(r.Context()); err != nil {
		h.writeActionError(w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (h *DeliveryHandler) changePage(w http.ResponseWriter, r *http.Request, change func(ctx context.Context, page int) error) {
	var req changePageRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	err := change(r.Context(), req.Page)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, map[string]int{"page": req.Page})
	default:
		h.writeActionError(w, r, err)
	}
}

// writeActionError maps store/gateway errors onto facade status codes.
func (h *DeliveryHandler) writeActionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "delivery not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "delivery no longer available")
	case errors.Is(err, apperr.ErrUnauthorized):
		writeError(h.logger, w, r, http.StatusUnauthorized, "backend rejected credentials")
	case errors.Is(err, apperr.ErrUnavailable):
		writeError(h.logger, w, r, http.StatusBadGateway, "backend unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
