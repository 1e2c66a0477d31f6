package handlers

import (
	"errors"
	"net/http"

	"agriteranga-courier/internal/apperr"
	"agriteranga-courier/internal/logx"
)

// ProfileHandler serves the courier's own profile screens.
type ProfileHandler struct {
	usecase profileUsecase
	logger  logx.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(logger logx.Logger, uc profileUsecase) *ProfileHandler {
	return &ProfileHandler{usecase: uc, logger: logger}
}

// Get handles GET /profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap := h.usecase.Snapshot()
	if snap.Profile.ID == "" && snap.ProfileErr == "" {
		// not loaded yet, fetch through
		if err := h.usecase.LoadProfile(r.Context()); err != nil {
			h.writeProfileError(w, r, err)
			return
		}
		snap = h.usecase.Snapshot()
	}
	writeJSON(h.logger, w, r, http.StatusOK, profileToResponse(snap.Profile))
}

// Update handles PUT /profile.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if err := h.usecase.UpdateProfile(r.Context(), req.toModel()); err != nil {
		h.writeProfileError(w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, profileToResponse(h.usecase.Snapshot().Profile))
}

// ChangePassword handles PUT /profile/password.
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if err := h.usecase.ChangePassword(r.Context(), req.CurrentPassword, req.NewPassword); err != nil {
		h.writeProfileError(w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "password changed"})
}

// Refresh handles POST /profile/refresh.
func (h *ProfileHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.usecase.RefreshProfile(r.Context()); err != nil {
		h.writeProfileError(w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, profileToResponse(h.usecase.Snapshot().Profile))
}

func (h *ProfileHandler) writeProfileError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrUnauthorized):
		writeError(h.logger, w, r, http.StatusUnauthorized, "backend rejected credentials")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "profile not found")
	case errors.Is(err, apperr.ErrUnavailable):
		writeError(h.logger, w, r, http.StatusBadGateway, "backend unavailable")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
