package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/benchboost/benchboost/internal/usecase"
)

func (h *Handler) GetManagerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetManagerProfile")
	defer span.End()

	entryID, err := pathInt(r, "entryID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.managerService.Profile(ctx, entryID)
	if err != nil {
		h.logger.WarnContext(ctx, "get manager profile failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profile)
}

func (h *Handler) GetManagerSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetManagerSquad")
	defer span.End()

	entryID, err := pathInt(r, "entryID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	event := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("event")); raw != "" {
		event, err = strconv.Atoi(raw)
		if err != nil || event < 1 {
			writeError(ctx, w, fmt.Errorf("%w: event must be a positive integer", usecase.ErrInvalidInput))
			return
		}
	}

	squad, err := h.managerService.Squad(ctx, entryID, event)
	if err != nil {
		h.logger.WarnContext(ctx, "get manager squad failed", "entry_id", entryID, "event", event, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squad)
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}
