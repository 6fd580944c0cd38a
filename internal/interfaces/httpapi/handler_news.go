package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/benchboost/benchboost/internal/usecase"
)

const maxNewsLimit = 200

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNews")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxNewsLimit {
			writeError(ctx, w, fmt.Errorf("%w: limit must be between 1 and %d", usecase.ErrInvalidInput, maxNewsLimit))
			return
		}
		limit = parsed
	}

	updates, err := h.newsService.List(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list news failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, updates)
}

func (h *Handler) RefreshNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshNews")
	defer span.End()

	stored, err := h.newsService.Refresh(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh news failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"stored": stored})
}
