package httpapi

import (
	"net/http"
)

// RunRefreshJob triggers a full static-data refresh. It sits behind the
// internal job token so schedulers can call it without exposing a public
// ingestion surface.
func (h *Handler) RunRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshJob")
	defer span.End()

	result, err := h.ingestionService.RefreshStatic(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"players":     result.Players,
		"teams":       result.Teams,
		"gameweeks":   result.Gameweeks,
		"fixtures":    result.Fixtures,
		"duration_ms": result.Duration.Milliseconds(),
	})
}
