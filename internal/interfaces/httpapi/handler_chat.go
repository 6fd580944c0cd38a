package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/benchboost/benchboost/internal/usecase"
)

type queryRequest struct {
	Query     string `json:"query" validate:"required,max=2000"`
	SessionID string `json:"session_id" validate:"omitempty,max=64"`
	ManagerID int    `json:"manager_id" validate:"omitempty,min=1"`
}

type createChatRequest struct {
	ManagerID int `json:"manager_id" validate:"omitempty,min=1"`
}

func (h *Handler) PostQuery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostQuery")
	defer span.End()

	var req queryRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.chatService.Query(ctx, usecase.QueryInput{
		Query:     req.Query,
		SessionID: strings.TrimSpace(req.SessionID),
		ManagerID: req.ManagerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "query failed", "session_id", req.SessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListChats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChats")
	defer span.End()

	sessions, err := h.chatService.ListSessions(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list chats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessions)
}

func (h *Handler) CreateChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateChat")
	defer span.End()

	var req createChatRequest
	if r.Body != nil && r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	session, err := h.chatService.CreateSession(ctx, req.ManagerID)
	if err != nil {
		h.logger.WarnContext(ctx, "create chat failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, session)
}

func (h *Handler) GetChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChat")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	session, err := h.chatService.GetSession(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get chat failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, session)
}

func (h *Handler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteChat")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	if err := h.chatService.DeleteSession(ctx, sessionID); err != nil {
		h.logger.WarnContext(ctx, "delete chat failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
