package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAssistantRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/query", handler.PostQuery)
	mux.HandleFunc("GET /api/chats", handler.ListChats)
	mux.HandleFunc("POST /api/chats", handler.CreateChat)
	mux.HandleFunc("GET /api/chats/{sessionID}", handler.GetChat)
	mux.HandleFunc("DELETE /api/chats/{sessionID}", handler.DeleteChat)
}

func registerManagerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/manager/{entryID}", handler.GetManagerProfile)
	mux.HandleFunc("GET /api/manager/{entryID}/team", handler.GetManagerSquad)
}

func registerNewsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/news", handler.ListNews)
	mux.HandleFunc("POST /api/news/refresh", handler.RefreshNews)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /internal/jobs/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshJob)))
}
