package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.DashboardPage)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/{leagueID}/dashboard", handler.GetLeagueDashboard)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/raw", handler.GetLeagueRaw)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/refresh", handler.RefreshLeague)
}

func registerCacheRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("DELETE /v1/cache", handler.PurgeCache)
}
