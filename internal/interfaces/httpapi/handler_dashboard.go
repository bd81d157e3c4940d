package httpapi

import "net/http"

func (h *Handler) GetLeagueDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueDashboard")
	defer span.End()

	leagueID, err := h.parseLeagueID(r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dashboard, err := h.dashboardService.Build(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "build league dashboard failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}

func (h *Handler) GetLeagueRaw(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueRaw")
	defer span.End()

	leagueID, err := h.parseLeagueID(r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.dashboardService.Raw(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "fetch raw league details failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rawDetailsDTO{
		LeagueID:  snapshot.LeagueID,
		FetchedAt: snapshot.FetchedAt.UTC(),
		Cached:    snapshot.Cached,
		Details:   snapshot.Details,
	})
}

func (h *Handler) RefreshLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshLeague")
	defer span.End()

	leagueID, err := h.parseLeagueID(r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dashboard, err := h.dashboardService.Refresh(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh league dashboard failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}

func (h *Handler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PurgeCache")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, cachePurgeDTO{
		Dropped: h.dashboardService.PurgeCache(ctx),
	})
}
