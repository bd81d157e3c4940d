package httpapi

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/draft-league-dashboard/internal/domain/draftleague"
	"github.com/riskibarqy/draft-league-dashboard/internal/domain/leaguestanding"
	"github.com/riskibarqy/draft-league-dashboard/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	msgEnterLeagueID = "Enter a valid League ID to see the standings."
	msgFetchFailed   = "Failed to fetch data. Please check the League ID."
	msgNoLeader      = "No valid data available to determine the top scorer."
)

var emptyReasonMessages = map[string]string{
	leaguestanding.ReasonNoValidStandings: "No valid standings data available after filtering.",
	leaguestanding.ReasonNoValidEntries:   "No valid league entries data available after filtering.",
	leaguestanding.ReasonEmptyJoin:        "Merged Data is empty after attempting to merge valid entries and standings.",
}

//go:embed templates/*.html
var templateFS embed.FS

var dashboardPageTemplate = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{"points": formatPoints}).
		ParseFS(templateFS, "templates/dashboard.html"),
)

type dashboardPageData struct {
	LeagueID string
	Prompt   string
	Errors   []string
	Warnings []warningDTO

	HasLeague    bool
	LeagueName   string
	FetchedAt    string
	Cached       bool
	RawEntries   []draftleague.Entry
	RawStandings []draftleague.Standing

	Rows       []standingRowDTO
	ShowCharts bool
	TopTitle   string
	Charts     template.JS
	Leader     *leaderDTO
	NoLeader   string
}

// DashboardPage renders the standings dashboard for ?league_id=, falling back
// to the configured default league when the parameter is absent. ?refresh=1
// drops the cached document first.
func (h *Handler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DashboardPage")
	defer span.End()

	query := r.URL.Query()
	input := h.defaultLeagueID
	if values, ok := query["league_id"]; ok && len(values) > 0 {
		input = values[0]
	}
	data := dashboardPageData{LeagueID: strings.TrimSpace(input)}

	if data.LeagueID == "" {
		data.Prompt = msgEnterLeagueID
		h.renderPage(ctx, w, http.StatusOK, data)
		return
	}

	leagueID, err := h.parseLeagueID(input)
	if err != nil {
		data.Prompt = msgEnterLeagueID
		h.renderPage(ctx, w, http.StatusBadRequest, data)
		return
	}

	var dashboard usecase.Dashboard
	if wantsRefresh(query.Get("refresh")) {
		dashboard, err = h.dashboardService.Refresh(ctx, leagueID)
	} else {
		dashboard, err = h.dashboardService.Build(ctx, leagueID)
	}

	status := http.StatusOK
	switch {
	case err == nil:
		h.fillPageDashboard(ctx, &data, dashboard)
	case errors.Is(err, usecase.ErrEmptyResult):
		status = mapError(ctx, err).HTTPStatus
		fillPageHeader(&data, dashboard)
		for _, reason := range dashboard.EmptyReasons {
			data.Errors = append(data.Errors, emptyReasonMessage(reason))
		}
	case errors.Is(err, usecase.ErrFetchFailure), errors.Is(err, usecase.ErrDependencyUnavailable):
		status = mapError(ctx, err).HTTPStatus
		data.Errors = []string{msgFetchFailed}
	default:
		status = mapError(ctx, err).HTTPStatus
		data.Errors = []string{"internal server error"}
	}
	if err != nil {
		h.logger.WarnContext(ctx, "render league dashboard page failed", "league_id", leagueID, "error", err)
	}

	h.renderPage(ctx, w, status, data)
}

func (h *Handler) renderPage(ctx context.Context, w http.ResponseWriter, status int, data dashboardPageData) {
	h.renderHTML(ctx, w, status, h.page, data)
}

// renderHTML executes tmpl into a pooled buffer first so a template error can
// still produce a clean 500.
func (h *Handler) renderHTML(ctx context.Context, w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := tmpl.Execute(buf, data); err != nil {
		h.logger.ErrorContext(ctx, "execute html template failed", "template", tmpl.Name(), "error", err)
		writeInternalError(ctx, w)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func fillPageHeader(data *dashboardPageData, d usecase.Dashboard) {
	data.HasLeague = true
	data.LeagueName = d.LeagueName
	data.FetchedAt = d.FetchedAt.UTC().Format(time.RFC3339)
	data.Cached = d.Cached
	data.RawEntries = d.Source.LeagueEntries
	data.RawStandings = d.Source.Standings
	data.Warnings = warningsToDTO(d.Warnings)
}

func (h *Handler) fillPageDashboard(ctx context.Context, data *dashboardPageData, d usecase.Dashboard) {
	fillPageHeader(data, d)

	dto := dashboardToDTO(d)
	data.Rows = dto.Rows
	data.Leader = dto.Leader
	if dto.Leader == nil {
		data.NoLeader = msgNoLeader
	}

	charts, err := sonic.ConfigStd.Marshal(dto.Charts)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode dashboard charts failed", "league_id", d.LeagueID, "error", err)
		return
	}
	data.ShowCharts = true
	data.TopTitle = dto.Charts.Top.Title
	// ConfigStd escapes <, > and &, so the payload cannot close the script element.
	data.Charts = template.JS(charts)
}

func emptyReasonMessage(reason string) string {
	if msg, ok := emptyReasonMessages[reason]; ok {
		return msg
	}
	return reason
}

func wantsRefresh(v string) bool {
	refresh, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && refresh
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
