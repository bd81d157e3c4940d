package httpapi

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/draft-league-dashboard/internal/platform/logging"
	"github.com/riskibarqy/draft-league-dashboard/internal/usecase"
)

const DefaultLeagueID = "148968"

type HandlerConfig struct {
	DefaultLeagueID string
}

type Handler struct {
	dashboardService *usecase.DashboardService
	defaultLeagueID  string
	logger           *logging.Logger
	validator        *validator.Validate
	page             *template.Template
}

func NewHandler(
	dashboardService *usecase.DashboardService,
	cfg HandlerConfig,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	defaultLeagueID := strings.TrimSpace(cfg.DefaultLeagueID)
	if defaultLeagueID == "" {
		defaultLeagueID = DefaultLeagueID
	}

	return &Handler{
		dashboardService: dashboardService,
		defaultLeagueID:  defaultLeagueID,
		logger:           logger,
		validator:        validator.New(),
		page:             dashboardPageTemplate,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseLeagueID trims raw and requires an unsigned decimal number.
func (h *Handler) parseLeagueID(raw string) (string, error) {
	leagueID := strings.TrimSpace(raw)
	if err := h.validator.Var(leagueID, "required,number"); err != nil {
		return "", fmt.Errorf("%w: league id must be a number, got %q", usecase.ErrInvalidInput, raw)
	}
	return leagueID, nil
}
