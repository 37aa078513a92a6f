package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/league-importer/internal/platform/logging"
	"github.com/riskibarqy/league-importer/internal/usecase"
)

const usageText = "Please use the /import/importLeague/{leagueCode} route to import a league and /query/players/{leagueCode} or /query/teams/{name} routes to request imported data"

type Handler struct {
	importService *usecase.ImportLeagueService
	queryService  *usecase.QueryService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	importService *usecase.ImportLeagueService,
	queryService *usecase.QueryService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		importService: importService,
		queryService:  queryService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Usage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Usage")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"usage": usageText})
}
