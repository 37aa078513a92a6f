package httpapi

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-importer/internal/usecase"
)

func (h *Handler) ImportLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportLeague", pathAttrs(r, "leagueCode")...)
	defer span.End()

	params := leagueCodeParams{LeagueCode: strings.TrimSpace(r.PathValue("leagueCode"))}
	if err := h.validateRequest(ctx, params); err != nil {
		// A malformed code is one the provider does not know either.
		writeError(ctx, w, errors.Mark(err, usecase.ErrLeagueNotFound))
		return
	}

	if err := h.importService.ImportLeague(ctx, params.LeagueCode); err != nil {
		if mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "import league failed", "league_code", params.LeagueCode, "error", err)
		} else {
			h.logger.WarnContext(ctx, "import league rejected", "league_code", params.LeagueCode, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importLeagueDTO{
		LeagueCode: usecase.NormalizeLeagueCode(params.LeagueCode),
		Message:    "League successfully imported to database",
	})
}
