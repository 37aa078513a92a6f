package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListLeaguePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeaguePlayers", pathAttrs(r, "leagueCode")...)
	defer span.End()

	params := leagueCodeParams{
		LeagueCode: strings.TrimSpace(r.PathValue("leagueCode")),
		Name:       strings.TrimSpace(r.URL.Query().Get("name")),
	}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	grouped, err := h.queryService.ListLeagueMembers(ctx, params.LeagueCode, params.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "list league players failed", "league_code", params.LeagueCode, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamMembersDTO, 0, len(grouped))
	for _, group := range grouped {
		items = append(items, teamMembersDTO{
			TeamID:   group.TeamID,
			TeamName: group.TeamName,
			Members:  membersToDTO(group.Members),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeamByName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamByName", pathAttrs(r, "name")...)
	defer span.End()

	params := teamNameParams{Name: strings.TrimSpace(r.PathValue("name"))}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}
	withMembers := withMembersRequested(r.URL.Query()["members"])

	details, err := h.queryService.FindTeam(ctx, params.Name, withMembers)
	if err != nil {
		h.logger.WarnContext(ctx, "get team by name failed", "name", params.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	if !withMembers {
		writeSuccess(ctx, w, http.StatusOK, teamToDTO(details.Team))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamDetailsDTO{
		teamDTO: teamToDTO(details.Team),
		Members: membersToDTO(details.Members),
	})
}
