package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/gridironhq/waiverwire/internal/domain/league"
	"github.com/gridironhq/waiverwire/internal/domain/waiver"
	"github.com/gridironhq/waiverwire/internal/platform/logging"
	"github.com/gridironhq/waiverwire/internal/usecase"
)

type Handler struct {
	userProvider  usecase.UserProvider
	pickupsEngine *usecase.HotPickupsEngine
	leagueWaivers *usecase.LeagueWaiverService
	teamAnalysis  *usecase.TeamAnalysisService
	faabOptimizer *usecase.FaabOptimizerService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	userProvider usecase.UserProvider,
	pickupsEngine *usecase.HotPickupsEngine,
	leagueWaivers *usecase.LeagueWaiverService,
	teamAnalysis *usecase.TeamAnalysisService,
	faabOptimizer *usecase.FaabOptimizerService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		userProvider:  userProvider,
		pickupsEngine: pickupsEngine,
		leagueWaivers: leagueWaivers,
		teamAnalysis:  teamAnalysis,
		faabOptimizer: faabOptimizer,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type userDTO struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUser")
	defer span.End()

	username := strings.TrimSpace(r.PathValue("username"))
	if username == "" {
		writeError(ctx, w, fmt.Errorf("%w: username is required", usecase.ErrInvalidInput))
		return
	}

	item, err := h.userProvider.GetUser(ctx, username)
	if err != nil {
		h.logger.WarnContext(ctx, "get user failed", "username", username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userDTO{
		UserID:      item.ID,
		Username:    item.Username,
		DisplayName: item.DisplayName,
		Avatar:      item.Avatar,
	})
}

type leagueDTO struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Sport        string `json:"sport"`
	TotalRosters int    `json:"total_rosters"`
	FAABBudget   int    `json:"faab_budget"`
}

func leagueToDTO(item league.League) leagueDTO {
	return leagueDTO{
		LeagueID:     item.ID,
		Name:         item.Name,
		Season:       item.Season,
		Sport:        item.Sport,
		TotalRosters: item.TotalRosters,
		FAABBudget:   item.FAABBudget,
	}
}

func (h *Handler) ListUserLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUserLeagues")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	if userID == "" {
		writeError(ctx, w, fmt.Errorf("%w: user id is required", usecase.ErrInvalidInput))
		return
	}

	sport := strings.TrimSpace(r.URL.Query().Get("sport"))
	if sport == "" {
		sport = "nfl"
	}
	season := strings.TrimSpace(r.URL.Query().Get("season"))
	if season == "" {
		writeError(ctx, w, fmt.Errorf("%w: season query parameter is required", usecase.ErrInvalidInput))
		return
	}

	leagues, err := h.userProvider.GetLeaguesByUser(ctx, userID, sport, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list user leagues failed", "user_id", userID, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, item := range leagues {
		items = append(items, leagueToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetHotPickups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHotPickups")
	defer span.End()

	limit, err := parseOptionalInt(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid limit: %v", usecase.ErrInvalidInput, err))
		return
	}

	pickups, err := h.pickupsEngine.GetHotPickups(ctx, usecase.HotPickupsRequest{
		Strategy: waiver.Strategy(strings.TrimSpace(r.URL.Query().Get("strategy"))),
		Limit:    limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get hot pickups failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickups)
}

func (h *Handler) GetLeaguePickups(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaguePickups")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	rosterID, err := parseOptionalInt(r.URL.Query().Get("roster_id"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid roster_id: %v", usecase.ErrInvalidInput, err))
		return
	}
	limit, err := parseOptionalInt(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid limit: %v", usecase.ErrInvalidInput, err))
		return
	}

	pickups, err := h.leagueWaivers.GetAvailableHotPickups(ctx, usecase.AvailablePickupsRequest{
		LeagueID: leagueID,
		RosterID: rosterID,
		Strategy: waiver.Strategy(strings.TrimSpace(r.URL.Query().Get("strategy"))),
		Limit:    limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get league pickups failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickups)
}

func (h *Handler) GetTeamAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamAnalysis")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	rosterID, err := strconv.Atoi(strings.TrimSpace(r.PathValue("rosterID")))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid roster id: %v", usecase.ErrInvalidInput, err))
		return
	}

	analysis, err := h.teamAnalysis.GetTeamAnalysis(ctx, leagueID, rosterID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team analysis failed", "league_id", leagueID, "roster_id", rosterID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, analysis)
}

type optimalBidRequest struct {
	PlayerID    string `json:"player_id" validate:"required"`
	RosterID    int    `json:"roster_id" validate:"required,gt=0"`
	CurrentWeek int    `json:"current_week" validate:"required,gte=1,lte=18"`
}

func (h *Handler) GetOptimalBid(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOptimalBid")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req optimalBidRequest
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

	recommendation, err := h.faabOptimizer.GetOptimalBid(ctx, usecase.OptimalBidRequest{
		LeagueID:    leagueID,
		PlayerID:    strings.TrimSpace(req.PlayerID),
		RosterID:    req.RosterID,
		CurrentWeek: req.CurrentWeek,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "get optimal bid failed",
			"league_id", leagueID,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, recommendation)
}

func parseOptionalInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
