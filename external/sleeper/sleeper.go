package sleeper

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/gridironhq/waiverwire/internal/domain/faab"
	"github.com/gridironhq/waiverwire/internal/domain/league"
	"github.com/gridironhq/waiverwire/internal/domain/player"
	"github.com/gridironhq/waiverwire/internal/domain/roster"
	"github.com/gridironhq/waiverwire/internal/domain/waiver"
	"github.com/gridironhq/waiverwire/internal/usecase"
)

type userPayload struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

type leaguePayload struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Sport        string `json:"sport"`
	TotalRosters int    `json:"total_rosters"`
	Settings     struct {
		WaiverBudget int `json:"waiver_budget"`
	} `json:"settings"`
}

type rosterPayload struct {
	RosterID int      `json:"roster_id"`
	LeagueID string   `json:"league_id"`
	OwnerID  string   `json:"owner_id"`
	Players  []string `json:"players"`
}

type playerPayload struct {
	PlayerID  string `json:"player_id"`
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
	Active    bool   `json:"active"`
}

type trendingPayload struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

type transactionPayload struct {
	Type     string `json:"type"`
	Status   string `json:"status"`
	Leg      int    `json:"leg"`
	Settings struct {
		WaiverBid int `json:"waiver_bid"`
	} `json:"settings"`
	RosterIDs []int          `json:"roster_ids"`
	Adds      map[string]int `json:"adds"`
}

func (c *Client) GetUser(ctx context.Context, username string) (league.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return league.User{}, fmt.Errorf("username is required")
	}

	var payload userPayload
	if err := c.doJSON(ctx, "/user/"+url.PathEscape(username), &payload); err != nil {
		return league.User{}, fmt.Errorf("fetch user %s: %w", username, err)
	}

	out := league.User{
		ID:          payload.UserID,
		Username:    payload.Username,
		DisplayName: payload.DisplayName,
		Avatar:      payload.Avatar,
	}
	if err := out.Validate(); err != nil {
		return league.User{}, fmt.Errorf("invalid user payload for %s: %w", username, err)
	}

	return out, nil
}

func (c *Client) GetLeaguesByUser(ctx context.Context, userID, sport, season string) ([]league.League, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if sport == "" {
		sport = "nfl"
	}
	if strings.TrimSpace(season) == "" {
		return nil, fmt.Errorf("season is required")
	}

	path := fmt.Sprintf("/user/%s/leagues/%s/%s", url.PathEscape(userID), url.PathEscape(sport), url.PathEscape(season))
	var payload []leaguePayload
	if err := c.doJSON(ctx, path, &payload); err != nil {
		return nil, fmt.Errorf("fetch leagues user_id=%s season=%s: %w", userID, season, err)
	}

	out := make([]league.League, 0, len(payload))
	for _, item := range payload {
		mapped := mapLeague(item)
		if mapped.ID == "" {
			continue
		}
		out = append(out, mapped)
	}

	return out, nil
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("league id is required")
	}

	var payload leaguePayload
	if err := c.doJSON(ctx, "/league/"+url.PathEscape(leagueID), &payload); err != nil {
		return league.League{}, fmt.Errorf("fetch league %s: %w", leagueID, err)
	}

	out := mapLeague(payload)
	if err := out.Validate(); err != nil {
		return league.League{}, fmt.Errorf("invalid league payload for %s: %w", leagueID, err)
	}

	return out, nil
}

func (c *Client) GetRosters(ctx context.Context, leagueID string) ([]roster.Roster, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("league id is required")
	}

	var payload []rosterPayload
	if err := c.doJSON(ctx, "/league/"+url.PathEscape(leagueID)+"/rosters", &payload); err != nil {
		return nil, fmt.Errorf("fetch rosters league=%s: %w", leagueID, err)
	}

	out := make([]roster.Roster, 0, len(payload))
	for _, item := range payload {
		out = append(out, roster.Roster{
			ID:       item.RosterID,
			LeagueID: firstNonEmpty(item.LeagueID, leagueID),
			OwnerID:  item.OwnerID,
			Players:  item.Players,
		})
	}

	return out, nil
}

// GetAllPlayers serves the full NFL player map. The payload is several
// megabytes and changes at most daily, so it sits behind the TTL cache when
// one is configured.
func (c *Client) GetAllPlayers(ctx context.Context) (map[string]player.Player, error) {
	if c.cache == nil {
		return c.fetchAllPlayers(ctx)
	}

	out, err := c.cache.GetOrLoad(ctx, allPlayersCacheKey, func(ctx context.Context) (any, error) {
		return c.fetchAllPlayers(ctx)
	})
	if err != nil {
		return nil, err
	}

	players, ok := out.(map[string]player.Player)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return players, nil
}

func (c *Client) fetchAllPlayers(ctx context.Context) (map[string]player.Player, error) {
	var payload map[string]playerPayload
	if err := c.doJSON(ctx, "/players/nfl", &payload); err != nil {
		return nil, fmt.Errorf("fetch all players: %w", err)
	}

	out := make(map[string]player.Player, len(payload))
	for id, item := range payload {
		mapped := mapPlayer(id, item)
		if mapped.ID == "" {
			continue
		}
		out[mapped.ID] = mapped
	}

	return out, nil
}

func (c *Client) GetTrending(ctx context.Context, kind usecase.TrendingKind) ([]waiver.TrendingEntry, error) {
	switch kind {
	case usecase.TrendingAdd, usecase.TrendingDrop:
	default:
		return nil, fmt.Errorf("unknown trending kind %q", kind)
	}

	path := fmt.Sprintf("/players/%s/trending/%s?lookback_hours=%d&limit=%d",
		defaultTrendingWindow, kind, c.lookbackHours, c.trendingLimit)

	var payload []trendingPayload
	if err := c.doJSON(ctx, path, &payload); err != nil {
		return nil, fmt.Errorf("fetch trending %s: %w", kind, err)
	}

	out := make([]waiver.TrendingEntry, 0, len(payload))
	for _, item := range payload {
		if item.PlayerID == "" || item.Count <= 0 {
			continue
		}
		out = append(out, waiver.TrendingEntry{PlayerID: item.PlayerID, Count: item.Count})
	}

	return out, nil
}

func (c *Client) GetTransactions(ctx context.Context, leagueID string, week int) ([]faab.Transaction, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("league id is required")
	}
	if week < 1 {
		return nil, fmt.Errorf("week must be greater than zero")
	}

	path := fmt.Sprintf("/league/%s/transactions/%d", url.PathEscape(leagueID), week)
	var payload []transactionPayload
	if err := c.doJSON(ctx, path, &payload); err != nil {
		return nil, fmt.Errorf("fetch transactions league=%s week=%d: %w", leagueID, week, err)
	}

	out := make([]faab.Transaction, 0, len(payload))
	for _, item := range payload {
		out = append(out, mapTransactions(item, week)...)
	}

	return out, nil
}

func mapLeague(payload leaguePayload) league.League {
	return league.League{
		ID:           strings.TrimSpace(payload.LeagueID),
		Name:         strings.TrimSpace(payload.Name),
		Season:       strings.TrimSpace(payload.Season),
		Sport:        strings.TrimSpace(payload.Sport),
		TotalRosters: payload.TotalRosters,
		FAABBudget:   payload.Settings.WaiverBudget,
	}
}

func mapPlayer(id string, payload playerPayload) player.Player {
	playerID := firstNonEmpty(strings.TrimSpace(payload.PlayerID), strings.TrimSpace(id))
	name := strings.TrimSpace(payload.FullName)
	if name == "" {
		name = strings.TrimSpace(strings.TrimSpace(payload.FirstName) + " " + strings.TrimSpace(payload.LastName))
	}

	return player.Player{
		ID:       playerID,
		Name:     name,
		Position: normalizePosition(payload.Position),
		Team:     strings.ToUpper(strings.TrimSpace(payload.Team)),
		Active:   payload.Active,
	}
}

// normalizePosition folds provider position labels into the pipeline's
// categories. DEF is the provider's spelling for team defenses.
func normalizePosition(raw string) player.Position {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "QB":
		return player.PositionQuarterback
	case "RB", "FB":
		return player.PositionRunningBack
	case "WR":
		return player.PositionWideReceiver
	case "TE":
		return player.PositionTightEnd
	case "K":
		return player.PositionKicker
	case "DEF", "DST":
		return player.PositionDefense
	default:
		return player.Position(strings.ToUpper(strings.TrimSpace(raw)))
	}
}

// mapTransactions flattens one provider transaction into per-player rows so
// the bid analyzers can attribute the winning bid to each added player.
func mapTransactions(payload transactionPayload, week int) []faab.Transaction {
	base := faab.Transaction{
		Week:   pickWeek(payload.Leg, week),
		Type:   strings.TrimSpace(payload.Type),
		Status: strings.TrimSpace(payload.Status),
		Bid:    payload.Settings.WaiverBid,
	}

	if len(payload.Adds) == 0 {
		if len(payload.RosterIDs) > 0 {
			base.RosterID = payload.RosterIDs[0]
		}
		return []faab.Transaction{base}
	}

	playerIDs := make([]string, 0, len(payload.Adds))
	for playerID := range payload.Adds {
		playerIDs = append(playerIDs, playerID)
	}
	sort.Strings(playerIDs)

	out := make([]faab.Transaction, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		tx := base
		tx.PlayerID = playerID
		tx.RosterID = payload.Adds[playerID]
		out = append(out, tx)
	}

	return out
}

func pickWeek(leg, fallback int) int {
	if leg > 0 {
		return leg
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
