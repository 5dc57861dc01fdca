package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/gridironhq/waiverwire/internal/domain/league"
	"github.com/gridironhq/waiverwire/internal/domain/player"
	"github.com/gridironhq/waiverwire/internal/domain/roster"
	"github.com/gridironhq/waiverwire/internal/domain/teamneeds"
	"github.com/gridironhq/waiverwire/internal/domain/waiver"
	"github.com/gridironhq/waiverwire/internal/platform/logging"
)

// LeagueWaiverService layers league ownership and availability onto the
// engine's base pickups. The whole orchestration succeeds or fails per
// request; only the engine's internal trending fallback absorbs failures.
type LeagueWaiverService struct {
	leagueProvider LeagueProvider
	playerProvider PlayerProvider
	engine         *HotPickupsEngine
	logger         *logging.Logger
}

func NewLeagueWaiverService(
	leagueProvider LeagueProvider,
	playerProvider PlayerProvider,
	engine *HotPickupsEngine,
	logger *logging.Logger,
) *LeagueWaiverService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueWaiverService{
		leagueProvider: leagueProvider,
		playerProvider: playerProvider,
		engine:         engine,
		logger:         logger,
	}
}

type AvailablePickupsRequest struct {
	LeagueID string
	// RosterID selects whose positional needs weight the scores; zero means
	// no roster context.
	RosterID int
	Strategy waiver.Strategy
	Limit    int
}

// GetAvailableHotPickups returns the league-aware ranked pickup list:
// available players only, re-ranked to prefer high score and low ownership.
func (s *LeagueWaiverService) GetAvailableHotPickups(ctx context.Context, req AvailablePickupsRequest) ([]waiver.HotPickup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueWaiverService.GetAvailableHotPickups")
	defer span.End()

	leagueID := strings.TrimSpace(req.LeagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	var (
		leagueInfo league.League
		rosters    []roster.Roster
		allPlayers map[string]player.Player
	)

	// League, rosters and the all-players snapshot are independent reads;
	// fire them together and fail the request on the first error.
	fetch := pool.New().WithContext(ctx).WithCancelOnError()
	fetch.Go(func(ctx context.Context) error {
		item, err := s.leagueProvider.GetLeague(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("fetch league %s: %w", leagueID, err)
		}
		leagueInfo = item
		return nil
	})
	fetch.Go(func(ctx context.Context) error {
		items, err := s.leagueProvider.GetRosters(ctx, leagueID)
		if err != nil {
			return fmt.Errorf("fetch rosters for league %s: %w", leagueID, err)
		}
		rosters = items
		return nil
	})
	fetch.Go(func(ctx context.Context) error {
		items, err := s.playerProvider.GetAllPlayers(ctx)
		if err != nil {
			return fmt.Errorf("fetch all players: %w", err)
		}
		allPlayers = items
		return nil
	})
	if err := fetch.Wait(); err != nil {
		return nil, err
	}

	summary, err := waiver.AggregateOwnership(rosters, leagueInfo.TotalRosters)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	needs := teamneeds.Analysis{OverallHealth: teamneeds.HealthHealthy, Horizon: teamneeds.HorizonLongterm}
	if req.RosterID > 0 {
		target, found := findRoster(rosters, req.RosterID)
		if !found {
			return nil, fmt.Errorf("%w: roster=%d league=%s", ErrNotFound, req.RosterID, leagueID)
		}
		needs = teamneeds.Analyze(waiver.CountPositions(target, allPlayers))
	}

	base, err := s.engine.GetHotPickups(ctx, HotPickupsRequest{
		Strategy: req.Strategy,
		Needs:    needs,
		Limit:    req.Limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]waiver.HotPickup, 0, len(base))
	for _, pickup := range base {
		pickup.OwnershipPercentage = summary.Percentage(pickup.PlayerID)
		pickup.IsAvailable = !summary.IsRostered(pickup.PlayerID)
		if !pickup.IsAvailable {
			continue
		}
		out = append(out, pickup)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BlendedRankKey() > out[j].BlendedRankKey()
	})

	s.logger.DebugContext(ctx, "available hot pickups computed",
		"league_id", leagueID,
		"base_count", len(base),
		"available_count", len(out),
	)

	return out, nil
}

func findRoster(rosters []roster.Roster, rosterID int) (roster.Roster, bool) {
	for _, item := range rosters {
		if item.ID == rosterID {
			return item, true
		}
	}
	return roster.Roster{}, false
}
