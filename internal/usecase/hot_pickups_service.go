package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/gridironhq/waiverwire/internal/domain/player"
	"github.com/gridironhq/waiverwire/internal/domain/teamneeds"
	"github.com/gridironhq/waiverwire/internal/domain/waiver"
	"github.com/gridironhq/waiverwire/internal/platform/logging"
)

const (
	defaultPickupLimit    = 10
	defaultScoringWorkers = 8
	fallbackReason        = "provider trending feed unavailable; showing stock recommendations"
)

// HotPickupsEngine scores trending players into ranked pickup candidates.
// It is league-agnostic: ownership and availability are layered on top by
// LeagueWaiverService.
type HotPickupsEngine struct {
	trendingProvider TrendingProvider
	playerProvider   PlayerProvider
	metrics          MetricsSource
	usageScore       waiver.UsageScoreFunc
	logger           *logging.Logger
	maxWorkers       int
}

func NewHotPickupsEngine(
	trendingProvider TrendingProvider,
	playerProvider PlayerProvider,
	metrics MetricsSource,
	logger *logging.Logger,
) *HotPickupsEngine {
	if logger == nil {
		logger = logging.Default()
	}

	return &HotPickupsEngine{
		trendingProvider: trendingProvider,
		playerProvider:   playerProvider,
		metrics:          metrics,
		usageScore:       waiver.DefaultUsageScore,
		logger:           logger,
		maxWorkers:       defaultScoringWorkers,
	}
}

type HotPickupsRequest struct {
	Strategy waiver.Strategy
	Needs    teamneeds.Analysis
	Limit    int
}

func (r *HotPickupsRequest) normalize() error {
	if r.Strategy == "" {
		r.Strategy = waiver.StrategyBalanced
	}
	if _, ok := waiver.AllStrategies[r.Strategy]; !ok {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidInput, r.Strategy)
	}
	if r.Needs.OverallHealth == "" {
		r.Needs = teamneeds.Analysis{OverallHealth: teamneeds.HealthHealthy, Horizon: teamneeds.HorizonLongterm}
	}
	if r.Limit <= 0 {
		r.Limit = defaultPickupLimit
	}
	return nil
}

// GetHotPickups returns scored pickup candidates ranked by total score.
// A trending-feed failure degrades to the fixed fallback list instead of
// failing the request; every other provider failure propagates.
func (e *HotPickupsEngine) GetHotPickups(ctx context.Context, req HotPickupsRequest) ([]waiver.HotPickup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HotPickupsEngine.GetHotPickups")
	defer span.End()

	if err := req.normalize(); err != nil {
		return nil, err
	}

	trending, err := e.trendingProvider.GetTrending(ctx, TrendingAdd)
	if err != nil {
		e.logger.WarnContext(ctx, "trending feed unavailable, serving fallback pickups", "error", err)
		return e.fallbackPickups(req), nil
	}

	allPlayers, err := e.playerProvider.GetAllPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch all players: %w", err)
	}

	candidates := make([]waiver.CandidateInput, 0, len(trending))
	for _, entry := range trending {
		item, ok := allPlayers[entry.PlayerID]
		if !ok || !item.Active || item.IsFreeAgent() {
			continue
		}
		entry := entry
		candidates = append(candidates, waiver.CandidateInput{
			Player:            item,
			Trending:          &entry,
			MatchupDifficulty: waiver.DefaultMatchupDifficulty,
		})
	}

	pickups, err := e.scoreCandidates(ctx, candidates, req)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(pickups, func(i, j int) bool {
		return pickups[i].TotalScore > pickups[j].TotalScore
	})
	if len(pickups) > req.Limit {
		pickups = pickups[:req.Limit]
	}

	return pickups, nil
}

// scoreCandidates runs the metric lookups and scoring on a worker pool;
// results keep candidate input order so equal scores rank stably.
func (e *HotPickupsEngine) scoreCandidates(ctx context.Context, candidates []waiver.CandidateInput, req HotPickupsRequest) ([]waiver.HotPickup, error) {
	if len(candidates) == 0 {
		return []waiver.HotPickup{}, nil
	}

	workerCount := e.maxWorkers
	if workerCount > len(candidates) {
		workerCount = len(candidates)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create scoring pool: %w", err)
	}
	defer pool.Release()

	out := make([]waiver.HotPickup, len(candidates))
	var workers sync.WaitGroup
	for i, candidate := range candidates {
		i, candidate := i, candidate
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			out[i] = e.scoreOne(ctx, candidate, req)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit candidate to scoring pool: %w", err)
		}
	}
	workers.Wait()

	return out, nil
}

func (e *HotPickupsEngine) scoreOne(ctx context.Context, candidate waiver.CandidateInput, req HotPickupsRequest) waiver.HotPickup {
	// Missing metrics never sink a candidate: zero usage and a neutral
	// matchup are the documented defaults.
	if e.metrics != nil {
		if metrics, err := e.metrics.UsageMetrics(ctx, candidate.Player); err == nil {
			candidate.Metrics = metrics
		}
		if difficulty, err := e.metrics.MatchupDifficulty(ctx, candidate.Player); err == nil {
			candidate.MatchupDifficulty = difficulty
		}
	}

	breakdown := waiver.Score(candidate, req.Needs, e.usageScore)
	total := breakdown.Total()

	return waiver.HotPickup{
		PlayerID:             candidate.Player.ID,
		PlayerName:           candidate.Player.Name,
		Position:             candidate.Player.Position,
		Team:                 candidate.Player.Team,
		TotalScore:           total,
		ScoreBreakdown:       breakdown,
		RecommendationReason: waiver.RecommendationReason(candidate, breakdown),
		FAABSuggestion:       waiver.FAABSuggestion(total, req.Strategy),
	}
}

// fallbackPickups is the degraded-mode answer when the trending feed is
// down: one stock candidate per high-demand position with fixed scores.
func (e *HotPickupsEngine) fallbackPickups(req HotPickupsRequest) []waiver.HotPickup {
	stock := []struct {
		id       string
		name     string
		position player.Position
		team     string
		score    waiver.ScoreBreakdown
	}{
		{"8155", "Tyjae Spears", player.PositionRunningBack, "TEN", waiver.ScoreBreakdown{Opportunity: 72, Performance: 40, Matchup: 50}},
		{"9488", "Dontayvion Wicks", player.PositionWideReceiver, "GB", waiver.ScoreBreakdown{Opportunity: 64, Performance: 40, Matchup: 50}},
		{"7553", "Cade Otton", player.PositionTightEnd, "TB", waiver.ScoreBreakdown{Opportunity: 61, Performance: 40, Matchup: 50}},
	}

	out := make([]waiver.HotPickup, 0, len(stock))
	for _, item := range stock {
		total := item.score.Total()
		out = append(out, waiver.HotPickup{
			PlayerID:             item.id,
			PlayerName:           item.name,
			Position:             item.position,
			Team:                 item.team,
			TotalScore:           total,
			ScoreBreakdown:       item.score,
			RecommendationReason: fallbackReason,
			FAABSuggestion:       waiver.FAABSuggestion(total, req.Strategy),
		})
	}

	return out
}
