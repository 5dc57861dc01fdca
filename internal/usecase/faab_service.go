package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/gridironhq/waiverwire/internal/domain/faab"
	"github.com/gridironhq/waiverwire/internal/domain/league"
	"github.com/gridironhq/waiverwire/internal/domain/player"
	"github.com/gridironhq/waiverwire/internal/domain/roster"
	"github.com/gridironhq/waiverwire/internal/domain/waiver"
	"github.com/gridironhq/waiverwire/internal/platform/logging"
)

const defaultFAABBudget = 100

// Position scarcity on the waiver wire, 0..100. Startable RBs evaporate
// first; kickers are always in supply.
var positionScarcity = map[player.Position]float64{
	player.PositionRunningBack:  80,
	player.PositionTightEnd:     65,
	player.PositionWideReceiver: 55,
	player.PositionQuarterback:  40,
	player.PositionDefense:      25,
	player.PositionKicker:       15,
}

// FaabOptimizerService is the composition root of the bid pipeline: it
// gathers the valuation, market and budget inputs and hands them to the pure
// bid calculator.
type FaabOptimizerService struct {
	leagueProvider      LeagueProvider
	playerProvider      PlayerProvider
	trendingProvider    TrendingProvider
	transactionProvider TransactionProvider
	metrics             MetricsSource
	logger              *logging.Logger
}

func NewFaabOptimizerService(
	leagueProvider LeagueProvider,
	playerProvider PlayerProvider,
	trendingProvider TrendingProvider,
	transactionProvider TransactionProvider,
	metrics MetricsSource,
	logger *logging.Logger,
) *FaabOptimizerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &FaabOptimizerService{
		leagueProvider:      leagueProvider,
		playerProvider:      playerProvider,
		trendingProvider:    trendingProvider,
		transactionProvider: transactionProvider,
		metrics:             metrics,
		logger:              logger,
	}
}

type OptimalBidRequest struct {
	LeagueID    string
	PlayerID    string
	RosterID    int
	CurrentWeek int
}

func (r OptimalBidRequest) validate() error {
	if strings.TrimSpace(r.LeagueID) == "" {
		return fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(r.PlayerID) == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if r.RosterID <= 0 {
		return fmt.Errorf("%w: roster id must be greater than zero", ErrInvalidInput)
	}
	if r.CurrentWeek < 1 || r.CurrentWeek > 18 {
		return fmt.Errorf("%w: current week must be within 1..18", ErrInvalidInput)
	}
	return nil
}

// GetOptimalBid computes a FAAB bid recommendation for one candidate player.
func (s *FaabOptimizerService) GetOptimalBid(ctx context.Context, req OptimalBidRequest) (faab.BidRecommendation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FaabOptimizerService.GetOptimalBid")
	defer span.End()

	if err := req.validate(); err != nil {
		return faab.BidRecommendation{}, err
	}

	var (
		leagueInfo league.League
		rosters    []roster.Roster
		allPlayers map[string]player.Player
		trending   []waiver.TrendingEntry
	)

	fetch := pool.New().WithContext(ctx).WithCancelOnError()
	fetch.Go(func(ctx context.Context) error {
		item, err := s.leagueProvider.GetLeague(ctx, req.LeagueID)
		if err != nil {
			return fmt.Errorf("fetch league %s: %w", req.LeagueID, err)
		}
		leagueInfo = item
		return nil
	})
	fetch.Go(func(ctx context.Context) error {
		items, err := s.leagueProvider.GetRosters(ctx, req.LeagueID)
		if err != nil {
			return fmt.Errorf("fetch rosters for league %s: %w", req.LeagueID, err)
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
	fetch.Go(func(ctx context.Context) error {
		items, err := s.trendingProvider.GetTrending(ctx, TrendingAdd)
		if err != nil {
			return fmt.Errorf("fetch trending adds: %w", err)
		}
		trending = items
		return nil
	})
	if err := fetch.Wait(); err != nil {
		return faab.BidRecommendation{}, err
	}

	candidate, ok := allPlayers[req.PlayerID]
	if !ok {
		return faab.BidRecommendation{}, fmt.Errorf("%w: player=%s", ErrNotFound, req.PlayerID)
	}
	if _, found := findRoster(rosters, req.RosterID); !found {
		return faab.BidRecommendation{}, fmt.Errorf("%w: roster=%d league=%s", ErrNotFound, req.RosterID, req.LeagueID)
	}

	transactions, err := s.fetchSeasonTransactions(ctx, req.LeagueID, req.CurrentWeek)
	if err != nil {
		return faab.BidRecommendation{}, err
	}
	annotatePositions(transactions, allPlayers)

	summary, err := waiver.AggregateOwnership(rosters, leagueInfo.TotalRosters)
	if err != nil {
		return faab.BidRecommendation{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	value := s.assessCandidate(ctx, candidate, summary, trending, allPlayers)

	pattern := faab.AnalyzeBiddingPatterns(transactions, string(candidate.Position))

	totalBudget := leagueInfo.FAABBudget
	if totalBudget <= 0 {
		totalBudget = defaultFAABBudget
	}
	budget, err := faab.TrackBudget(totalBudget, rosterTransactions(transactions, req.RosterID), req.CurrentWeek)
	if err != nil {
		return faab.BidRecommendation{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	// A market with no history gives the calculator nothing to anchor on;
	// widen to a budget-derived default range instead of failing validation.
	if pattern.SampleSize == 0 {
		pattern = defaultPattern(budget)
	}

	leagueCtx := faab.LeagueContext{
		ActiveManagers:   leagueInfo.TotalRosters,
		CompetitionLevel: competitionLevel(pattern, req.CurrentWeek),
	}

	recommendation, err := faab.CalculateOptimalBid(value, pattern, budget, leagueCtx)
	if err != nil {
		return faab.BidRecommendation{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	s.logger.DebugContext(ctx, "optimal bid computed",
		"league_id", req.LeagueID,
		"player_id", req.PlayerID,
		"suggested_bid", recommendation.SuggestedBid,
		"strategy", recommendation.Strategy,
	)

	return recommendation, nil
}

// fetchSeasonTransactions pulls every settled week's transaction log in
// parallel and merges them in week order.
func (s *FaabOptimizerService) fetchSeasonTransactions(ctx context.Context, leagueID string, currentWeek int) ([]faab.Transaction, error) {
	var mu sync.Mutex
	merged := make([]faab.Transaction, 0, currentWeek*8)

	fetch := pool.New().WithContext(ctx).WithCancelOnError()
	for week := 1; week <= currentWeek; week++ {
		week := week
		fetch.Go(func(ctx context.Context) error {
			items, err := s.transactionProvider.GetTransactions(ctx, leagueID, week)
			if err != nil {
				return fmt.Errorf("fetch transactions league=%s week=%d: %w", leagueID, week, err)
			}
			mu.Lock()
			merged = append(merged, items...)
			mu.Unlock()
			return nil
		})
	}
	if err := fetch.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Week < merged[j].Week })
	return merged, nil
}

func (s *FaabOptimizerService) assessCandidate(
	ctx context.Context,
	candidate player.Player,
	summary waiver.OwnershipSummary,
	trending []waiver.TrendingEntry,
	allPlayers map[string]player.Player,
) faab.PlayerValue {
	trendCount := 0
	for _, entry := range trending {
		if entry.PlayerID == candidate.ID {
			trendCount = entry.Count
			break
		}
	}

	var metrics waiver.UsageMetrics
	if s.metrics != nil {
		if m, err := s.metrics.UsageMetrics(ctx, candidate); err == nil {
			metrics = m
		}
	}

	waiverDepth := 0
	for _, item := range waiver.AvailablePlayers(allPlayers, summary) {
		if item.Position == candidate.Position {
			waiverDepth++
		}
	}

	return faab.AssessPlayerValue(faab.ValueAssessmentInput{
		// League-local ownership is 0 for an unrostered target, so demand
		// pressure comes from the trending feed instead.
		RosterPercentage: minFloat(100, float64(trendCount)/10),
		TargetShare:      metrics.TargetShare,
		RecentPoints:     metrics.SnapShare * 25,
		PositionScarcity: positionScarcity[candidate.Position],
		WaiverDepth:      waiverDepth,
	})
}

func annotatePositions(transactions []faab.Transaction, allPlayers map[string]player.Player) {
	for i := range transactions {
		if transactions[i].Position != "" {
			continue
		}
		if item, ok := allPlayers[transactions[i].PlayerID]; ok {
			transactions[i].Position = string(item.Position)
		}
	}
}

func rosterTransactions(transactions []faab.Transaction, rosterID int) []faab.Transaction {
	out := make([]faab.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if tx.RosterID == rosterID {
			out = append(out, tx)
		}
	}
	return out
}

func defaultPattern(budget faab.Budget) faab.BiddingPattern {
	high := budget.Remaining / 4
	if high < 2 {
		high = 2
	}
	return faab.BiddingPattern{
		AverageWinningBid: maxFloat(1, float64(budget.Remaining)*0.1),
		BidRange:          faab.Range{Min: 1, Max: high},
	}
}

func competitionLevel(pattern faab.BiddingPattern, currentWeek int) faab.CompetitionLevel {
	if currentWeek < 1 {
		currentWeek = 1
	}
	claimsPerWeek := float64(pattern.SampleSize) / float64(currentWeek)
	switch {
	case claimsPerWeek >= 3:
		return faab.CompetitionHigh
	case claimsPerWeek >= 1:
		return faab.CompetitionMedium
	default:
		return faab.CompetitionLow
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
