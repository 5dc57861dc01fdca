package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gridironhq/waiverwire/internal/domain/teamneeds"
	"github.com/gridironhq/waiverwire/internal/domain/waiver"
)

// TeamAnalysisService classifies a roster's positional health from live
// provider snapshots. Stateless; every call recomputes from scratch.
type TeamAnalysisService struct {
	leagueProvider LeagueProvider
	playerProvider PlayerProvider
}

func NewTeamAnalysisService(leagueProvider LeagueProvider, playerProvider PlayerProvider) *TeamAnalysisService {
	return &TeamAnalysisService{
		leagueProvider: leagueProvider,
		playerProvider: playerProvider,
	}
}

func (s *TeamAnalysisService) GetTeamAnalysis(ctx context.Context, leagueID string, rosterID int) (teamneeds.Analysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamAnalysisService.GetTeamAnalysis")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return teamneeds.Analysis{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if rosterID <= 0 {
		return teamneeds.Analysis{}, fmt.Errorf("%w: roster id must be greater than zero", ErrInvalidInput)
	}

	rosters, err := s.leagueProvider.GetRosters(ctx, leagueID)
	if err != nil {
		return teamneeds.Analysis{}, fmt.Errorf("fetch rosters for league %s: %w", leagueID, err)
	}

	target, found := findRoster(rosters, rosterID)
	if !found {
		return teamneeds.Analysis{}, fmt.Errorf("%w: roster=%d league=%s", ErrNotFound, rosterID, leagueID)
	}

	allPlayers, err := s.playerProvider.GetAllPlayers(ctx)
	if err != nil {
		return teamneeds.Analysis{}, fmt.Errorf("fetch all players: %w", err)
	}

	return teamneeds.Analyze(waiver.CountPositions(target, allPlayers)), nil
}
