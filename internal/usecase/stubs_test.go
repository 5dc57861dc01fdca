package usecase

import (
	"context"

	"github.com/gridironhq/waiverwire/internal/domain/faab"
	"github.com/gridironhq/waiverwire/internal/domain/league"
	"github.com/gridironhq/waiverwire/internal/domain/player"
	"github.com/gridironhq/waiverwire/internal/domain/roster"
	"github.com/gridironhq/waiverwire/internal/domain/waiver"
)

type stubLeagueProvider struct {
	league     league.League
	rosters    []roster.Roster
	leagueErr  error
	rostersErr error
}

func (s stubLeagueProvider) GetLeague(_ context.Context, _ string) (league.League, error) {
	return s.league, s.leagueErr
}

func (s stubLeagueProvider) GetRosters(_ context.Context, _ string) ([]roster.Roster, error) {
	return s.rosters, s.rostersErr
}

type stubPlayerProvider struct {
	players map[string]player.Player
	err     error
}

func (s stubPlayerProvider) GetAllPlayers(_ context.Context) (map[string]player.Player, error) {
	return s.players, s.err
}

type stubTrendingProvider struct {
	entries []waiver.TrendingEntry
	err     error
}

func (s stubTrendingProvider) GetTrending(_ context.Context, _ TrendingKind) ([]waiver.TrendingEntry, error) {
	return s.entries, s.err
}

type stubTransactionProvider struct {
	byWeek map[int][]faab.Transaction
	err    error
}

func (s stubTransactionProvider) GetTransactions(_ context.Context, _ string, week int) ([]faab.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byWeek[week], nil
}

type stubMetricsSource struct {
	usage      map[string]waiver.UsageMetrics
	difficulty map[string]float64
	err        error
}

func (s stubMetricsSource) UsageMetrics(_ context.Context, p player.Player) (waiver.UsageMetrics, error) {
	if s.err != nil {
		return waiver.UsageMetrics{}, s.err
	}
	metrics, ok := s.usage[p.ID]
	if !ok {
		return waiver.UsageMetrics{}, s.err
	}
	return metrics, nil
}

func (s stubMetricsSource) MatchupDifficulty(_ context.Context, p player.Player) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	difficulty, ok := s.difficulty[p.ID]
	if !ok {
		return waiver.DefaultMatchupDifficulty, nil
	}
	return difficulty, nil
}
