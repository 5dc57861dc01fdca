package usecase

import (
	"context"

	"github.com/gridironhq/waiverwire/internal/domain/faab"
	"github.com/gridironhq/waiverwire/internal/domain/league"
	"github.com/gridironhq/waiverwire/internal/domain/player"
	"github.com/gridironhq/waiverwire/internal/domain/roster"
	"github.com/gridironhq/waiverwire/internal/domain/waiver"
)

// TrendingKind selects which side of the provider's trending feed to read.
type TrendingKind string

const (
	TrendingAdd  TrendingKind = "add"
	TrendingDrop TrendingKind = "drop"
)

// LeagueProvider reads league and roster snapshots from the upstream API.
type LeagueProvider interface {
	GetLeague(ctx context.Context, leagueID string) (league.League, error)
	GetRosters(ctx context.Context, leagueID string) ([]roster.Roster, error)
}

// UserProvider resolves provider accounts and their league memberships.
type UserProvider interface {
	GetUser(ctx context.Context, username string) (league.User, error)
	GetLeaguesByUser(ctx context.Context, userID, sport, season string) ([]league.League, error)
}

// PlayerProvider serves the all-players snapshot, typically behind a TTL
// cache: the payload is large and changes at most daily.
type PlayerProvider interface {
	GetAllPlayers(ctx context.Context) (map[string]player.Player, error)
}

// TrendingProvider reads the recent add/drop activity feed.
type TrendingProvider interface {
	GetTrending(ctx context.Context, kind TrendingKind) ([]waiver.TrendingEntry, error)
}

// TransactionProvider reads a league's transaction log for one week.
type TransactionProvider interface {
	GetTransactions(ctx context.Context, leagueID string, week int) ([]faab.Transaction, error)
}

// PlayerRanking is one row of the rankings provider's consensus list.
type PlayerRanking struct {
	PlayerName string
	Position   player.Position
	Team       string
	Rank       int
	Tier       int
}

// PlayerProjection is a rest-of-season projection row.
type PlayerProjection struct {
	PlayerName      string
	Position        player.Position
	Team            string
	ProjectedPoints float64
}

// TrendingRanking is a rankings-provider trend row (risers/fallers).
type TrendingRanking struct {
	PlayerName string
	Direction  string
	RankDelta  int
}

// RankingsProvider is the consensus-rankings upstream.
type RankingsProvider interface {
	GetConsensusRankings(ctx context.Context, format string) ([]PlayerRanking, error)
	GetROSProjections(ctx context.Context, position player.Position, format string) ([]PlayerProjection, error)
	GetTrends(ctx context.Context, direction string) ([]TrendingRanking, error)
}

// MetricsSource supplies the deterministic usage and schedule signals behind
// the opportunity and matchup scores. Implementations must be pure lookups;
// candidates without data get zero metrics and the neutral matchup.
type MetricsSource interface {
	UsageMetrics(ctx context.Context, p player.Player) (waiver.UsageMetrics, error)
	MatchupDifficulty(ctx context.Context, p player.Player) (float64, error)
}
