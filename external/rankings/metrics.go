package rankings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gridironhq/waiverwire/internal/domain/player"
	"github.com/gridironhq/waiverwire/internal/domain/waiver"
	"github.com/gridironhq/waiverwire/internal/platform/cache"
	"github.com/gridironhq/waiverwire/internal/usecase"
)

// ErrPlayerUnranked marks a player missing from the consensus list. Callers
// treat it as "no data" and fall back to neutral defaults.
var ErrPlayerUnranked = errors.New("player not present in consensus rankings")

const (
	metricsCacheKey     = "rankings:consensus:index"
	metricsCacheTTL     = time.Hour
	unrankedDifficulty  = waiver.DefaultMatchupDifficulty
	maxDerivedRank      = 200
	passCatcherShareCap = 0.30
)

// MetricsProvider derives the usage and matchup signals behind the scoring
// pipeline from consensus rankings. All outputs are pure functions of a
// player's rank and tier, so repeated calls over one snapshot are stable.
type MetricsProvider struct {
	client *Client
	cache  *cache.Store
}

func NewMetricsProvider(client *Client) *MetricsProvider {
	return &MetricsProvider{
		client: client,
		cache:  cache.NewStore(metricsCacheTTL),
	}
}

type rankedEntry struct {
	rank int
	tier int
}

func (m *MetricsProvider) UsageMetrics(ctx context.Context, p player.Player) (waiver.UsageMetrics, error) {
	entry, err := m.lookup(ctx, p)
	if err != nil {
		return waiver.UsageMetrics{}, err
	}

	snapShare := 1 - float64(entry.rank)/maxDerivedRank
	if snapShare < 0 {
		snapShare = 0
	}

	targetShare := 0.0
	switch p.Position {
	case player.PositionWideReceiver, player.PositionTightEnd:
		targetShare = passCatcherShareCap - float64(entry.rank)*0.002
	case player.PositionRunningBack:
		targetShare = passCatcherShareCap/2 - float64(entry.rank)*0.001
	}
	if targetShare < 0 {
		targetShare = 0
	}

	return waiver.UsageMetrics{
		SnapShare:   snapShare,
		TargetShare: targetShare,
	}, nil
}

func (m *MetricsProvider) MatchupDifficulty(ctx context.Context, p player.Player) (float64, error) {
	entry, err := m.lookup(ctx, p)
	if err != nil {
		return unrankedDifficulty, err
	}
	if entry.tier <= 0 {
		return unrankedDifficulty, nil
	}

	difficulty := 30 + float64(entry.tier)*5
	if difficulty > 100 {
		difficulty = 100
	}
	return difficulty, nil
}

func (m *MetricsProvider) lookup(ctx context.Context, p player.Player) (rankedEntry, error) {
	index, err := m.loadIndex(ctx)
	if err != nil {
		return rankedEntry{}, err
	}

	entry, ok := index[indexKey(p.Name, p.Position)]
	if !ok {
		return rankedEntry{}, fmt.Errorf("%w: %s (%s)", ErrPlayerUnranked, p.Name, p.Position)
	}
	return entry, nil
}

func (m *MetricsProvider) loadIndex(ctx context.Context) (map[string]rankedEntry, error) {
	out, err := m.cache.GetOrLoad(ctx, metricsCacheKey, func(ctx context.Context) (any, error) {
		items, err := m.client.GetConsensusRankings(ctx, "")
		if err != nil {
			return nil, err
		}
		return buildIndex(items), nil
	})
	if err != nil {
		return nil, err
	}

	index, ok := out.(map[string]rankedEntry)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return index, nil
}

func buildIndex(items []usecase.PlayerRanking) map[string]rankedEntry {
	index := make(map[string]rankedEntry, len(items))
	for _, item := range items {
		key := indexKey(item.PlayerName, item.Position)
		if key == "" {
			continue
		}
		// Keep the best rank when the feed repeats a player.
		if existing, ok := index[key]; ok && existing.rank <= item.Rank {
			continue
		}
		index[key] = rankedEntry{rank: item.Rank, tier: item.Tier}
	}
	return index
}

func indexKey(name string, position player.Position) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	return name + "|" + strings.ToUpper(string(position))
}
