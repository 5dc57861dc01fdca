package waiver

import (
	"fmt"

	"github.com/gridironhq/waiverwire/internal/domain/player"
	"github.com/gridironhq/waiverwire/internal/domain/teamneeds"
)

// UsageMetrics carries the deterministic usage signals behind the opportunity
// score. Shares are fractions in [0,1]; zero values mean "no data".
type UsageMetrics struct {
	SnapShare   float64
	TargetShare float64
}

// UsageScoreFunc converts usage signals into the variable part of the
// opportunity score. It must be deterministic: the pipeline's output is
// recomputed per request and compared in tests.
type UsageScoreFunc func(p player.Player, metrics UsageMetrics) float64

// DefaultUsageScore rewards snap share over target share; both saturate at
// their weight so the opportunity score stays inside [0,100].
func DefaultUsageScore(_ player.Player, metrics UsageMetrics) float64 {
	return clamp(metrics.SnapShare, 0, 1)*20 + clamp(metrics.TargetShare, 0, 1)*10
}

// CandidateInput bundles everything needed to score one pickup candidate.
// Trending is nil when the player is not in the trending feed.
type CandidateInput struct {
	Player   player.Player
	Trending *TrendingEntry
	Metrics  UsageMetrics
	// MatchupDifficulty is 0..100 where 0 is the softest matchup. Use
	// DefaultMatchupDifficulty when the schedule signal is unknown.
	MatchupDifficulty float64
}

const (
	opportunityBaseRB    = 70.0
	opportunityBaseOther = 60.0

	performanceDefault = 40.0
	performanceFloor   = 20.0

	teamFitBonusPoints = 25.0
	trendingBonusCap   = 30.0

	// DefaultMatchupDifficulty is the neutral schedule signal.
	DefaultMatchupDifficulty = 50.0
)

// Score computes the five-part breakdown for one candidate.
func Score(input CandidateInput, analysis teamneeds.Analysis, usageScore UsageScoreFunc) ScoreBreakdown {
	if usageScore == nil {
		usageScore = DefaultUsageScore
	}

	base := opportunityBaseOther
	if input.Player.Position == player.PositionRunningBack {
		base = opportunityBaseRB
	}

	breakdown := ScoreBreakdown{
		Opportunity: clamp(base+usageScore(input.Player, input.Metrics), 0, 100),
		Matchup:     clamp(100-input.MatchupDifficulty, 0, 100),
	}

	if input.Trending != nil {
		count := float64(input.Trending.Count)
		breakdown.Performance = clamp(count/100*100, performanceFloor, 100)
		breakdown.TrendingBonus = clamp(count/200*30, 0, trendingBonusCap)
	} else {
		breakdown.Performance = performanceDefault
	}

	breakdown.TeamFitBonus = teamFitBonus(input.Player.Position, analysis)

	return breakdown
}

func teamFitBonus(pos player.Position, analysis teamneeds.Analysis) float64 {
	switch analysis.OverallHealth {
	case teamneeds.HealthNeedRB2:
		if pos == player.PositionRunningBack {
			return teamFitBonusPoints
		}
	case teamneeds.HealthNeedWR2:
		if pos == player.PositionWideReceiver {
			return teamFitBonusPoints
		}
	case teamneeds.HealthNeedFlex:
		if pos == player.PositionTightEnd {
			return teamFitBonusPoints
		}
	}
	return 0
}

// RecommendationReason renders the human-readable line attached to a pickup.
// Same inputs always produce the same string.
func RecommendationReason(input CandidateInput, breakdown ScoreBreakdown) string {
	switch {
	case breakdown.TeamFitBonus > 0 && input.Trending != nil:
		return fmt.Sprintf("%s fills your biggest roster hole and was added in %d leagues recently", input.Player.Position, input.Trending.Count)
	case breakdown.TeamFitBonus > 0:
		return fmt.Sprintf("%s fills your biggest roster hole", input.Player.Position)
	case input.Trending != nil && float64(input.Trending.Count) >= 200:
		return fmt.Sprintf("league-winner upside: added in %d leagues recently", input.Trending.Count)
	case input.Trending != nil:
		return fmt.Sprintf("trending up: added in %d leagues recently", input.Trending.Count)
	case breakdown.Matchup >= 70:
		return "soft upcoming schedule makes this a sneaky stash"
	default:
		return "solid depth option at the position"
	}
}

// FAABSuggestion sizes a bid hint from the total score. Safe managers shade
// down, aggressive managers shade up.
func FAABSuggestion(totalScore float64, strategy Strategy) int {
	base := totalScore * 0.15
	switch strategy {
	case StrategySafe:
		base *= 0.75
	case StrategyAggressive:
		base *= 1.25
	}

	suggestion := int(base + 0.5)
	if suggestion < 1 {
		suggestion = 1
	}
	if suggestion > 100 {
		suggestion = 100
	}
	return suggestion
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
