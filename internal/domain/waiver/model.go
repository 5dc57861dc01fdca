package waiver

import (
	"github.com/gridironhq/waiverwire/internal/domain/player"
)

// Strategy tunes how aggressively the pipeline sizes FAAB suggestions.
type Strategy string

const (
	StrategySafe       Strategy = "safe"
	StrategyBalanced   Strategy = "balanced"
	StrategyAggressive Strategy = "aggressive"
)

var AllStrategies = map[Strategy]struct{}{
	StrategySafe:       {},
	StrategyBalanced:   {},
	StrategyAggressive: {},
}

// TrendingEntry is one row of the provider's trending add/drop feed: how many
// leagues recently added or dropped the player.
type TrendingEntry struct {
	PlayerID string
	Count    int
}

// ScoreBreakdown holds the five named components of a pickup score.
// Opportunity, Performance and Matchup land in [0,100]; the bonuses in [0,30].
type ScoreBreakdown struct {
	Opportunity   float64 `json:"opportunity_score"`
	Performance   float64 `json:"performance_score"`
	Matchup       float64 `json:"matchup_score"`
	TeamFitBonus  float64 `json:"team_fit_bonus"`
	TrendingBonus float64 `json:"trending_bonus"`
}

func (b ScoreBreakdown) Total() float64 {
	return b.Opportunity + b.Performance + b.Matchup + b.TeamFitBonus + b.TrendingBonus
}

// HotPickup is the pipeline's output unit: one ranked waiver-wire
// recommendation. Constructed fresh per request, never persisted.
type HotPickup struct {
	PlayerID             string          `json:"player_id"`
	PlayerName           string          `json:"player_name"`
	Position             player.Position `json:"position"`
	Team                 string          `json:"team"`
	TotalScore           float64         `json:"total_score"`
	ScoreBreakdown       ScoreBreakdown  `json:"score_breakdown"`
	RecommendationReason string          `json:"recommendation_reason"`
	FAABSuggestion       int             `json:"faab_suggestion"`
	OwnershipPercentage  int             `json:"ownership_percentage"`
	IsAvailable          bool            `json:"is_available"`
}

// BlendedRankKey prefers high-score, low-ownership pickups: contested players
// cost more FAAB for the same upside.
func (p HotPickup) BlendedRankKey() float64 {
	return 0.3*float64(100-p.OwnershipPercentage) + 0.7*p.TotalScore
}
