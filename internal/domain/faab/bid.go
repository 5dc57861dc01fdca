package faab

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidBudget      = errors.New("remaining budget must be greater than zero")
	ErrDegenerateBidRange = errors.New("historical bid range has zero width")
)

// Tier and competition multipliers over the historical average winning bid.
var (
	tierMultiplier = map[Tier]float64{
		TierHigh:   1.3,
		TierMedium: 1.1,
		TierLow:    0.9,
	}
	competitionMultiplier = map[CompetitionLevel]float64{
		CompetitionHigh:   1.2,
		CompetitionMedium: 1.1,
		CompetitionLow:    1.0,
	}
)

// Never commit more than 40% of remaining budget to a single claim,
// regardless of value tier.
const maxBudgetShare = 0.4

// CalculateOptimalBid turns a player valuation, the league's historical
// bidding pattern and the manager's budget into a bid recommendation. Pure
// function, no I/O. Degenerate inputs (empty budget, zero-width historical
// range) fail validation instead of propagating NaN.
func CalculateOptimalBid(value PlayerValue, pattern BiddingPattern, budget Budget, leagueCtx LeagueContext) (BidRecommendation, error) {
	if budget.Remaining <= 0 {
		return BidRecommendation{}, fmt.Errorf("%w: remaining=%d", ErrInvalidBudget, budget.Remaining)
	}
	if pattern.BidRange.Width() <= 0 {
		return BidRecommendation{}, fmt.Errorf("%w: [%d,%d]", ErrDegenerateBidRange, pattern.BidRange.Min, pattern.BidRange.Max)
	}
	if pattern.AverageWinningBid < 0 {
		return BidRecommendation{}, fmt.Errorf("average winning bid cannot be negative: %f", pattern.AverageWinningBid)
	}

	tierMult, ok := tierMultiplier[value.Tier]
	if !ok {
		tierMult = tierMultiplier[TierMedium]
	}
	compMult, ok := competitionMultiplier[leagueCtx.CompetitionLevel]
	if !ok {
		compMult = competitionMultiplier[CompetitionLow]
	}

	baseBid := pattern.AverageWinningBid * tierMult * compMult
	cap := float64(budget.Remaining) * maxBudgetShare
	suggested := int(math.Round(math.Min(baseBid, cap)))
	if suggested < 1 {
		suggested = 1
	}

	winProbability := 0.5 + (float64(suggested-pattern.BidRange.Min)/float64(pattern.BidRange.Width()))*0.4
	winProbability = math.Min(0.95, math.Max(0.30, winProbability))

	ratio := float64(suggested) / float64(budget.Remaining)
	strategy := StrategyAggressive
	switch {
	case ratio < 0.2:
		strategy = StrategyConservative
	case ratio < 0.4:
		strategy = StrategyBalanced
	}

	confidence := ConfidenceMedium
	if pattern.SampleSize >= 5 && value.Confidence == ConfidenceHigh {
		confidence = ConfidenceHigh
	}

	spread := int(math.Ceil(float64(suggested) * 0.2))
	bidRange := Range{
		Min: maxInt(1, suggested-spread),
		Max: minInt(budget.Remaining, suggested+spread),
	}
	if bidRange.Max < suggested {
		bidRange.Max = suggested
	}

	return BidRecommendation{
		SuggestedBid:   suggested,
		BidRange:       bidRange,
		WinProbability: winProbability,
		Strategy:       strategy,
		Confidence:     confidence,
		Reasoning:      bidReasoning(value, pattern, suggested, strategy),
		RiskAssessment: assessRisk(ratio, pattern.SampleSize),
	}, nil
}

func bidReasoning(value PlayerValue, pattern BiddingPattern, suggested int, strategy BidStrategy) string {
	return fmt.Sprintf(
		"%s-tier target; market average winning bid is %.0f across %d claims; %s bid of %d keeps you inside the 40%% budget cap",
		value.Tier, pattern.AverageWinningBid, pattern.SampleSize, strategy, suggested,
	)
}

func assessRisk(budgetShare float64, sampleSize int) RiskLevel {
	switch {
	case budgetShare >= maxBudgetShare || sampleSize == 0:
		return RiskHigh
	case budgetShare < 0.2 && sampleSize >= 5:
		return RiskLow
	default:
		return RiskMedium
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
