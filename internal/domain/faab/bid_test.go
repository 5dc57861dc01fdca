package faab

import (
	"errors"
	"math"
	"testing"
)

func TestCalculateOptimalBid_ContestedMarket(t *testing.T) {
	value := PlayerValue{Tier: TierMedium, Score: 60, Confidence: ConfidenceMedium}
	pattern := BiddingPattern{
		AverageWinningBid: 32,
		SampleSize:        8,
		BidRange:          Range{Min: 10, Max: 60},
	}
	budget := Budget{Total: 200, Remaining: 120, WeeksRemaining: 10}
	leagueCtx := LeagueContext{ActiveManagers: 12, CompetitionLevel: CompetitionHigh}

	got, err := CalculateOptimalBid(value, pattern, budget, leagueCtx)
	if err != nil {
		t.Fatalf("calculate bid failed: %v", err)
	}

	// 32 * 1.1 * 1.2 = 42.24 rounds to 42, below the 48 budget cap.
	if got.SuggestedBid != 42 {
		t.Fatalf("expected suggested bid 42, got %d", got.SuggestedBid)
	}
	if got.Strategy != StrategyBalanced {
		t.Fatalf("expected balanced strategy at 35%% of remaining, got %s", got.Strategy)
	}
	wantProb := 0.5 + (float64(42-10)/50.0)*0.4
	if math.Abs(got.WinProbability-wantProb) > 1e-9 {
		t.Fatalf("expected win probability %.4f, got %.4f", wantProb, got.WinProbability)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("recommendation failed its own contract: %v", err)
	}
}

func TestCalculateOptimalBid_BudgetCapBinds(t *testing.T) {
	value := PlayerValue{Tier: TierHigh, Confidence: ConfidenceHigh}
	pattern := BiddingPattern{
		AverageWinningBid: 100,
		SampleSize:        6,
		BidRange:          Range{Min: 5, Max: 80},
	}
	budget := Budget{Total: 100, Remaining: 50, WeeksRemaining: 5}

	got, err := CalculateOptimalBid(value, pattern, budget, LeagueContext{CompetitionLevel: CompetitionLow})
	if err != nil {
		t.Fatalf("calculate bid failed: %v", err)
	}

	if got.SuggestedBid != 20 {
		t.Fatalf("expected bid capped at 40%% of remaining (20), got %d", got.SuggestedBid)
	}
	if got.BidRange.Max > budget.Remaining {
		t.Fatalf("bid range max %d exceeds remaining budget %d", got.BidRange.Max, budget.Remaining)
	}
	if got.RiskAssessment != RiskHigh {
		t.Fatalf("expected high risk at the budget cap, got %s", got.RiskAssessment)
	}
}

func TestCalculateOptimalBid_ConfidenceRequiresSampleAndValue(t *testing.T) {
	pattern := BiddingPattern{
		AverageWinningBid: 10,
		SampleSize:        5,
		BidRange:          Range{Min: 2, Max: 20},
	}
	budget := Budget{Total: 200, Remaining: 200}

	high, err := CalculateOptimalBid(PlayerValue{Tier: TierLow, Confidence: ConfidenceHigh}, pattern, budget, LeagueContext{})
	if err != nil {
		t.Fatalf("calculate bid failed: %v", err)
	}
	if high.Confidence != ConfidenceHigh {
		t.Fatalf("expected high confidence with sample>=5 and high value confidence, got %s", high.Confidence)
	}

	thin := pattern
	thin.SampleSize = 3
	medium, err := CalculateOptimalBid(PlayerValue{Tier: TierLow, Confidence: ConfidenceHigh}, thin, budget, LeagueContext{})
	if err != nil {
		t.Fatalf("calculate bid failed: %v", err)
	}
	if medium.Confidence != ConfidenceMedium {
		t.Fatalf("expected medium confidence on a thin sample, got %s", medium.Confidence)
	}
}

func TestCalculateOptimalBid_InvalidInputs(t *testing.T) {
	pattern := BiddingPattern{AverageWinningBid: 10, BidRange: Range{Min: 2, Max: 20}}

	if _, err := CalculateOptimalBid(PlayerValue{}, pattern, Budget{Remaining: 0}, LeagueContext{}); !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}

	flat := BiddingPattern{AverageWinningBid: 10, BidRange: Range{Min: 5, Max: 5}}
	if _, err := CalculateOptimalBid(PlayerValue{}, flat, Budget{Remaining: 100}, LeagueContext{}); !errors.Is(err, ErrDegenerateBidRange) {
		t.Fatalf("expected ErrDegenerateBidRange, got %v", err)
	}
}

func TestCalculateOptimalBid_WinProbabilityClamped(t *testing.T) {
	budget := Budget{Total: 500, Remaining: 500}
	pattern := BiddingPattern{
		AverageWinningBid: 200,
		SampleSize:        4,
		BidRange:          Range{Min: 1, Max: 10},
	}

	got, err := CalculateOptimalBid(PlayerValue{Tier: TierHigh}, pattern, budget, LeagueContext{CompetitionLevel: CompetitionHigh})
	if err != nil {
		t.Fatalf("calculate bid failed: %v", err)
	}
	if got.WinProbability != 0.95 {
		t.Fatalf("expected win probability capped at 0.95, got %.2f", got.WinProbability)
	}
}

func TestAssessRisk(t *testing.T) {
	if got := assessRisk(0.5, 10); got != RiskHigh {
		t.Fatalf("expected high risk above the budget cap, got %s", got)
	}
	if got := assessRisk(0.1, 0); got != RiskHigh {
		t.Fatalf("expected high risk with no market history, got %s", got)
	}
	if got := assessRisk(0.1, 6); got != RiskLow {
		t.Fatalf("expected low risk on a cheap, well-sampled claim, got %s", got)
	}
	if got := assessRisk(0.3, 6); got != RiskMedium {
		t.Fatalf("expected medium risk, got %s", got)
	}
}
