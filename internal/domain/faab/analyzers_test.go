package faab

import (
	"errors"
	"math"
	"testing"
)

func TestAnalyzeBiddingPatterns_WinningBidsOnly(t *testing.T) {
	transactions := []Transaction{
		{Week: 1, Type: TransactionTypeWaiver, Status: TransactionStatusComplete, Bid: 20, Position: "RB"},
		{Week: 2, Type: TransactionTypeWaiver, Status: TransactionStatusComplete, Bid: 40, Position: "RB"},
		{Week: 2, Type: TransactionTypeWaiver, Status: "failed", Bid: 15, Position: "RB"},
		{Week: 3, Type: "free_agent", Status: TransactionStatusComplete, Bid: 0, Position: "RB"},
		{Week: 3, Type: TransactionTypeWaiver, Status: TransactionStatusComplete, Bid: 99, Position: "WR"},
	}

	got := AnalyzeBiddingPatterns(transactions, "RB")

	if got.SampleSize != 2 {
		t.Fatalf("expected 2 winning RB claims, got %d", got.SampleSize)
	}
	if got.AverageWinningBid != 30 {
		t.Fatalf("expected average winning bid 30, got %.1f", got.AverageWinningBid)
	}
	// All positive RB bids count toward the total average, losers included.
	if math.Abs(got.AverageTotalBids-25) > 1e-9 {
		t.Fatalf("expected average total bids 25, got %.1f", got.AverageTotalBids)
	}
	if got.BidRange.Min != 20 || got.BidRange.Max != 40 {
		t.Fatalf("expected winning bid range [20,40], got [%d,%d]", got.BidRange.Min, got.BidRange.Max)
	}
}

func TestAnalyzeBiddingPatterns_EmptyMarket(t *testing.T) {
	got := AnalyzeBiddingPatterns(nil, "RB")
	if got != (BiddingPattern{}) {
		t.Fatalf("expected the zero pattern for an empty market, got %+v", got)
	}

	losersOnly := []Transaction{
		{Type: TransactionTypeWaiver, Status: "failed", Bid: 12, Position: "RB"},
	}
	got = AnalyzeBiddingPatterns(losersOnly, "RB")
	if got.SampleSize != 0 {
		t.Fatalf("losing bids alone must not form a pattern, got sample %d", got.SampleSize)
	}
}

func TestAnalyzeBiddingPatterns_NoPositionFilter(t *testing.T) {
	transactions := []Transaction{
		{Type: TransactionTypeWaiver, Status: TransactionStatusComplete, Bid: 10, Position: "RB"},
		{Type: TransactionTypeWaiver, Status: TransactionStatusComplete, Bid: 30, Position: "WR"},
	}

	got := AnalyzeBiddingPatterns(transactions, "")
	if got.SampleSize != 2 {
		t.Fatalf("empty position must match all positions, got sample %d", got.SampleSize)
	}
	if got.AverageWinningBid != 20 {
		t.Fatalf("expected average winning bid 20, got %.1f", got.AverageWinningBid)
	}
}

func TestAssessPlayerValue_TierThresholds(t *testing.T) {
	// 95*0.35 + 30*0.25 + 100*0.25 + 90*0.15 = 79.25.
	hot := AssessPlayerValue(ValueAssessmentInput{
		RosterPercentage: 95,
		TargetShare:      0.30,
		RecentPoints:     25,
		PositionScarcity: 90,
		WaiverDepth:      15,
	})
	if hot.Tier != TierHigh {
		t.Fatalf("expected high tier, got %s (score %.1f)", hot.Tier, hot.Score)
	}
	if hot.Confidence != ConfidenceHigh {
		t.Fatalf("expected high confidence on a deep waiver pool, got %s", hot.Confidence)
	}

	// 60*0.35 + 20*0.25 + 60*0.25 + 60*0.15 = 50.
	middling := AssessPlayerValue(ValueAssessmentInput{
		RosterPercentage: 60,
		TargetShare:      0.20,
		RecentPoints:     15,
		PositionScarcity: 60,
		WaiverDepth:      5,
	})
	if middling.Tier != TierMedium {
		t.Fatalf("expected medium tier, got %s (score %.1f)", middling.Tier, middling.Score)
	}
	if middling.Confidence != ConfidenceMedium {
		t.Fatalf("expected medium confidence on a shallow pool, got %s", middling.Confidence)
	}

	cold := AssessPlayerValue(ValueAssessmentInput{})
	if cold.Tier != TierLow {
		t.Fatalf("expected low tier for an empty profile, got %s", cold.Tier)
	}
	if cold.Score != 0 {
		t.Fatalf("expected zero score for an empty profile, got %.1f", cold.Score)
	}
}

func TestAssessPlayerValue_ClampsInputs(t *testing.T) {
	got := AssessPlayerValue(ValueAssessmentInput{
		RosterPercentage: 500,
		TargetShare:      3,
		RecentPoints:     200,
		PositionScarcity: 300,
	})
	if got.Score != 100 {
		t.Fatalf("expected maxed inputs to score exactly 100, got %.1f", got.Score)
	}
}

func TestTrackBudget_MidSeason(t *testing.T) {
	transactions := []Transaction{
		{Week: 1, Type: TransactionTypeWaiver, Status: TransactionStatusComplete, Bid: 30, RosterID: 4},
		{Week: 3, Type: TransactionTypeWaiver, Status: TransactionStatusComplete, Bid: 18, RosterID: 4},
		{Week: 3, Type: TransactionTypeWaiver, Status: "failed", Bid: 50, RosterID: 4},
		{Week: 4, Type: "trade", Status: TransactionStatusComplete, Bid: 0, RosterID: 4},
	}

	got, err := TrackBudget(200, transactions, 5)
	if err != nil {
		t.Fatalf("track budget failed: %v", err)
	}

	if got.Remaining != 152 {
		t.Fatalf("expected 152 remaining, got %d", got.Remaining)
	}
	if got.PercentageSpent != 24 {
		t.Fatalf("expected 24%% spent, got %.1f", got.PercentageSpent)
	}
	if got.WeeksRemaining != 12 {
		t.Fatalf("expected 12 weeks remaining, got %d", got.WeeksRemaining)
	}
}

func TestTrackBudget_SpendCappedAtTotal(t *testing.T) {
	transactions := []Transaction{
		{Week: 1, Type: TransactionTypeWaiver, Status: TransactionStatusComplete, Bid: 80},
		{Week: 2, Type: TransactionTypeWaiver, Status: TransactionStatusComplete, Bid: 80},
	}

	got, err := TrackBudget(100, transactions, 18)
	if err != nil {
		t.Fatalf("track budget failed: %v", err)
	}
	if got.Remaining != 0 {
		t.Fatalf("expected remaining floored at 0, got %d", got.Remaining)
	}
	if got.WeeksRemaining != 0 {
		t.Fatalf("expected weeks remaining floored at 0, got %d", got.WeeksRemaining)
	}
}

func TestTrackBudget_InvalidTotal(t *testing.T) {
	if _, err := TrackBudget(0, nil, 1); !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}
}
