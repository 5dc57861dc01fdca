package faab

import (
	"fmt"
	"math"
)

// seasonWeeks is the fixed NFL fantasy season length used for budget pacing.
const seasonWeeks = 17

// AnalyzeBiddingPatterns summarizes the FAAB market for one position from a
// league's transaction history. An empty match-set yields the zero pattern;
// callers decide how to handle a market with no history.
func AnalyzeBiddingPatterns(transactions []Transaction, position string) BiddingPattern {
	var (
		winningTotal int
		winningCount int
		allTotal     int
		allCount     int
		low          = math.MaxInt
		high         = 0
	)

	for _, tx := range transactions {
		if tx.Type != TransactionTypeWaiver {
			continue
		}
		if position != "" && tx.Position != position {
			continue
		}
		if tx.Bid > 0 {
			allTotal += tx.Bid
			allCount++
		}
		if !tx.IsWinningWaiverBid() {
			continue
		}
		winningTotal += tx.Bid
		winningCount++
		if tx.Bid < low {
			low = tx.Bid
		}
		if tx.Bid > high {
			high = tx.Bid
		}
	}

	if winningCount == 0 {
		return BiddingPattern{}
	}

	return BiddingPattern{
		AverageWinningBid: float64(winningTotal) / float64(winningCount),
		AverageTotalBids:  float64(allTotal) / float64(allCount),
		SampleSize:        winningCount,
		BidRange:          Range{Min: low, Max: high},
	}
}

// ValueAssessmentInput carries the usage and market signals behind a player
// valuation. Shares are fractions in [0,1]; roster percentage and scarcity
// are 0..100.
type ValueAssessmentInput struct {
	RosterPercentage float64
	TargetShare      float64
	RecentPoints     float64
	PositionScarcity float64
	WaiverDepth      int
}

// Value-blend weights. Roster percentage carries the most signal: the crowd
// has already priced in most of what matters.
const (
	weightRosterPct   = 0.35
	weightTargetShare = 0.25
	weightRecent      = 0.25
	weightScarcity    = 0.15

	recentPointsCeiling = 25.0
	tierHighThreshold   = 75.0
	tierMediumThreshold = 45.0
	deepWaiverThreshold = 10
)

// AssessPlayerValue blends usage and market signals into a 0-100 score and a
// value tier. Confidence is high only when the waiver pool is deep enough to
// make comparisons meaningful.
func AssessPlayerValue(input ValueAssessmentInput) PlayerValue {
	rosterPct := clampFloat(input.RosterPercentage, 0, 100)
	targetShare := clampFloat(input.TargetShare, 0, 1) * 100
	recent := clampFloat(input.RecentPoints, 0, recentPointsCeiling) / recentPointsCeiling * 100
	scarcity := clampFloat(input.PositionScarcity, 0, 100)

	score := rosterPct*weightRosterPct +
		targetShare*weightTargetShare +
		recent*weightRecent +
		scarcity*weightScarcity

	tier := TierLow
	switch {
	case score >= tierHighThreshold:
		tier = TierHigh
	case score >= tierMediumThreshold:
		tier = TierMedium
	}

	confidence := ConfidenceMedium
	if input.WaiverDepth > deepWaiverThreshold {
		confidence = ConfidenceHigh
	}

	return PlayerValue{
		Tier:       tier,
		Score:      score,
		Confidence: confidence,
	}
}

// TrackBudget derives a manager's FAAB position from their settled waiver
// claims, assuming the fixed 17-week season.
func TrackBudget(totalBudget int, transactions []Transaction, currentWeek int) (Budget, error) {
	if totalBudget <= 0 {
		return Budget{}, fmt.Errorf("%w: total=%d", ErrInvalidBudget, totalBudget)
	}

	spent := 0
	for _, tx := range transactions {
		if !tx.IsWinningWaiverBid() {
			continue
		}
		spent += tx.Bid
	}
	if spent > totalBudget {
		spent = totalBudget
	}

	weeksRemaining := seasonWeeks - currentWeek
	if weeksRemaining < 0 {
		weeksRemaining = 0
	}

	return Budget{
		Total:           totalBudget,
		Remaining:       totalBudget - spent,
		PercentageSpent: float64(spent) / float64(totalBudget) * 100,
		WeeksRemaining:  weeksRemaining,
	}, nil
}

func clampFloat(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
