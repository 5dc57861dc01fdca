package faab

import "fmt"

// Tier buckets a player's assessed value.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Confidence grades how much to trust an assessment or recommendation.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// CompetitionLevel describes how contested the league's waiver market is.
type CompetitionLevel string

const (
	CompetitionHigh   CompetitionLevel = "high"
	CompetitionMedium CompetitionLevel = "medium"
	CompetitionLow    CompetitionLevel = "low"
)

// RiskLevel grades the downside of a recommended bid.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// BidStrategy labels how much of the remaining budget a bid commits.
type BidStrategy string

const (
	StrategyConservative BidStrategy = "conservative"
	StrategyBalanced     BidStrategy = "balanced"
	StrategyAggressive   BidStrategy = "aggressive"
)

// Range is an inclusive bid interval in FAAB dollars.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Width returns the interval size; zero means the range is degenerate.
func (r Range) Width() int {
	return r.Max - r.Min
}

// PlayerValue is the value assessor's verdict on one candidate.
type PlayerValue struct {
	Tier       Tier
	Score      float64
	Confidence Confidence
}

// BiddingPattern summarizes a league's historical FAAB market for a slice of
// comparable players. An empty market yields the zero value.
type BiddingPattern struct {
	AverageWinningBid float64
	AverageTotalBids  float64
	SampleSize        int
	BidRange          Range
}

// Budget is one manager's FAAB position within a league.
type Budget struct {
	Total           int
	Remaining       int
	PercentageSpent float64
	WeeksRemaining  int
}

// LeagueContext carries market conditions into the bid calculator.
type LeagueContext struct {
	ActiveManagers   int
	CompetitionLevel CompetitionLevel
}

// Transaction is one FAAB-relevant league transaction from the provider.
type Transaction struct {
	Week     int
	Type     string
	Status   string
	Bid      int
	RosterID int
	PlayerID string
	Position string
}

const (
	TransactionTypeWaiver     = "waiver"
	TransactionStatusComplete = "complete"
)

// IsWinningWaiverBid reports whether the transaction is a settled FAAB claim.
func (t Transaction) IsWinningWaiverBid() bool {
	return t.Type == TransactionTypeWaiver && t.Status == TransactionStatusComplete && t.Bid > 0
}

// BidRecommendation is the calculator's output contract. SuggestedBid never
// exceeds the requester's remaining budget.
type BidRecommendation struct {
	SuggestedBid   int         `json:"suggested_bid"`
	BidRange       Range       `json:"bid_range"`
	WinProbability float64     `json:"win_probability"`
	Strategy       BidStrategy `json:"strategy"`
	Confidence     Confidence  `json:"confidence_level"`
	Reasoning      string      `json:"reasoning"`
	RiskAssessment RiskLevel   `json:"risk_assessment"`
}

func (r BidRecommendation) Validate() error {
	if r.SuggestedBid <= 0 {
		return fmt.Errorf("suggested bid must be greater than zero")
	}
	if r.BidRange.Min > r.SuggestedBid || r.SuggestedBid > r.BidRange.Max {
		return fmt.Errorf("suggested bid %d outside range [%d,%d]", r.SuggestedBid, r.BidRange.Min, r.BidRange.Max)
	}

	return nil
}
