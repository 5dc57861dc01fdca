package usecase

import (
	"errors"
	"testing"

	"github.com/gridironhq/waiverwire/internal/domain/faab"
	"github.com/gridironhq/waiverwire/internal/domain/league"
	"github.com/gridironhq/waiverwire/internal/domain/roster"
	"github.com/gridironhq/waiverwire/internal/domain/waiver"
	"github.com/gridironhq/waiverwire/internal/platform/logging"
)

func newFaabFixture(leagues stubLeagueProvider, transactions stubTransactionProvider, trending stubTrendingProvider) *FaabOptimizerService {
	return NewFaabOptimizerService(
		leagues,
		stubPlayerProvider{players: trendingPlayerPool()},
		trending,
		transactions,
		nil,
		logging.NewNop(),
	)
}

func faabLeagueFixture() stubLeagueProvider {
	return stubLeagueProvider{
		league: league.League{ID: "l1", Name: "Test League", TotalRosters: 10, FAABBudget: 200},
		rosters: []roster.Roster{
			{ID: 4, LeagueID: "l1", OwnerID: "u4", Players: []string{"wr1"}},
			{ID: 5, LeagueID: "l1", OwnerID: "u5", Players: []string{"te1"}},
		},
	}
}

func TestGetOptimalBid_WithMarketHistory(t *testing.T) {
	transactions := stubTransactionProvider{byWeek: map[int][]faab.Transaction{
		1: {
			{Week: 1, Type: faab.TransactionTypeWaiver, Status: faab.TransactionStatusComplete, Bid: 30, RosterID: 4, PlayerID: "wr1"},
			{Week: 1, Type: faab.TransactionTypeWaiver, Status: faab.TransactionStatusComplete, Bid: 25, RosterID: 5, PlayerID: "rb1"},
		},
		3: {
			{Week: 3, Type: faab.TransactionTypeWaiver, Status: faab.TransactionStatusComplete, Bid: 18, RosterID: 4, PlayerID: "te1"},
			{Week: 3, Type: faab.TransactionTypeWaiver, Status: faab.TransactionStatusComplete, Bid: 40, RosterID: 5, PlayerID: "rb1"},
		},
	}}
	trending := stubTrendingProvider{entries: []waiver.TrendingEntry{{PlayerID: "rb1", Count: 350}}}
	service := newFaabFixture(faabLeagueFixture(), transactions, trending)

	got, err := service.GetOptimalBid(t.Context(), OptimalBidRequest{
		LeagueID:    "l1",
		PlayerID:    "rb1",
		RosterID:    4,
		CurrentWeek: 5,
	})
	if err != nil {
		t.Fatalf("get optimal bid failed: %v", err)
	}

	if err := got.Validate(); err != nil {
		t.Fatalf("recommendation failed its own contract: %v", err)
	}
	// Roster 4 spent 30+18 of 200, leaving 152; the 40% cap binds at 61.
	if got.SuggestedBid > 61 {
		t.Fatalf("suggested bid %d blows through the budget cap", got.SuggestedBid)
	}
	if got.BidRange.Max > 152 {
		t.Fatalf("bid range max %d exceeds remaining budget", got.BidRange.Max)
	}
	if got.Reasoning == "" {
		t.Fatalf("expected non-empty reasoning")
	}
}

func TestGetOptimalBid_EmptyMarketWidensPattern(t *testing.T) {
	service := newFaabFixture(faabLeagueFixture(), stubTransactionProvider{}, stubTrendingProvider{})

	got, err := service.GetOptimalBid(t.Context(), OptimalBidRequest{
		LeagueID:    "l1",
		PlayerID:    "rb1",
		RosterID:    4,
		CurrentWeek: 1,
	})
	if err != nil {
		t.Fatalf("an empty transaction log must not fail the request: %v", err)
	}
	if got.SuggestedBid < 1 {
		t.Fatalf("expected a positive suggestion from the default pattern, got %d", got.SuggestedBid)
	}
	if got.RiskAssessment != faab.RiskHigh {
		t.Fatalf("a market with no history must grade as high risk, got %s", got.RiskAssessment)
	}
}

func TestGetOptimalBid_Deterministic(t *testing.T) {
	transactions := stubTransactionProvider{byWeek: map[int][]faab.Transaction{
		2: {{Week: 2, Type: faab.TransactionTypeWaiver, Status: faab.TransactionStatusComplete, Bid: 12, RosterID: 5, PlayerID: "rb1"}},
		4: {{Week: 4, Type: faab.TransactionTypeWaiver, Status: faab.TransactionStatusComplete, Bid: 22, RosterID: 5, PlayerID: "rb1"}},
	}}
	service := newFaabFixture(faabLeagueFixture(), transactions, stubTrendingProvider{entries: []waiver.TrendingEntry{{PlayerID: "rb1", Count: 90}}})

	req := OptimalBidRequest{LeagueID: "l1", PlayerID: "rb1", RosterID: 4, CurrentWeek: 6}
	first, err := service.GetOptimalBid(t.Context(), req)
	if err != nil {
		t.Fatalf("get optimal bid failed: %v", err)
	}
	second, err := service.GetOptimalBid(t.Context(), req)
	if err != nil {
		t.Fatalf("get optimal bid failed: %v", err)
	}
	if first != second {
		t.Fatalf("identical inputs must yield identical recommendations:\n%+v\n%+v", first, second)
	}
}

func TestGetOptimalBid_UnknownPlayerAndRoster(t *testing.T) {
	service := newFaabFixture(faabLeagueFixture(), stubTransactionProvider{}, stubTrendingProvider{})

	_, err := service.GetOptimalBid(t.Context(), OptimalBidRequest{
		LeagueID: "l1", PlayerID: "ghost", RosterID: 4, CurrentWeek: 3,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}

	_, err = service.GetOptimalBid(t.Context(), OptimalBidRequest{
		LeagueID: "l1", PlayerID: "rb1", RosterID: 42, CurrentWeek: 3,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown roster, got %v", err)
	}
}

func TestGetOptimalBid_ValidatesRequest(t *testing.T) {
	service := newFaabFixture(faabLeagueFixture(), stubTransactionProvider{}, stubTrendingProvider{})

	cases := []OptimalBidRequest{
		{LeagueID: "", PlayerID: "rb1", RosterID: 4, CurrentWeek: 3},
		{LeagueID: "l1", PlayerID: " ", RosterID: 4, CurrentWeek: 3},
		{LeagueID: "l1", PlayerID: "rb1", RosterID: 0, CurrentWeek: 3},
		{LeagueID: "l1", PlayerID: "rb1", RosterID: 4, CurrentWeek: 0},
		{LeagueID: "l1", PlayerID: "rb1", RosterID: 4, CurrentWeek: 19},
	}
	for _, req := range cases {
		if _, err := service.GetOptimalBid(t.Context(), req); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", req, err)
		}
	}
}

func TestGetOptimalBid_TrendingFailurePropagates(t *testing.T) {
	wantErr := errors.New("trending endpoint down")
	service := newFaabFixture(faabLeagueFixture(), stubTransactionProvider{}, stubTrendingProvider{err: wantErr})

	_, err := service.GetOptimalBid(t.Context(), OptimalBidRequest{
		LeagueID: "l1", PlayerID: "rb1", RosterID: 4, CurrentWeek: 3,
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the trending error to propagate, got %v", err)
	}
}
