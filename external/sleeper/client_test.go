package sleeper

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gridironhq/waiverwire/internal/domain/player"
	"github.com/gridironhq/waiverwire/internal/platform/cache"
	"github.com/gridironhq/waiverwire/internal/platform/logging"
	"github.com/gridironhq/waiverwire/internal/platform/resilience"
	"github.com/gridironhq/waiverwire/internal/usecase"
)

func newTestClient(t *testing.T, handler http.Handler, mutate func(*ClientConfig)) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := ClientConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
		Logger:  logging.NewNop(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestGetUser_MapsPayload(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/gridiron_gary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"user_id":"u123","username":"gridiron_gary","display_name":"Gary","avatar":"abc"}`))
	})
	client := newTestClient(t, handler, nil)

	got, err := client.GetUser(t.Context(), "gridiron_gary")
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if got.ID != "u123" || got.Username != "gridiron_gary" || got.DisplayName != "Gary" {
		t.Fatalf("user mapped incorrectly: %+v", got)
	}
}

func TestGetLeague_ReadsWaiverBudgetFromSettings(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"league_id":"l1","name":"Dynasty Degens","season":"2025","sport":"nfl","total_rosters":12,"settings":{"waiver_budget":200}}`))
	})
	client := newTestClient(t, handler, nil)

	got, err := client.GetLeague(t.Context(), "l1")
	if err != nil {
		t.Fatalf("get league failed: %v", err)
	}
	if got.FAABBudget != 200 {
		t.Fatalf("expected FAAB budget 200 from settings, got %d", got.FAABBudget)
	}
	if got.TotalRosters != 12 {
		t.Fatalf("expected 12 rosters, got %d", got.TotalRosters)
	}
}

func TestGetAllPlayers_NormalizesPositionsAndNames(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"123": {"player_id":"123","full_name":"Sample Back","position":"fb","team":"ten","active":true},
			"DET": {"player_id":"DET","first_name":"Detroit","last_name":"Lions","position":"DEF","team":"DET","active":true},
			"": {"position":"WR","team":"GB","active":true}
		}`))
	})
	client := newTestClient(t, handler, nil)

	got, err := client.GetAllPlayers(t.Context())
	if err != nil {
		t.Fatalf("get all players failed: %v", err)
	}

	back, ok := got["123"]
	if !ok {
		t.Fatalf("expected player 123 in the map")
	}
	if back.Position != player.PositionRunningBack {
		t.Fatalf("expected FB folded into RB, got %s", back.Position)
	}
	if back.Team != "TEN" {
		t.Fatalf("expected team uppercased, got %s", back.Team)
	}

	dst, ok := got["DET"]
	if !ok {
		t.Fatalf("expected defense DET in the map")
	}
	if dst.Position != player.PositionDefense {
		t.Fatalf("expected DEF normalized to DST, got %s", dst.Position)
	}
	if dst.Name != "Detroit Lions" {
		t.Fatalf("expected name assembled from first and last, got %q", dst.Name)
	}

	if len(got) != 2 {
		t.Fatalf("entries without an id must be dropped, got %d players", len(got))
	}
}

func TestGetAllPlayers_CachedAfterFirstFetch(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"123":{"player_id":"123","full_name":"Sample Back","position":"RB","team":"TEN","active":true}}`))
	})
	client := newTestClient(t, handler, func(cfg *ClientConfig) {
		cfg.Cache = cache.NewStore(time.Minute)
	})

	for i := 0; i < 3; i++ {
		if _, err := client.GetAllPlayers(t.Context()); err != nil {
			t.Fatalf("get all players failed on call %d: %v", i, err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one upstream fetch behind the cache, got %d", calls.Load())
	}
}

func TestGetTrending_SkipsEmptyAndZeroCountEntries(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("lookback_hours"); got != "24" {
			t.Errorf("expected default lookback_hours=24, got %s", got)
		}
		w.Write([]byte(`[{"player_id":"p1","count":120},{"player_id":"","count":50},{"player_id":"p2","count":0}]`))
	})
	client := newTestClient(t, handler, nil)

	got, err := client.GetTrending(t.Context(), usecase.TrendingAdd)
	if err != nil {
		t.Fatalf("get trending failed: %v", err)
	}
	if len(got) != 1 || got[0].PlayerID != "p1" || got[0].Count != 120 {
		t.Fatalf("expected only the valid entry, got %+v", got)
	}

	if _, err := client.GetTrending(t.Context(), "sideways"); err == nil {
		t.Fatalf("expected an error for an unknown trending kind")
	}
}

func TestGetTransactions_FlattensAddsDeterministically(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{
			"type":"waiver","status":"complete","leg":3,
			"settings":{"waiver_bid":27},
			"roster_ids":[4],
			"adds":{"p9":4,"p1":4,"p5":4}
		}]`))
	})
	client := newTestClient(t, handler, nil)

	got, err := client.GetTransactions(t.Context(), "l1", 3)
	if err != nil {
		t.Fatalf("get transactions failed: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected one row per added player, got %d", len(got))
	}
	for i, wantID := range []string{"p1", "p5", "p9"} {
		if got[i].PlayerID != wantID {
			t.Fatalf("expected sorted player order, got %s at %d", got[i].PlayerID, i)
		}
		if got[i].Bid != 27 || got[i].Week != 3 || got[i].RosterID != 4 {
			t.Fatalf("row %d mapped incorrectly: %+v", i, got[i])
		}
		if !got[i].IsWinningWaiverBid() {
			t.Fatalf("row %d should be a winning waiver bid", i)
		}
	}
}

func TestClient_NotFoundDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})
	client := newTestClient(t, handler, func(cfg *ClientConfig) {
		cfg.MaxRetries = 3
	})

	if _, err := client.GetUser(t.Context(), "nobody"); err == nil {
		t.Fatalf("expected an error for 404")
	}
	if calls.Load() != 1 {
		t.Fatalf("404 must not be retried, got %d calls", calls.Load())
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"user_id":"u1","username":"retry_ray","display_name":"Ray"}`))
	})
	client := newTestClient(t, handler, func(cfg *ClientConfig) {
		cfg.MaxRetries = 2
	})

	got, err := client.GetUser(t.Context(), "retry_ray")
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if got.ID != "u1" {
		t.Fatalf("unexpected user after retry: %+v", got)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", calls.Load())
	}
}

func TestClient_CircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := newTestClient(t, handler, func(cfg *ClientConfig) {
		cfg.CircuitBreaker = resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		}
	})

	for i := 0; i < 2; i++ {
		if _, err := client.GetUser(t.Context(), "down"); err == nil {
			t.Fatalf("expected failure %d against a dead upstream", i)
		}
	}

	_, err := client.GetUser(t.Context(), "down")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once the breaker opens, got %v", err)
	}
}
