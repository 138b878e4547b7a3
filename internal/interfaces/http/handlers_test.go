package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rediscache "github.com/DarianStillwater/NBA-Manager-sub002/internal/cache/redis"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/capledger"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/pickregistry"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/snapshot"
)

// fakeSnapshots serves a fixed snapshot, or a fixed error.
type fakeSnapshots struct {
	snap *snapshot.Snapshot
	err  error
}

func (f *fakeSnapshots) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

func testSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	rules := league.DefaultRules()
	ledger := capledger.NewLedger(rules)

	signed := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		ledger.UpsertContract(domain.Contract{
			PlayerID:       fmt.Sprintf("DEN-%02d", i),
			Team:           "DEN",
			Salary:         10_000_000,
			YearsRemaining: 2,
			SignedAt:       signed,
		})
		ledger.UpsertContract(domain.Contract{
			PlayerID:       fmt.Sprintf("BOS-%02d", i),
			Team:           "BOS",
			Salary:         10_000_000,
			YearsRemaining: 2,
			SignedAt:       signed,
		})
	}

	registry := pickregistry.NewRegistry()
	for year := 2026; year <= 2032; year++ {
		registry.AddPick(domain.DraftPick{Year: year, Round: 1, OriginalTeam: "DEN", Owner: "DEN"})
		registry.AddPick(domain.DraftPick{Year: year, Round: 1, OriginalTeam: "BOS", Owner: "BOS"})
	}

	return &snapshot.Snapshot{Ledger: ledger, Registry: registry, LoadedAt: time.Now()}
}

func testHandlers(t *testing.T, src SnapshotSource) *Handlers {
	t.Helper()
	metrics := NewMetricsRegistry(prometheus.NewRegistry())
	return NewHandlers(src, league.DefaultRules(), metrics, nil)
}

func postProposal(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/v1/trade/validate", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestValidateTrade_EvenSwapPasses(t *testing.T) {
	h := testHandlers(t, &fakeSnapshots{snap: testSnapshot(t)})

	rec := postProposal(t, h.ValidateTrade, map[string]interface{}{
		"proposed_date": "2025-12-01T12:00:00Z",
		"assets": []map[string]interface{}{
			{"type": "player", "from_team": "DEN", "to_team": "BOS", "player_id": "DEN-00", "salary": 10_000_000},
			{"type": "player", "from_team": "BOS", "to_team": "DEN", "player_id": "BOS-00", "salary": 10_000_000},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Teams  []string                 `json:"teams"`
		Result *domain.ValidationResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"BOS", "DEN"}, resp.Teams)
	assert.True(t, resp.Result.Valid, "issues: %v", resp.Result.Issues)
}

func TestValidateTrade_ReportsViolations(t *testing.T) {
	h := testHandlers(t, &fakeSnapshots{snap: testSnapshot(t)})

	// Proposed after the 2026 deadline.
	rec := postProposal(t, h.ValidateTrade, map[string]interface{}{
		"proposed_date": "2026-03-01T12:00:00Z",
		"assets": []map[string]interface{}{
			{"type": "player", "from_team": "DEN", "to_team": "BOS", "player_id": "DEN-00", "salary": 10_000_000},
			{"type": "player", "from_team": "BOS", "to_team": "DEN", "player_id": "BOS-00", "salary": 10_000_000},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result *domain.ValidationResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Result.Valid)
	assert.NotEmpty(t, resp.Result.Issues)
}

func TestValidateTrade_BadBody(t *testing.T) {
	h := testHandlers(t, &fakeSnapshots{snap: testSnapshot(t)})

	req := httptest.NewRequest("POST", "/v1/trade/validate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.ValidateTrade(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateTrade_NoAssets(t *testing.T) {
	h := testHandlers(t, &fakeSnapshots{snap: testSnapshot(t)})

	rec := postProposal(t, h.ValidateTrade, map[string]interface{}{
		"proposed_date": "2025-12-01T12:00:00Z",
		"assets":        []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateTrade_SnapshotUnavailable(t *testing.T) {
	h := testHandlers(t, &fakeSnapshots{err: errors.New("database down")})

	rec := postProposal(t, h.ValidateTrade, map[string]interface{}{
		"proposed_date": "2025-12-01T12:00:00Z",
		"assets": []map[string]interface{}{
			{"type": "player", "from_team": "DEN", "to_team": "BOS", "player_id": "DEN-00", "salary": 10_000_000},
			{"type": "player", "from_team": "BOS", "to_team": "DEN", "player_id": "BOS-00", "salary": 10_000_000},
		},
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestValueTrade_BalancesMirror(t *testing.T) {
	h := testHandlers(t, &fakeSnapshots{snap: testSnapshot(t)})

	rec := postProposal(t, h.ValueTrade, map[string]interface{}{
		"proposed_date": "2025-12-01T12:00:00Z",
		"assets": []map[string]interface{}{
			{"type": "player", "from_team": "DEN", "to_team": "BOS", "player_id": "DEN-00", "salary": 10_000_000},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AssetValues  []assetValue       `json:"asset_values"`
		TeamBalances map[string]float64 `json:"team_balances"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.AssetValues, 1)

	// A two-team swap nets out to mirrored balances.
	assert.InDelta(t, -resp.TeamBalances["DEN"], resp.TeamBalances["BOS"], 0.0001)
	assert.Negative(t, resp.TeamBalances["DEN"])
}

func TestDeadline_BeforeAndAfter(t *testing.T) {
	h := testHandlers(t, &fakeSnapshots{snap: testSnapshot(t)})

	get := func(at string) map[string]interface{} {
		req := httptest.NewRequest("GET", "/v1/league/deadline?at="+at, nil)
		rec := httptest.NewRecorder()
		h.Deadline(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	before := get("2025-12-01T12:00:00Z")
	assert.Equal(t, float64(2026), before["season_end_year"])
	assert.Equal(t, false, before["passed"])

	after := get("2026-03-01T12:00:00Z")
	assert.Equal(t, true, after["passed"])
}

func TestDeadline_BadTimestamp(t *testing.T) {
	h := testHandlers(t, &fakeSnapshots{snap: testSnapshot(t)})

	req := httptest.NewRequest("GET", "/v1/league/deadline?at=yesterday", nil)
	rec := httptest.NewRecorder()
	h.Deadline(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTeamCap(t *testing.T) {
	h := testHandlers(t, &fakeSnapshots{snap: testSnapshot(t)})

	router := mux.NewRouter()
	router.HandleFunc("/v1/team/{team}/cap", h.TeamCap).Methods("GET")

	req := httptest.NewRequest("GET", "/v1/team/DEN/cap", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "DEN", resp["team"])
	assert.Equal(t, float64(140_000_000), resp["payroll"])
	assert.Equal(t, float64(14), resp["roster_size"])
}

func TestHealth(t *testing.T) {
	h := testHandlers(t, &fakeSnapshots{snap: testSnapshot(t)})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealth_Degraded(t *testing.T) {
	h := testHandlers(t, &fakeSnapshots{err: errors.New("store down")})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestValidationStream_DeliversResults(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	h := NewHandlers(&fakeSnapshots{snap: testSnapshot(t)}, league.DefaultRules(),
		NewMetricsRegistry(prometheus.NewRegistry()), hub)

	router := mux.NewRouter()
	router.HandleFunc("/v1/trade/stream", h.ServeWS)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/trade/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	proposal, err := domain.NewProposal(time.Date(2025, time.December, 1, 12, 0, 0, 0, time.UTC), false,
		domain.PlayerAsset("DEN", "BOS", "DEN-00", 10_000_000))
	require.NoError(t, err)
	result := domain.NewValidationResult()

	// The hub registers the client asynchronously; keep broadcasting until
	// the event comes through.
	deadline := time.Now().Add(3 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))
	done := make(chan struct{})
	defer close(done)
	go func() {
		for time.Now().Before(deadline) {
			hub.BroadcastValidation(proposal, result)
			select {
			case <-done:
				return
			case <-time.After(20 * time.Millisecond):
			}
		}
	}()

	var event validationEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, proposal.ID.String(), event.ProposalID)
	assert.Equal(t, []string{"BOS", "DEN"}, event.Teams)
	assert.True(t, event.Result.Valid)
}

// The cached store reports its outcomes through this interface; the registry
// must keep satisfying it.
var _ rediscache.MetricsRecorder = (*MetricsRegistry)(nil)

func TestMetricsCacheRatioLiveWithoutValidations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsRegistry(reg)

	// Outcomes arrive from snapshot loads alone; the gauge must move
	// before any validation has been observed.
	m.RecordCacheHit("contracts")
	m.RecordCacheHit("picks")
	m.RecordCacheHit("contracts")
	m.RecordCacheMiss("picks")

	families, err := reg.Gather()
	require.NoError(t, err)

	var ratio float64
	found := false
	for _, fam := range families {
		if fam.GetName() == "franchise_snapshot_cache_hit_ratio" {
			ratio = fam.GetMetric()[0].GetGauge().GetValue()
			found = true
		}
	}
	require.True(t, found)
	assert.InDelta(t, 0.75, ratio, 0.0001)
}

func TestMetricsObserveValidation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsRegistry(reg)

	m.RecordCacheHit("contracts")
	m.RecordCacheHit("contracts")
	m.RecordCacheMiss("picks")
	m.ObserveValidation(false, 3, true, 2*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := make(map[string]float64)
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				byName[fam.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				byName[fam.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, float64(1), byName["franchise_trade_validations_total"])
	assert.Equal(t, float64(3), byName["franchise_trade_violations_total"])
	assert.Equal(t, float64(1), byName["franchise_trade_consent_flagged_total"])
	assert.InDelta(t, 2.0/3.0, byName["franchise_snapshot_cache_hit_ratio"], 0.0001)
}
