package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/DarianStillwater/NBA-Manager-sub002/internal/domain"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/league"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/snapshot"
	"github.com/DarianStillwater/NBA-Manager-sub002/internal/trade"
)

// SnapshotSource supplies the franchise state a request validates against.
type SnapshotSource interface {
	Load(ctx context.Context) (*snapshot.Snapshot, error)
}

// Handlers implements the trade validation API endpoints.
type Handlers struct {
	snapshots SnapshotSource
	rules     *league.Rules
	metrics   *MetricsRegistry
	hub       *Hub
	startTime time.Time
}

// NewHandlers creates the handler set. hub may be nil when the live feed is
// not wanted.
func NewHandlers(snapshots SnapshotSource, rules *league.Rules, metrics *MetricsRegistry, hub *Hub) *Handlers {
	if rules == nil {
		rules = league.DefaultRules()
	}
	return &Handlers{
		snapshots: snapshots,
		rules:     rules,
		metrics:   metrics,
		hub:       hub,
		startTime: time.Now(),
	}
}

// proposalRequest is the wire form of a trade proposal.
type proposalRequest struct {
	Assets       []domain.TradeAsset `json:"assets"`
	ProposedDate time.Time           `json:"proposed_date"`
	SignAndTrade bool                `json:"sign_and_trade"`
}

func (h *Handlers) decodeProposal(w http.ResponseWriter, r *http.Request) (*domain.TradeProposal, bool) {
	var req proposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}
	if req.ProposedDate.IsZero() {
		req.ProposedDate = time.Now()
	}
	proposal, err := domain.NewProposal(req.ProposedDate, req.SignAndTrade, req.Assets...)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return proposal, true
}

// ValidateTrade handles POST /v1/trade/validate
func (h *Handlers) ValidateTrade(w http.ResponseWriter, r *http.Request) {
	proposal, ok := h.decodeProposal(w, r)
	if !ok {
		return
	}

	snap, err := h.snapshots.Load(r.Context())
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "franchise state unavailable: "+err.Error())
		return
	}

	start := time.Now()
	validator := trade.New(snap.Ledger, snap.Registry, h.rules)
	result := validator.Validate(proposal)
	elapsed := time.Since(start)

	if h.metrics != nil {
		h.metrics.ObserveValidation(result.Valid, len(result.Issues), result.RequiresConsent, elapsed)
	}
	if h.hub != nil {
		h.hub.BroadcastValidation(proposal, result)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"proposal_id": proposal.ID,
		"teams":       proposal.Teams(),
		"result":      result,
	})
}

// assetValue pairs one asset with its estimated value.
type assetValue struct {
	Asset domain.TradeAsset `json:"asset"`
	Value float64           `json:"value"`
}

// ValueTrade handles POST /v1/trade/value
func (h *Handlers) ValueTrade(w http.ResponseWriter, r *http.Request) {
	proposal, ok := h.decodeProposal(w, r)
	if !ok {
		return
	}

	snap, err := h.snapshots.Load(r.Context())
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "franchise state unavailable: "+err.Error())
		return
	}

	estimator := trade.NewEstimator(snap.Ledger)
	currentYear := league.SeasonEndYear(proposal.ProposedDate)

	values := make([]assetValue, 0, len(proposal.Assets))
	for _, a := range proposal.Assets {
		values = append(values, assetValue{Asset: a, Value: estimator.AssetValue(a, currentYear)})
	}

	balances := make(map[string]float64, 4)
	for _, team := range proposal.Teams() {
		balances[team] = estimator.TradeBalance(proposal, team)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"proposal_id":   proposal.ID,
		"asset_values":  values,
		"team_balances": balances,
	})
}

// Deadline handles GET /v1/league/deadline
func (h *Handlers) Deadline(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	if at := r.URL.Query().Get("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid 'at' timestamp, want RFC3339")
			return
		}
		now = parsed
	}

	season := league.SeasonEndYear(now)
	deadline := league.TradeDeadline(season)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"season_end_year": season,
		"deadline":        deadline,
		"passed":          league.PastTradeDeadline(now),
	})
}

// Rules handles GET /v1/league/rules
func (h *Handlers) Rules(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.rules)
}

// TeamCap handles GET /v1/team/{team}/cap
func (h *Handlers) TeamCap(w http.ResponseWriter, r *http.Request) {
	team := mux.Vars(r)["team"]
	if team == "" {
		h.writeError(w, http.StatusBadRequest, "missing team")
		return
	}

	snap, err := h.snapshots.Load(r.Context())
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "franchise state unavailable: "+err.Error())
		return
	}

	payroll := snap.Ledger.Payroll(team)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"team":        team,
		"payroll":     payroll,
		"cap_space":   snap.Ledger.CapSpace(team),
		"cap_status":  snap.Ledger.CapStatus(team).String(),
		"roster_size": snap.Ledger.RosterSize(team),
	})
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK

	var loadedAt *time.Time
	if h.snapshots != nil {
		if snap, err := h.snapshots.Load(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		} else {
			loadedAt = &snap.LoadedAt
		}
	}

	h.writeJSON(w, code, map[string]interface{}{
		"status":      status,
		"uptime":      time.Since(h.startTime).String(),
		"snapshot_at": loadedAt,
	})
}

// NotFound handles unmatched routes with a JSON body.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, code int, msg string) {
	h.writeJSON(w, code, map[string]string{"error": msg})
}
