// Package calc provides the HTTP handlers gluing the calculation pipeline
// (normalize, valuation, scorers) to the snapshot store and the result feed.
//
// The pipeline itself never fails on bad numeric input: unparsable fields
// degrade to defaults inside the normalizer, so the calculate endpoint only
// rejects requests whose body is not JSON at all.
package calc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/covercall/calc-engine/internal/debounce"
	"github.com/covercall/calc-engine/internal/format"
	"github.com/covercall/calc-engine/internal/metrics"
	"github.com/covercall/calc-engine/internal/model"
	"github.com/covercall/calc-engine/internal/normalize"
	"github.com/covercall/calc-engine/internal/quality"
	"github.com/covercall/calc-engine/internal/store"
	"github.com/covercall/calc-engine/internal/symbols"
	"github.com/covercall/calc-engine/internal/technical"
	"github.com/covercall/calc-engine/internal/valuation"
)

// saveTimeout bounds store writes that run detached from a request, such as
// debounced autosaves.
const saveTimeout = 5 * time.Second

// Service handles calculation and snapshot requests.
type Service struct {
	store     store.Store
	debouncer *debounce.Debouncer
	wsHub     *WSHub // optional hub for result broadcasts
	now       func() time.Time
}

// NewService creates a new calculation service. Pass nil for hub if result
// broadcasting is not needed.
func NewService(st store.Store, deb *debounce.Debouncer, hub *WSHub) *Service {
	return &Service{
		store:     st,
		debouncer: deb,
		wsHub:     hub,
		now:       time.Now,
	}
}

// --- Request/Response types ---

// CalculateRequest is the JSON body for POST /api/v1/calculate. SnapshotID
// is optional and only tags the broadcast so subscribed clients can match
// results to their form.
type CalculateRequest struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	Inputs     model.TradeInputs `json:"inputs"`
}

// CalculateResponse bundles everything a form needs to render one result.
type CalculateResponse struct {
	Symbol    string            `json:"symbol"`
	Metrics   valuation.Metrics `json:"metrics"`
	Quality   quality.Result    `json:"quality"`
	Subtitle  string            `json:"subtitle"`
	Technical *technical.Result `json:"technical,omitempty"`
	Display   DisplayFields     `json:"display"`
}

// DisplayFields carries pre-formatted strings for direct rendering.
type DisplayFields struct {
	BreakevenPrice         string `json:"breakeven_price"`
	MaxProfitTotal         string `json:"max_profit_total"`
	NetCost                string `json:"net_cost"`
	PremiumTotal           string `json:"premium_total"`
	TotalReturnPct         string `json:"total_return_pct"`
	AnnualizedReturnPct    string `json:"annualized_return_pct"`
	PremiumPct             string `json:"premium_pct"`
	UpsideCapPct           string `json:"upside_cap_pct"`
	DownsideToBreakevenPct string `json:"downside_to_breakeven_pct"`
}

// SaveResponse is returned from snapshot writes.
type SaveResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"` // "saved" or "scheduled"
}

// --- HTTP Handlers ---

// Calculate handles POST /api/v1/calculate.
func (s *Service) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	resp := s.compute(req.Inputs)
	metrics.CalculationDuration.Observe(time.Since(start).Seconds())
	metrics.CalculationsTotal.WithLabelValues(resp.Quality.Label).Inc()
	if resp.Technical != nil {
		metrics.TechnicalScoresTotal.WithLabelValues(resp.Technical.Grade).Inc()
	}

	slog.Info("calculation",
		"symbol", resp.Symbol,
		"score", resp.Quality.Score,
		"label", resp.Quality.Label,
		"days", resp.Metrics.DaysUntilExpiration,
	)

	if s.wsHub != nil {
		msg := WSMessage{
			Type:       "result",
			SnapshotID: req.SnapshotID,
			Symbol:     resp.Symbol,
			Score:      resp.Quality.Score,
			Label:      resp.Quality.Label,
			Breakeven:  resp.Metrics.BreakevenPrice.String(),
			MaxProfit:  resp.Metrics.MaxProfitTotal.String(),
			Annualized: resp.Metrics.AnnualizedReturn.String(),
		}
		if resp.Technical != nil {
			msg.TechnicalGrade = resp.Technical.Grade
		}
		s.wsHub.Broadcast(msg)
	}

	writeJSON(w, http.StatusOK, resp)
}

// compute runs the full pipeline for one set of raw inputs.
func (s *Service) compute(raw model.TradeInputs) CalculateResponse {
	in := normalize.Normalize(raw, s.now())
	m := valuation.Compute(in)

	q := quality.Score(quality.Input{
		PremiumPerDayPct:       m.PremiumPerDayPct.InexactFloat64(),
		DownsideToBreakevenPct: m.DownsideToBreakevenPct.InexactFloat64(),
		UpsideCapPct:           m.UpsideCapPct.InexactFloat64(),
		TotalReturnPct:         m.TotalReturn.InexactFloat64() * 100,
		ImpliedVolatilityPct:   in.ImpliedVolatility.InexactFloat64(),
	})

	resp := CalculateResponse{
		Symbol:   in.Symbol,
		Metrics:  m,
		Quality:  q,
		Subtitle: Subtitle(q),
		Display:  displayFields(m),
	}

	if t, ok := technical.Evaluate(technicalInput(in)); ok {
		resp.Technical = &t
	}
	return resp
}

// Subtitle joins up to two quality notes, appending the fixed risk phrase
// when the elevated risk flag is set.
func Subtitle(q quality.Result) string {
	parts := make([]string, 0, 3)
	parts = append(parts, q.Notes...)
	if q.HasElevatedRiskWarning {
		parts = append(parts, quality.RiskWarning)
	}
	return strings.Join(parts, " · ")
}

func displayFields(m valuation.Metrics) DisplayFields {
	return DisplayFields{
		BreakevenPrice:         format.Currency(m.BreakevenPrice),
		MaxProfitTotal:         format.Currency(m.MaxProfitTotal),
		NetCost:                format.Currency(m.NetCost),
		PremiumTotal:           format.Currency(m.PremiumTotal),
		TotalReturnPct:         format.Percent(m.TotalReturn.Mul(decimal.NewFromInt(100))),
		AnnualizedReturnPct:    format.Percent(m.AnnualizedReturn.Mul(decimal.NewFromInt(100))),
		PremiumPct:             format.Percent(m.PremiumPct),
		UpsideCapPct:           format.Percent(m.UpsideCapPct),
		DownsideToBreakevenPct: format.Percent(m.DownsideToBreakevenPct),
	}
}

// technicalInput adapts normalized inputs to the technical scorer's view.
func technicalInput(in normalize.Inputs) technical.Input {
	return technical.Input{
		Price: in.StockPrice.InexactFloat64(),
		RSI:   optFloat(in.RSI14),
		ADX:   optFloat(in.ADX14),
		MA20:  optFloat(in.MA20),
		MA50:  optFloat(in.MA50),
		MA200: optFloat(in.MA200),
		ATR:   optFloat(in.ATR14),
	}
}

func optFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

// CreateSnapshot handles POST /api/v1/snapshots.
func (s *Service) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var inputs model.TradeInputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap := &model.Snapshot{
		ID:        uuid.New().String(),
		Inputs:    inputs,
		UpdatedAt: s.now().UTC(),
	}
	if err := s.store.SaveSnapshot(r.Context(), snap); err != nil {
		slog.Error("snapshot create failed", "id", snap.ID, "err", err)
		writeError(w, "failed to save snapshot", http.StatusInternalServerError)
		return
	}
	metrics.SnapshotSavesTotal.WithLabelValues("immediate").Inc()

	writeJSON(w, http.StatusCreated, snap)
}

// SaveSnapshot handles PUT /api/v1/snapshots/{snapshotID}.
//
// Saves are debounced: repeated writes to the same id within the window
// collapse to the last one, mirroring form autosave. ?immediate=1 bypasses
// the window.
func (s *Service) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "snapshotID")

	var inputs model.TradeInputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap := &model.Snapshot{
		ID:        id,
		Inputs:    inputs,
		UpdatedAt: s.now().UTC(),
	}

	if r.URL.Query().Get("immediate") == "1" || s.debouncer == nil {
		if err := s.store.SaveSnapshot(r.Context(), snap); err != nil {
			slog.Error("snapshot save failed", "id", id, "err", err)
			writeError(w, "failed to save snapshot", http.StatusInternalServerError)
			return
		}
		metrics.SnapshotSavesTotal.WithLabelValues("immediate").Inc()
		writeJSON(w, http.StatusOK, SaveResponse{ID: id, Status: "saved"})
		return
	}

	s.debouncer.Trigger(id, func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := s.store.SaveSnapshot(ctx, snap); err != nil {
			slog.Error("debounced snapshot save failed", "id", id, "err", err)
			return
		}
		metrics.SnapshotSavesTotal.WithLabelValues("debounced").Inc()
	})

	writeJSON(w, http.StatusAccepted, SaveResponse{ID: id, Status: "scheduled"})
}

// GetSnapshot handles GET /api/v1/snapshots/{snapshotID}.
func (s *Service) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "snapshotID")

	snap, err := s.store.GetSnapshot(r.Context(), id)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		writeError(w, "snapshot not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("snapshot load failed", "id", id, "err", err)
		writeError(w, "failed to load snapshot", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// ListSnapshots handles GET /api/v1/snapshots.
func (s *Service) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.store.ListSnapshots(r.Context())
	if err != nil {
		writeError(w, "failed to list snapshots", http.StatusInternalServerError)
		return
	}
	if snaps == nil {
		snaps = []model.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

// DeleteSnapshot handles DELETE /api/v1/snapshots/{snapshotID}.
func (s *Service) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "snapshotID")

	err := s.store.DeleteSnapshot(r.Context(), id)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		writeError(w, "snapshot not found", http.StatusNotFound)
		return
	}
	if err != nil {
		writeError(w, "failed to delete snapshot", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LookupSymbol handles GET /api/v1/symbols/{symbol}.
func (s *Service) LookupSymbol(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "symbol")

	info, err := symbols.Lookup(ticker)
	if errors.Is(err, symbols.ErrInvalidSymbol) {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		writeError(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
