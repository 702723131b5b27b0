package results

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitcalc/internal/auth"
	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/telemetry/metrics"
	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	maxSaveBytes = 64 << 10
	maxPageSize  = 100
	maxPage      = 1_000_000
)

type calculatorRegistry interface {
	Get(name string) (calculators.Calculator, error)
}

type Handler struct {
	repo           Repo
	registry       calculatorRegistry
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(repo Repo, registry calculatorRegistry, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		registry:       registry,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

type SaveRequest struct {
	Calculator string            `json:"calculator"`
	System     units.System      `json:"system"`
	Inputs     map[string]string `json:"inputs"`
}

type PageResponse struct {
	Results []SavedResult `json:"results"`
	Total   int           `json:"total"`
}

type DeleteResponse struct {
	DeletedID uuid.UUID `json:"deletedId"`
}

// SetupRoutes registers the /results routes; the auth middleware guards them.
func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/results", h.handleSave).Methods("POST", "OPTIONS").Name("save-result")
	router.HandleFunc("/results/page/{page}/size/{size}", h.handlePage).Methods("GET", "OPTIONS").Name("results-page")
	router.HandleFunc("/results/{id}", h.handleGet).Methods("GET", "OPTIONS").Name("get-result")
	router.HandleFunc("/results/{id}", h.handleDelete).Methods("DELETE", "OPTIONS").Name("delete-result")
}

func accountOf(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID, ok := auth.AccountIDFromContext(r.Context())
	if !ok || accountID == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return "", false
	}
	return accountID, true
}

func resultID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid result id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "resultsHandler.save")
	defer span.End()

	accountID, ok := accountOf(w, r)
	if !ok {
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxSaveBytes)).Decode(&req); err != nil {
		log.Debugf("save result, decode request: %s", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	c, err := h.registry.Get(req.Calculator)
	if err != nil {
		http.Error(w, "calculator not found", http.StatusNotFound)
		return
	}
	span.SetAttributes(attribute.String("calculator", c.Name()))

	system := req.System
	if system == "" {
		system = units.Metric
	}
	if !system.IsValid() {
		http.Error(w, "unknown unit system", http.StatusBadRequest)
		return
	}

	raw, err := calculators.InputsToJSON(req.Inputs)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	logger := log.WithFields(log.Fields{"calculator": c.Name(), "account": accountID})
	outcome, err := calculators.Submit(h.metricsManager, c, raw, system, logger)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// only a successful calculation is worth keeping
	if outcome.State != form.StateSuccess {
		pkg.WriteJSON(w, calculators.CalculateResponse{
			Calculator: c.Name(),
			System:     system,
			Outcome:    outcome.Snapshot,
		}, calculators.StatusFor(outcome.State))
		return
	}

	data, err := json.Marshal(Record{
		System:  system,
		Inputs:  req.Inputs,
		Outcome: outcome.Snapshot,
	})
	if err != nil {
		logger.Errorf("save result, marshal record: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	result := &SavedResult{
		ID:             uuid.New(),
		AccountID:      accountID,
		CalculatorType: c.Name(),
		CalculatorName: c.Title(),
		Data:           data,
		CreatedAt:      h.now().UTC(),
	}
	if err := h.repo.Add(ctx, result); err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.Errorf("save result: %s", err)
		http.Error(w, "failed to save result", http.StatusInternalServerError)
		return
	}

	if h.metricsManager != nil {
		h.metricsManager.CounterSavedResults.Inc()
	}
	logger.Debugf("result saved: %s", result.ID)
	pkg.WriteJSON(w, result, http.StatusCreated)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "resultsHandler.get")
	defer span.End()

	accountID, ok := accountOf(w, r)
	if !ok {
		return
	}
	id, ok := resultID(w, r)
	if !ok {
		return
	}

	result, err := h.repo.Get(ctx, accountID, id)
	if err != nil {
		if errors.Is(err, ErrResultNotFound) {
			http.Error(w, "result not found", http.StatusNotFound)
			return
		}
		log.Errorf("get result %s: %s", id, err)
		http.Error(w, "failed to get result", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "resultsHandler.delete")
	defer span.End()

	accountID, ok := accountOf(w, r)
	if !ok {
		return
	}
	id, ok := resultID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(ctx, accountID, id); err != nil {
		if errors.Is(err, ErrResultNotFound) {
			http.Error(w, "result not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete result %s: %s", id, err)
		http.Error(w, "result not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, DeleteResponse{DeletedID: id}, http.StatusOK)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "resultsHandler.page")
	defer span.End()

	accountID, ok := accountOf(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil || page < 1 || page > maxPage {
		http.Error(w, "invalid page (has to be between 1 and 1000000)", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil || size < 1 || size > maxPageSize {
		http.Error(w, "invalid size (has to be between 1 and 100)", http.StatusBadRequest)
		return
	}

	results, err := h.repo.Page(ctx, accountID, page, size)
	if err != nil {
		log.Errorf("results page %d/%d: %s", page, size, err)
		http.Error(w, "failed to get results", http.StatusInternalServerError)
		return
	}
	total, err := h.repo.Count(ctx, accountID)
	if err != nil {
		log.Errorf("results count: %s", err)
		http.Error(w, "failed to get results", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, PageResponse{
		Results: results,
		Total:   total,
	}, http.StatusOK)
}
