package calculators

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/share"
	"github.com/2beens/fitcalc/internal/telemetry/metrics"
	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const maxSubmitBytes = 64 << 10

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=calculators

type shareSigner interface {
	Issue(calculator string, inputs map[string]string) (string, error)
	Parse(token string) (share.Payload, error)
}

// systemResolver picks a default unit system for a request, e.g. by visitor country.
type systemResolver interface {
	SystemFor(ctx context.Context, r *http.Request) units.System
}

type embedLimiter interface {
	Allow(ip string) bool
}

type Handler struct {
	registry       *Registry
	signer         shareSigner
	systems        systemResolver
	embedLimiter   embedLimiter
	metricsManager *metrics.Manager
}

type NewHandlerParams struct {
	Registry       *Registry
	Signer         shareSigner
	Systems        systemResolver // optional, metric when nil
	EmbedLimiter   embedLimiter   // optional
	MetricsManager *metrics.Manager
}

func NewHandler(params NewHandlerParams) *Handler {
	return &Handler{
		registry:       params.Registry,
		signer:         params.Signer,
		systems:        params.Systems,
		embedLimiter:   params.EmbedLimiter,
		metricsManager: params.MetricsManager,
	}
}

type Info struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Descriptor struct {
	Info
	System units.System `json:"system"`
	Fields []form.Field  `json:"fields"`
	Shared bool          `json:"shared,omitempty"`
}

type CalculateResponse struct {
	Calculator string       `json:"calculator"`
	System     units.System `json:"system"`
	Outcome    any          `json:"outcome"`
}

type ShareResponse struct {
	Token string `json:"token"`
	Path  string `json:"path"`
}

type SharedResultResponse struct {
	Info
	Inputs   map[string]string `json:"inputs"`
	IssuedAt time.Time         `json:"issuedAt"`
	Outcome  any               `json:"outcome"`
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/calculators", h.handleList).Methods("GET", "OPTIONS").Name("list-calculators")
	router.HandleFunc("/calculators/{name}", h.handleDescriptor).Methods("GET", "OPTIONS").Name("get-calculator")
	router.HandleFunc("/calculators/{name}/calculate", h.handleCalculate).Methods("POST", "OPTIONS").Name("calculate")
	router.HandleFunc("/calculators/{name}/share", h.handleShare).Methods("POST", "OPTIONS").Name("share-calculation")
	router.HandleFunc("/share/{token}", h.handleOpenShared).Methods("GET", "OPTIONS").Name("open-shared")
}

func infoOf(c Calculator) Info {
	return Info{
		Name:        c.Name(),
		Title:       c.Title(),
		Description: c.Description(),
	}
}

// requestSystem is the ?system= query param, or the resolver default.
func (h *Handler) requestSystem(r *http.Request) (units.System, error) {
	if raw := r.URL.Query().Get("system"); raw != "" {
		return units.ParseSystem(raw)
	}
	if h.systems != nil {
		return h.systems.SystemFor(r.Context(), r), nil
	}
	return units.Metric, nil
}

func (h *Handler) calculator(w http.ResponseWriter, r *http.Request) (Calculator, bool) {
	c, err := h.registry.Get(mux.Vars(r)["name"])
	if err != nil {
		http.Error(w, "calculator not found", http.StatusNotFound)
		return nil, false
	}
	return c, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "calculatorsHandler.list")
	defer span.End()

	all := h.registry.All()
	infos := make([]Info, 0, len(all))
	for _, c := range all {
		infos = append(infos, infoOf(c))
	}
	pkg.WriteJSON(w, infos, http.StatusOK)
}

func (h *Handler) handleDescriptor(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "calculatorsHandler.descriptor")
	defer span.End()

	c, ok := h.calculator(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("calculator", c.Name()))

	if r.URL.Query().Get("embed") != "" {
		if !h.allowEmbed(w, r, c.Name()) {
			return
		}
	}

	system, err := h.requestSystem(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var inputs map[string]string
	if token := r.URL.Query().Get("share"); token != "" {
		payload, err := h.signer.Parse(token)
		if err != nil {
			log.Debugf("descriptor, parse share token: %s", err)
			http.Error(w, "invalid share link", http.StatusBadRequest)
			return
		}
		if payload.Calculator != c.Name() {
			http.Error(w, "share link belongs to another calculator", http.StatusBadRequest)
			return
		}
		inputs = payload.Inputs
		if s, err := units.ParseSystem(inputs["system"]); err == nil && inputs["system"] != "" {
			system = s
		}
	}

	fields := c.Fields(system)
	if inputs != nil {
		fields = form.Prefill(fields, inputs)
	}

	pkg.WriteJSON(w, Descriptor{
		Info:   infoOf(c),
		System: system,
		Fields: fields,
		Shared: inputs != nil,
	}, http.StatusOK)
}

func (h *Handler) allowEmbed(w http.ResponseWriter, r *http.Request, name string) bool {
	if h.embedLimiter != nil {
		ip, err := pkg.ReadUserIP(r)
		if err != nil {
			http.Error(w, "bad client address", http.StatusBadRequest)
			return false
		}
		if !h.embedLimiter.Allow(ip) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return false
		}
	}
	w.Header().Set("Content-Security-Policy", "frame-ancestors *")
	if h.metricsManager != nil {
		h.metricsManager.CounterEmbedViews.WithLabelValues(name).Inc()
	}
	return true
}

// Submit runs one calculation and records it in metrics. A nil manager skips the metrics.
func Submit(metricsManager *metrics.Manager, c Calculator, raw []byte, system units.System, logger log.FieldLogger) (Outcome, error) {
	begin := time.Now()
	outcome, err := c.Submit(raw, system, logger)
	if err != nil {
		return outcome, err
	}
	if metricsManager != nil {
		metricsManager.HistCalculationDuration.WithLabelValues(c.Name()).Observe(time.Since(begin).Seconds())
		metricsManager.CounterCalculations.WithLabelValues(c.Name(), outcome.State.String()).Inc()
	}
	return outcome, nil
}

func (h *Handler) submit(c Calculator, raw []byte, system units.System, logger log.FieldLogger) (Outcome, error) {
	return Submit(h.metricsManager, c, raw, system, logger)
}

// StatusFor maps a lifecycle state to the HTTP status of its response.
func StatusFor(state form.State) int {
	switch state {
	case form.StateInvalid:
		return http.StatusUnprocessableEntity
	case form.StateError:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "calculatorsHandler.calculate")
	defer span.End()

	c, ok := h.calculator(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("calculator", c.Name()))

	system, err := h.requestSystem(r.WithContext(ctx))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxSubmitBytes))
	if err != nil {
		log.Errorf("calculate, read body: %s", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	logger := log.WithFields(log.Fields{"calculator": c.Name(), "system": system})
	outcome, err := h.submit(c, raw, system, logger)
	if err != nil {
		if errors.Is(err, ErrBadInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		span.SetStatus(codes.Error, err.Error())
		logger.Errorf("calculate: %s", err)
		http.Error(w, "calculation failed", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.String("state", outcome.State.String()))
	pkg.WriteJSON(w, CalculateResponse{
		Calculator: c.Name(),
		System:     system,
		Outcome:    outcome.Snapshot,
	}, StatusFor(outcome.State))
}

func (h *Handler) handleShare(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "calculatorsHandler.share")
	defer span.End()

	c, ok := h.calculator(w, r)
	if !ok {
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxSubmitBytes))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	inputs, err := InputsFromJSON(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// only the calculator's own fields, plus the unit system, travel in a link
	known := map[string]bool{"system": true}
	for _, f := range c.Fields(units.Metric) {
		known[f.FieldName()] = true
	}
	for name := range inputs {
		if !known[name] {
			delete(inputs, name)
		}
	}

	token, err := h.signer.Issue(c.Name(), inputs)
	if err != nil {
		if errors.Is(err, share.ErrTooLarge) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("issue share token: %s", err)
		http.Error(w, "share failed", http.StatusInternalServerError)
		return
	}

	if h.metricsManager != nil {
		h.metricsManager.CounterSharedResults.Inc()
	}
	pkg.WriteJSON(w, ShareResponse{
		Token: token,
		Path:  "/share/" + token,
	}, http.StatusCreated)
}

func (h *Handler) handleOpenShared(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "calculatorsHandler.openShared")
	defer span.End()

	payload, err := h.signer.Parse(mux.Vars(r)["token"])
	if err != nil {
		if errors.Is(err, share.ErrExpiredToken) {
			http.Error(w, "share link expired", http.StatusGone)
			return
		}
		http.Error(w, "invalid share link", http.StatusBadRequest)
		return
	}

	c, err := h.registry.Get(payload.Calculator)
	if err != nil {
		http.Error(w, "calculator not found", http.StatusNotFound)
		return
	}

	raw, err := InputsToJSON(payload.Inputs)
	if err != nil {
		log.Errorf("open shared, encode inputs: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	outcome, err := h.submit(c, raw, units.Metric, log.WithField("calculator", c.Name()))
	if err != nil {
		http.Error(w, "shared inputs are malformed", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, SharedResultResponse{
		Info:     infoOf(c),
		Inputs:   payload.Inputs,
		IssuedAt: payload.IssuedAt,
		Outcome:  outcome.Snapshot,
	}, http.StatusOK)
}
