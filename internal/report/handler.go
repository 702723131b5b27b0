package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/telemetry/metrics"
	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	maxReportBytes = 64 << 10
	maxUploadBytes = 5 << 20
)

type calculatorRegistry interface {
	Get(name string) (calculators.Calculator, error)
}

type Handler struct {
	registry       calculatorRegistry
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(registry calculatorRegistry, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		registry:       registry,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/calculators/{name}/pdf", h.handlePDF).Methods("POST", "OPTIONS").Name("calculation-pdf")
	router.HandleFunc("/calculators/{name}/batch", h.handleBatch).Methods("POST", "OPTIONS").Name("calculation-batch")
}

func (h *Handler) calculator(w http.ResponseWriter, r *http.Request) (calculators.Calculator, units.System, bool) {
	c, err := h.registry.Get(mux.Vars(r)["name"])
	if err != nil {
		http.Error(w, "calculator not found", http.StatusNotFound)
		return nil, "", false
	}
	system, err := units.ParseSystem(r.URL.Query().Get("system"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	return c, system, true
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "reportHandler.pdf")
	defer span.End()

	c, system, ok := h.calculator(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("calculator", c.Name()))

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxReportBytes))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	inputs, err := calculators.InputsFromJSON(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger := log.WithFields(log.Fields{"calculator": c.Name(), "report": "pdf"})
	outcome, err := calculators.Submit(h.metricsManager, c, raw, system, logger)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if outcome.State != form.StateSuccess {
		pkg.WriteJSON(w, calculators.CalculateResponse{
			Calculator: c.Name(),
			System:     system,
			Outcome:    outcome.Snapshot,
		}, calculators.StatusFor(outcome.State))
		return
	}
	if s, err := units.ParseSystem(inputs["system"]); err == nil && inputs["system"] != "" {
		system = s
	}

	var buf bytes.Buffer
	if err := RenderPDF(&buf, Document{
		Title:       c.Title(),
		Description: c.Description(),
		System:      system,
		Inputs:      inputs,
		Result:      outcome.Result,
		GeneratedAt: h.now(),
	}); err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.Errorf("render pdf: %s", err)
		http.Error(w, "report generation error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", c.Name()+"-report.pdf"))
	pkg.WriteResponseBytesOK(w, pkg.ContentType.PDF, buf.Bytes())
}

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "reportHandler.batch")
	defer span.End()

	c, system, ok := h.calculator(w, r)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("calculator", c.Name()))

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	batch, err := ReadBatch(file)
	if err != nil {
		if errors.Is(err, ErrTooManyRows) || errors.Is(err, ErrEmptySheet) || errors.Is(err, ErrNoHeaderCell) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Debugf("batch, read workbook: %s", err)
		http.Error(w, "invalid file", http.StatusBadRequest)
		return
	}

	result := RunBatch(c, batch, system, h.metricsManager)
	span.SetAttributes(attribute.Int("rows", result.Count), attribute.Int("succeeded", result.Succeeded))
	log.Debugf("batch [%s]: %d rows, %d succeeded", c.Name(), result.Count, result.Succeeded)
	pkg.WriteJSON(w, result, http.StatusOK)
}
