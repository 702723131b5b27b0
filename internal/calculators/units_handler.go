package calculators

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/units"
	"github.com/2beens/fitcalc/pkg"

	"github.com/gorilla/mux"
)

// UnitsHandler serves unit conversion and the unit toggle of height and weight fields.
type UnitsHandler struct {
	systems systemResolver
}

func NewUnitsHandler(systems systemResolver) *UnitsHandler {
	return &UnitsHandler{
		systems: systems,
	}
}

func (h *UnitsHandler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/units/convert", h.handleConvert).Methods("GET", "OPTIONS").Name("convert-units")
	router.HandleFunc("/units/system", h.handleSystem).Methods("GET", "OPTIONS").Name("default-system")
	router.HandleFunc("/fields/toggle", h.handleToggle).Methods("POST", "OPTIONS").Name("toggle-field-unit")
}

type ConversionResponse struct {
	Quantity string  `json:"quantity"`
	Value    float64 `json:"value"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Result   float64 `json:"result"`
}

// Convert converts value between two units of the named quantity.
func Convert(quantity string, value float64, from, to string) (float64, error) {
	switch quantity {
	case "weight":
		f, err := units.ParseWeightUnit(from)
		if err != nil {
			return 0, err
		}
		t, err := units.ParseWeightUnit(to)
		if err != nil {
			return 0, err
		}
		return units.ConvertWeight(value, f, t), nil
	case "height", "length":
		f, err := units.ParseHeightUnit(from)
		if err != nil {
			return 0, err
		}
		t, err := units.ParseHeightUnit(to)
		if err != nil {
			return 0, err
		}
		return units.ConvertHeight(value, f, t), nil
	case "volume":
		f, err := units.ParseVolumeUnit(from)
		if err != nil {
			return 0, err
		}
		t, err := units.ParseVolumeUnit(to)
		if err != nil {
			return 0, err
		}
		return units.ConvertVolume(value, f, t), nil
	case "temperature":
		f, err := units.ParseTemperatureUnit(from)
		if err != nil {
			return 0, err
		}
		t, err := units.ParseTemperatureUnit(to)
		if err != nil {
			return 0, err
		}
		return units.ConvertTemperature(value, f, t), nil
	case "energy":
		f, err := units.ParseEnergyUnit(from)
		if err != nil {
			return 0, err
		}
		t, err := units.ParseEnergyUnit(to)
		if err != nil {
			return 0, err
		}
		return units.ConvertEnergy(value, f, t), nil
	default:
		return 0, fmt.Errorf("%w: quantity %q", units.ErrUnknownUnit, quantity)
	}
}

func (h *UnitsHandler) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	value, err := strconv.ParseFloat(q.Get("value"), 64)
	if err != nil || !form.IsFinite(value) {
		http.Error(w, "value must be a number", http.StatusBadRequest)
		return
	}

	result, err := Convert(q.Get("quantity"), value, q.Get("from"), q.Get("to"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, ConversionResponse{
		Quantity: q.Get("quantity"),
		Value:    value,
		From:     q.Get("from"),
		To:       q.Get("to"),
		Result:   units.RoundTo(result, 4),
	}, http.StatusOK)
}

func (h *UnitsHandler) handleSystem(w http.ResponseWriter, r *http.Request) {
	system := units.Metric
	if h.systems != nil {
		system = h.systems.SystemFor(r.Context(), r)
	}
	pkg.WriteJSON(w, map[string]units.System{"system": system}, http.StatusOK)
}

type ToggleRequest struct {
	Field string      `json:"field"`
	Unit  string      `json:"unit"`
	Value form.Number `json:"value"`
}

type ToggleResponse struct {
	Unit  string      `json:"unit"`
	Value form.Number `json:"value"`
}

// Toggle flips a height (cm/ft) or weight (kg/lb) field to its other unit.
func Toggle(req ToggleRequest) (ToggleResponse, error) {
	switch req.Field {
	case "height":
		f, err := form.NewHeightField(units.HeightUnit(req.Unit))
		if err != nil {
			return ToggleResponse{}, err
		}
		f.SetValue(req.Value)
		f.Toggle()
		return ToggleResponse{Unit: string(f.Unit()), Value: f.Value()}, nil
	case "weight":
		f, err := form.NewWeightField(units.WeightUnit(req.Unit))
		if err != nil {
			return ToggleResponse{}, err
		}
		f.SetValue(req.Value)
		f.Toggle()
		return ToggleResponse{Unit: string(f.Unit()), Value: f.Value()}, nil
	default:
		return ToggleResponse{}, fmt.Errorf("field %q has no unit toggle", req.Field)
	}
}

func (h *UnitsHandler) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	resp, err := Toggle(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}
