package form

import (
	"encoding/json"
)

type FieldKind string

const (
	KindNumber FieldKind = "number"
	KindSelect FieldKind = "select"
	KindRadio  FieldKind = "radio"
	KindDate   FieldKind = "date"
)

// Field describes one input of a calculator form. Implemented by
// NumberField, SelectField, RadioField and DateField only.
type Field interface {
	FieldName() string
	Kind() FieldKind
	isField()
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type NumberField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Step     float64  `json:"step,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Required bool     `json:"required"`
	// UnitToggle is the unit the field can be switched to, if any.
	UnitToggle string `json:"unitToggle,omitempty"`
	Value      Number `json:"value"`
}

type SelectField struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Options  []Option `json:"options"`
	Required bool     `json:"required"`
	Value    string   `json:"value,omitempty"`
}

type RadioField struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Options []Option `json:"options"`
	Value   string   `json:"value,omitempty"`
}

type DateField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	MinDate  string `json:"minDate,omitempty"`
	MaxDate  string `json:"maxDate,omitempty"`
	Required bool   `json:"required"`
	Value    string `json:"value,omitempty"`
}

func (f NumberField) FieldName() string { return f.Name }
func (f SelectField) FieldName() string { return f.Name }
func (f RadioField) FieldName() string  { return f.Name }
func (f DateField) FieldName() string   { return f.Name }

func (NumberField) Kind() FieldKind { return KindNumber }
func (SelectField) Kind() FieldKind { return KindSelect }
func (RadioField) Kind() FieldKind  { return KindRadio }
func (DateField) Kind() FieldKind   { return KindDate }

func (NumberField) isField() {}
func (SelectField) isField() {}
func (RadioField) isField()  {}
func (DateField) isField()   {}

func (f NumberField) MarshalJSON() ([]byte, error) {
	type plain NumberField
	return marshalWithKind(f.Kind(), plain(f))
}

func (f SelectField) MarshalJSON() ([]byte, error) {
	type plain SelectField
	return marshalWithKind(f.Kind(), plain(f))
}

func (f RadioField) MarshalJSON() ([]byte, error) {
	type plain RadioField
	return marshalWithKind(f.Kind(), plain(f))
}

func (f DateField) MarshalJSON() ([]byte, error) {
	type plain DateField
	return marshalWithKind(f.Kind(), plain(f))
}

func marshalWithKind(kind FieldKind, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["kind"], err = json.Marshal(kind)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Prefill returns a copy of fields with values taken from the given inputs.
// Inputs that don't name a field, or don't fit its kind, are ignored.
func Prefill(fields []Field, inputs map[string]string) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		raw, ok := inputs[f.FieldName()]
		if !ok {
			out = append(out, f)
			continue
		}
		switch field := f.(type) {
		case NumberField:
			if n, err := ParseNumber(raw); err == nil {
				field.Value = n
			}
			out = append(out, field)
		case SelectField:
			if hasOption(field.Options, raw) {
				field.Value = raw
			}
			out = append(out, field)
		case RadioField:
			if hasOption(field.Options, raw) {
				field.Value = raw
			}
			out = append(out, field)
		case DateField:
			field.Value = raw
			out = append(out, field)
		default:
			out = append(out, f)
		}
	}
	return out
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func Float(v float64) *float64 {
	return &v
}
