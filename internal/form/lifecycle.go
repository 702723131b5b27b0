package form

import (
	log "github.com/sirupsen/logrus"
)

// GenericCalculationError is the only message a visitor sees when a
// calculation fails after validation passed.
const GenericCalculationError = "Calculation failed. Please check your inputs and try again."

// Errors maps a field name to its validation message. Empty means valid.
type Errors map[string]string

func (e Errors) Add(field, msg string) {
	if msg != "" {
		e[field] = msg
	}
}

func (e Errors) HasErrors() bool {
	return len(e) > 0
}

type State int

const (
	StateIdle State = iota
	StateInvalid
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInvalid:
		return "invalid"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is everything a result view needs. It is only ever produced by
// transition, so Result is non-nil exactly when State is StateSuccess and
// Errors is non-empty exactly when State is StateInvalid.
type Snapshot[R any] struct {
	State            State  `json:"state"`
	Result           *R     `json:"result"`
	Errors           Errors `json:"errors"`
	ShowResult       bool   `json:"showResult"`
	CalculationError string `json:"calculationError,omitempty"`
}

type eventKind int

const (
	eventReset eventKind = iota
	eventValidationFailed
	eventCalculated
	eventCalculationFailed
)

type event[R any] struct {
	kind   eventKind
	errors Errors
	result R
}

func idle[R any]() Snapshot[R] {
	return Snapshot[R]{State: StateIdle, Errors: Errors{}}
}

// transition is the single place the lifecycle state changes.
func transition[R any](_ Snapshot[R], ev event[R]) Snapshot[R] {
	switch ev.kind {
	case eventValidationFailed:
		return Snapshot[R]{State: StateInvalid, Errors: ev.errors}
	case eventCalculated:
		res := ev.result
		return Snapshot[R]{State: StateSuccess, Result: &res, Errors: Errors{}, ShowResult: true}
	case eventCalculationFailed:
		return Snapshot[R]{State: StateError, Errors: Errors{}, CalculationError: GenericCalculationError}
	default:
		return idle[R]()
	}
}

type LifecycleParams[R any] struct {
	// Name identifies the calculator in logs.
	Name      string
	Validate  func() Errors
	Calculate func() (R, error)
	// OnReset resets the caller's input fields, optional.
	OnReset func()
	// OnSuccess runs after a successful submit (scroll, analytics, ...), optional.
	OnSuccess func(R)
	Logger    log.FieldLogger
}

// Lifecycle drives validate -> calculate -> display/reset for one calculator form.
// It is not safe for concurrent use; every form instance owns its own.
type Lifecycle[R any] struct {
	params   LifecycleParams[R]
	snapshot Snapshot[R]
}

func NewLifecycle[R any](params LifecycleParams[R]) *Lifecycle[R] {
	if params.Logger == nil {
		params.Logger = log.StandardLogger()
	}
	return &Lifecycle[R]{
		params:   params,
		snapshot: idle[R](),
	}
}

func (l *Lifecycle[R]) Snapshot() Snapshot[R] {
	return l.snapshot
}

func (l *Lifecycle[R]) Submit() Snapshot[R] {
	if errs := l.params.Validate(); errs.HasErrors() {
		l.snapshot = transition(l.snapshot, event[R]{kind: eventValidationFailed, errors: errs})
		return l.snapshot
	}

	result, err := l.calculate()
	if err != nil {
		l.params.Logger.WithFields(log.Fields{
			"calculator": l.params.Name,
		}).Errorf("calculation failed: %s", err)
		l.snapshot = transition(l.snapshot, event[R]{kind: eventCalculationFailed})
		return l.snapshot
	}

	l.snapshot = transition(l.snapshot, event[R]{kind: eventCalculated, result: result})
	if l.params.OnSuccess != nil {
		l.params.OnSuccess(result)
	}
	return l.snapshot
}

func (l *Lifecycle[R]) Reset() Snapshot[R] {
	l.snapshot = transition(l.snapshot, event[R]{kind: eventReset})
	if l.params.OnReset != nil {
		l.params.OnReset()
	}
	return l.snapshot
}

// calculate turns a panicking formula into a calculation failure.
func (l *Lifecycle[R]) calculate() (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{value: r}
		}
	}()
	return l.params.Calculate()
}

type panicError struct {
	value any
}

func (p panicError) Error() string {
	return "panic: " + toString(p.value)
}

func toString(v any) string {
	switch t := v.(type) {
	case error:
		return t.Error()
	case string:
		return t
	default:
		return "unexpected value"
	}
}
