package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/form"
	"github.com/2beens/fitcalc/internal/telemetry/metrics"
	"github.com/2beens/fitcalc/internal/units"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const MaxBatchRows = 1000

var (
	ErrEmptySheet   = errors.New("sheet has no data rows")
	ErrTooManyRows  = fmt.Errorf("sheet has more than %d data rows", MaxBatchRows)
	ErrNoHeaderCell = errors.New("header row has an empty cell")
)

// Entry is one non-blank sheet row. Row is the 1-based sheet row, the header being row 1.
type Entry struct {
	Row    int
	Inputs map[string]string
}

// ReadBatch reads the first sheet of an XLSX workbook. The first row names
// the inputs; each further non-blank row becomes one entry.
func ReadBatch(r io.Reader) ([]Entry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("close workbook: %s", err)
		}
	}()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			return nil, ErrNoHeaderCell
		}
		header[i] = name
	}

	var batch []Entry
	for i, row := range rows[1:] {
		inputs := map[string]string{}
		for col, cell := range row {
			if col >= len(header) {
				break
			}
			if cell = strings.TrimSpace(cell); cell != "" {
				inputs[header[col]] = cell
			}
		}
		if len(inputs) == 0 {
			continue
		}
		if len(batch) == MaxBatchRows {
			return nil, ErrTooManyRows
		}
		batch = append(batch, Entry{Row: i + 2, Inputs: inputs})
	}
	if len(batch) == 0 {
		return nil, ErrEmptySheet
	}
	return batch, nil
}

type BatchRow struct {
	Row     int               `json:"row"`
	Inputs  map[string]string `json:"inputs"`
	State   string            `json:"state"`
	Outcome any               `json:"outcome,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type BatchResult struct {
	Calculator string     `json:"calculator"`
	Count      int        `json:"count"`
	Succeeded  int        `json:"succeeded"`
	Rows       []BatchRow `json:"rows"`
}

// RunBatch submits every entry to c.
func RunBatch(c calculators.Calculator, batch []Entry, system units.System, metricsManager *metrics.Manager) BatchResult {
	result := BatchResult{
		Calculator: c.Name(),
		Count:      len(batch),
		Rows:       make([]BatchRow, 0, len(batch)),
	}

	logger := log.WithFields(log.Fields{"calculator": c.Name(), "batch": true})
	for _, entry := range batch {
		row := BatchRow{Row: entry.Row, Inputs: entry.Inputs}

		raw, err := calculators.InputsToJSON(entry.Inputs)
		if err == nil {
			var outcome calculators.Outcome
			outcome, err = calculators.Submit(metricsManager, c, raw, system, logger.WithField("row", row.Row))
			if err == nil {
				row.State = outcome.State.String()
				row.Outcome = outcome.Snapshot
				if outcome.State == form.StateSuccess {
					result.Succeeded++
				}
			}
		}
		if err != nil {
			row.State = "malformed"
			row.Error = err.Error()
		}

		if metricsManager != nil {
			metricsManager.CounterBatchRows.WithLabelValues(c.Name(), row.State).Inc()
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}
