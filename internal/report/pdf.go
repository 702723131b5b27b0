package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitcalc/internal/units"

	"github.com/dustin/go-humanize"
	"github.com/phpdave11/gofpdf"
)

// Document is one calculation rendered as a PDF report.
type Document struct {
	Title       string
	Description string
	System      units.System
	Inputs      map[string]string
	Result      any
	GeneratedAt time.Time
}

// Line is one flattened key/value of a calculation result.
type Line struct {
	Key   string
	Value string
}

// Flatten turns a result into sorted printable lines; nested keys are joined with dots.
func Flatten(result any) ([]Line, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}

	var lines []Line
	flatten("", generic, &lines)
	sort.Slice(lines, func(i, j int) bool { return lines[i].Key < lines[j].Key })
	return lines, nil
}

func flatten(prefix string, v any, lines *[]Line) {
	join := func(key string) string {
		if prefix == "" {
			return key
		}
		return prefix + "." + key
	}

	switch value := v.(type) {
	case map[string]any:
		for k, nested := range value {
			flatten(join(k), nested, lines)
		}
	case []any:
		for i, nested := range value {
			flatten(join(strconv.Itoa(i)), nested, lines)
		}
	case float64:
		*lines = append(*lines, Line{Key: prefix, Value: formatNumber(value)})
	case bool:
		s := "no"
		if value {
			s = "yes"
		}
		*lines = append(*lines, Line{Key: prefix, Value: s})
	case string:
		if value != "" {
			*lines = append(*lines, Line{Key: prefix, Value: value})
		}
	case nil:
	default:
		*lines = append(*lines, Line{Key: prefix, Value: fmt.Sprint(value)})
	}
}

// formatNumber rounds to two decimals, or to two significant decimals below 1,
// so small indices like ABSI (0.0838) keep their meaning.
func formatNumber(v float64) string {
	digits := 2
	if abs := math.Abs(v); abs > 0 && abs < 1 {
		digits = min(int(-math.Floor(math.Log10(abs)))+2, 6)
	}
	return humanize.Commaf(units.RoundTo(v, digits))
}

// RenderPDF writes doc as an A4 PDF to out.
func RenderPDF(out io.Writer, doc Document) error {
	lines, err := Flatten(doc.Result)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, false)
	pdf.SetCreator("fitcalc", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	if doc.Description != "" {
		pdf.MultiCell(0, 5, doc.Description, "", "L", false)
		pdf.Ln(2)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", doc.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Units: %s", doc.System))
	pdf.Ln(10)

	section(pdf, "Inputs")
	names := make([]string, 0, len(doc.Inputs))
	for name := range doc.Inputs {
		if name != "system" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		row(pdf, name, doc.Inputs[name])
	}
	pdf.Ln(6)

	section(pdf, "Result")
	for _, l := range lines {
		row(pdf, l.Key, l.Value)
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4, "Estimates only. Not medical advice.", "", "L", false)

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
}

func row(pdf *gofpdf.Fpdf, key, value string) {
	pdf.CellFormat(70, 6, strings.ReplaceAll(key, ".", " / "), "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, value, "1", 1, "L", false, 0, "")
}
