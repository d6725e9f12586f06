package compute

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-chi-compute/internal/history"
)

// Processor operation tags.
const (
	OpProcessNumbers = "process_numbers"
	OpFilterData     = "filter_data"
	OpConvertToJSON  = "convert_to_json"
)

// conversionFailedPrefix starts the string ConvertToJSON returns on failure.
const conversionFailedPrefix = "conversion failed: "

// Predicate selects items in FilterData.
type Predicate func(item any) bool

// ProcessorRecord is one completed processor operation.
type ProcessorRecord struct {
	Operation string    `json:"operation"`
	Input     any       `json:"input"`
	Output    any       `json:"output"`
	Timestamp time.Time `json:"timestamp"`
}

// ProcessorStats is a point-in-time view of a Processor.
type ProcessorStats struct {
	Name           string    `json:"processor_name"`
	TotalProcessed int64     `json:"total_processed"`
	HistoryCount   int       `json:"history_count"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// Summary is the result of ProcessNumbers. When Error is set the other
// fields are zero and only the error is encoded.
type Summary struct {
	Count   int      `json:"count"`
	Sum     Number   `json:"sum"`
	Average float64  `json:"average"`
	Min     Number   `json:"min"`
	Max     Number   `json:"max"`
	Sorted  []Number `json:"sorted"`
	Error   string   `json:"error,omitempty"`
}

func (s Summary) MarshalJSON() ([]byte, error) {
	if s.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{s.Error})
	}
	type plain Summary
	return json.Marshal(plain(s))
}

// Processor summarises number lists, filters collections and converts
// values to JSON text, recording each call with a timestamp.
type Processor struct {
	name   string
	log    *history.Log[ProcessorRecord]
	logger *zap.Logger
	now    func() time.Time
}

func NewProcessor(name string, opts ...Option) *Processor {
	if name == "" {
		name = DefaultName
	}
	o := buildOptions(opts)
	return &Processor{
		name:   name,
		log:    history.New[ProcessorRecord](),
		logger: o.logger.With(zap.String("engine", engineProcessor), zap.String("name", name)),
		now:    o.now,
	}
}

func (p *Processor) Name() string { return p.name }

// ProcessNumbers computes count, sum, average, min, max and an ascending
// copy of numbers. The caller's slice is not reordered.
//
// An empty list returns a Summary carrying only Error, together with
// ErrEmptyInput, and is not recorded.
func (p *Processor) ProcessNumbers(numbers []Number) (Summary, error) {
	if len(numbers) == 0 {
		return Summary{Error: ErrEmptyInput.Error()}, ErrEmptyInput
	}

	sorted := cloneNumbers(numbers)
	slices.SortStableFunc(sorted, Compare)

	total := sum(numbers)
	summary := Summary{
		Count:   len(numbers),
		Sum:     total,
		Average: Quo(total, Int(int64(len(numbers)))).Float64(),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Sorted:  sorted,
	}

	p.record(OpProcessNumbers, cloneNumbers(numbers), cloneValue(summary))
	return summary, nil
}

// FilterData returns the items for which predicate holds, in their original
// order. A nil predicate selects nothing.
func (p *Processor) FilterData(items []any, predicate Predicate) []any {
	filtered := make([]any, 0, len(items))
	if predicate != nil {
		for _, item := range items {
			if predicate(item) {
				filtered = append(filtered, item)
			}
		}
	}

	p.record(OpFilterData, cloneItems(items), cloneItems(filtered))
	return filtered
}

// ConvertToJSON renders data as indented JSON. Encoding failures are not
// returned as errors: the result is a "conversion failed: ..." message, and
// it is recorded like a successful conversion.
func (p *Processor) ConvertToJSON(data any) string {
	text, err := EncodeJSON(data)
	if err != nil {
		text = conversionFailedPrefix + err.Error()
		p.logger.Warn("json conversion failed", zap.Error(err))
	}

	p.record(OpConvertToJSON, data, text)
	return text
}

// EncodeJSON encodes v with two-space indentation, leaving non-ASCII and
// HTML characters unescaped. The trailing newline is dropped.
func EncodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func (p *Processor) Statistics() ProcessorStats {
	count, length := p.log.Snapshot()
	return ProcessorStats{
		Name:           p.name,
		TotalProcessed: count,
		HistoryCount:   length,
		GeneratedAt:    p.now(),
	}
}

// History returns a copy of the recorded operations, oldest first. Slice
// payloads are copied one level deep.
func (p *Processor) History() []ProcessorRecord {
	entries := p.log.Entries()
	for i := range entries {
		entries[i].Input = cloneValue(entries[i].Input)
		entries[i].Output = cloneValue(entries[i].Output)
	}
	return entries
}

// ClearHistory drops every record and resets the processed count.
func (p *Processor) ClearHistory() {
	p.log.Clear()
	observeClear(engineProcessor, p.name)
	p.logger.Info("history cleared")
}

func (p *Processor) record(op string, input, output any) {
	var seq int64
	rec := p.log.Append(func(s int64) ProcessorRecord {
		seq = s
		return ProcessorRecord{
			Operation: op,
			Input:     input,
			Output:    output,
			Timestamp: p.now(),
		}
	})
	observeRecord(engineProcessor, p.name, op, seq)

	p.logger.Debug("operation recorded",
		zap.String("operation", op),
		zap.Time("timestamp", rec.Timestamp),
	)
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []Number:
		return cloneNumbers(val)
	case []any:
		return cloneItems(val)
	case Summary:
		val.Sorted = cloneNumbers(val.Sorted)
		return val
	default:
		return v
	}
}

func cloneItems(items []any) []any {
	return append(make([]any, 0, len(items)), items...)
}
