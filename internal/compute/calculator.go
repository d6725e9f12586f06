// Package compute implements the stateful compute engines. Every completed
// operation is appended to an in-memory history; nothing is persisted.
package compute

import (
	"fmt"

	"go.uber.org/zap"

	"go-chi-compute/internal/history"
)

// DefaultName is used when an engine is constructed with an empty name.
const DefaultName = "default"

// Calculator operation tags.
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpMultiply = "multiply"
	OpDivide   = "divide"
	OpPower    = "power"
	OpSum      = "sum"
	OpAverage  = "average"
)

// CalculatorRecord is one completed calculator operation.
type CalculatorRecord struct {
	Operation string   `json:"operation"`
	Inputs    []Number `json:"inputs"`
	Result    Number   `json:"result"`
	Sequence  int64    `json:"operation_number"`
}

// CalculatorStats is a point-in-time view of a Calculator.
type CalculatorStats struct {
	Name            string `json:"calculator_name"`
	TotalOperations int64  `json:"total_operations"`
	HistoryCount    int    `json:"history_count"`
}

// Calculator performs arithmetic and list aggregates, recording each call.
// Every recorded operation adds exactly one history entry, so the operation
// count always equals the history length.
type Calculator struct {
	name   string
	log    *history.Log[CalculatorRecord]
	logger *zap.Logger
}

func NewCalculator(name string, opts ...Option) *Calculator {
	if name == "" {
		name = DefaultName
	}
	o := buildOptions(opts)
	return &Calculator{
		name:   name,
		log:    history.New[CalculatorRecord](),
		logger: o.logger.With(zap.String("engine", engineCalculator), zap.String("name", name)),
	}
}

func (c *Calculator) Name() string { return c.name }

func (c *Calculator) Add(a, b Number) Number {
	return c.record(OpAdd, []Number{a, b}, Add(a, b))
}

func (c *Calculator) Subtract(a, b Number) Number {
	return c.record(OpSubtract, []Number{a, b}, Sub(a, b))
}

func (c *Calculator) Multiply(a, b Number) Number {
	return c.record(OpMultiply, []Number{a, b}, Mul(a, b))
}

// Divide returns a / b as a float. A zero divisor yields ErrDivisionByZero
// and leaves the history untouched.
func (c *Calculator) Divide(a, b Number) (Number, error) {
	if b.IsZero() {
		return Number{}, fmt.Errorf("%w: %s / %s", ErrDivisionByZero, a, b)
	}
	return c.record(OpDivide, []Number{a, b}, Quo(a, b)), nil
}

func (c *Calculator) Power(base, exp Number) Number {
	return c.record(OpPower, []Number{base, exp}, Pow(base, exp))
}

// Sum returns the total of numbers, Int(0) for an empty list. The empty
// case is recorded like any other.
func (c *Calculator) Sum(numbers []Number) Number {
	return c.record(OpSum, numbers, sum(numbers))
}

// Average returns the arithmetic mean as a float, 0.0 for an empty list.
func (c *Calculator) Average(numbers []Number) float64 {
	avg := average(numbers)
	c.record(OpAverage, numbers, Float(avg))
	return avg
}

func (c *Calculator) Statistics() CalculatorStats {
	count, length := c.log.Snapshot()
	return CalculatorStats{
		Name:            c.name,
		TotalOperations: count,
		HistoryCount:    length,
	}
}

// History returns a copy of the recorded operations, oldest first.
func (c *Calculator) History() []CalculatorRecord {
	entries := c.log.Entries()
	for i := range entries {
		entries[i].Inputs = cloneNumbers(entries[i].Inputs)
	}
	return entries
}

// ClearHistory drops every record and resets the operation count.
func (c *Calculator) ClearHistory() {
	c.log.Clear()
	observeClear(engineCalculator, c.name)
	c.logger.Info("history cleared")
}

func (c *Calculator) record(op string, inputs []Number, result Number) Number {
	rec := c.log.Append(func(seq int64) CalculatorRecord {
		return CalculatorRecord{
			Operation: op,
			Inputs:    cloneNumbers(inputs),
			Result:    result,
			Sequence:  seq,
		}
	})
	observeRecord(engineCalculator, c.name, op, rec.Sequence)

	c.logger.Debug("operation recorded",
		zap.String("operation", op),
		zap.Int64("operation_number", rec.Sequence),
		zap.Stringer("result", result),
	)
	return result
}

func sum(numbers []Number) Number {
	total := Int(0)
	for _, n := range numbers {
		total = Add(total, n)
	}
	return total
}

func average(numbers []Number) float64 {
	if len(numbers) == 0 {
		return 0
	}
	return Quo(sum(numbers), Int(int64(len(numbers)))).Float64()
}

// cloneNumbers copies numbers, returning an empty non-nil slice for nil input.
func cloneNumbers(numbers []Number) []Number {
	return append(make([]Number, 0, len(numbers)), numbers...)
}
