package calculator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-chi-compute/internal/compute"
	"go-chi-compute/internal/handlers"
	"go-chi-compute/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Handler serves the calculator endpoints on top of a single engine, so all
// requests share one history.
type Handler struct {
	engine  *compute.Calculator
	metrics *instruments
}

// NewHandler creates the calculator's metric instruments against the global
// meter provider. Call it after observability.InitMetrics.
func NewHandler(engine *compute.Calculator) (*Handler, error) {
	m, err := newInstruments(otel.Meter("calculator"), engine)
	if err != nil {
		return nil, err
	}
	return &Handler{engine: engine, metrics: m}, nil
}

// ---------------------------------------------------------------------------
// Handlers: binary operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, compute.OpAdd, func(a, b compute.Number) (compute.Number, error) {
		return h.engine.Add(a, b), nil
	})
}

// Subtract handles POST /calculator/subtract
func (h *Handler) Subtract(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, compute.OpSubtract, func(a, b compute.Number) (compute.Number, error) {
		return h.engine.Subtract(a, b), nil
	})
}

// Multiply handles POST /calculator/multiply
func (h *Handler) Multiply(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, compute.OpMultiply, func(a, b compute.Number) (compute.Number, error) {
		return h.engine.Multiply(a, b), nil
	})
}

// Divide handles POST /calculator/divide. A zero divisor is a 400 and is not
// recorded in history.
func (h *Handler) Divide(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, compute.OpDivide, h.engine.Divide)
}

// Power handles POST /calculator/power
func (h *Handler) Power(w http.ResponseWriter, r *http.Request) {
	h.handleBinaryOp(w, r, compute.OpPower, func(a, b compute.Number) (compute.Number, error) {
		return h.engine.Power(a, b), nil
	})
}

// handleBinaryOp is the shared implementation for all binary operations.
func (h *Handler) handleBinaryOp(w http.ResponseWriter, r *http.Request, opName string, op func(a, b compute.Number) (compute.Number, error)) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalcRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		h.fail(ctx, w, span, logger, opName, decodeMessage(err), err)
		return
	}
	if req.A == nil || req.B == nil {
		h.fail(ctx, w, span, logger, opName, "operands a and b are required", errors.New("missing operand"))
		return
	}
	a, b := *req.A, *req.B

	span.SetAttributes(
		attribute.String("calculator.operand.a", a.String()),
		attribute.String("calculator.operand.b", b.String()),
	)

	start := time.Now()
	result, err := op(a, b)
	elapsed := elapsedMillis(start)

	if err != nil {
		h.fail(ctx, w, span, logger, opName, err.Error(), err)
		return
	}

	h.metrics.completed(ctx, opName, elapsed, result)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.String("result", result.String()),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.String("calculator.result", result.String()))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Stringer("a", a),
		zap.Stringer("b", b),
		zap.Stringer("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         a,
		B:         b,
		Result:    result,
	})
}

// ---------------------------------------------------------------------------
// Handlers: list aggregates
// ---------------------------------------------------------------------------

// Sum handles POST /calculator/sum. An empty list sums to 0 and is recorded.
func (h *Handler) Sum(w http.ResponseWriter, r *http.Request) {
	h.handleAggregate(w, r, compute.OpSum, h.engine.Sum)
}

// Average handles POST /calculator/average. An empty list averages to 0.0.
func (h *Handler) Average(w http.ResponseWriter, r *http.Request) {
	h.handleAggregate(w, r, compute.OpAverage, func(numbers []compute.Number) compute.Number {
		return compute.Float(h.engine.Average(numbers))
	})
}

func (h *Handler) handleAggregate(w http.ResponseWriter, r *http.Request, opName string, op func([]compute.Number) compute.Number) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req AggregateRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		h.fail(ctx, w, span, logger, opName, decodeMessage(err), err)
		return
	}
	if req.Numbers == nil {
		req.Numbers = []compute.Number{}
	}

	span.SetAttributes(attribute.Int("calculator.numbers.count", len(req.Numbers)))

	start := time.Now()
	result := op(req.Numbers)
	elapsed := elapsedMillis(start)

	h.metrics.completed(ctx, opName, elapsed, result)

	span.SetAttributes(attribute.String("calculator.result", result.String()))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator aggregate completed",
		zap.String("operation", opName),
		zap.Int("count", len(req.Numbers)),
		zap.Stringer("result", result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, AggregateResponse{
		Operation: opName,
		Numbers:   req.Numbers,
		Result:    result,
	})
}

// ---------------------------------------------------------------------------
// Handler: chained operations
// ---------------------------------------------------------------------------

// Chain handles POST /calculator/chain. It runs a sequence of operations on a
// running total, creating a child span for every step. Each completed step is
// recorded in history; a failing step aborts the chain.
func (h *Handler) Chain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.chain",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ChainRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		h.fail(ctx, w, span, logger, "chain", decodeMessage(err), err)
		return
	}

	if len(req.Steps) == 0 {
		h.fail(ctx, w, span, logger, "chain", "no steps provided", errors.New("steps array is empty"))
		return
	}

	span.SetAttributes(
		attribute.String("chain.initial", req.Initial.String()),
		attribute.Int("chain.steps_count", len(req.Steps)),
	)

	logger.Info("starting chained calculation",
		zap.Stringer("initial", req.Initial),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	running := req.Initial
	results := make([]ChainResult, 0, len(req.Steps))

	for i, step := range req.Steps {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.chain.step.%d.%s", i, step.Op),
			trace.WithAttributes(
				attribute.Int("chain.step.index", i),
				attribute.String("chain.step.operation", step.Op),
				attribute.String("chain.step.input", running.String()),
				attribute.String("chain.step.value", step.Value.String()),
			),
		)

		stepStart := time.Now()
		prev := running
		next, err := h.applyStep(running, step)
		stepElapsed := elapsedMillis(stepStart)

		if err != nil {
			err = fmt.Errorf("step %d: %w", i, err)

			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			span.SetAttributes(attribute.Int("chain.failed_step", i))
			h.fail(ctx, w, span, logger, step.Op, err.Error(), err)
			return
		}
		running = next

		h.metrics.completed(ctx, step.Op, stepElapsed, running)

		stepSpan.AddEvent("step.complete", trace.WithAttributes(
			attribute.String("input", prev.String()),
			attribute.String("result", running.String()),
		))
		stepSpan.SetAttributes(attribute.String("chain.step.result", running.String()))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Info("chain step completed",
			zap.Int("step", i),
			zap.String("operation", step.Op),
			zap.Stringer("input", prev),
			zap.Stringer("value", step.Value),
			zap.Stringer("result", running),
			zap.Float64("duration_ms", stepElapsed),
		)

		results = append(results, ChainResult{
			Op:     step.Op,
			Value:  step.Value,
			Result: running,
		})
	}

	span.AddEvent("chain.complete", trace.WithAttributes(
		attribute.String("final_result", running.String()),
		attribute.Int("total_steps", len(req.Steps)),
	))
	span.SetAttributes(attribute.String("chain.result", running.String()))
	span.SetStatus(codes.Ok, "")

	logger.Info("chained calculation completed",
		zap.Stringer("initial", req.Initial),
		zap.Stringer("result", running),
		zap.Int("steps", len(req.Steps)),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ChainResponse{
		Initial: req.Initial,
		Steps:   results,
		Result:  running,
	})
}

func (h *Handler) applyStep(running compute.Number, step ChainStep) (compute.Number, error) {
	switch step.Op {
	case compute.OpAdd:
		return h.engine.Add(running, step.Value), nil
	case compute.OpSubtract:
		return h.engine.Subtract(running, step.Value), nil
	case compute.OpMultiply:
		return h.engine.Multiply(running, step.Value), nil
	case compute.OpDivide:
		return h.engine.Divide(running, step.Value)
	case compute.OpPower:
		return h.engine.Power(running, step.Value), nil
	default:
		return compute.Number{}, fmt.Errorf("unknown operation %q", step.Op)
	}
}

// ---------------------------------------------------------------------------
// Handlers: introspection
// ---------------------------------------------------------------------------

// Stats handles GET /calculator/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, h.engine.Statistics())
}

// History handles GET /calculator/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{
		Name:    h.engine.Name(),
		History: h.engine.History(),
	})
}

// ClearHistory handles DELETE /calculator/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearHistory()

	observability.LoggerWithTrace(r.Context()).Info("calculator history cleared",
		zap.String("calculator", h.engine.Name()),
		zap.String("request_id", observability.RequestIDFromContext(r.Context())),
	)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, span trace.Span, logger *zap.Logger, opName, msg string, err error) {
	observability.RecordError(ctx, w, span, logger, h.metrics.errors, observability.Failure{
		Operation: opName,
		Message:   msg,
		Err:       err,
		Status:    http.StatusBadRequest,
	})
}

// decodeMessage tells out-of-range operands apart from malformed bodies.
func decodeMessage(err error) string {
	if errors.Is(err, compute.ErrInvalidNumber) {
		return compute.ErrInvalidNumber.Error()
	}
	return "invalid request body"
}

func elapsedMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
