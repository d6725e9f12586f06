package processor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"go-chi-compute/internal/compute"
	"go-chi-compute/internal/handlers"
	"go-chi-compute/internal/observability"
)

var tracer = otel.Tracer("processor")

// Handler serves the data processor endpoints on top of a single engine.
type Handler struct {
	engine  *compute.Processor
	metrics *instruments
}

func NewHandler(engine *compute.Processor) (*Handler, error) {
	m, err := newInstruments(otel.Meter("processor"), engine)
	if err != nil {
		return nil, err
	}
	return &Handler{engine: engine, metrics: m}, nil
}

// call is the per-request state shared by the processor operations.
type call struct {
	ctx       context.Context
	span      trace.Span
	logger    *zap.Logger
	requestID string
	op        string
	start     time.Time
}

func (h *Handler) begin(r *http.Request, op string) *call {
	ctx := r.Context()
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "processor."+op,
		trace.WithAttributes(
			attribute.String("processor.operation", op),
			attribute.String("request.id", requestID),
		),
	)

	return &call{
		ctx:       ctx,
		span:      span,
		logger:    observability.LoggerWithTrace(ctx),
		requestID: requestID,
		op:        op,
		start:     time.Now(),
	}
}

func (h *Handler) fail(w http.ResponseWriter, c *call, msg string, err error) {
	observability.RecordError(c.ctx, w, c.span, c.logger, h.metrics.errors, observability.Failure{
		Operation: c.op,
		Message:   msg,
		Err:       err,
		Status:    http.StatusBadRequest,
	})
}

func (h *Handler) done(c *call, inputItems int, fields ...zap.Field) {
	elapsed := float64(time.Since(c.start).Microseconds()) / 1000.0
	h.metrics.completed(c.ctx, c.op, elapsed, inputItems)

	c.span.SetAttributes(attribute.Int("processor.input.items", inputItems))
	c.span.SetStatus(codes.Ok, "")

	c.logger.Info("processor operation completed", append(fields,
		zap.String("operation", c.op),
		zap.Int("items", inputItems),
		zap.String("request_id", c.requestID),
		zap.Float64("duration_ms", elapsed),
	)...)
}

// Numbers handles POST /processor/numbers
func (h *Handler) Numbers(w http.ResponseWriter, r *http.Request) {
	c := h.begin(r, compute.OpProcessNumbers)
	defer c.span.End()

	var req NumbersRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, c, "invalid request body", err)
		return
	}

	summary, err := h.engine.ProcessNumbers(req.Numbers)
	if err != nil {
		h.fail(w, c, summary.Error, err)
		return
	}

	h.done(c, len(req.Numbers),
		zap.Stringer("sum", summary.Sum),
		zap.Stringer("min", summary.Min),
		zap.Stringer("max", summary.Max),
	)
	handlers.WriteJSON(w, http.StatusOK, summary)
}

// Filter handles POST /processor/filter
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	c := h.begin(r, compute.OpFilterData)
	defer c.span.End()

	var req FilterRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, c, "invalid request body", err)
		return
	}
	if req.Predicate == "" {
		h.fail(w, c, "predicate is required", errors.New("missing predicate"))
		return
	}

	predicate, err := lookupPredicate(req.Predicate, req.Value)
	if err != nil {
		h.fail(w, c, err.Error(), err)
		return
	}
	c.span.SetAttributes(attribute.String("processor.predicate", req.Predicate))

	filtered := h.engine.FilterData(req.Items, predicate)

	h.done(c, len(req.Items),
		zap.String("predicate", req.Predicate),
		zap.Int("kept", len(filtered)),
	)
	handlers.WriteJSON(w, http.StatusOK, FilterResponse{
		Predicate: req.Predicate,
		Items:     filtered,
		Count:     len(filtered),
	})
}

// Convert handles POST /processor/json. A value that cannot be encoded still
// answers 200 with the failure message, matching what history records.
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	c := h.begin(r, compute.OpConvertToJSON)
	defer c.span.End()

	var req ConvertRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, c, "invalid request body", err)
		return
	}

	text := h.engine.ConvertToJSON(req.Data)

	h.done(c, 1, zap.Int("length", len(text)))
	handlers.WriteJSON(w, http.StatusOK, ConvertResponse{JSON: text})
}

// Stats handles GET /processor/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, h.engine.Statistics())
}

// History handles GET /processor/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{
		Name:    h.engine.Name(),
		History: h.engine.History(),
	})
}

// ClearHistory handles DELETE /processor/history
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearHistory()

	observability.LoggerWithTrace(r.Context()).Info("processor history cleared",
		zap.String("processor", h.engine.Name()),
		zap.String("request_id", observability.RequestIDFromContext(r.Context())),
	)

	w.WriteHeader(http.StatusNoContent)
}
