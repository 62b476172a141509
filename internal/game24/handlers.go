package game24

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"game24/internal/expr"
	"game24/internal/handlers"
	"game24/internal/observability"
	"game24/internal/puzzle"
	"game24/internal/solver"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("game24")

var errNonFinite = errors.New("numbers must be finite")

// Solvable handles POST /game24/solvable
func Solvable(w http.ResponseWriter, r *http.Request) {
	handleNumbersOp(w, r, "solvable", func(span trace.Span, numbers []float64) (any, []zap.Field) {
		ok := solver.HasSolution(numbers)
		span.SetAttributes(attribute.Bool("game24.solvable", ok))

		return SolvableResponse{Numbers: numbers, Solvable: ok}, []zap.Field{zap.Bool("solvable", ok)}
	})
}

// Hint handles POST /game24/hint
func Hint(w http.ResponseWriter, r *http.Request) {
	handleNumbersOp(w, r, "hint", func(span trace.Span, numbers []float64) (any, []zap.Field) {
		resp := HintResponse{Numbers: numbers}

		c, ok := solver.Solve(numbers)
		if ok {
			s := c.String()
			resp.Found = true
			resp.Solution = &s
			span.SetAttributes(
				attribute.String("game24.solution", s),
				attribute.String("game24.shape", c.Shape.String()),
			)
		}
		span.SetAttributes(attribute.Bool("game24.found", ok))

		return resp, []zap.Field{zap.Bool("found", ok)}
	})
}

// handleNumbersOp is the shared implementation for operations that take the
// four card values and answer from the solver.
func handleNumbersOp(w http.ResponseWriter, r *http.Request, opName string, compute func(trace.Span, []float64) (any, []zap.Field)) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, fmt.Sprintf("game24.%s", opName),
		trace.WithAttributes(
			attribute.String("game24.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req NumbersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if err := validateNumbers(req.Numbers); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Float64Slice("game24.numbers", req.Numbers))

	start := time.Now()
	resp, fields := compute(span, req.Numbers)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	span.AddEvent("search.complete", trace.WithAttributes(
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("game24 operation completed",
		append([]zap.Field{
			zap.String("operation", opName),
			zap.Float64s("numbers", req.Numbers),
			zap.String("request_id", requestID),
			zap.Float64("duration_ms", elapsed),
		}, fields...)...,
	)

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// NewPuzzle returns the handler for GET /game24/puzzle, dealing from puzzles.
func NewPuzzle(puzzles *puzzle.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := observability.LoggerWithTrace(ctx)
		requestID := observability.RequestIDFromContext(ctx)

		ctx, span := tracer.Start(ctx, "game24.puzzle",
			trace.WithAttributes(
				attribute.String("game24.operation", "puzzle"),
				attribute.String("request.id", requestID),
			),
		)
		defer span.End()

		start := time.Now()
		p := puzzles.Next()
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0

		source := "random"
		if p.Fallback {
			source = "fallback"
			logger.Warn("no solvable draw within attempt limit, dealing fallback set",
				zap.Int("attempts", p.Attempts),
				zap.String("request_id", requestID),
			)
		}
		puzzlesGenerated.WithLabelValues(source).Inc()
		puzzleAttempts.Observe(float64(p.Attempts))

		attrs := metric.WithAttributes(attribute.String("operation", "puzzle"))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, elapsed, attrs)

		span.SetAttributes(
			attribute.Float64Slice("game24.numbers", p.Numbers),
			attribute.Int("game24.attempts", p.Attempts),
			attribute.Bool("game24.fallback", p.Fallback),
		)
		span.SetStatus(codes.Ok, "")

		logger.Info("puzzle dealt",
			zap.Float64s("numbers", p.Numbers),
			zap.Int("attempts", p.Attempts),
			zap.Bool("fallback", p.Fallback),
			zap.String("request_id", requestID),
			zap.Float64("duration_ms", elapsed),
		)

		handlers.WriteJSON(w, http.StatusOK, PuzzleResponse{
			Numbers:  p.Numbers,
			Attempts: p.Attempts,
			Fallback: p.Fallback,
		})
	}
}

// Verify handles POST /game24/verify. It checks a player's expression and
// records a child span for every reduction, so the trace reads like the
// player's own sequence of card combinations.
func Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "game24.verify",
		trace.WithAttributes(
			attribute.String("game24.operation", "verify"),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "verify", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	if err := validateNumbers(req.Numbers); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "verify", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64Slice("game24.numbers", req.Numbers),
		attribute.String("game24.expression", req.Expression),
	)

	verdict, err := expr.Verify(req.Numbers, req.Expression)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "verify", verifyErrorMessage(err), err, http.StatusBadRequest, w)
		return
	}

	for _, step := range verdict.Steps {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("game24.verify.step.%d.%s", step.Index, step.Op),
			trace.WithAttributes(
				attribute.Int("verify.step.index", step.Index),
				attribute.String("verify.step.operation", step.Op),
				attribute.Float64("verify.step.left", step.Left),
				attribute.Float64("verify.step.right", step.Right),
			),
		)
		stepSpan.SetAttributes(attribute.Float64("verify.step.result", step.Result))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("verify step",
			zap.Int("step", step.Index),
			zap.String("operation", step.Op),
			zap.Float64("left", step.Left),
			zap.Float64("right", step.Right),
			zap.Float64("result", step.Result),
		)
	}

	attrs := metric.WithAttributes(attribute.String("operation", "verify"))
	opsCounter.Add(ctx, 1, attrs)
	valueGauge.Record(ctx, verdict.Value, attrs)

	span.AddEvent("verify.complete", trace.WithAttributes(
		attribute.Float64("value", verdict.Value),
		attribute.Bool("correct", verdict.Correct),
		attribute.Int("total_steps", len(verdict.Steps)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("expression verified",
		zap.String("expression", verdict.Expression),
		zap.Float64("value", verdict.Value),
		zap.Bool("correct", verdict.Correct),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, VerifyResponse{
		Expression: verdict.Expression,
		Value:      verdict.Value,
		Correct:    verdict.Correct,
		Steps:      verdict.Steps,
	})
}

// validateNumbers applies the strict arity contract; the solver itself only
// answers "no solution" for the wrong count.
func validateNumbers(numbers []float64) error {
	if err := solver.Validate(numbers); err != nil {
		return fmt.Errorf("expected exactly %d numbers, got %d", solver.Arity, len(numbers))
	}
	for _, n := range numbers {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return errNonFinite
		}
	}
	return nil
}

func verifyErrorMessage(err error) string {
	switch {
	case errors.Is(err, expr.ErrSyntax):
		return "invalid expression"
	case errors.Is(err, expr.ErrOperandMismatch):
		return expr.ErrOperandMismatch.Error()
	case errors.Is(err, solver.ErrDivisionByZero):
		return "division by zero"
	default:
		return err.Error()
	}
}
