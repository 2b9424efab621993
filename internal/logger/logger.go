package logger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const serviceName = "tickerwatch"

var (
	// Nop until Init is called, so packages can log from tests.
	log            = zap.NewNop().Sugar()
	tracingEnabled bool
	tracerProvider *sdktrace.TracerProvider
)

// Config holds logging configuration.
type Config struct {
	Level   string // debug, info, warn, error
	Format  string // json or console
	Tracing bool   // export OpenTelemetry spans to stdout
}

// Init builds the global zap logger and, when enabled, the OpenTelemetry tracer.
func Init(cfg Config) error {
	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	if cfg.Level != "" {
		lvl, err := zap.ParseAtomicLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
		zc.Level = lvl
	}
	zl, err := zc.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	log = zl.Sugar()

	if cfg.Tracing {
		if err := initTracer(); err != nil {
			log.Warnw("failed to initialize tracer, tracing disabled", "error", err)
			return nil
		}
		tracingEnabled = true
	}
	return nil
}

func initTracer() error {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return err
	}
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return err
	}
	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	return nil
}

// Shutdown flushes buffered log entries and pending spans.
func Shutdown(ctx context.Context) error {
	_ = log.Sync()
	if tracerProvider != nil {
		return tracerProvider.Shutdown(ctx)
	}
	return nil
}

// StartSpan starts a span on the global tracer. Without an SDK provider this is a no-op span.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(serviceName).Start(ctx, name, opts...)
}

func withTrace(ctx context.Context, kv []any) []any {
	if ctx == nil {
		return kv
	}
	if id := RequestID(ctx); id != "" {
		kv = append([]any{"request_id", id}, kv...)
	}
	if !tracingEnabled {
		return kv
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return kv
	}
	return append([]any{"trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String()}, kv...)
}

func Debug(ctx context.Context, msg string, kv ...any) { log.Debugw(msg, withTrace(ctx, kv)...) }
func Info(ctx context.Context, msg string, kv ...any)  { log.Infow(msg, withTrace(ctx, kv)...) }
func Warn(ctx context.Context, msg string, kv ...any)  { log.Warnw(msg, withTrace(ctx, kv)...) }
func Error(ctx context.Context, msg string, kv ...any) { log.Errorw(msg, withTrace(ctx, kv)...) }

// ErrorWithErr logs msg at error level with err attached.
func ErrorWithErr(ctx context.Context, msg string, err error, kv ...any) {
	log.Errorw(msg, withTrace(ctx, append([]any{"error", err}, kv...))...)
}

// OperationTimer ties a span to a duration log line.
type OperationTimer struct {
	ctx   context.Context
	span  trace.Span
	name  string
	start time.Time
}

// StartOperation opens a span named operation, tagging it with the key/value fields.
func StartOperation(ctx context.Context, operation string, kv ...any) *OperationTimer {
	ctx, span := StartSpan(ctx, operation)
	span.SetAttributes(toAttributes(kv)...)
	return &OperationTimer{ctx: ctx, span: span, name: operation, start: time.Now()}
}

// Context returns the context carrying the operation span.
func (ot *OperationTimer) Context() context.Context { return ot.ctx }

// End closes the span successfully.
func (ot *OperationTimer) End(kv ...any) {
	d := time.Since(ot.start)
	ot.span.SetAttributes(attribute.Int64("duration_ms", d.Milliseconds()))
	ot.span.SetAttributes(toAttributes(kv)...)
	ot.span.SetStatus(codes.Ok, "completed")
	ot.span.End()
	Debug(ot.ctx, "operation completed", append([]any{"operation", ot.name, "duration_ms", d.Milliseconds()}, kv...)...)
}

// EndWithError closes the span recording err.
func (ot *OperationTimer) EndWithError(err error, kv ...any) {
	d := time.Since(ot.start)
	ot.span.SetAttributes(attribute.Int64("duration_ms", d.Milliseconds()))
	ot.span.RecordError(err)
	ot.span.SetStatus(codes.Error, err.Error())
	ot.span.End()
	Warn(ot.ctx, "operation failed", append([]any{"operation", ot.name, "duration_ms", d.Milliseconds(), "error", err}, kv...)...)
}

func toAttributes(kv []any) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		switch v := kv[i+1].(type) {
		case string:
			attrs = append(attrs, attribute.String(key, v))
		case int:
			attrs = append(attrs, attribute.Int(key, v))
		case int64:
			attrs = append(attrs, attribute.Int64(key, v))
		case float64:
			attrs = append(attrs, attribute.Float64(key, v))
		case bool:
			attrs = append(attrs, attribute.Bool(key, v))
		default:
			attrs = append(attrs, attribute.String(key, fmt.Sprint(v)))
		}
	}
	return attrs
}
