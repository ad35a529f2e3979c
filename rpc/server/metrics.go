package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ValentinKolb/wActor/rpc/common"
	"github.com/VictoriaMetrics/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// observeCall starts the span of a call and returns the function that ends it
// and updates the call metrics:
//
//	wactor_calls_total{actor,operation}
//	wactor_call_errors_total{actor,operation}
//	wactor_call_duration_seconds{actor,operation}
func observeCall(ctx context.Context, actorId uint64, namespace, operation string) (context.Context, func(error)) {
	start := time.Now()

	ctx, span := otel.Tracer(common.TracerName).Start(ctx, "actor.call",
		trace.WithAttributes(
			attribute.String("actor.operation", operation),
			attribute.String("actor.namespace", namespace),
			attribute.Int64("actor.id", int64(actorId)),
		),
	)

	labels := metricLabels(actorId, operation)

	return ctx, func(err error) {
		metrics.GetOrCreateCounter("wactor_calls_total" + labels).Inc()
		metrics.GetOrCreateHistogram("wactor_call_duration_seconds" + labels).UpdateDuration(start)

		if err != nil {
			metrics.GetOrCreateCounter("wactor_call_errors_total" + labels).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// metricLabels renders the label set of a call. Operations are client input,
// names that are not plain identifiers share the label "other".
func metricLabels(actorId uint64, operation string) string {
	if !isIdentifier(operation) {
		operation = "other"
	}
	return fmt.Sprintf(`{actor="%s",operation="%s"}`, strconv.FormatUint(actorId, 10), operation)
}

func isIdentifier(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
