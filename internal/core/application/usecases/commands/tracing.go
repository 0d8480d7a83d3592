package commands

import (
	"servicedesk/internal/pkg/telemetry"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = telemetry.Tracer("commands")

func endSpan(span trace.Span, err error) {
	if err != nil && !IsBenignProposalError(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
