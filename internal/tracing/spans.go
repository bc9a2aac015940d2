package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for transaction tracing.
const (
	AttrTxKind      = "tx.kind"
	AttrTxApplied   = "tx.applied"
	AttrDocVersion  = "doc.version"
	AttrDocLength   = "doc.length"
	AttrSpanCount   = "doc.span_count"
	AttrSelFrom     = "selection.from"
	AttrSelTo       = "selection.to"
	AttrErrorType   = "error.type"
	AttrAnnotateKey = "annotate.key"
	AttrGroupName   = "group.name"
	AttrGroupSize   = "group.size"
)

// SpanPrefixTx prefixes transaction span names, as in "tx.paste".
const SpanPrefixTx = "tx."

// RecordOutcome sets the applied flag and status on span.
func RecordOutcome(span trace.Span, applied bool, err error) {
	span.SetAttributes(attribute.Bool(AttrTxApplied, applied))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}
