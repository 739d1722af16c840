// Package tracepkg holds the OpenTelemetry helpers shared by the service layer.
package tracepkg

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-petr/pet-ledger/pkg/metricspkg"
)

// Attribute keys set on ledger spans.
const (
	AttrAccountID     = attribute.Key("ledger.account_id")
	AttrFromAccountID = attribute.Key("ledger.from_account_id")
	AttrToAccountID   = attribute.Key("ledger.to_account_id")
	AttrAmount        = attribute.Key("ledger.amount")
	AttrCreditors     = attribute.Key("ledger.creditors")
	AttrOutcome       = attribute.Key("ledger.outcome")
)

// HandleSpanError marks span as failed with err. A nil err only records the outcome.
func HandleSpanError(span trace.Span, message string, err error) {
	span.SetAttributes(AttrOutcome.String(metricspkg.Outcome(err)))

	if err == nil {
		return
	}

	span.SetStatus(codes.Error, message+": "+err.Error())
	span.RecordError(err)
}
