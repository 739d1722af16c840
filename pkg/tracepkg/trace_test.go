package tracepkg

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/go-petr/pet-ledger/internal/ledger"
)

func newTestTracerProvider(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	return provider, recorder
}

func TestHandleSpanError(t *testing.T) {
	testCases := []struct {
		name        string
		err         error
		wantStatus  codes.Code
		wantOutcome string
		wantEvents  int
	}{
		{
			name:        "NoError",
			wantStatus:  codes.Unset,
			wantOutcome: "ok",
		},
		{
			name:        "InsufficientFunds",
			err:         &ledger.InsufficientFundsError{AccountID: 1},
			wantStatus:  codes.Error,
			wantOutcome: "insufficient_funds",
			wantEvents:  1,
		},
		{
			name:        "Other",
			err:         errors.New("boom"),
			wantStatus:  codes.Error,
			wantOutcome: "error",
			wantEvents:  1,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			provider, recorder := newTestTracerProvider(t)

			_, span := provider.Tracer("test").Start(context.Background(), "op")
			HandleSpanError(span, "op failed", tc.err)
			span.End()

			spans := recorder.Ended()
			require.Len(t, spans, 1)

			got := spans[0]
			require.Equal(t, tc.wantStatus, got.Status().Code)
			require.Len(t, got.Events(), tc.wantEvents)
			require.Contains(t, got.Attributes(), AttrOutcome.String(tc.wantOutcome))
		})
	}
}
