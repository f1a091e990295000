package tracing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"alcyxob/fitness-tracker/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingSpan struct {
	noop.Span

	status   codes.Code
	recorded []error
	ended    bool
}

func (s *recordingSpan) SetStatus(code codes.Code, _ string) { s.status = code }
func (s *recordingSpan) RecordError(err error, _ ...trace.EventOption) {
	s.recorded = append(s.recorded, err)
}
func (s *recordingSpan) End(...trace.SpanEndOption) { s.ended = true }

func TestEndSpanWithErrCheck(t *testing.T) {
	ok := &recordingSpan{}
	var noErr error
	EndSpanWithErrCheck(ok, &noErr)
	assert.True(t, ok.ended)
	assert.Equal(t, codes.Unset, ok.status)
	assert.Empty(t, ok.recorded)

	failed := &recordingSpan{}
	err := errors.New("boom")
	EndSpanWithErrCheck(failed, &err)
	assert.True(t, failed.ended)
	assert.Equal(t, codes.Error, failed.status)
	assert.Equal(t, []error{err}, failed.recorded)
}

func TestGlobalTracer_StartsWithoutProvider(t *testing.T) {
	ctx, span := GlobalTracer.Start(context.Background(), "test")
	defer span.End()
	assert.NotNil(t, ctx)
}

func TestSetup_DisabledKeepsNoopProvider(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := Setup(context.Background(), config.TracingConfig{Exporter: config.ExporterStdout}, nil)
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestSetup_StdoutExportsControllerSpans(t *testing.T) {
	var out bytes.Buffer
	shutdown, err := Setup(context.Background(), config.TracingConfig{
		Enabled:  true,
		Exporter: config.ExporterStdout,
	}, &out)
	require.NoError(t, err)

	func() (err error) {
		_, span := GlobalTracer.Start(context.Background(), "exercisesController.create")
		defer EndSpanWithErrCheck(span, &err)
		return errors.New("store unavailable")
	}()

	require.NoError(t, shutdown(context.Background()))
	assert.Contains(t, out.String(), `"Name":"exercisesController.create"`)
	assert.Contains(t, out.String(), "store unavailable")
	assert.Contains(t, out.String(), `"Value":"fitlog"`)
}

func TestSetup_UnknownExporter(t *testing.T) {
	_, err := Setup(context.Background(), config.TracingConfig{Enabled: true, Exporter: "zipkin"}, nil)
	require.Error(t, err)
}
