//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewUseSpanName(t *testing.T) {
	assert.Equal(t, "use add", NewUseSpanName("add"))
}

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return recorder, provider
}

func attributeValue(attrs []attribute.KeyValue, key attribute.Key) (string, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value.AsString(), true
		}
	}
	return "", false
}

func TestTraceUse_Success(t *testing.T) {
	recorder, provider := newRecorder()
	tracer := provider.Tracer(InstrumentName)

	_, span := tracer.Start(context.Background(), NewUseSpanName("add"))
	TraceUse(span, "calculator", "add", "action", "inv-1", nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, "use add", got.Name())
	assert.Equal(t, codes.Ok, got.Status().Code)

	attrs := got.Attributes()
	toolName, ok := attributeValue(attrs, KeyToolName)
	require.True(t, ok)
	assert.Equal(t, "calculator", toolName)
	capability, ok := attributeValue(attrs, KeyCapabilityName)
	require.True(t, ok)
	assert.Equal(t, "add", capability)
	kind, ok := attributeValue(attrs, KeyCapabilityKind)
	require.True(t, ok)
	assert.Equal(t, "action", kind)
	invocation, ok := attributeValue(attrs, KeyInvocationID)
	require.True(t, ok)
	assert.Equal(t, "inv-1", invocation)
}

func TestTraceUse_Error(t *testing.T) {
	recorder, provider := newRecorder()
	tracer := provider.Tracer(InstrumentName)

	_, span := tracer.Start(context.Background(), NewUseSpanName("divide"))
	TraceUse(span, "calculator", "divide", "action", "inv-2", errors.New("division by zero"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	got := spans[0]
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "division by zero", got.Status().Description)
	require.Len(t, got.Events(), 1)
}

func TestRecordUse_DoesNotPanicWithoutProvider(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordUse(context.Background(), "calculator", "add", nil)
		RecordUse(context.Background(), "calculator", "add", errors.New("boom"))
	})
}
