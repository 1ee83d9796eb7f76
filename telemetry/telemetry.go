//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

// Package telemetry provides tracing and metrics for capability
// invocations, built on OpenTelemetry. Providers are taken from the otel
// globals, so hosts configure exporters however they already do.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/agentsea/toolfuse/log"
)

// Instrumentation constants.
const (
	ServiceName    = "toolfuse"
	ServiceVersion = "v0.1.0"
	InstrumentName = "agentsea.toolfuse"

	OperationUse = "use"
)

// Telemetry attribute keys.
const (
	KeyToolName       = attribute.Key("toolfuse.tool.name")
	KeyCapabilityName = attribute.Key("toolfuse.capability.name")
	KeyCapabilityKind = attribute.Key("toolfuse.capability.kind")
	KeyInvocationID   = attribute.Key("toolfuse.invocation.id")
)

var (
	// Tracer is the tracer used for capability invocation spans.
	Tracer = otel.Tracer(InstrumentName)
	// Meter is the meter used for invocation metrics.
	Meter = otel.Meter(InstrumentName)

	useCount metric.Int64Counter
)

func init() {
	var err error
	useCount, err = Meter.Int64Counter(
		"toolfuse.use.count",
		metric.WithDescription("Total number of capability invocations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		log.Warnf("telemetry: failed to create use counter: %v", err)
	}
}

// NewUseSpanName creates the span name for a capability invocation.
// For example, "use add".
func NewUseSpanName(capability string) string {
	return fmt.Sprintf("%s %s", OperationUse, capability)
}

// TraceUse annotates an invocation span with the capability identity and
// outcome.
func TraceUse(span trace.Span, toolName, capability, kind, invocationID string, err error) {
	span.SetAttributes(
		KeyToolName.String(toolName),
		KeyCapabilityName.String(capability),
		KeyCapabilityKind.String(kind),
		KeyInvocationID.String(invocationID),
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		return
	}
	span.SetStatus(codes.Ok, "")
}

// RecordUse counts one capability invocation.
func RecordUse(ctx context.Context, toolName, capability string, err error) {
	if useCount == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	useCount.Add(ctx, 1, metric.WithAttributes(
		KeyToolName.String(toolName),
		KeyCapabilityName.String(capability),
		attribute.String("toolfuse.use.status", status),
	))
}
