//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

// Package tool turns a set of Go callables into a self-describing,
// invocable capability surface for an external decision-maker, typically a
// language model. Capabilities are registered explicitly at construction,
// described by deterministic JSON schemas, and invoked through a validating
// dispatcher that bridges untrusted argument bags into native calls.
package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/agentsea/toolfuse/log"
	"github.com/agentsea/toolfuse/telemetry"
)

// Tool owns an ordered table of capabilities exposed as one schema and
// dispatch unit. The table is built once at construction and mutated only
// through AddAction, AddObservation, and Merge.
//
// A Tool is not safe for concurrent Use against shared mutable state;
// callers requiring concurrency must serialize access externally.
type Tool struct {
	name        string
	description string

	caps  []*Capability
	index map[string]*Capability

	permissive bool
	callbacks  *Callbacks
	closer     func() error
}

// Option configures a Tool under construction.
type Option func(*toolOptions)

type toolOptions struct {
	description string
	caps        []*Capability
	closer      func() error
	permissive  bool
	callbacks   *Callbacks
}

// WithDescription sets the tool's summary text.
func WithDescription(description string) Option {
	return func(o *toolOptions) { o.description = description }
}

// WithCapabilities registers capabilities in the given order.
func WithCapabilities(caps ...*Capability) Option {
	return func(o *toolOptions) { o.caps = append(o.caps, caps...) }
}

// WithCloser registers the teardown hook invoked by Close. The owner must
// call Close exactly once; idempotency is not added here.
func WithCloser(closer func() error) Option {
	return func(o *toolOptions) { o.closer = closer }
}

// WithPermissiveArguments makes Use drop unexpected extra arguments instead
// of rejecting them. The default is strict: rejecting extras is the primary
// defense against a model hallucinating parameters.
func WithPermissiveArguments() Option {
	return func(o *toolOptions) { o.permissive = true }
}

// WithCallbacks attaches before/after-use callbacks to the dispatcher.
func WithCallbacks(callbacks *Callbacks) Option {
	return func(o *toolOptions) { o.callbacks = callbacks }
}

// New builds a Tool from explicitly registered capabilities. Construction
// fails fast: the first capability with an invalid schema or registration
// problem aborts with its error.
func New(name string, opts ...Option) (*Tool, error) {
	if name == "" {
		return nil, errors.New("tool: name must not be empty")
	}
	var o toolOptions
	for _, opt := range opts {
		opt(&o)
	}
	t := &Tool{
		name:        name,
		description: o.description,
		index:       make(map[string]*Capability),
		permissive:  o.permissive,
		callbacks:   o.callbacks,
		closer:      o.closer,
	}
	for _, c := range o.caps {
		if err := t.register(c); err != nil {
			return nil, err
		}
	}
	log.Debugf("tool: registered %q with %d capabilities", name, len(t.caps))
	return t, nil
}

// FromFunction wraps a single capability as its own tool, named after the
// capability.
func FromFunction(c *Capability, opts ...Option) (*Tool, error) {
	if c == nil {
		return nil, &RegistrationError{Err: errors.New("capability is nil")}
	}
	if c.err != nil {
		return nil, c.err
	}
	return New(c.name, append(opts, WithCapabilities(c))...)
}

// Name returns the tool name.
func (t *Tool) Name() string { return t.name }

// Description returns the tool's summary text.
func (t *Tool) Description() string { return t.description }

// Capabilities returns the registered capabilities, in registration order,
// optionally filtered.
func (t *Tool) Capabilities(filters ...Filter) []*Capability {
	out := make([]*Capability, 0, len(t.caps))
	for _, c := range t.caps {
		if matches(c, filters) {
			out = append(out, c)
		}
	}
	return out
}

// Actions returns the mutating capabilities in registration order.
func (t *Tool) Actions() []*Capability { return t.Capabilities(ActionsOnly()) }

// Observations returns the read-only capabilities in registration order.
func (t *Tool) Observations() []*Capability { return t.Capabilities(ObservationsOnly()) }

// FindAction resolves a capability by exact name, action or observation.
func (t *Tool) FindAction(name string) (*Capability, error) {
	c, ok := t.index[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return c, nil
}

// JSONSchema returns the declarations of all capabilities in registration
// order. Two calls without mutation produce identical output, property
// order included.
func (t *Tool) JSONSchema(filters ...Filter) []*Declaration {
	decls := make([]*Declaration, 0, len(t.caps))
	for _, c := range t.caps {
		if matches(c, filters) {
			decls = append(decls, c.decl)
		}
	}
	return decls
}

// AddAction registers a mutating capability, rejecting name collisions.
func (t *Tool) AddAction(c *Capability) error {
	if c != nil && c.err == nil && c.kind != KindAction {
		return &RegistrationError{Capability: c.name, Err: errors.New("capability is not an action")}
	}
	return t.register(c)
}

// AddObservation registers a read-only capability, rejecting name
// collisions.
func (t *Tool) AddObservation(c *Capability) error {
	if c != nil && c.err == nil && c.kind != KindObservation {
		return &RegistrationError{Capability: c.name, Err: errors.New("capability is not an observation")}
	}
	return t.register(c)
}

func (t *Tool) register(c *Capability) error {
	if c == nil {
		return &RegistrationError{Err: errors.New("capability is nil")}
	}
	if c.err != nil {
		return c.err
	}
	if _, exists := t.index[c.name]; exists {
		return &CollisionError{Name: c.name}
	}
	if c.owner == nil {
		c.owner = t
	}
	t.caps = append(t.caps, c)
	t.index[c.name] = c
	return nil
}

// replace swaps the registered capability of the same name in place,
// keeping table order. Used by Merge's override policy.
func (t *Tool) replace(c *Capability) {
	old := t.index[c.name]
	for i, existing := range t.caps {
		if existing == old {
			t.caps[i] = c
			break
		}
	}
	t.index[c.name] = c
}

// Use validates the argument bag against the capability's declared
// parameters and invokes the bound callable through its owner. The raw
// result is returned unmodified. Validation failures surface as
// *ValidationError before any side effect; failures raised by the
// capability body surface as *ExecutionError and are never retried.
//
// No timeout or cancellation policy is imposed: ctx passes through to the
// capability body untouched.
func (t *Tool) Use(ctx context.Context, c *Capability, args map[string]any) (result any, err error) {
	if c == nil {
		return nil, &NotFoundError{}
	}
	invocationID := uuid.NewString()
	ctx, span := telemetry.Tracer.Start(ctx, telemetry.NewUseSpanName(c.name))
	defer span.End()
	defer func() {
		telemetry.TraceUse(span, t.name, c.name, c.kind.String(), invocationID, err)
		telemetry.RecordUse(ctx, t.name, c.name, err)
	}()

	if t.callbacks != nil {
		beforeResult, cbErr := t.callbacks.runBeforeUse(ctx, &BeforeUseArgs{
			Capability: c,
			Arguments:  args,
		})
		if cbErr != nil {
			return nil, cbErr
		}
		if beforeResult != nil {
			if beforeResult.ModifiedArguments != nil {
				args = beforeResult.ModifiedArguments
			}
			if beforeResult.CustomResult != nil {
				return beforeResult.CustomResult, nil
			}
		}
	}

	coerced, err := t.validateArguments(c, args)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(coerced)
	if err != nil {
		return nil, &ValidationError{Capability: c.name, Reason: fmt.Sprintf("arguments are not encodable: %v", err)}
	}
	in, err := c.decode(payload)
	if err != nil {
		return nil, &ValidationError{Capability: c.name, Reason: fmt.Sprintf("arguments do not match the declared parameters: %v", err)}
	}

	result, invokeErr := invokeCapability(ctx, c, in)
	if invokeErr != nil {
		result = nil
		err = &ExecutionError{Capability: c.name, Err: invokeErr}
	}

	if t.callbacks != nil {
		custom, cbErr := t.callbacks.runAfterUse(ctx, &AfterUseArgs{
			Capability: c,
			Arguments:  coerced,
			Result:     result,
			Error:      err,
		})
		if cbErr != nil {
			return nil, cbErr
		}
		if custom != nil {
			return custom.CustomResult, nil
		}
	}
	return result, err
}

// invokeCapability calls through to the capability body, converting a panic
// into an error so it can surface as an ExecutionError rather than tearing
// down the caller.
func invokeCapability(ctx context.Context, c *Capability, in any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.invoke(ctx, in)
}

// Close runs the registered teardown hook. The owner must invoke it exactly
// once when the tool is no longer needed; nothing triggers it automatically.
func (t *Tool) Close() error {
	if t.closer == nil {
		return nil
	}
	return t.closer()
}
