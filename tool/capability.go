//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

package tool

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"unicode"

	"github.com/agentsea/toolfuse/internal/schema"
	"github.com/agentsea/toolfuse/log"
)

// Kind classifies a capability as mutating or read-only.
type Kind int

const (
	// KindAction marks a capability that may mutate state.
	KindAction Kind = iota
	// KindObservation marks a read-only capability.
	KindObservation
)

// String returns the kind as a lowercase word.
func (k Kind) String() string {
	if k == KindObservation {
		return "observation"
	}
	return "action"
}

// Capability is a single named, schema-described callable registered on a
// Tool. The invocation handle is bound to the owning object: method values
// carry their receiver, and registration records the owning Tool, so a
// capability is never dispatched as a detached function pointer.
type Capability struct {
	name        string
	description string
	kind        Kind
	decl        *Declaration

	decode func([]byte) (any, error)
	invoke func(context.Context, any) (any, error)

	owner *Tool
	// err defers construction failures until tool.New, so that capability
	// constructors compose inside option lists.
	err error
}

// Name returns the capability name, unique within its owning tool.
func (c *Capability) Name() string { return c.name }

// Description returns the capability summary text.
func (c *Capability) Description() string { return c.description }

// Kind returns whether the capability is an action or an observation.
func (c *Capability) Kind() Kind { return c.kind }

// Mutating reports whether the capability may mutate state.
func (c *Capability) Mutating() bool { return c.kind == KindAction }

// Declaration returns the capability's schema document.
func (c *Capability) Declaration() *Declaration { return c.decl }

// Owner returns the Tool the capability is registered on, or nil before
// registration. Merged capabilities keep their original owner.
func (c *Capability) Owner() *Tool { return c.owner }

// CapabilityOption configures a capability under construction.
type CapabilityOption func(*capabilityOptions)

type capabilityOptions struct {
	name         string
	description  string
	inputSchema  *Schema
	outputSchema *Schema
}

// WithName overrides the name derived from the function.
func WithName(name string) CapabilityOption {
	return func(o *capabilityOptions) { o.name = name }
}

// WithCapabilityDescription sets the capability's summary text.
func WithCapabilityDescription(description string) CapabilityOption {
	return func(o *capabilityOptions) { o.description = description }
}

// WithInputSchema supplies a hand-written parameter schema, skipping
// reflection over the input struct.
func WithInputSchema(s *Schema) CapabilityOption {
	return func(o *capabilityOptions) { o.inputSchema = s }
}

// WithOutputSchema supplies a hand-written return schema, skipping
// reflection over the output type.
func WithOutputSchema(s *Schema) CapabilityOption {
	return func(o *capabilityOptions) { o.outputSchema = s }
}

// Action wraps a function or method value as a mutating capability. The
// parameter schema is derived from I's fields in declaration order; the
// name, unless overridden, comes from the function name in snake_case.
// Construction errors surface from tool.New or Tool.AddAction.
func Action[I, O any](fn func(context.Context, I) (O, error), opts ...CapabilityOption) *Capability {
	return newCapability(KindAction, fn, opts)
}

// Observation wraps a function or method value as a read-only capability.
func Observation[I, O any](fn func(context.Context, I) (O, error), opts ...CapabilityOption) *Capability {
	return newCapability(KindObservation, fn, opts)
}

// ActionFunc builds a mutating capability from implementer-supplied
// metadata instead of reflection: an explicit parameters schema and a
// function taking the validated argument bag.
func ActionFunc(name, description string, params *Schema,
	fn func(context.Context, map[string]any) (any, error)) *Capability {
	return newRawCapability(KindAction, name, description, params, fn)
}

// ObservationFunc is the read-only counterpart of ActionFunc.
func ObservationFunc(name, description string, params *Schema,
	fn func(context.Context, map[string]any) (any, error)) *Capability {
	return newRawCapability(KindObservation, name, description, params, fn)
}

func newCapability[I, O any](kind Kind, fn func(context.Context, I) (O, error),
	opts []CapabilityOption) *Capability {
	var o capabilityOptions
	for _, opt := range opts {
		opt(&o)
	}
	c := &Capability{kind: kind, name: o.name, description: o.description}
	if fn == nil {
		c.err = &RegistrationError{Capability: o.name, Err: errors.New("capability function is nil")}
		return c
	}
	if c.name == "" {
		derived, err := deriveName(fn)
		if err != nil {
			c.err = &RegistrationError{Err: err}
			return c
		}
		c.name = derived
	}
	if c.description == "" {
		log.Warnf("tool: capability %q has no description", c.name)
	}

	inputSchema := o.inputSchema
	if inputSchema == nil {
		var empty I
		t := reflect.TypeOf(empty)
		if t == nil {
			c.err = &RegistrationError{Capability: c.name,
				Err: errors.New("input type must be a struct, not an interface")}
			return c
		}
		generated, err := schema.Generate(t)
		if err != nil {
			c.err = schemaErrorFrom(c.name, err)
			return c
		}
		inputSchema = generated
	}

	outputSchema := o.outputSchema
	if outputSchema == nil {
		var empty O
		t := reflect.TypeOf(empty)
		if t == nil {
			c.err = &RegistrationError{Capability: c.name,
				Err: errors.New("output type must be concrete")}
			return c
		}
		generated, err := schema.GenerateValue(t)
		if err != nil {
			c.err = schemaErrorFrom(c.name, err)
			return c
		}
		outputSchema = generated
	}

	c.decl = &Declaration{
		Name:         c.name,
		Description:  c.description,
		Mutating:     kind == KindAction,
		InputSchema:  inputSchema,
		OutputSchema: outputSchema,
	}
	c.decode = func(jsonArgs []byte) (any, error) {
		var in I
		if err := json.Unmarshal(jsonArgs, &in); err != nil {
			return nil, err
		}
		return in, nil
	}
	c.invoke = func(ctx context.Context, in any) (any, error) {
		return fn(ctx, in.(I))
	}
	return c
}

func newRawCapability(kind Kind, name, description string, params *Schema,
	fn func(context.Context, map[string]any) (any, error)) *Capability {
	c := &Capability{kind: kind, name: name, description: description}
	if name == "" {
		c.err = &RegistrationError{Err: errors.New("capability name must not be empty")}
		return c
	}
	if fn == nil {
		c.err = &RegistrationError{Capability: name, Err: errors.New("capability function is nil")}
		return c
	}
	if description == "" {
		log.Warnf("tool: capability %q has no description", name)
	}
	if params == nil {
		params = &Schema{Type: "object", Properties: []Property{}}
	}
	c.decl = &Declaration{
		Name:        name,
		Description: description,
		Mutating:    kind == KindAction,
		InputSchema: params,
	}
	c.decode = func(jsonArgs []byte) (any, error) {
		args := map[string]any{}
		if err := json.Unmarshal(jsonArgs, &args); err != nil {
			return nil, err
		}
		return args, nil
	}
	c.invoke = func(ctx context.Context, in any) (any, error) {
		return fn(ctx, in.(map[string]any))
	}
	return c
}

// renamed returns a shallow copy registered under a new name, keeping the
// original owner and invocation handle.
func (c *Capability) renamed(name string) *Capability {
	clone := *c
	clone.name = name
	decl := *c.decl
	decl.Name = name
	clone.decl = &decl
	return &clone
}

func schemaErrorFrom(capability string, err error) error {
	var unsupported *schema.UnsupportedTypeError
	if errors.As(err, &unsupported) {
		if unsupported.Field == "" && unsupported.Type != nil && unsupported.Type.Kind() != reflect.Struct {
			// The input type itself was not introspectable.
			return &RegistrationError{Capability: capability, Err: err}
		}
		goType := "<nil>"
		if unsupported.Type != nil {
			goType = unsupported.Type.String()
		}
		return &SchemaError{Capability: capability, Parameter: unsupported.Field, GoType: goType}
	}
	return &RegistrationError{Capability: capability, Err: err}
}

var anonFuncName = regexp.MustCompile(`(^|\.)func\d+(\.\d+)*$`)

// deriveName recovers a snake_case capability name from the function's
// symbol. Anonymous functions have no usable symbol and require WithName.
func deriveName(fn any) (string, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "", errors.New("capability is not a function")
	}
	pc := runtime.FuncForPC(v.Pointer())
	if pc == nil {
		return "", errors.New("cannot resolve function name; use WithName")
	}
	full := strings.TrimSuffix(pc.Name(), "-fm")
	// Function literals carry funcN symbol segments, nested literals a
	// trailing numeric chain (pkg.Caller.func3.1). Check the full symbol
	// before truncating to the last segment, which for a nested literal is
	// just a number.
	if anonFuncName.MatchString(full) {
		return "", errors.New("cannot derive a name for an anonymous function; use WithName")
	}
	if i := strings.LastIndex(full, "."); i >= 0 {
		full = full[i+1:]
	}
	if full == "" {
		return "", errors.New("cannot derive a name for an anonymous function; use WithName")
	}
	return snakeCase(full), nil
}

func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevBreaks := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextBreaks := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevBreaks || nextBreaks {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
