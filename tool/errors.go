//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

package tool

import "fmt"

// RegistrationError reports a capability that cannot be introspected: a nil
// or malformed function, an underivable name, or an input type that is not
// a struct. It is fatal at construction.
type RegistrationError struct {
	// Capability is the capability name, when one was resolved.
	Capability string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	if e.Capability == "" {
		return fmt.Sprintf("tool: registration failed: %v", e.Err)
	}
	return fmt.Sprintf("tool: capability %q: registration failed: %v", e.Capability, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RegistrationError) Unwrap() error { return e.Err }

// SchemaError reports a declared parameter or return type that has no
// schema mapping. The policy is fail-closed: downstream consumers need
// concrete types to generate valid calls, so nothing degrades to "any".
type SchemaError struct {
	// Capability is the capability being registered.
	Capability string
	// Parameter names the offending parameter, when the type belongs to one.
	Parameter string
	// GoType is the unmappable Go type.
	GoType string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Parameter == "" {
		return fmt.Sprintf("tool: capability %q: type %s has no schema mapping", e.Capability, e.GoType)
	}
	return fmt.Sprintf("tool: capability %q: parameter %q: type %s has no schema mapping",
		e.Capability, e.Parameter, e.GoType)
}

// NotFoundError reports an unknown capability name. Lookup is exact-match
// only: disambiguation is the caller's responsibility.
type NotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tool: no capability named %q", e.Name)
}

// ValidationError reports arguments that do not satisfy a capability's
// declared parameter set: a missing required parameter, an unexpected extra
// argument under the strict policy, or a value that cannot be coerced to
// the declared type. The capability body is never entered.
type ValidationError struct {
	// Capability is the capability being invoked.
	Capability string
	// Parameter names the offending parameter, when one is at fault.
	Parameter string
	// Reason describes the violation.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Parameter == "" {
		return fmt.Sprintf("tool: capability %q: %s", e.Capability, e.Reason)
	}
	return fmt.Sprintf("tool: capability %q: parameter %q: %s", e.Capability, e.Parameter, e.Reason)
}

// ExecutionError reports a failure raised by the capability body itself.
// It is propagated to the caller as-is, never retried or swallowed.
type ExecutionError struct {
	// Capability is the capability that failed.
	Capability string
	// Err is the error returned (or the recovered panic) from the body.
	Err error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool: capability %q: execution failed: %v", e.Capability, e.Err)
}

// Unwrap returns the capability's own error.
func (e *ExecutionError) Unwrap() error { return e.Err }

// CollisionError reports a capability name that already exists in the
// target tool. Merge and AddAction reject collisions unless an explicit
// override or rename policy is requested.
type CollisionError struct {
	Name string
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("tool: capability %q already registered", e.Name)
}
