//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

package tool

import "context"

// BeforeUseArgs carries the parameters of a before-use callback.
type BeforeUseArgs struct {
	// Capability is the capability about to be invoked.
	Capability *Capability
	// Arguments is the raw argument bag, before validation.
	Arguments map[string]any
}

// BeforeUseResult is the return value of a before-use callback.
type BeforeUseResult struct {
	// CustomResult, if not nil, is returned to the caller and the
	// capability body is skipped.
	CustomResult any
	// ModifiedArguments, if not nil, replaces the argument bag. The
	// replacement still goes through validation.
	ModifiedArguments map[string]any
}

// BeforeUseCallback runs before validation and invocation. Returning an
// error aborts the call with that error.
type BeforeUseCallback func(ctx context.Context, args *BeforeUseArgs) (*BeforeUseResult, error)

// AfterUseArgs carries the parameters of an after-use callback.
type AfterUseArgs struct {
	// Capability is the capability that was invoked.
	Capability *Capability
	// Arguments is the validated, coerced argument bag.
	Arguments map[string]any
	// Result is the capability result (nil on error).
	Result any
	// Error is the invocation error (nil on success).
	Error error
}

// AfterUseResult is the return value of an after-use callback.
type AfterUseResult struct {
	// CustomResult replaces the capability result.
	CustomResult any
}

// AfterUseCallback runs after invocation, on success and on failure.
// Returning a non-nil result replaces the capability result; returning an
// error replaces the outcome with that error.
type AfterUseCallback func(ctx context.Context, args *AfterUseArgs) (*AfterUseResult, error)

// Callbacks holds the dispatcher's callback chains.
type Callbacks struct {
	beforeUse []BeforeUseCallback
	afterUse  []AfterUseCallback
}

// NewCallbacks creates an empty callback set.
func NewCallbacks() *Callbacks {
	return &Callbacks{}
}

// RegisterBeforeUse appends a before-use callback and returns the set for
// chaining.
func (c *Callbacks) RegisterBeforeUse(cb BeforeUseCallback) *Callbacks {
	c.beforeUse = append(c.beforeUse, cb)
	return c
}

// RegisterAfterUse appends an after-use callback and returns the set for
// chaining.
func (c *Callbacks) RegisterAfterUse(cb AfterUseCallback) *Callbacks {
	c.afterUse = append(c.afterUse, cb)
	return c
}

// runBeforeUse runs the chain in order; the first callback returning a
// custom result or modified arguments wins.
func (c *Callbacks) runBeforeUse(ctx context.Context, args *BeforeUseArgs) (*BeforeUseResult, error) {
	for _, cb := range c.beforeUse {
		result, err := cb(ctx, args)
		if err != nil {
			return nil, err
		}
		if result != nil && (result.CustomResult != nil || result.ModifiedArguments != nil) {
			return result, nil
		}
	}
	return nil, nil
}

// runAfterUse runs the chain in order; the first callback returning a
// custom result wins.
func (c *Callbacks) runAfterUse(ctx context.Context, args *AfterUseArgs) (*AfterUseResult, error) {
	for _, cb := range c.afterUse {
		result, err := cb(ctx, args)
		if err != nil {
			return nil, err
		}
		if result != nil && result.CustomResult != nil {
			return result, nil
		}
	}
	return nil, nil
}
