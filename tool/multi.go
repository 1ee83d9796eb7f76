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
	"errors"
)

// MultiTool presents an ordered list of tools as one addressable namespace.
// Resolution order is the construction order of the tool list: when two
// constituents expose the same capability name, FindAction deterministically
// returns the first constituent's capability. This first-match-wins rule is
// the documented collision policy, not an accident of iteration.
type MultiTool struct {
	tools []*Tool
}

// NewMulti aggregates the given tools in order.
func NewMulti(tools ...*Tool) *MultiTool {
	m := &MultiTool{tools: make([]*Tool, 0, len(tools))}
	for _, t := range tools {
		if t != nil {
			m.tools = append(m.tools, t)
		}
	}
	return m
}

// Tools returns the constituent tools in construction order.
func (m *MultiTool) Tools() []*Tool {
	out := make([]*Tool, len(m.tools))
	copy(out, m.tools)
	return out
}

// FindAction searches constituents in list order; the first match wins.
func (m *MultiTool) FindAction(name string) (*Capability, error) {
	for _, t := range m.tools {
		if c, err := t.FindAction(name); err == nil {
			return c, nil
		}
	}
	return nil, &NotFoundError{Name: name}
}

// Use dispatches through the capability's owning tool, so owner-bound state
// and the owner's argument policy apply regardless of which constituent the
// capability was resolved from.
func (m *MultiTool) Use(ctx context.Context, c *Capability, args map[string]any) (any, error) {
	if c == nil {
		return nil, &NotFoundError{}
	}
	if c.owner == nil {
		return nil, &RegistrationError{Capability: c.name,
			Err: errors.New("capability has no owning tool")}
	}
	return c.owner.Use(ctx, c, args)
}

// Capabilities returns every constituent capability in constituent order,
// optionally filtered.
func (m *MultiTool) Capabilities(filters ...Filter) []*Capability {
	var out []*Capability
	for _, t := range m.tools {
		out = append(out, t.Capabilities(filters...)...)
	}
	return out
}

// JSONSchema concatenates constituent schemas in constituent order.
func (m *MultiTool) JSONSchema(filters ...Filter) []*Declaration {
	var decls []*Declaration
	for _, t := range m.tools {
		decls = append(decls, t.JSONSchema(filters...)...)
	}
	return decls
}

// Close closes every constituent once, in order, and joins their errors.
func (m *MultiTool) Close() error {
	var errs []error
	for _, t := range m.tools {
		if err := t.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
