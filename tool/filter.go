//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

package tool

// Filter selects capabilities for Capabilities and JSONSchema listings.
// All supplied filters must pass.
type Filter func(*Capability) bool

func matches(c *Capability, filters []Filter) bool {
	for _, f := range filters {
		if f != nil && !f(c) {
			return false
		}
	}
	return true
}

// ActionsOnly keeps only mutating capabilities.
func ActionsOnly() Filter {
	return func(c *Capability) bool { return c.kind == KindAction }
}

// ObservationsOnly keeps only read-only capabilities.
func ObservationsOnly() Filter {
	return func(c *Capability) bool { return c.kind == KindObservation }
}

// Include keeps only the named capabilities.
func Include(names ...string) Filter {
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		allowed[name] = struct{}{}
	}
	return func(c *Capability) bool {
		_, ok := allowed[c.name]
		return ok
	}
}

// Exclude drops the named capabilities.
func Exclude(names ...string) Filter {
	excluded := make(map[string]struct{}, len(names))
	for _, name := range names {
		excluded[name] = struct{}{}
	}
	return func(c *Capability) bool {
		_, ok := excluded[c.name]
		return !ok
	}
}
