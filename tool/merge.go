//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

package tool

import "errors"

type mergePolicy int

const (
	mergeReject mergePolicy = iota
	mergeOverride
	mergeRename
)

// MergeOption selects the collision policy for Merge. The default rejects
// collisions so a capability is never silently shadowed.
type MergeOption func(*mergeOptions)

type mergeOptions struct {
	policy mergePolicy
}

// MergeOverride replaces the caller's capability in place on a name
// collision.
func MergeOverride() MergeOption {
	return func(o *mergeOptions) { o.policy = mergeOverride }
}

// MergeRename keeps both capabilities on a collision by prefixing the
// incoming one with the other tool's name and an underscore.
func MergeRename() MergeOption {
	return func(o *mergeOptions) { o.policy = mergeRename }
}

// Merge copies other's capabilities into the caller's table in other's
// registration order. Merged capabilities keep their original owner, so
// invocation still happens through the tool that holds their state. On a
// name collision the merge fails with *CollisionError before any capability
// is copied, unless an override or rename policy is requested.
func (t *Tool) Merge(other *Tool, opts ...MergeOption) error {
	if other == nil {
		return errors.New("tool: cannot merge a nil tool")
	}
	if other == t {
		return errors.New("tool: cannot merge a tool into itself")
	}
	var o mergeOptions
	for _, opt := range opts {
		opt(&o)
	}

	type plannedCapability struct {
		capability *Capability
		override   bool
	}
	// Plan the whole merge first so a rejected collision leaves the caller
	// untouched.
	planned := make([]plannedCapability, 0, len(other.caps))
	incoming := make(map[string]bool, len(other.caps))
	for _, c := range other.caps {
		_, exists := t.index[c.name]
		if !exists && !incoming[c.name] {
			planned = append(planned, plannedCapability{capability: c})
			incoming[c.name] = true
			continue
		}
		switch o.policy {
		case mergeOverride:
			planned = append(planned, plannedCapability{capability: c, override: exists})
		case mergeRename:
			renamed := other.name + "_" + c.name
			if _, taken := t.index[renamed]; taken || incoming[renamed] {
				return &CollisionError{Name: renamed}
			}
			planned = append(planned, plannedCapability{capability: c.renamed(renamed)})
			incoming[renamed] = true
		default:
			return &CollisionError{Name: c.name}
		}
	}

	for _, p := range planned {
		if p.override {
			t.replace(p.capability)
			continue
		}
		if err := t.register(p.capability); err != nil {
			return err
		}
	}
	return nil
}
