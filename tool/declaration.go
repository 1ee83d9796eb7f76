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
	"bytes"
	"encoding/json"

	"github.com/agentsea/toolfuse/internal/schema"
)

// Schema is the JSON-Schema-shaped description of a capability's parameter
// surface. It is an alias of the internal schema node so that callers can
// hand-write schemas where reflection cannot see the shape they want.
type Schema = schema.Schema

// Property is a named, ordered entry inside an object Schema.
type Property = schema.Property

// Declaration describes one capability to an external decision-maker.
// Marshaling produces the conventional tool-calling wire shape:
//
//	{"name": ..., "description": ..., "parameters": {"type": "object",
//	 "properties": {...}, "required": [...]}}
//
// Property order matches declaration order on every call.
type Declaration struct {
	// Name uniquely identifies the capability within its owning tool.
	Name string
	// Description is summary text for the decision-maker.
	Description string
	// Mutating is true for actions and false for observations.
	Mutating bool
	// InputSchema describes the parameters object.
	InputSchema *Schema
	// OutputSchema describes the return value. It is not part of the wire
	// contract but is kept for callers that want to surface it.
	OutputSchema *Schema
}

// MarshalJSON emits the wire contract with a fixed field order.
func (d *Declaration) MarshalJSON() ([]byte, error) {
	params := d.InputSchema
	if params == nil {
		params = &Schema{Type: "object", Properties: []Property{}}
	}
	var buf bytes.Buffer
	buf.WriteString(`{"name":`)
	name, err := json.Marshal(d.Name)
	if err != nil {
		return nil, err
	}
	buf.Write(name)
	buf.WriteString(`,"description":`)
	desc, err := json.Marshal(d.Description)
	if err != nil {
		return nil, err
	}
	buf.Write(desc)
	buf.WriteString(`,"parameters":`)
	p, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	buf.Write(p)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
