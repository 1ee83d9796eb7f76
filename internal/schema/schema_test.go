//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

package schema

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type basicInput struct {
	Location string  `json:"location" jsonschema:"description=City name to look up."`
	Days     int     `json:"days,omitempty"`
	Celsius  *bool   `json:"celsius"`
	Degrees  float64 `json:"degrees"`
}

func TestGenerate_Basic(t *testing.T) {
	schema, err := Generate(reflect.TypeOf(basicInput{}))
	require.NoError(t, err)
	require.Equal(t, "object", schema.Type)

	require.Len(t, schema.Properties, 4)
	assert.Equal(t, "location", schema.Properties[0].Name)
	assert.Equal(t, "days", schema.Properties[1].Name)
	assert.Equal(t, "celsius", schema.Properties[2].Name)
	assert.Equal(t, "degrees", schema.Properties[3].Name)

	assert.Equal(t, "string", schema.Property("location").Type)
	assert.Equal(t, "City name to look up.", schema.Property("location").Description)
	assert.Equal(t, "integer", schema.Property("days").Type)
	assert.Equal(t, "boolean", schema.Property("celsius").Type)
	assert.Equal(t, "number", schema.Property("degrees").Type)

	// Optional: pointer fields and omitempty fields drop out of required.
	assert.Equal(t, []string{"location", "degrees"}, schema.Required)
}

func TestGenerate_CollectionTypes(t *testing.T) {
	type input struct {
		Tags   []string          `json:"tags"`
		Counts map[string]int    `json:"counts"`
		Labels map[string]string `json:"labels,omitempty"`
	}
	schema, err := Generate(reflect.TypeOf(input{}))
	require.NoError(t, err)

	tags := schema.Property("tags")
	require.NotNil(t, tags)
	assert.Equal(t, "array", tags.Type)
	assert.Equal(t, "string", tags.Items.Type)

	counts := schema.Property("counts")
	require.NotNil(t, counts)
	assert.Equal(t, "object", counts.Type)
	assert.Equal(t, "integer", counts.AdditionalProperties.Type)

	assert.Equal(t, []string{"tags", "counts"}, schema.Required)
}

func TestGenerate_NestedStruct(t *testing.T) {
	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	type input struct {
		Origin point `json:"origin"`
	}
	schema, err := Generate(reflect.TypeOf(input{}))
	require.NoError(t, err)

	origin := schema.Property("origin")
	require.NotNil(t, origin)
	assert.Equal(t, "object", origin.Type)
	assert.Equal(t, "integer", origin.Property("x").Type)
	assert.Equal(t, []string{"x", "y"}, origin.Required)
}

func TestGenerate_UnsupportedTypes(t *testing.T) {
	tests := []struct {
		name  string
		input any
		field string
	}{
		{"channel field", struct {
			C chan int `json:"c"`
		}{}, "c"},
		{"func field", struct {
			F func() `json:"f"`
		}{}, "f"},
		{"interface field", struct {
			V any `json:"v"`
		}{}, "v"},
		{"non-string map key", struct {
			M map[int]string `json:"m"`
		}{}, "m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(reflect.TypeOf(tt.input))
			require.Error(t, err)
			var unsupported *UnsupportedTypeError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, tt.field, unsupported.Field)
		})
	}
}

func TestGenerate_NonStructInput(t *testing.T) {
	_, err := Generate(reflect.TypeOf(42))
	require.Error(t, err)
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
}

func TestGenerate_RecursiveStruct(t *testing.T) {
	type node struct {
		Next *node `json:"next"`
	}
	_, err := Generate(reflect.TypeOf(node{}))
	require.Error(t, err)
}

func TestGenerate_TagValues(t *testing.T) {
	type input struct {
		Unit  string `json:"unit" jsonschema:"enum=celsius,enum=fahrenheit,default=celsius"`
		Limit int    `json:"limit,omitempty" jsonschema:"required,default=10"`
	}
	schema, err := Generate(reflect.TypeOf(input{}))
	require.NoError(t, err)

	unit := schema.Property("unit")
	assert.Equal(t, []any{"celsius", "fahrenheit"}, unit.Enum)
	assert.Equal(t, "celsius", unit.Default)

	limit := schema.Property("limit")
	assert.Equal(t, int64(10), limit.Default)
	// The jsonschema "required" flag overrides omitempty.
	assert.True(t, schema.IsRequired("limit"))
}

func TestMarshalJSON_Deterministic(t *testing.T) {
	type input struct {
		B string `json:"b"`
		A string `json:"a"`
		C int    `json:"c,omitempty"`
	}
	schema, err := Generate(reflect.TypeOf(input{}))
	require.NoError(t, err)

	first, err := json.Marshal(schema)
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		again, err := json.Marshal(schema)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
	// Declaration order, not lexical order.
	assert.JSONEq(t,
		`{"type":"object","properties":{"b":{"type":"string"},"a":{"type":"string"},"c":{"type":"integer"}},"required":["b","a"]}`,
		string(first))
	assert.Contains(t, string(first), `"b":{"type":"string"},"a":{"type":"string"}`)
}

func TestMarshalJSON_EmptyObject(t *testing.T) {
	schema, err := Generate(reflect.TypeOf(struct{}{}))
	require.NoError(t, err)
	out, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"object","properties":{}}`, string(out))
}
