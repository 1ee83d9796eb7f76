//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

// Package schema derives JSON-Schema-shaped parameter descriptions from Go
// types by reflection. Generation runs once, at capability construction, and
// is fail-closed: a type with no schema mapping is an error, never an
// untyped "any".
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema is a single JSON schema node. Properties are kept as an ordered
// slice rather than a map so that marshaling is deterministic: two calls
// without mutation produce byte-identical output, property order included.
type Schema struct {
	Type                 string
	Description          string
	Properties           []Property
	Required             []string
	Items                *Schema
	Enum                 []any
	Default              any
	AdditionalProperties *Schema
}

// Property is a named schema entry inside an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Property returns the schema of the named property, or nil.
func (s *Schema) Property(name string) *Schema {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Schema
		}
	}
	return nil
}

// IsRequired reports whether the named property is in the required list.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// MarshalJSON emits the schema with properties in declaration order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	writeField := func(name string, v any) error {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(name)
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(val)
		return nil
	}
	if s.Type != "" {
		if err := writeField("type", s.Type); err != nil {
			return nil, err
		}
	}
	if s.Description != "" {
		if err := writeField("description", s.Description); err != nil {
			return nil, err
		}
	}
	if s.Properties != nil {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(`"properties":{`)
		for i, p := range s.Properties {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(p.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(p.Schema)
			if err != nil {
				return nil, err
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	if len(s.Required) > 0 {
		if err := writeField("required", s.Required); err != nil {
			return nil, err
		}
	}
	if s.Items != nil {
		if err := writeField("items", s.Items); err != nil {
			return nil, err
		}
	}
	if len(s.Enum) > 0 {
		if err := writeField("enum", s.Enum); err != nil {
			return nil, err
		}
	}
	if s.Default != nil {
		if err := writeField("default", s.Default); err != nil {
			return nil, err
		}
	}
	if s.AdditionalProperties != nil {
		if err := writeField("additionalProperties", s.AdditionalProperties); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnsupportedTypeError reports a Go type that has no schema mapping.
// Field is empty when the offending type is the input type itself.
type UnsupportedTypeError struct {
	Type  reflect.Type
	Field string
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema: type %s has no schema mapping", e.Type)
	}
	return fmt.Sprintf("schema: field %q: type %s has no schema mapping", e.Field, e.Type)
}

// Generate builds the parameter schema for a capability input struct type.
// Parameter names come from json tags, declaration order is preserved, and
// a field is required unless it is a pointer, carries omitempty, or is
// overridden by a jsonschema "required" tag.
func Generate(t reflect.Type) (*Schema, error) {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &UnsupportedTypeError{Type: t}
	}
	return generateObject(t, map[reflect.Type]bool{})
}

// GenerateValue builds the schema for a capability return type, which may
// be a scalar, collection, or struct.
func GenerateValue(t reflect.Type) (*Schema, error) {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return nil, &UnsupportedTypeError{Type: t}
	}
	return generateField(t, map[reflect.Type]bool{})
}

func generateObject(t reflect.Type, visiting map[reflect.Type]bool) (*Schema, error) {
	if visiting[t] {
		// Recursive parameter structs cannot be rendered as a flat,
		// deterministic properties object.
		return nil, &UnsupportedTypeError{Type: t}
	}
	visiting[t] = true
	defer delete(visiting, t)

	schema := &Schema{
		Type:       "object",
		Properties: make([]Property, 0, t.NumField()),
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := field.Name
		omitEmpty := false
		if jsonTag != "" {
			if commaIdx := strings.Index(jsonTag, ","); commaIdx != -1 {
				if commaIdx > 0 {
					name = jsonTag[:commaIdx]
				}
				omitEmpty = strings.Contains(jsonTag[commaIdx:], "omitempty")
			} else {
				name = jsonTag
			}
		}

		fieldType := field.Type
		optional := fieldType.Kind() == reflect.Ptr
		for fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}

		fieldSchema, err := generateField(fieldType, visiting)
		if err != nil {
			var unsupported *UnsupportedTypeError
			if ok := asUnsupported(err, &unsupported); ok && unsupported.Field == "" {
				unsupported.Field = name
			}
			return nil, err
		}

		requiredByTag, err := applyTag(fieldType, field.Tag, fieldSchema)
		if err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", name, err)
		}

		if (!optional && !omitEmpty) || requiredByTag {
			schema.Required = append(schema.Required, name)
		}
		schema.Properties = append(schema.Properties, Property{Name: name, Schema: fieldSchema})
	}
	return schema, nil
}

func asUnsupported(err error, target **UnsupportedTypeError) bool {
	u, ok := err.(*UnsupportedTypeError)
	if ok {
		*target = u
	}
	return ok
}

func generateField(t reflect.Type, visiting map[reflect.Type]bool) (*Schema, error) {
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}, nil
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}, nil
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Slice, reflect.Array:
		items, err := generateField(elemType(t.Elem()), visiting)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return nil, &UnsupportedTypeError{Type: t}
		}
		values, err := generateField(elemType(t.Elem()), visiting)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: values}, nil
	case reflect.Struct:
		return generateObject(t, visiting)
	default:
		return nil, &UnsupportedTypeError{Type: t}
	}
}

func elemType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// applyTag parses the jsonschema struct tag and applies it to the schema.
// Supported entries: "description=...", "enum=..." (repeatable),
// "default=...", and the bare "required" flag. Enum and default values are
// converted to the field's declared type.
func applyTag(fieldType reflect.Type, tag reflect.StructTag, schema *Schema) (bool, error) {
	jsonSchemaTag := tag.Get("jsonschema")
	if jsonSchemaTag == "" {
		return false, nil
	}
	requiredByTag := false
	for _, item := range strings.Split(jsonSchemaTag, ",") {
		kv := strings.SplitN(item, "=", 2)
		if len(kv) == 1 {
			if kv[0] == "required" {
				requiredByTag = true
			}
			continue
		}
		key, value := kv[0], kv[1]
		switch key {
		case "description":
			schema.Description = value
		case "enum":
			v, err := convertTagValue(fieldType, value)
			if err != nil {
				return false, fmt.Errorf("enum value %q: %w", value, err)
			}
			schema.Enum = append(schema.Enum, v)
		case "default":
			v, err := convertTagValue(fieldType, value)
			if err != nil {
				return false, fmt.Errorf("default value %q: %w", value, err)
			}
			schema.Default = v
		}
	}
	return requiredByTag, nil
}

func convertTagValue(fieldType reflect.Type, value string) (any, error) {
	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("tag values unsupported for type %s", fieldType)
	}
}
