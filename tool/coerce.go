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
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// validateArguments checks the argument bag against the capability's
// declared parameter set before invocation: required parameters must be
// present, extras are rejected under the strict policy, and only
// unambiguous primitive coercions are applied. Declared defaults fill
// absent optional parameters.
func (t *Tool) validateArguments(c *Capability, args map[string]any) (map[string]any, error) {
	params := c.decl.InputSchema
	for name := range args {
		if params.Property(name) == nil {
			if t.permissive {
				continue
			}
			return nil, &ValidationError{Capability: c.name, Parameter: name,
				Reason: "unexpected argument"}
		}
	}
	out := make(map[string]any, len(args))
	for _, p := range params.Properties {
		value, present := args[p.Name]
		if !present {
			if params.IsRequired(p.Name) {
				return nil, &ValidationError{Capability: c.name, Parameter: p.Name,
					Reason: "missing required argument"}
			}
			if p.Schema.Default != nil {
				out[p.Name] = p.Schema.Default
			}
			continue
		}
		coerced, err := coerceValue(p.Schema, value)
		if err != nil {
			return nil, &ValidationError{Capability: c.name, Parameter: p.Name,
				Reason: err.Error()}
		}
		if err := checkEnum(p.Schema, coerced); err != nil {
			return nil, &ValidationError{Capability: c.name, Parameter: p.Name,
				Reason: err.Error()}
		}
		out[p.Name] = coerced
	}
	return out, nil
}

// coerceValue converts a value to the declared schema type when the
// conversion is unambiguous, and rejects everything else.
func coerceValue(s *Schema, value any) (any, error) {
	if value == nil {
		return nil, fmt.Errorf("argument is null")
	}
	switch s.Type {
	case "string":
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", value)
		}
		return str, nil
	case "integer":
		return coerceInteger(value)
	case "number":
		return coerceNumber(value)
	case "boolean":
		return coerceBoolean(value)
	case "array":
		kind := reflect.ValueOf(value).Kind()
		if kind != reflect.Slice && kind != reflect.Array {
			return nil, fmt.Errorf("expected array, got %T", value)
		}
		return value, nil
	case "object":
		kind := reflect.ValueOf(value).Kind()
		if kind != reflect.Map && kind != reflect.Struct {
			return nil, fmt.Errorf("expected object, got %T", value)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("declared type %q has no validation rule", s.Type)
	}
}

func coerceInteger(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("integer value %d overflows", v)
		}
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("expected integer, got non-integral number %v", v)
		}
		return int64(v), nil
	case float32:
		return coerceInteger(float64(v))
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("expected integer, got %q", v.String())
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected integer, got string %q", v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("expected integer, got %T", value)
	}
}

func coerceNumber(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("expected number, got %q", v.String())
		}
		return n, nil
	case string:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("expected number, got string %q", v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("expected number, got %T", value)
	}
}

func coerceBoolean(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch v {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("expected boolean, got string %q", v)
	default:
		return nil, fmt.Errorf("expected boolean, got %T", value)
	}
}

func checkEnum(s *Schema, value any) error {
	if len(s.Enum) == 0 {
		return nil
	}
	for _, allowed := range s.Enum {
		if allowed == value {
			return nil
		}
	}
	return fmt.Errorf("value %v is not one of the allowed values %v", value, s.Enum)
}
