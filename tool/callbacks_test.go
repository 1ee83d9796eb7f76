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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeforeUse_CustomResultSkipsBody(t *testing.T) {
	callbacks := NewCallbacks().RegisterBeforeUse(
		func(_ context.Context, args *BeforeUseArgs) (*BeforeUseResult, error) {
			if args.Capability.Name() == "add" {
				return &BeforeUseResult{CustomResult: int64(-1)}, nil
			}
			return nil, nil
		})
	tl, calc := newCalculatorTool(t, WithCallbacks(callbacks))
	add, err := tl.FindAction("add")
	require.NoError(t, err)

	got, err := tl.Use(context.Background(), add, map[string]any{"a": 2, "b": 7})
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got)
	assert.Equal(t, int64(0), calc.lastResult)
}

func TestBeforeUse_ModifiedArgumentsAreRevalidated(t *testing.T) {
	callbacks := NewCallbacks().RegisterBeforeUse(
		func(_ context.Context, _ *BeforeUseArgs) (*BeforeUseResult, error) {
			return &BeforeUseResult{ModifiedArguments: map[string]any{"a": 10, "b": 20}}, nil
		})
	tl, _ := newCalculatorTool(t, WithCallbacks(callbacks))
	add, err := tl.FindAction("add")
	require.NoError(t, err)

	got, err := tl.Use(context.Background(), add, map[string]any{"a": 2, "b": 7})
	require.NoError(t, err)
	assert.Equal(t, int64(30), got)

	t.Run("invalid replacement still fails validation", func(t *testing.T) {
		bad := NewCallbacks().RegisterBeforeUse(
			func(_ context.Context, _ *BeforeUseArgs) (*BeforeUseResult, error) {
				return &BeforeUseResult{ModifiedArguments: map[string]any{"a": 1}}, nil
			})
		tl, _ := newCalculatorTool(t, WithCallbacks(bad))
		add, err := tl.FindAction("add")
		require.NoError(t, err)
		_, err = tl.Use(context.Background(), add, map[string]any{"a": 2, "b": 7})
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "b", validation.Parameter)
	})
}

func TestBeforeUse_ErrorAborts(t *testing.T) {
	denied := errors.New("denied by policy")
	callbacks := NewCallbacks().RegisterBeforeUse(
		func(_ context.Context, _ *BeforeUseArgs) (*BeforeUseResult, error) {
			return nil, denied
		})
	tl, calc := newCalculatorTool(t, WithCallbacks(callbacks))
	add, err := tl.FindAction("add")
	require.NoError(t, err)

	_, err = tl.Use(context.Background(), add, map[string]any{"a": 2, "b": 7})
	assert.ErrorIs(t, err, denied)
	assert.Equal(t, int64(0), calc.lastResult)
}

func TestBeforeUse_FirstNonEmptyResultWins(t *testing.T) {
	secondRan := false
	callbacks := NewCallbacks().
		RegisterBeforeUse(func(_ context.Context, _ *BeforeUseArgs) (*BeforeUseResult, error) {
			return &BeforeUseResult{CustomResult: "first"}, nil
		}).
		RegisterBeforeUse(func(_ context.Context, _ *BeforeUseArgs) (*BeforeUseResult, error) {
			secondRan = true
			return &BeforeUseResult{CustomResult: "second"}, nil
		})
	tl, _ := newCalculatorTool(t, WithCallbacks(callbacks))
	add, err := tl.FindAction("add")
	require.NoError(t, err)

	got, err := tl.Use(context.Background(), add, map[string]any{"a": 1, "b": 1})
	require.NoError(t, err)
	assert.Equal(t, "first", got)
	assert.False(t, secondRan)
}

func TestAfterUse_CustomResultReplaces(t *testing.T) {
	callbacks := NewCallbacks().RegisterAfterUse(
		func(_ context.Context, args *AfterUseArgs) (*AfterUseResult, error) {
			return &AfterUseResult{CustomResult: map[string]any{
				"wrapped": args.Result,
			}}, nil
		})
	tl, _ := newCalculatorTool(t, WithCallbacks(callbacks))
	add, err := tl.FindAction("add")
	require.NoError(t, err)

	got, err := tl.Use(context.Background(), add, map[string]any{"a": 2, "b": 7})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"wrapped": int64(9)}, got)
}

func TestAfterUse_SeesExecutionError(t *testing.T) {
	var seen error
	callbacks := NewCallbacks().RegisterAfterUse(
		func(_ context.Context, args *AfterUseArgs) (*AfterUseResult, error) {
			seen = args.Error
			return nil, nil
		})
	tl, _ := newCalculatorTool(t, WithCallbacks(callbacks))
	divide, err := tl.FindAction("divide")
	require.NoError(t, err)

	_, err = tl.Use(context.Background(), divide, map[string]any{"a": 1, "b": 0})
	var execution *ExecutionError
	require.ErrorAs(t, err, &execution)
	assert.ErrorAs(t, seen, &execution)
}

func TestAfterUse_CanRecoverFromError(t *testing.T) {
	callbacks := NewCallbacks().RegisterAfterUse(
		func(_ context.Context, args *AfterUseArgs) (*AfterUseResult, error) {
			if args.Error != nil {
				return &AfterUseResult{CustomResult: "fallback"}, nil
			}
			return nil, nil
		})
	tl, _ := newCalculatorTool(t, WithCallbacks(callbacks))
	divide, err := tl.FindAction("divide")
	require.NoError(t, err)

	got, err := tl.Use(context.Background(), divide, map[string]any{"a": 1, "b": 0})
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)
}

func TestAfterUse_SeesCoercedArguments(t *testing.T) {
	var seen map[string]any
	callbacks := NewCallbacks().RegisterAfterUse(
		func(_ context.Context, args *AfterUseArgs) (*AfterUseResult, error) {
			seen = args.Arguments
			return nil, nil
		})
	tl, _ := newCalculatorTool(t, WithCallbacks(callbacks))
	add, err := tl.FindAction("add")
	require.NoError(t, err)

	_, err = tl.Use(context.Background(), add, map[string]any{"a": "2", "b": float64(7)})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": int64(2), "b": int64(7)}, seen)
}
