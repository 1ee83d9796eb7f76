//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Chrome is only launched on the first page operation, so construction and
// schema inspection are testable without a browser installed.

func TestNewTool_Capabilities(t *testing.T) {
	tl, err := NewTool()
	require.NoError(t, err)
	t.Cleanup(func() { _ = tl.Close() })

	assert.Equal(t, "browser", tl.Name())
	assert.Len(t, tl.Actions(), 1)
	assert.Len(t, tl.Observations(), 2)

	navigate, err := tl.FindAction("navigate")
	require.NoError(t, err)
	assert.True(t, navigate.Mutating())
	require.NotNil(t, navigate.Declaration().InputSchema.Property("url"))
	assert.Equal(t, []string{"url"}, navigate.Declaration().InputSchema.Required)

	text, err := tl.FindAction("page_text")
	require.NoError(t, err)
	selector := text.Declaration().InputSchema.Property("selector")
	require.NotNil(t, selector)
	assert.Equal(t, "body", selector.Default)
	assert.Empty(t, text.Declaration().InputSchema.Required)
}

func TestNewTool_Options(t *testing.T) {
	tl, err := NewTool(
		WithHeadless(true),
		WithProfileDir(t.TempDir()),
		WithActionTimeout(defaultActionTimeout),
	)
	require.NoError(t, err)
	assert.NoError(t, tl.Close())
}
