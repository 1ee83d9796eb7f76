//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

// Package browser provides a page-automation tool backed by headless
// Chrome. One browser context is held for the tool's lifetime so page state
// persists across capabilities; Close releases it.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/agentsea/toolfuse/tool"
)

const defaultActionTimeout = 60 * time.Second

// Option configures the browser tool.
type Option func(*config)

type config struct {
	headless   bool
	profileDir string
	timeout    time.Duration
}

// WithHeadless controls whether Chrome runs headless. Default is headless.
func WithHeadless(headless bool) Option {
	return func(cfg *config) { cfg.headless = headless }
}

// WithProfileDir sets the Chrome user data directory, persisting cookies
// and sessions between runs.
func WithProfileDir(dir string) Option {
	return func(cfg *config) { cfg.profileDir = dir }
}

// WithActionTimeout bounds each page operation.
func WithActionTimeout(timeout time.Duration) Option {
	return func(cfg *config) { cfg.timeout = timeout }
}

// navigateRequest is the input for the navigate action.
type navigateRequest struct {
	URL string `json:"url" jsonschema:"description=The URL to open."`
}

// navigateResponse is the output of the navigate action.
type navigateResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// titleRequest is the input for the page_title observation.
type titleRequest struct{}

// titleResponse is the output of the page_title observation.
type titleResponse struct {
	Title string `json:"title"`
}

// textRequest is the input for the page_text observation.
type textRequest struct {
	Selector string `json:"selector,omitempty" jsonschema:"description=CSS selector to read text from,default=body"`
}

// textResponse is the output of the page_text observation.
type textResponse struct {
	Selector string `json:"selector"`
	Text     string `json:"text"`
}

// NewTool creates the browser tool and starts its Chrome allocator. The
// caller owns the returned tool and must Close it exactly once.
func NewTool(opts ...Option) (*tool.Tool, error) {
	cfg := &config{
		headless: true,
		timeout:  defaultActionTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	allocOpts := chromedp.DefaultExecAllocatorOptions[:]
	if cfg.profileDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(cfg.profileDir))
	}
	if !cfg.headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	pageCtx, pageCancel := chromedp.NewContext(allocCtx)

	b := &browserTool{
		pageCtx: pageCtx,
		cancel: func() {
			pageCancel()
			allocCancel()
		},
		timeout: cfg.timeout,
	}
	return tool.New("browser",
		tool.WithDescription("Automates a headless Chrome page: navigation and content extraction."),
		tool.WithCapabilities(
			tool.Action(b.navigate,
				tool.WithName("navigate"),
				tool.WithCapabilityDescription("Opens a URL in the browser page.")),
			tool.Observation(b.pageTitle,
				tool.WithName("page_title"),
				tool.WithCapabilityDescription("Returns the title of the current page.")),
			tool.Observation(b.pageText,
				tool.WithName("page_text"),
				tool.WithCapabilityDescription("Returns the visible text of an element on the current page.")),
		),
		tool.WithCloser(b.close),
	)
}

type browserTool struct {
	pageCtx context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// run executes page operations against the tool's own browser context, so
// the page survives between capability calls.
func (b *browserTool) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(b.pageCtx, b.timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (b *browserTool) navigate(_ context.Context, req navigateRequest) (navigateResponse, error) {
	if req.URL == "" {
		return navigateResponse{}, fmt.Errorf("url must not be empty")
	}
	if err := b.run(
		chromedp.Navigate(req.URL),
		chromedp.WaitReady("body"),
	); err != nil {
		return navigateResponse{}, fmt.Errorf("navigating to %q: %w", req.URL, err)
	}
	return navigateResponse{URL: req.URL, Message: fmt.Sprintf("Opened %s", req.URL)}, nil
}

func (b *browserTool) pageTitle(_ context.Context, _ titleRequest) (titleResponse, error) {
	var title string
	if err := b.run(chromedp.Title(&title)); err != nil {
		return titleResponse{}, fmt.Errorf("reading page title: %w", err)
	}
	return titleResponse{Title: title}, nil
}

func (b *browserTool) pageText(_ context.Context, req textRequest) (textResponse, error) {
	selector := req.Selector
	if selector == "" {
		selector = "body"
	}
	var text string
	if err := b.run(chromedp.Text(selector, &text, chromedp.ByQuery)); err != nil {
		return textResponse{}, fmt.Errorf("reading text of %q: %w", selector, err)
	}
	return textResponse{Selector: selector, Text: text}, nil
}

func (b *browserTool) close() error {
	b.cancel()
	return nil
}
