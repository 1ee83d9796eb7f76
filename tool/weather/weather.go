//
// AgentSea is pleased to support the open source community by making toolfuse available.
//
// Copyright (C) 2026 AgentSea.  All rights reserved.
//
// toolfuse is licensed under the Apache License Version 2.0.
//
//

// Package weather provides a weather-logger tool: a read-only weather
// lookup backed by a wttr.in-style endpoint and a mutating action that
// appends reports to a local log file.
package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/agentsea/toolfuse/tool"
)

const (
	defaultTimeout = 30 * time.Second
	defaultBaseURL = "https://wttr.in"
	defaultLogPath = "weather.txt"

	// recordSeparator delimits appended log records.
	recordSeparator = "***\n"
)

// Option configures the weather logger tool.
type Option func(*config)

type config struct {
	httpClient *http.Client
	baseURL    string
	logPath    string
}

// WithHTTPClient sets the HTTP client used for weather lookups.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) { cfg.httpClient = c }
}

// WithBaseURL points lookups at a different wttr.in-compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) { cfg.baseURL = baseURL }
}

// WithLogPath sets the file that log records are appended to.
func WithLogPath(path string) Option {
	return func(cfg *config) { cfg.logPath = path }
}

// weatherRequest is the input for the weather observation.
type weatherRequest struct {
	Location string `json:"location" jsonschema:"description=The location to check the weather for."`
}

// weatherResponse is the output of the weather observation.
type weatherResponse struct {
	Location string `json:"location"`
	Report   string `json:"report"`
}

// logRequest is the input for the log action.
type logRequest struct {
	Message string `json:"message" jsonschema:"description=The message to append to the weather log."`
}

// logResponse is the output of the log action.
type logResponse struct {
	Message string `json:"message"`
}

// NewTool creates the weather-logger tool.
func NewTool(opts ...Option) (*tool.Tool, error) {
	cfg := &config{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		logPath:    defaultLogPath,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	w := &weatherLogger{
		client:  cfg.httpClient,
		baseURL: cfg.baseURL,
		logPath: cfg.logPath,
	}
	return tool.New("weather_logger",
		tool.WithDescription("Checks the current weather for a location and logs reports to a local file."),
		tool.WithCapabilities(
			tool.Observation(w.weather,
				tool.WithName("weather"),
				tool.WithCapabilityDescription("Checks the current weather for a location using a wttr.in-style service.")),
			tool.Action(w.log,
				tool.WithName("log"),
				tool.WithCapabilityDescription("Appends a message to the weather log file.")),
		),
		tool.WithCloser(w.close),
	)
}

type weatherLogger struct {
	client  *http.Client
	baseURL string
	logPath string
}

func (w *weatherLogger) weather(ctx context.Context, req weatherRequest) (weatherResponse, error) {
	if req.Location == "" {
		return weatherResponse{}, fmt.Errorf("location must not be empty")
	}
	endpoint := fmt.Sprintf("%s/%s?format=%s",
		w.baseURL, url.PathEscape(req.Location), url.QueryEscape("%l: %C %t"))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weatherResponse{}, fmt.Errorf("building weather request: %w", err)
	}
	resp, err := w.client.Do(httpReq)
	if err != nil {
		return weatherResponse{}, fmt.Errorf("fetching weather for %q: %w", req.Location, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return weatherResponse{}, fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return weatherResponse{}, fmt.Errorf("reading weather response: %w", err)
	}
	return weatherResponse{Location: req.Location, Report: string(body)}, nil
}

// log appends exactly one record per call. The file handle is scoped to the
// call and released on every exit path.
func (w *weatherLogger) log(_ context.Context, req logRequest) (logResponse, error) {
	file, err := os.OpenFile(w.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return logResponse{}, fmt.Errorf("opening log file %q: %w", w.logPath, err)
	}
	defer file.Close()
	if _, err := file.WriteString(recordSeparator + req.Message + "\n"); err != nil {
		return logResponse{}, fmt.Errorf("writing to log file %q: %w", w.logPath, err)
	}
	return logResponse{Message: fmt.Sprintf("Logged message to %s", w.logPath)}, nil
}

func (w *weatherLogger) close() error {
	// No long-lived resources: the log file is opened per call.
	return nil
}
