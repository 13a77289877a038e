// Package gemini asks a Gemini model to write a workout.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lowaak/f3-workout/f3-workout-app/internal/workout"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 60 * time.Second

	// FailureMessage is the only failure text shown to the user
	FailureMessage = "Failed to generate workout. Please try again."

	maxResponseBytes = 4 << 20
)

var (
	// ErrMissingAPIKey is returned when no API key was configured
	ErrMissingAPIKey = errors.New("api key not set")
	// ErrGenerationFailed marks every failure of a generation request
	ErrGenerationFailed = errors.New("workout generation failed")
)

// Generator produces workout text for a set of focus types
type Generator interface {
	Generate(ctx context.Context, types []workout.FocusType) (string, error)
}

// Config holds the client settings. Zero values fall back to the defaults.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client talks to the generateContent REST endpoint
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     logrus.FieldLogger
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func NewClient(cfg Config, logger logrus.FieldLogger) *Client {
	if logger == nil {
		panic("logger is nil")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Model returns the model name requests are sent to
func (c *Client) Model() string {
	return c.cfg.Model
}

// Generate sends the workout prompt for types and returns the model's text.
// Every failure other than a missing key wraps ErrGenerationFailed.
func (c *Client) Generate(ctx context.Context, types []workout.FocusType) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	prompt := workout.BuildPrompt(types)
	c.logger.WithFields(logrus.Fields{
		"model": c.cfg.Model,
		"types": workout.DisplayNames(types),
	}).Info("Requesting workout")

	start := time.Now()
	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.WithError(err).Error("Workout generation failed")
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	c.logger.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("Workout received")
	return text, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, url.PathEscape(c.cfg.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("api status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("api error %d %s: %s", parsed.Error.Code, parsed.Error.Status, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api status %d", resp.StatusCode)
	}
	if parsed.PromptFeedback != nil && parsed.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", parsed.PromptFeedback.BlockReason)
	}
	if len(parsed.Candidates) == 0 {
		return "", errors.New("empty response")
	}

	var b strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", errors.New("empty response text")
	}
	return text, nil
}

// UserMessage maps err to the text shown to the user. The cause stays in the log.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return FailureMessage
}
