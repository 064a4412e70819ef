// Package gemini is a thin client for the Google Gemini generateContent
// REST API, supporting Google Search grounding. It implements the
// completion boundary the appvet package orchestrates against.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"appsentry/internal/appvet"
)

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	MaxOutputTokens int
	Logger          *zap.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
		Model:   "gemini-2.5-flash",
		Timeout: 2 * time.Minute,
	}
}

var _ appvet.CompletionClient = (*Client)(nil)

// Client talks to the Gemini API. Each call is a single attempt: failures
// propagate to the caller, which owns any retry decision.
type Client struct {
	apiKey          string
	baseURL         string
	model           string
	maxOutputTokens int
	httpClient      *http.Client
	logger          *zap.Logger
}

// NewClient creates a client with default config.
func NewClient(apiKey string) *Client {
	return NewClientWithConfig(DefaultConfig(apiKey))
}

// NewClientWithConfig creates a client with custom config.
func NewClientWithConfig(config Config) *Client {
	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultConfig("").BaseURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		apiKey:          config.APIKey,
		baseURL:         baseURL,
		model:           model,
		maxOutputTokens: config.MaxOutputTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Model returns the model used for completions.
func (c *Client) Model() string {
	return c.model
}

// Generate sends one completion request and returns the response text plus
// any grounding URLs from the citation metadata. An empty candidate list is
// not an error here: the caller decides what an empty completion means for
// its operation.
func (c *Client) Generate(ctx context.Context, req appvet.CompletionRequest) (*appvet.Completion, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	startTime := time.Now()
	if c.apiKey == "" {
		return nil, fmt.Errorf("API key not configured")
	}

	reqBody := c.buildRequest(req)
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp Response
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if geminiResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", geminiResp.Error.Message)
	}

	completion := &appvet.Completion{}
	if len(geminiResp.Candidates) > 0 {
		var result strings.Builder
		for _, part := range geminiResp.Candidates[0].Content.Parts {
			result.WriteString(part.Text)
		}
		completion.Text = strings.TrimSpace(result.String())

		if gm := geminiResp.Candidates[0].GroundingMetadata; gm != nil {
			for _, chunk := range gm.GroundingChunks {
				if chunk.Web != nil && chunk.Web.URI != "" {
					completion.GroundingURLs = append(completion.GroundingURLs, chunk.Web.URI)
				}
			}
			if len(completion.GroundingURLs) > 0 {
				c.logger.Debug("grounded response",
					zap.Int("grounding_urls", len(completion.GroundingURLs)),
					zap.Strings("queries", gm.WebSearchQueries))
			}
		}
	}

	c.logger.Debug("generate completed",
		zap.String("model", c.model),
		zap.Duration("elapsed", time.Since(startTime)),
		zap.Int("response_len", len(completion.Text)),
		zap.Int("total_tokens", geminiResp.UsageMetadata.TotalTokenCount))
	return completion, nil
}

func (c *Client) buildRequest(req appvet.CompletionRequest) Request {
	contents := make([]Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, Content{
			Role:  string(turn.Role),
			Parts: []Part{{Text: turn.Text}},
		})
	}
	contents = append(contents, Content{
		Role:  string(appvet.RoleUser),
		Parts: []Part{{Text: req.Prompt}},
	})

	out := Request{Contents: contents}
	if c.maxOutputTokens > 0 {
		out.GenerationConfig = &GenerationConfig{MaxOutputTokens: c.maxOutputTokens}
	}
	if req.System != "" {
		out.SystemInstruction = &Content{
			Parts: []Part{{Text: req.System}},
		}
	}
	if req.EnableSearch {
		out.Tools = []Tool{{GoogleSearch: &GoogleSearch{}}}
	}
	return out
}
