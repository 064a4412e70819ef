package appvet

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"appsentry/internal/extract"
	"appsentry/internal/normalize"
)

// Narrative fallbacks shown when the model omits a field entirely. The
// dashboard relies on these being non-empty.
const (
	fallbackReviewSummary = "No review summary could be generated."
	fallbackAuthenticity  = "Authenticity check could not be completed."
	fallbackBackground    = "Developer background information unavailable."
)

// noResponseFallback is returned verbatim when a chat completion carries no
// text.
const noResponseFallback = "No response generated."

// searchRating accepts "4" as well as "4.5"; anything outside 0-5, such as
// a download figure the model put in the wrong slot, is discarded.
var searchRating = regexp.MustCompile(`[0-5](\.\d)?`)

// Config holds Vetter settings.
type Config struct {
	// MaxContextChars bounds system context plus chat history per turn.
	// Defaults to DefaultMaxContextChars.
	MaxContextChars int
	// Logger, when nil, defaults to a no-op logger.
	Logger *zap.Logger
}

// Vetter orchestrates search, analysis and grounded chat against the
// completion service. It holds no mutable session state: history is owned
// by the caller and every method is safe for concurrent use.
type Vetter struct {
	client          CompletionClient
	maxContextChars int
	logger          *zap.Logger
}

// New creates a Vetter with default settings.
func New(client CompletionClient) *Vetter {
	return NewWithConfig(client, Config{})
}

// NewWithConfig creates a Vetter with custom settings.
func NewWithConfig(client CompletionClient, cfg Config) *Vetter {
	if cfg.MaxContextChars <= 0 {
		cfg.MaxContextChars = DefaultMaxContextChars
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Vetter{
		client:          client,
		maxContextChars: cfg.MaxContextChars,
		logger:          cfg.Logger,
	}
}

// Search asks the grounded model for up to 3 Play Store candidates matching
// query. An unparseable or empty payload yields an empty slice, not an
// error; only a failed upstream call is a SearchError.
func (v *Vetter) Search(ctx context.Context, query string) ([]SearchHit, error) {
	reqID := uuid.NewString()
	v.logger.Debug("search started",
		zap.String("request_id", reqID),
		zap.String("query", query))

	completion, err := v.client.Generate(ctx, CompletionRequest{
		Prompt:       searchPrompt(query),
		EnableSearch: true,
	})
	if err != nil {
		v.logger.Error("search request failed",
			zap.String("request_id", reqID), zap.Error(err))
		return nil, &SearchError{Query: query, Err: err}
	}

	raw, ok := extract.JSON(completion.Text)
	if !ok {
		v.logger.Warn("search response carried no JSON payload",
			zap.String("request_id", reqID),
			zap.Int("response_len", len(completion.Text)))
		return []SearchHit{}, nil
	}

	var hits []SearchHit
	if err := json.Unmarshal(raw, &hits); err != nil {
		v.logger.Warn("search payload did not match the hit shape",
			zap.String("request_id", reqID), zap.Error(err))
		return []SearchHit{}, nil
	}

	for i := range hits {
		if hits[i].Rating == "" {
			hits[i].Rating = normalize.NotAvailable
			continue
		}
		if m := searchRating.FindString(hits[i].Rating); m != "" {
			hits[i].Rating = m
		} else {
			hits[i].Rating = normalize.NotAvailable
		}
	}

	v.logger.Info("search completed",
		zap.String("request_id", reqID),
		zap.Int("hits", len(hits)))
	return hits, nil
}

// Analyze produces the structured safety report for hit. The hit's search
// stage rating serves as a fallback when the deep analysis fails to find
// one. Grounding URLs from the completion's citation metadata are
// de-duplicated in insertion order.
func (v *Vetter) Analyze(ctx context.Context, hit SearchHit) (*Analysis, error) {
	reqID := uuid.NewString()
	v.logger.Debug("analysis started",
		zap.String("request_id", reqID),
		zap.String("app", hit.Name),
		zap.String("developer", hit.Developer))

	completion, err := v.client.Generate(ctx, CompletionRequest{
		Prompt:       analyzePrompt(hit),
		EnableSearch: true,
	})
	if err != nil {
		v.logger.Error("analysis request failed",
			zap.String("request_id", reqID), zap.Error(err))
		return nil, &AnalysisError{App: hit.Name, Err: err}
	}

	raw, ok := extract.JSON(completion.Text)
	if !ok {
		v.logger.Error("analysis response carried no JSON payload",
			zap.String("request_id", reqID),
			zap.Int("response_len", len(completion.Text)))
		return nil, &AnalysisError{App: hit.Name, Err: ErrNoPayload}
	}

	var analysis Analysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, &AnalysisError{App: hit.Name, Err: err}
	}

	cleanAnalysis(&analysis, hit.Rating)
	analysis.GroundingURLs = dedupe(completion.GroundingURLs)

	v.logger.Info("analysis completed",
		zap.String("request_id", reqID),
		zap.String("rating", analysis.Rating),
		zap.String("downloads", analysis.Downloads),
		zap.Int("grounding_urls", len(analysis.GroundingURLs)))
	return &analysis, nil
}

// Chat answers message in the context of hit's analysis. History is the
// full ordered conversation so far; it is re-trimmed to the character
// budget on every call. The completion text is returned verbatim, or a
// fixed fallback string when the model produced none.
func (v *Vetter) Chat(ctx context.Context, history []ChatTurn, message string, hit SearchHit, analysis Analysis) (string, error) {
	reqID := uuid.NewString()

	system := chatSystemContext(hit, analysis)
	window := TrimWindow(history, system+message, v.maxContextChars)
	v.logger.Debug("chat turn started",
		zap.String("request_id", reqID),
		zap.String("app", hit.Name),
		zap.Int("history_turns", len(history)),
		zap.Int("window_turns", len(window)))

	completion, err := v.client.Generate(ctx, CompletionRequest{
		System:  system,
		History: window,
		Prompt:  message,
	})
	if err != nil {
		v.logger.Error("chat request failed",
			zap.String("request_id", reqID), zap.Error(err))
		return "", &ChatError{App: hit.Name, Err: err}
	}
	if completion.Text == "" {
		return noResponseFallback, nil
	}

	v.logger.Info("chat turn completed",
		zap.String("request_id", reqID),
		zap.Int("response_len", len(completion.Text)))
	return completion.Text, nil
}

// cleanAnalysis applies the field normalizers in place. It never fails: a
// field that cannot be normalized degrades to its sentinel.
func cleanAnalysis(a *Analysis, fallbackRating string) {
	if a.ReviewSummary == "" {
		a.ReviewSummary = fallbackReviewSummary
	}
	if a.Authenticity == "" {
		a.Authenticity = fallbackAuthenticity
	}
	if a.Background == "" {
		a.Background = fallbackBackground
	}
	a.Rating = normalize.Rating(a.Rating, fallbackRating)
	a.Downloads = normalize.Downloads(a.Downloads)
	a.LastUpdated, _ = normalize.Date(a.LastUpdated)
}

func dedupe(urls []string) []string {
	if len(urls) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
