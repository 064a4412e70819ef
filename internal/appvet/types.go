// Package appvet turns web-search-grounded model completions into
// structured safety reports for Android applications. It owns the
// request/response contract with the upstream completion service and the
// normalization layer that makes raw model output safe to display.
package appvet

import "context"

// Role identifies the speaker of a chat turn. The values match the Gemini
// wire format so history can be forwarded without translation.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// SearchHit is one candidate application surfaced by a name search.
// Hits are immutable; a new search replaces the whole set.
type SearchHit struct {
	Name        string `json:"name"`
	Developer   string `json:"developer"`
	Description string `json:"description"`
	Rating      string `json:"rating,omitempty"`
}

// Analysis is the structured safety report for one selected application.
// The narrative fields are always non-empty; Rating and Downloads are
// normalized tokens or "N/A"; LastUpdated is a recognized date spelling or
// empty when the model hedged.
type Analysis struct {
	ReviewSummary string   `json:"reviewSummary"`
	Authenticity  string   `json:"authenticity"`
	Background    string   `json:"background"`
	Rating        string   `json:"rating"`
	Downloads     string   `json:"downloads"`
	LastUpdated   string   `json:"lastUpdated,omitempty"`
	GroundingURLs []string `json:"groundingUrls,omitempty"`
}

// ChatTurn is one exchange unit in the grounded conversation. Turns are
// appended in chronological order and never mutated.
type ChatTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// CompletionRequest is one call to the upstream completion service.
// History, when present, is forwarded as ordered turns ahead of Prompt.
type CompletionRequest struct {
	// System is the optional system instruction.
	System string
	// History is prior conversation, oldest first.
	History []ChatTurn
	// Prompt is the final user message.
	Prompt string
	// EnableSearch asks the service to ground the response in web search.
	EnableSearch bool
}

// Completion is the upstream response: the text plus any citation URLs the
// service used to ground it.
type Completion struct {
	Text          string
	GroundingURLs []string
}

// CompletionClient is the boundary to the external AI completion service.
// Implementations make exactly one attempt per call; retry policy, if any,
// belongs to the caller.
type CompletionClient interface {
	Generate(ctx context.Context, req CompletionRequest) (*Completion, error)
}
