package extract

import (
	"encoding/json"
	"testing"
)

func TestJSON_Robustness(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{
			name:   "clean object",
			input:  `{"name": "Signal", "developer": "Signal Foundation"}`,
			wantOK: true,
		},
		{
			name:   "clean array",
			input:  `[{"name": "Signal"}, {"name": "Telegram"}]`,
			wantOK: true,
		},
		{
			name:   "json fenced block",
			input:  "```json\n{\"rating\": \"4.5\"}\n```",
			wantOK: true,
		},
		{
			name:   "unlabeled fenced block",
			input:  "```\n{\"rating\": \"4.5\"}\n```",
			wantOK: true,
		},
		{
			name:   "fenced block with leading prose",
			input:  "Here you go:\n```json\n{\"rating\": \"4.5\"}\n```",
			wantOK: true,
		},
		{
			name:   "prefix and suffix prose",
			input:  `Sure! {"rating": "4.5"} Let me know if you need more.`,
			wantOK: true,
		},
		{
			name:   "array surrounded by prose",
			input:  `I found these: [{"name": "Signal"}] out of 3 candidates.`,
			wantOK: true,
		},
		{
			name:   "nested braces",
			input:  `Result: {"outer": {"inner": [1, 2, 3]}} done`,
			wantOK: true,
		},
		{
			name:   "pure prose",
			input:  "I could not find any matching applications.",
			wantOK: false,
		},
		{
			name:   "truncated object",
			input:  `{"name": "Signal", "developer":`,
			wantOK: false,
		},
		{
			name:   "empty input",
			input:  "",
			wantOK: false,
		},
		{
			name:   "whitespace only",
			input:  "   \n\t  ",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, ok := JSON(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("JSON() ok = %v, want %v (raw %q)", ok, tt.wantOK, raw)
			}
			if ok && !json.Valid(raw) {
				t.Errorf("JSON() returned invalid payload: %q", raw)
			}
		})
	}
}

func TestJSON_FencedBlockWinsOverProseBraces(t *testing.T) {
	input := "Ignore {this}.\n```json\n{\"rating\": \"4.5\"}\n```"
	raw, ok := JSON(input)
	if !ok {
		t.Fatal("expected a payload")
	}
	var got map[string]string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["rating"] != "4.5" {
		t.Errorf("picked the wrong candidate: %v", got)
	}
}

func TestJSON_BadFenceFallsBackToBraces(t *testing.T) {
	// The fenced block is truncated, but a complete object follows.
	input := "```json\nnot json at all\n```\nSee also {\"rating\": \"4.0\"}"
	raw, ok := JSON(input)
	if !ok {
		t.Fatal("expected the brace-span fallback to recover a payload")
	}
	if !json.Valid(raw) {
		t.Errorf("invalid payload: %q", raw)
	}
}
