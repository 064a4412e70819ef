package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRating(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback string
		want     string
	}{
		{"plain decimal", "4.5", "", "4.5"},
		{"decimal inside sentence", "The app holds a 4.3 star rating", "", "4.3"},
		{"inline match beats fallback", "rated 3.8 overall", "4.9", "3.8"},
		{"fallback rescues empty raw", "", "3.5", "3.5"},
		{"fallback rescues junk raw", "unknown", "4", "4"},
		{"fallback rejected when not a rating", "", "100", "N/A"},
		{"fallback rejected when sentinel", "", "N/A", "N/A"},
		{"bare integer widened", "4", "", "4.0"},
		{"bare integer with bad fallback", "4", "100", "4.0"},
		{"zero not widened", "0", "", "N/A"},
		{"out of range decimal", "9.5", "", "N/A"},
		{"empty everything", "", "", "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rating(tt.raw, tt.fallback))
		})
	}
}

func TestDownloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"comma grouped with noise", "Over 1,000,000 Downloads", "1,000,000"},
		{"magnitude word", "100 million+", "100M+"},
		{"magnitude suffix", "100M+", "100M+"},
		{"lowercase suffix", "500k+", "500K+"},
		{"decimal with word", "1.5 billion downloads", "1.5B"},
		{"spaced lowercase suffix", "100 m+", "100M+"},
		{"plus sign integer", "500+", "500+"},
		{"plain long number", "5000", "5000"},
		{"short number rejected", "42", "N/A"},
		{"sentinel passthrough", "N/A", "N/A"},
		{"empty", "", "N/A"},
		{"prose only", "many installations", "N/A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Downloads(tt.raw))
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"month day year", "Oct 24, 2024", "Oct 24, 2024", true},
		{"full month name", "October 24, 2024", "October 24, 2024", true},
		{"iso date", "2024-10-24", "2024-10-24", true},
		{"day month year", "24 October 2024", "24 October 2024", true},
		{"date inside sentence", "Last updated on Oct 24, 2024 per the store", "Oct 24, 2024", true},
		{"hedge rejected", "Recently updated", "", false},
		{"unknown rejected", "Unknown", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Date(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Re-running a normalizer on its own output must be a no-op; the dashboard
// renders these values and may feed them back through the pipeline.
func TestNormalizersIdempotent(t *testing.T) {
	for _, r := range []string{"4.5", "3", "rated 4.2", "N/A", ""} {
		once := Rating(r, "")
		assert.Equal(t, once, Rating(once, ""), "rating %q", r)
	}
	for _, d := range []string{"Over 1,000,000 Downloads", "100 million+", "500+", "42", "N/A"} {
		once := Downloads(d)
		assert.Equal(t, once, Downloads(once), "downloads %q", d)
	}
	for _, d := range []string{"Oct 24, 2024", "2024-10-24", "recently"} {
		once, ok := Date(d)
		if ok {
			again, okAgain := Date(once)
			assert.True(t, okAgain)
			assert.Equal(t, once, again, "date %q", d)
		}
	}
}
