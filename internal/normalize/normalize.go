// Package normalize coerces loosely formatted model output fields into
// display-safe canonical strings. Every function is pure and total: bad
// input degrades to the "N/A" sentinel or to absence, never to an error.
package normalize

import (
	"regexp"
	"strings"
)

// NotAvailable is the sentinel for fields the model could not supply.
const NotAvailable = "N/A"

var (
	ratingInline = regexp.MustCompile(`[0-5]\.\d`)
	ratingExact  = regexp.MustCompile(`^[0-5](\.\d)?$`)
	ratingWhole  = regexp.MustCompile(`^[1-5]$`)

	downloadNoise = regexp.MustCompile(`(?i)downloads|over|approx|more than|installations`)
	wordMillion   = regexp.MustCompile(`(?i)million`)
	wordBillion   = regexp.MustCompile(`(?i)billion`)
	wordThousand  = regexp.MustCompile(`(?i)thousand`)

	// Alternatives, highest confidence first: comma-grouped integers,
	// magnitude-suffixed numbers, bare integers with a trailing '+', and
	// bare integers of at least 3 digits. Short plain numbers like "50"
	// are deliberately not matched; they are more often ratings or review
	// counts than download figures.
	downloadToken = regexp.MustCompile(`(?i)(\d{1,3}(,\d{3})+\+?)|(\d+(\.\d+)?\s*[MBK]\+?)|(\d+\+)|(\d{3,}\+?)`)

	whitespace = regexp.MustCompile(`\s`)

	// "Oct 24, 2024", "2024-10-24" or "24 October 2024". Hedges like
	// "recently" match none of these and stay absent.
	datePattern = regexp.MustCompile(`(?i)([A-Za-z]{3,}\s\d{1,2},\s\d{4})|(\d{4}-\d{2}-\d{2})|(\d{1,2}\s[A-Za-z]{3,}\s\d{4})`)
)

// Rating extracts a D.D star rating from raw. When raw carries no usable
// rating, fallback rescues it, but only if fallback itself looks like a
// rating; this guards against a download count that leaked into the rating
// slot upstream. A bare integer 1-5 is widened to one decimal. Anything
// else yields "N/A".
func Rating(raw, fallback string) string {
	if m := ratingInline.FindString(raw); m != "" {
		return m
	}
	if fallback != "" && fallback != NotAvailable && ratingExact.MatchString(fallback) {
		return fallback
	}
	if ratingWhole.MatchString(raw) {
		return raw + ".0"
	}
	return NotAvailable
}

// Downloads extracts a download-count token such as "1,000,000+", "100M+"
// or "500+" from free text. Magnitude words are folded to suffix letters
// first, then the first token match wins; the result is uppercased with
// internal whitespace removed.
func Downloads(raw string) string {
	if raw == "" || raw == NotAvailable {
		return NotAvailable
	}

	val := strings.TrimSpace(downloadNoise.ReplaceAllString(raw, ""))
	val = wordMillion.ReplaceAllString(val, "M")
	val = wordBillion.ReplaceAllString(val, "B")
	val = wordThousand.ReplaceAllString(val, "k")

	m := downloadToken.FindString(val)
	if m == "" {
		return NotAvailable
	}
	return whitespace.ReplaceAllString(strings.ToUpper(m), "")
}

// Date extracts a concrete update date from raw, accepting "Month Day,
// Year", ISO "YYYY-MM-DD" or "Day Month Year". Free-text hedges such as
// "recently updated" yield ok=false: an absent date is rendered
// conditionally by callers and must not be fabricated.
func Date(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if m := datePattern.FindString(raw); m != "" {
		return m, true
	}
	return "", false
}
