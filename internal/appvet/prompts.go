package appvet

import "fmt"

const searchPromptTemplate = `Perform a Google Search for: "site:play.google.com/store/apps/details %s".

Task: Find REAL Android apps listed on the Google Play Store (play.google.com).
Strictly extract details from the search snippets.

Return a JSON array of the top 3 results.

Format:
[
  {
    "name": "Exact App Name",
    "developer": "Developer Name",
    "description": "Short description.",
    "rating": "4.5"
  }
]`

const analyzePromptTemplate = `Analyze the Android app "%s" by "%s".

Use Google Search to find the official Google Play Store page.

Extract the following statistics:
1. Rating: The star rating (e.g., 4.5).
2. Downloads: The number of downloads (e.g., "100M+", "1B+", "50k+").
3. Last Updated: The date of the last update.
4. Review Summary: Summarize user sentiment.
5. Authenticity: Is this the official app?
6. Background: Developer info.

Return strictly valid JSON:
{
  "reviewSummary": "...",
  "authenticity": "...",
  "background": "...",
  "rating": "4.5",
  "downloads": "100M+",
  "lastUpdated": "Oct 24, 2024"
}`

// The math-notation instruction matters: chat answers are rendered as plain
// text and raw LaTeX reads as garbage there.
const chatSystemTemplate = `You are an expert app safety assistant.
App: "%s" by "%s".

Stats:
- Rating: %s
- Downloads: %s

Analysis Context:
- Reviews: %s
- Safety: %s
- Dev: %s

Answer concisely. Do not use LaTeX or markdown math syntax (like $ or \frac). Use plain text or simple arithmetic notation for formulas.`

func searchPrompt(query string) string {
	return fmt.Sprintf(searchPromptTemplate, query)
}

func analyzePrompt(hit SearchHit) string {
	return fmt.Sprintf(analyzePromptTemplate, hit.Name, hit.Developer)
}

func chatSystemContext(hit SearchHit, analysis Analysis) string {
	return fmt.Sprintf(chatSystemTemplate,
		hit.Name, hit.Developer,
		analysis.Rating, analysis.Downloads,
		analysis.ReviewSummary, analysis.Authenticity, analysis.Background)
}
