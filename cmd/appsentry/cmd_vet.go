package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"appsentry/internal/appvet"
)

var vetPick int

var vetCmd = &cobra.Command{
	Use:   "vet <app name>",
	Short: "Search, then build a safety report for one candidate",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vetter, err := buildVetter()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		hit, analysis, err := searchAndAnalyze(cmd.Context(), vetter, query, vetPick)
		if err != nil {
			return err
		}
		if hit == nil {
			fmt.Println("No apps found. The model may be busy; try again.")
			return nil
		}

		printReport(*hit, *analysis)
		return nil
	},
}

// searchAndAnalyze runs the search and analyzes the picked candidate.
// A nil hit means the search came back empty, which is not an error.
func searchAndAnalyze(ctx context.Context, vetter *appvet.Vetter, query string, pick int) (*appvet.SearchHit, *appvet.Analysis, error) {
	hits, err := vetter.Search(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	if len(hits) == 0 {
		return nil, nil, nil
	}
	if pick < 1 || pick > len(hits) {
		return nil, nil, fmt.Errorf("pick %d out of range: search returned %d candidates", pick, len(hits))
	}

	hit := hits[pick-1]
	analysis, err := vetter.Analyze(ctx, hit)
	if err != nil {
		return nil, nil, err
	}
	return &hit, analysis, nil
}

func printReport(hit appvet.SearchHit, analysis appvet.Analysis) {
	fmt.Printf("%s by %s\n", hit.Name, hit.Developer)
	fmt.Println(strings.Repeat("─", 60))
	fmt.Printf("Rating:       %s\n", analysis.Rating)
	fmt.Printf("Downloads:    %s\n", analysis.Downloads)
	if analysis.LastUpdated != "" {
		fmt.Printf("Last updated: %s\n", analysis.LastUpdated)
	}
	fmt.Println()
	fmt.Printf("Reviews:      %s\n", analysis.ReviewSummary)
	fmt.Printf("Authenticity: %s\n", analysis.Authenticity)
	fmt.Printf("Developer:    %s\n", analysis.Background)

	if len(analysis.GroundingURLs) > 0 {
		fmt.Println()
		fmt.Println("Sources:")
		for _, url := range analysis.GroundingURLs {
			fmt.Printf("  - %s\n", url)
		}
	}
}

func init() {
	vetCmd.Flags().IntVar(&vetPick, "pick", 1, "which search candidate to analyze (1-3)")
}
