package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"appsentry/internal/appvet"
)

var searchCmd = &cobra.Command{
	Use:   "search <app name>",
	Short: "Search the Play Store for candidate apps",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vetter, err := buildVetter()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		hits, err := vetter.Search(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Println("No apps found. The model may be busy; try again.")
			return nil
		}

		printHits(hits)
		return nil
	},
}

func printHits(hits []appvet.SearchHit) {
	for i, hit := range hits {
		fmt.Printf("%d. %s — %s (rating %s)\n", i+1, hit.Name, hit.Developer, hit.Rating)
		fmt.Printf("   %s\n", hit.Description)
	}
}
