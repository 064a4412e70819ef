package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"appsentry/internal/appvet"
)

var chatPick int

var chatCmd = &cobra.Command{
	Use:   "chat <app name>",
	Short: "Analyze an app, then chat about the report",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vetter, err := buildVetter()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		fmt.Printf("Analyzing %q...\n", query)
		hit, analysis, err := searchAndAnalyze(cmd.Context(), vetter, query, chatPick)
		if err != nil {
			return err
		}
		if hit == nil {
			fmt.Println("No apps found. The model may be busy; try again.")
			return nil
		}

		printReport(*hit, *analysis)
		fmt.Println()
		fmt.Println("Ask about this app. Type 'quit' to exit.")

		return chatLoop(cmd, vetter, *hit, *analysis)
	},
}

// chatLoop runs the grounded conversation. A failed turn is surfaced as an
// assistant-role error message in the visible history; the conversation
// itself keeps going.
func chatLoop(cmd *cobra.Command, vetter *appvet.Vetter, hit appvet.SearchHit, analysis appvet.Analysis) error {
	var history []appvet.ChatTurn
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			// EOF ends the session cleanly.
			fmt.Println()
			return nil
		}
		message := strings.TrimSpace(line)
		if message == "" {
			continue
		}
		if message == "quit" || message == "q" || message == "exit" {
			return nil
		}

		reply, err := vetter.Chat(cmd.Context(), history, message, hit, analysis)
		if err != nil {
			if cmd.Context().Err() != nil {
				return nil
			}
			logger.Warn("chat turn failed", zap.Error(err))
			reply = "Sorry, I hit an error answering that. Please try again."
		}

		fmt.Println(reply)
		history = append(history,
			appvet.ChatTurn{Role: appvet.RoleUser, Text: message},
			appvet.ChatTurn{Role: appvet.RoleModel, Text: reply},
		)
	}
}

func init() {
	chatCmd.Flags().IntVar(&chatPick, "pick", 1, "which search candidate to analyze (1-3)")
}
