// appsentry vets Android applications for safety and authenticity using a
// web-search-grounded Gemini model.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"appsentry/internal/appvet"
	"appsentry/internal/config"
	"appsentry/internal/gemini"
	"appsentry/internal/logging"
)

var (
	// Global flags
	verbose    bool
	apiKey     string
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "appsentry",
	Short: "appsentry - AI-grounded Android app safety reports",
	Long: `appsentry searches the Google Play Store for an app by name, builds a
structured safety and authenticity report for it from web-search-grounded
model output, and answers follow-up questions grounded in that report.

Set GEMINI_API_KEY (or --api-key) before use.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// buildVetter loads config and wires the Gemini client into a Vetter.
func buildVetter() (*appvet.Vetter, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.LLM.APIKey = apiKey
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := gemini.NewClientWithConfig(gemini.Config{
		APIKey:          cfg.LLM.APIKey,
		BaseURL:         cfg.LLM.BaseURL,
		Model:           cfg.LLM.Model,
		Timeout:         cfg.GetLLMTimeout(),
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Logger:          logger,
	})
	return appvet.NewWithConfig(client, appvet.Config{
		MaxContextChars: cfg.Chat.MaxContextChars,
		Logger:          logger,
	}), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (overrides config and GEMINI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "appsentry.yaml", "path to config file")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(vetCmd)
	rootCmd.AddCommand(chatCmd)
}
