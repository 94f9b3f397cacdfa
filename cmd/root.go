package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dikshacr123/research-agent/internal/config"
	"github.com/dikshacr123/research-agent/internal/logger"
)

var (
	logLevel   string
	configPath string
	dataDir    string
)

var rootCmd = &cobra.Command{
	Use:   "research-agent",
	Short: "Company research assistant",
	Long: `research-agent researches companies and builds structured account plans.

Commands:
  research-agent            Start an interactive chat session (default)
  research-agent research   Run one-shot company research
  research-agent plans      List saved account plans
  research-agent export     Export a saved account plan`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: runChat,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logger.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: .research-agent.yaml next to the executable)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"Directory for plans, history and exports (overrides config)")
}

// loadConfig resolves the effective configuration from flags, file, and env.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if !cfg.HasCredential() {
		logger.Warn("no GEMINI_API_KEY configured; research calls will fail until one is set")
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
