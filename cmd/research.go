package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dikshacr123/research-agent/internal/logger"
	"github.com/dikshacr123/research-agent/internal/persist"
	"github.com/dikshacr123/research-agent/internal/research"
)

var researchCmd = &cobra.Command{
	Use:   "research <company>",
	Short: "Research a company and print the findings",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		company := strings.Join(args, " ")
		provider := research.NewGeminiProvider(cfg.AI)

		findings, err := provider.Search(cmd.Context(), company)
		if err != nil {
			return err
		}
		fmt.Println(findings.Content)

		cache, err := persist.NewResearchCache(filepath.Join(cfg.DataDir, "research.db"))
		if err != nil {
			logger.Warn("research cache unavailable: %v", err)
			return nil
		}
		defer cache.Close()
		if err := cache.Put(findings); err != nil {
			logger.Warn("cache research for %s: %v", company, err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(researchCmd)
}
