package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dikshacr123/research-agent/internal/logger"
	"github.com/dikshacr123/research-agent/internal/persist"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List saved account plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := persist.NewStore(cfg.DataDir)
		if err != nil {
			return err
		}

		keys, err := store.ListCompanies()
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Println("No saved account plans.")
		} else {
			for _, key := range keys {
				fmt.Println(key)
			}
		}

		for _, company := range unplanned(cfg.DataDir, keys) {
			fmt.Printf("%s (researched, no plan yet)\n", company)
		}
		return nil
	},
}

// unplanned returns companies with cached research but no saved plan.
func unplanned(dataDir string, planKeys []string) []string {
	cache, err := persist.NewResearchCache(filepath.Join(dataDir, "research.db"))
	if err != nil {
		logger.Debug("research cache unavailable: %v", err)
		return nil
	}
	defer cache.Close()

	companies, err := cache.Companies()
	if err != nil {
		logger.Debug("list researched companies: %v", err)
		return nil
	}

	saved := make(map[string]bool, len(planKeys))
	for _, k := range planKeys {
		saved[k] = true
	}
	var out []string
	for _, company := range companies {
		if !saved[persist.Key(company)] {
			out = append(out, company)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(plansCmd)
}
