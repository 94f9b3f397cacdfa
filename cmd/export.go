package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dikshacr123/research-agent/internal/persist"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <company>",
	Short: "Export a saved account plan as a snapshot file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := persist.NewStore(cfg.DataDir)
		if err != nil {
			return err
		}

		company := strings.Join(args, " ")
		p, err := store.LoadDocument(persist.Key(company))
		if err != nil {
			return fmt.Errorf("no saved plan for %q: %w", company, err)
		}

		snap := persist.NewSnapshot(p)
		if exportOutput != "" {
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(exportOutput, data, 0644); err != nil {
				return err
			}
			fmt.Println(exportOutput)
			return nil
		}

		path, err := store.WriteSnapshot(snap)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write the snapshot to this file")
	rootCmd.AddCommand(exportCmd)
}
