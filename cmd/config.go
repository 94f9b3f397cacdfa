package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dikshacr123/research-agent/internal/config"
)

var configInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the config file location, or write a starter config",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.ConfigPath()
		}

		if !configInit {
			fmt.Println(path)
			return nil
		}

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}
		if err := config.DefaultConfig().SaveToPath(path); err != nil {
			return err
		}
		fmt.Printf("Wrote starter config to %s\n", path)
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false,
		"Write a starter config file with the defaults")
	rootCmd.AddCommand(configCmd)
}
