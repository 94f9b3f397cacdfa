package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dikshacr123/research-agent/internal/logger"
	"github.com/dikshacr123/research-agent/internal/persist"
	"github.com/dikshacr123/research-agent/internal/research"
	"github.com/dikshacr123/research-agent/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive research session",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := persist.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}

	cache, err := persist.NewResearchCache(filepath.Join(cfg.DataDir, "research.db"))
	if err != nil {
		// The session works without crash recovery; don't refuse to start.
		logger.Warn("research cache unavailable: %v", err)
		cache = nil
	} else {
		defer cache.Close()
	}

	provider := research.NewGeminiProvider(cfg.AI)

	var ctrl *session.Controller
	if cache != nil {
		ctrl = session.New(provider, store, cache)
	} else {
		ctrl = session.New(provider, store, nil)
	}
	logger.Info("session %s started (provider %s, model %s)",
		ctrl.State().ID, provider.Name(), cfg.AI.Model)

	fmt.Println("Company research assistant. Try \"Research Tesla\", \"history\" for the transcript, or \"exit\" to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if line == "history" {
			printHistory(store)
			fmt.Println()
			continue
		}

		reply := ctrl.Submit(cmd.Context(), line)
		fmt.Println(reply.Text)
		if reply.ExportPath != "" {
			logger.Info("exported plan to %s", reply.ExportPath)
		}
		fmt.Println()
	}

	return scanner.Err()
}

// printHistory dumps the stored transcript in arrival order.
func printHistory(store *persist.Store) {
	entries, err := store.History()
	if err != nil {
		fmt.Println("Couldn't read the conversation history:", err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("No conversation history yet.")
		return
	}
	for _, e := range entries {
		fmt.Printf("[%s] %s: %s\n", e.Timestamp.Format(time.RFC3339), e.Role, e.Content)
	}
}
