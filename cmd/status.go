package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goodfoods/goodfoods/internal/config"
	"github.com/goodfoods/goodfoods/internal/directory"
	"github.com/goodfoods/goodfoods/internal/ledger"
	"github.com/goodfoods/goodfoods/internal/providers"
	"github.com/goodfoods/goodfoods/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show GoodFoods status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	fmt.Printf("%s GoodFoods Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:     %s %s\n", cfgPath, cfgMark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	ws := cfg.WorkspacePath()
	_, wsErr := os.Stat(ws)
	wsMark := "✗"
	if wsErr == nil {
		wsMark = "✓"
	}
	fmt.Printf("Workspace:  %s %s\n", ws, wsMark)
	fmt.Printf("Model:      %s\n", cfg.Agents.Defaults.Model)

	dir := directory.Load(cfg.DirectoryPath())
	fmt.Printf("Branches:   %d (%s)\n", dir.Len(), cfg.DirectoryPath())

	store := ledger.New(cfg.LedgerPath())
	if reservations, err := store.List(); err == nil {
		fmt.Printf("Ledger:     %d reservations (%s)\n", len(reservations), cfg.LedgerPath())
	} else {
		fmt.Printf("Ledger:     unreadable (%v)\n", err)
	}

	if sessions, err := session.NewManager(ws); err == nil {
		fmt.Printf("Sessions:   %d\n\n", len(sessions.ListSessions()))
	} else {
		fmt.Printf("Sessions:   unreadable (%v)\n\n", err)
	}

	fmt.Println("Providers:")
	for _, spec := range providers.PROVIDERS {
		p := cfg.ProviderByName(spec.Name)
		if p == nil {
			continue
		}
		label := spec.Label()
		switch {
		case p.APIKey != "":
			fmt.Printf("  %-20s ✓\n", label)
		case spec.EnvKey != "" && os.Getenv(spec.EnvKey) != "":
			fmt.Printf("  %-20s ✓ (env %s)\n", label, spec.EnvKey)
		default:
			fmt.Printf("  %-20s (not set)\n", label)
		}
	}

	fmt.Println("\nChannels:")
	fmt.Printf("  %-20s %s\n", "Telegram", yesNo(cfg.Channels.Telegram.Enabled))
	fmt.Printf("  %-20s %s\n", "Slack", yesNo(cfg.Channels.Slack.Enabled))
	fmt.Printf("  %-20s %s (port %d)\n", "Web", yesNo(cfg.Channels.Web.Enabled), cfg.Gateway.Port)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "enabled"
	}
	return "disabled"
}
