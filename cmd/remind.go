package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goodfoods/goodfoods/internal/bus"
	"github.com/goodfoods/goodfoods/internal/config"
	"github.com/goodfoods/goodfoods/internal/ledger"
	"github.com/goodfoods/goodfoods/internal/reminder"
)

// remindCmd prints today's digest without going through the scheduler.
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Print today's reservation digest",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(config.ConfigPath())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		store := ledger.New(cfg.LedgerPath())
		svc := reminder.NewService(&cfg.Reminders, store, bus.NewChannelBus(1))

		digest, count, err := svc.Digest()
		if err != nil {
			return fmt.Errorf("build digest: %w", err)
		}
		if count == 0 {
			fmt.Println("No reservations today.")
			return nil
		}
		fmt.Println(digest)
		return nil
	},
}
