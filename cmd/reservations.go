package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goodfoods/goodfoods/internal/config"
	"github.com/goodfoods/goodfoods/internal/ledger"
)

var reservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "Inspect the reservation ledger",
}

func init() {
	reservationsCmd.AddCommand(reservationsListCmd)
	reservationsCmd.AddCommand(reservationsShowCmd)
}

var reservationsDate string

var reservationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reservations",
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := openLedger()
		if err != nil {
			return err
		}

		all, err := store.List()
		if err != nil {
			return fmt.Errorf("read ledger: %w", err)
		}

		shown := 0
		for _, r := range all {
			if reservationsDate != "" && r.Date != reservationsDate {
				continue
			}
			fmt.Printf("%-16s %s %s  %-24s party of %-2d Table %-2d %s (%s)\n",
				r.ReservationID, r.Date, r.Time, r.BranchName, r.PartySize, r.TableNumber, r.CustomerName, r.Status)
			shown++
		}
		if shown == 0 {
			fmt.Println("No reservations.")
		}
		return nil
	},
}

var reservationsShowCmd = &cobra.Command{
	Use:   "show <reservation-id>",
	Short: "Show one reservation",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, err := openLedger()
		if err != nil {
			return err
		}

		r, ok, err := store.Get(args[0])
		if err != nil {
			return fmt.Errorf("read ledger: %w", err)
		}
		if !ok {
			return fmt.Errorf("no reservation %q", args[0])
		}

		fmt.Printf("Reservation:  %s (%s)\n", r.ReservationID, r.Status)
		fmt.Printf("Guest:        %s (%s)\n", r.CustomerName, r.CustomerPhone)
		fmt.Printf("Branch:       %s, %s\n", r.BranchName, r.BranchLocation)
		fmt.Printf("When:         %s (%s) at %s\n", r.Date, r.DayOfWeek, r.Time)
		fmt.Printf("Party:        %d, Table %d\n", r.PartySize, r.TableNumber)
		if r.Occasion != "" {
			fmt.Printf("Occasion:     %s\n", r.Occasion)
		}
		fmt.Printf("Booked at:    %s\n", r.CreatedAt)
		return nil
	},
}

func init() {
	reservationsListCmd.Flags().StringVarP(&reservationsDate, "date", "d", "", "Only show reservations on this date (YYYY-MM-DD)")
}

func openLedger() (*ledger.Ledger, error) {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return ledger.New(cfg.LedgerPath()), nil
}
