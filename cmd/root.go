// Package cmd implements the goodfoods CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "🍽️"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "goodfoods",
	Short: logo + " GoodFoods — Restaurant Reservation Assistant",
	Long:  logo + " GoodFoods — a conversational reservation assistant for the GoodFoods restaurant chain",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(gatewayCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reservationsCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(modelsCmd)
}
