package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/goodfoods/goodfoods/internal/config"
	"github.com/goodfoods/goodfoods/internal/directory"
)

var (
	seedForce bool
	seedRand  int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate the branch catalogue",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVarP(&seedForce, "force", "f", false, "Overwrite an existing catalogue")
	seedCmd.Flags().Int64Var(&seedRand, "rand-seed", 0, "Seed for catalogue randomisation (0 = fixed layout)")
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	path := cfg.DirectoryPath()
	if _, err := os.Stat(path); err == nil && !seedForce {
		return fmt.Errorf("catalogue already exists at %s (use --force to overwrite)", path)
	}

	rng := rand.New(rand.NewSource(seedRand))
	branches := directory.Seed(rng)
	if err := directory.Save(path, branches); err != nil {
		return fmt.Errorf("write catalogue: %w", err)
	}

	dir := directory.New(branches)
	fmt.Printf("✓ Wrote %d branches to %s\n", len(branches), path)
	fmt.Printf("  Cities: %v\n", dir.Cities())
	return nil
}
