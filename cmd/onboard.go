package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/goodfoods/goodfoods/internal/config"
	"github.com/goodfoods/goodfoods/internal/directory"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize configuration, workspace, and branch catalogue",
	RunE:  runOnboard,
}

func runOnboard(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		fmt.Printf("Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
		fmt.Scanln()
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	workspace := cfg.WorkspacePath()
	if err := os.MkdirAll(workspace, 0o755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	fmt.Printf("✓ Workspace at %s\n", workspace)

	createPersonaTemplate(workspace)

	catPath := cfg.DirectoryPath()
	if _, err := os.Stat(catPath); os.IsNotExist(err) {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		branches := directory.Seed(rng)
		if err := directory.Save(catPath, branches); err != nil {
			return fmt.Errorf("seed branch catalogue: %w", err)
		}
		fmt.Printf("✓ Seeded branch catalogue with %d branches at %s\n", len(branches), catPath)
	} else {
		fmt.Printf("✓ Branch catalogue already at %s\n", catPath)
	}

	fmt.Printf("\n%s GoodFoods is ready!\n\n", logo)
	fmt.Println("Next steps:")
	fmt.Printf("  1. Add your API key to %s (or set GROQ_API_KEY)\n", cfgPath)
	fmt.Println("     Get one at: https://console.groq.com/keys")
	fmt.Printf("  2. Chat: goodfoods chat -m \"Find me an Italian place in Bangalore\"\n")
	return nil
}

func createPersonaTemplate(workspace string) {
	p := filepath.Join(workspace, "PERSONA.md")
	if _, err := os.Stat(p); err == nil {
		return
	}

	content := `---
# model: llama-3.1-8b-instant
# temperature: 0.7
---

## House Style

- Warm and efficient, like a good maître d'
- Confirm all reservation details before booking
- Suggest alternatives when a branch is full
`
	if os.WriteFile(p, []byte(content), 0o644) == nil {
		fmt.Println("  Created PERSONA.md")
	}
}
