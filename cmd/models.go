package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goodfoods/goodfoods/internal/config"
	"github.com/goodfoods/goodfoods/internal/providers"
)

// modelsCmd queries the configured inference endpoint for its model catalogue.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available at the configured endpoint",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(config.ConfigPath())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		model := cfg.Agents.Defaults.Model
		result := cfg.MatchProvider(model)
		if result.Provider == nil {
			return fmt.Errorf("no API key configured for model %q — edit %s", model, config.ConfigPath())
		}
		apiBase := result.Provider.APIBase
		if apiBase == "" {
			apiBase = cfg.GetAPIBase(model)
		}

		p := providers.NewOpenAIProvider(cfg.GetAPIKey(model), apiBase, model, result.Name, result.Provider.ExtraHeaders)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		models, err := p.ListModels(ctx)
		if err != nil {
			return fmt.Errorf("list models: %w", err)
		}

		fmt.Printf("%d models at %s:\n", len(models), apiBase)
		for _, m := range models {
			mark := " "
			if m == model {
				mark = "*"
			}
			fmt.Printf("  %s %s\n", mark, m)
		}
		return nil
	},
}
