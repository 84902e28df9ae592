package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/cspm-sim/pkg/advisor"
	"github.com/user/cspm-sim/pkg/config"
	"github.com/user/cspm-sim/pkg/engine"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		scanner := bufio.NewScanner(cmd.InOrStdin())

		ask := func(prompt string) string {
			fmt.Fprint(out, prompt)
			scanner.Scan()
			return strings.TrimSpace(scanner.Text())
		}

		fmt.Fprintln(out, "Welcome to cspm-sim Setup Wizard")
		fmt.Fprintln(out, "--------------------------------")

		// 1. Dashboard figures
		fmt.Fprintln(out, "Step 1: Dashboard figures (press Enter to keep the current value)")
		if v := ask(fmt.Sprintf("Total assets [%d] > ", cfg.Display.TotalAssets)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid asset count %q", v)
			}
			cfg.Display.TotalAssets = n
		}
		if v := ask(fmt.Sprintf("Score policy (constant/computed) [%s] > ", cfg.Display.ScorePolicy)); v != "" {
			policy, err := engine.ParseScorePolicy(strings.ToLower(v))
			if err != nil {
				return err
			}
			cfg.Display.ScorePolicy = string(policy)
		}

		// 2. Advisor
		fmt.Fprintln(out, "\nStep 2: Choose the remediation advisor")
		fmt.Fprintln(out, "1. Static (offline, catalog recommendations)")
		fmt.Fprintln(out, "2. Gemini (Google)")
		switch strings.ToLower(ask("Enter number or name > ")) {
		case "", "1", "static":
			cfg.Advisor.Provider = "static"
		case "2", "gemini":
			cfg.Advisor.Provider = "gemini"
		default:
			fmt.Fprintln(out, "Invalid choice. Aborting.")
			return nil
		}

		if cfg.Advisor.Provider == "gemini" {
			apiKey := ask("\nEnter API Key for gemini\n> ")
			if apiKey == "" {
				return fmt.Errorf("API Key cannot be empty")
			}
			cfg.SetAPIKey("gemini", apiKey)

			fmt.Fprintln(out, "\nValidating key and fetching available models...")
			p, err := advisor.NewProvider(ctx, "gemini", apiKey, "")
			if err != nil {
				return fmt.Errorf("error initializing provider: %w", err)
			}
			models, err := p.ListModels(ctx)
			if closer, ok := p.(interface{ Close() }); ok {
				closer.Close()
			}

			if err != nil || len(models) == 0 {
				fmt.Fprintf(out, "Warning: Could not fetch models from API: %v\n", err)
				cfg.Advisor.Model = ask("Please enter model name manually (e.g., 'gemini-pro'):\n> ")
			} else {
				fmt.Fprintf(out, "Successfully retrieved %d models.\n", len(models))
				for i, m := range models {
					fmt.Fprintf(out, "%d. %s\n", i+1, m)
				}
				selIdx, err := strconv.Atoi(ask("Select Model (number) > "))
				if err != nil || selIdx < 1 || selIdx > len(models) {
					fmt.Fprintln(out, "Invalid selection. Using first available model.")
					selIdx = 1
				}
				cfg.Advisor.Model = models[selIdx-1]
			}
		}

		// 3. Save
		if err := config.Save(cfgFile, cfg); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}

		fmt.Fprintln(out, "--------------------------------")
		fmt.Fprintln(out, "Setup Complete!")
		fmt.Fprintf(out, "Assets:   %d\n", cfg.Display.TotalAssets)
		fmt.Fprintf(out, "Score:    %s\n", cfg.Display.ScorePolicy)
		fmt.Fprintf(out, "Advisor:  %s\n", cfg.Advisor.Provider)
		fmt.Fprintln(out, "You can now run 'cspm-sim'")
		return nil
	},
}

func init() {
	configCmd.AddCommand(setupCmd)
}
