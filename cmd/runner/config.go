package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/balance-runner/internal/config"
	"github.com/vovakirdan/balance-runner/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config <variant>",
	Short: "Print the effective configuration of a variant",
	Long: `Print the configuration a run would use, after the config file search
and the difficulty preset, as YAML. The output is a valid --config file.

Examples:
  runner config color-rush > ~/.balance-runner/configs/color-rush.yaml
  runner config ghost-run --difficulty hard`,
	Args: cobra.ExactArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom variant config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runConfig(_ *cobra.Command, args []string) {
	variant := args[0]
	if !registry.Exists(variant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
		os.Exit(1)
	}

	cfg, err := config.Load(variant, flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.ApplyDifficultyPreset(&cfg, config.ParseDifficultyPreset(flagDifficulty))
	if err := cfg.Validate(); err != nil {
		logger.Warn("config does not validate", "err", err)
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
