package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the configuration for a variant and validates it.
// Search order: customPath -> ~/.balance-runner/configs/<variant>.yaml ->
// ./configs/<variant>.yaml -> embedded default -> hard-coded default.
// Files are decoded over the hard-coded defaults, so partial files are fine.
func Load(variant, customPath string) (RunnerConfig, error) {
	base, ok := DefaultConfig(variant)
	if !ok {
		return RunnerConfig{}, fmt.Errorf("config: unknown variant %q", variant)
	}

	cfg, err := resolve(variant, customPath, base)
	if err != nil {
		return cfg, err
	}
	cfg.Variant = variant
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func resolve(variant, customPath string, base RunnerConfig) (RunnerConfig, error) {
	filename := variant + ".yaml"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return base, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decodeOver(base, data)
		if err != nil {
			return base, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decodeOver(base, data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if cfg, err := decodeOver(base, data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := decodeOver(base, GetDefaultYAML(variant)); err == nil {
		return cfg, nil
	}
	return base, nil // Fallback to hardcoded if embed fails
}

// decodeOver unmarshals data on top of a copy of base.
func decodeOver(base RunnerConfig, data []byte) (RunnerConfig, error) {
	cfg := base
	cfg.Colors = append([]string(nil), base.Colors...)
	cfg.TokenColors = make(map[string]string, len(base.TokenColors))
	for k, v := range base.TokenColors {
		cfg.TokenColors[k] = v
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".balance-runner", "configs", filename)
}

// Marshal renders a config as YAML, used by `runner config dump`.
func Marshal(cfg RunnerConfig) ([]byte, error) {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal %s: %w", cfg.Variant, err)
	}
	return data, nil
}
