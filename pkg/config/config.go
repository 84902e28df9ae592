package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. CSPM_DISPLAY_TOTAL_ASSETS
const EnvPrefix = "CSPM"

type DisplayConfig struct {
	ScannerName       string `mapstructure:"scanner_name" yaml:"scanner_name"`
	Target            string `mapstructure:"target" yaml:"target"`
	TotalAssets       int    `mapstructure:"total_assets" yaml:"total_assets"`
	ComplianceScore   int    `mapstructure:"compliance_score" yaml:"compliance_score"`
	AutoFixedBaseline int    `mapstructure:"auto_fixed_baseline" yaml:"auto_fixed_baseline"`
	ScorePolicy       string `mapstructure:"score_policy" yaml:"score_policy"`
	TicketPrefix      string `mapstructure:"ticket_prefix" yaml:"ticket_prefix"`
}

type OutputConfig struct {
	Color  bool `mapstructure:"color" yaml:"color"`
	Pacing bool `mapstructure:"pacing" yaml:"pacing"`
}

type ProviderConfig struct {
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
}

type AdvisorConfig struct {
	Provider  string                    `mapstructure:"provider" yaml:"provider"`
	Model     string                    `mapstructure:"model" yaml:"model"`
	Providers map[string]ProviderConfig `mapstructure:"providers" yaml:"providers"`
}

type Config struct {
	Catalog string        `mapstructure:"catalog" yaml:"catalog,omitempty"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Advisor AdvisorConfig `mapstructure:"advisor" yaml:"advisor"`
}

// Default returns the stock dashboard configuration
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScannerName:       "ENTERPRISE CSPM SCANNER v4.2",
			Target:            "AWS (12 accounts) & Azure (4 subscriptions)",
			TotalAssets:       1248,
			ComplianceScore:   78,
			AutoFixedBaseline: 40,
			ScorePolicy:       "constant",
			TicketPrefix:      "JIRA",
		},
		Output: OutputConfig{
			Color:  true,
			Pacing: true,
		},
		Advisor: AdvisorConfig{
			Provider:  "static",
			Model:     "gemini-pro",
			Providers: make(map[string]ProviderConfig),
		},
	}
}

// GetConfigPath returns ~/.cspm-sim/config.yaml without touching the disk
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cspm-sim", "config.yaml"), nil
}

// Load reads path (or the default location when empty) and applies CSPM_*
// environment overrides. A missing file, or no home directory to look in,
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		// without a home directory only defaults and env apply
		path, _ = GetConfigPath()
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Advisor.Providers == nil {
		cfg.Advisor.Providers = make(map[string]ProviderConfig)
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Default()

	v.SetDefault("display.scanner_name", d.Display.ScannerName)
	v.SetDefault("display.target", d.Display.Target)
	v.SetDefault("display.total_assets", d.Display.TotalAssets)
	v.SetDefault("display.compliance_score", d.Display.ComplianceScore)
	v.SetDefault("display.auto_fixed_baseline", d.Display.AutoFixedBaseline)
	v.SetDefault("display.score_policy", d.Display.ScorePolicy)
	v.SetDefault("display.ticket_prefix", d.Display.TicketPrefix)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("output.pacing", d.Output.Pacing)
	v.SetDefault("advisor.provider", d.Advisor.Provider)
	v.SetDefault("advisor.model", d.Advisor.Model)
	v.SetDefault("catalog", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Save writes cfg to path (or the default location when empty), creating
// the parent directory
func Save(path string, cfg *Config) error {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// 0600: the file may hold advisor API keys
	return os.WriteFile(path, data, 0600)
}

func (c *Config) SetAPIKey(provider, key string) {
	if c.Advisor.Providers == nil {
		c.Advisor.Providers = make(map[string]ProviderConfig)
	}
	p := c.Advisor.Providers[provider]
	p.APIKey = key
	c.Advisor.Providers[provider] = p
}

// GetAPIKey returns the stored key, falling back to CSPM_<PROVIDER>_API_KEY
func (c *Config) GetAPIKey(provider string) string {
	if k := c.Advisor.Providers[provider].APIKey; k != "" {
		return k
	}
	return os.Getenv(EnvPrefix + "_" + strings.ToUpper(provider) + "_API_KEY")
}
