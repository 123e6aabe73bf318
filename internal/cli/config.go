package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tsawler/outline/layout"
)

// envPrefix is the prefix of environment variables overriding config keys,
// e.g. OUTLINE_MEDIAN_WINDOW.
const envPrefix = "OUTLINE"

func setDefaults(v *viper.Viper) {
	def := layout.DefaultAnalyzerConfig()
	v.SetDefault("header_footer_lookahead", def.HeaderFooterLookahead)
	v.SetDefault("alignment_window", def.AlignmentWindow)
	v.SetDefault("median_window", def.MedianWindow)
	v.SetDefault("first_line_median_ratio", def.FirstLineMedianRatio)
	v.SetDefault("eop_vertical_fraction", def.EOPVerticalFraction)
	v.SetDefault("remove_headers_footers", def.RemoveHeadersFooters)
	v.SetDefault("build_hierarchy", def.BuildHierarchy)
}

// LoadConfig reads an analyzer configuration. An empty path yields the
// defaults, still subject to environment overrides. The file type follows
// the extension (yaml, toml, json).
func LoadConfig(path string) (layout.AnalyzerConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return layout.AnalyzerConfig{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config layout.AnalyzerConfig
	if err := v.Unmarshal(&config); err != nil {
		return layout.AnalyzerConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if config.MedianWindow < 1 || config.AlignmentWindow < 1 {
		return layout.AnalyzerConfig{}, fmt.Errorf("windows must be positive, got alignment %d and median %d",
			config.AlignmentWindow, config.MedianWindow)
	}
	return config, nil
}

// NewLogger returns a development logger when verbose is set and a
// production logger reporting warnings and above otherwise.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return config.Build()
}
