package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/strip-engine/pkg/types"
)

// loadStripConfig builds a StripConfig from defaults overlaid with values
// from the viper config file / environment. Flag overrides are applied by
// the individual commands afterwards.
func loadStripConfig() types.StripConfig {
	cfg := types.DefaultStripConfig()

	if viper.IsSet("strip.sections_to_remove") {
		cfg.SectionsToRemove = viper.GetStringSlice("strip.sections_to_remove")
	}
	if viper.IsSet("strip.min_heading_score") {
		cfg.MinHeadingScore = viper.GetFloat64("strip.min_heading_score")
	}
	if viper.IsSet("strip.use_heading_fallback") {
		cfg.UseHeadingFallback = viper.GetBool("strip.use_heading_fallback")
	}
	if viper.IsSet("strip.heading_full_scan") {
		cfg.HeadingFullScan = viper.GetBool("strip.heading_full_scan")
	}
	if viper.IsSet("strip.heading_confidence_penalty") {
		cfg.HeadingConfidencePenalty = viper.GetFloat64("strip.heading_confidence_penalty")
	}
	if viper.IsSet("strip.heading_max_chars") {
		cfg.HeadingMaxChars = viper.GetInt("strip.heading_max_chars")
	}
	if viper.IsSet("strip.heading_min_font_ratio") {
		cfg.HeadingMinFontRatio = viper.GetFloat64("strip.heading_min_font_ratio")
	}
	if viper.IsSet("strip.heading_scan_pages") {
		cfg.HeadingScanPages = viper.GetInt("strip.heading_scan_pages")
	}
	if viper.IsSet("strip.keep_first_pages") {
		cfg.KeepFirstPages = viper.GetInt("strip.keep_first_pages")
	}
	if viper.IsSet("strip.require_lower_boundary") {
		cfg.RequireLowerBoundary = viper.GetBool("strip.require_lower_boundary")
	}
	if viper.IsSet("strip.link_policy") {
		cfg.LinkPolicy = types.LinkPolicy(viper.GetString("strip.link_policy"))
	}
	if viper.IsSet("strip.vocabulary_extra") {
		cfg.VocabularyExtra = viper.GetStringMapStringSlice("strip.vocabulary_extra")
	}
	if viper.IsSet("strip.debug") {
		cfg.Debug = viper.GetBool("strip.debug")
	}
	return cfg
}

// loadBatchConfig builds a BatchConfig from config-file values.
func loadBatchConfig() types.BatchConfig {
	cfg := types.BatchConfig{
		InputDir:  "papers",
		OutputDir: "stripped",
		ReportDir: "reports",
	}
	if viper.IsSet("batch.input_dir") {
		cfg.InputDir = viper.GetString("batch.input_dir")
	}
	if viper.IsSet("batch.output_dir") {
		cfg.OutputDir = viper.GetString("batch.output_dir")
	}
	if viper.IsSet("batch.report_dir") {
		cfg.ReportDir = viper.GetString("batch.report_dir")
	}
	if viper.IsSet("batch.workers") {
		cfg.Workers = viper.GetInt("batch.workers")
	}
	return cfg
}
