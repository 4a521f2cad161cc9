// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the strip-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the strip-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "strip-engine",
	Short: "Section stripping for scientific PDFs",
	Long: `strip-engine removes configured sections (introduction, background,
acknowledgments, references, ...) from scientific PDFs before downstream
OCR. Section boundaries come from the document outline when present, with a
heading-text fallback, and pages are excised without touching the retained
content.

Use strip to process documents and inspect to preview detected sections
without writing output.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./strip-engine.yaml or ~/.config/strip-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("strip-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "strip-engine"))
		}
	}

	viper.SetEnvPrefix("STRIP_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
