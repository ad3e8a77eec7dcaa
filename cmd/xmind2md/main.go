// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the xmind2md CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/xmind2md/internal/logging"
	"github.com/pdiddy/xmind2md/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the xmind2md CLI.
var rootCmd = &cobra.Command{
	Use:   "xmind2md",
	Short: "Convert XMind mind maps to Markdown",
	Long: `xmind2md reads XMind documents (.xmind) and renders their topic tree as
Markdown: the central topic becomes the title, subtopics become headings down
to level 6, and deeper topics become nested list items. Plain-text notes are
kept as blockquotes.

Legacy XMind 8 files (content.xml) are detected and rejected; re-save them in
XMind first.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(types.LogConfig{Level: viper.GetString("log_level")})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./xmind2md.yaml or ~/.config/xmind2md/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("xmind2md")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "xmind2md"))
		}
	}

	viper.SetEnvPrefix("XMIND2MD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
