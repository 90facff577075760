// Package cmd provides the command-line interface for weft with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --port, etc.) - highest priority
//	2. WEFT_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (WEFT_SERVER_PORT, etc.)
//	4. Configuration files (.weft.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "weft",
	Short: "A literate documentation compiler for Go lessons",
	Long: `Weft compiles literate Go lesson files into Markdown documentation.

A lesson is a runnable Go file whose top-level comments carry the prose; weft
splits it into narrative, code, and recorded output, and renders the result
as Markdown with a generated-by footer.

Quick Start:
  weft init 09-strings           Scaffold a new lesson
  weft build                     Render all lessons to Markdown
  weft list                      List discovered lessons
  weft check                     Run every lesson and verify its output
  weft watch                     Rebuild on change
  weft serve                     Preview server with live reload

Command Aliases (for faster typing):
  build (b), list (l), watch (w), serve (s), check (c)`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .weft.yml, can also use WEFT_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. WEFT_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .weft.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("WEFT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".weft")
	}

	// Enable automatic environment variable binding with WEFT_ prefix
	// Examples: WEFT_SERVER_PORT, WEFT_OUTPUT_DIR
	viper.SetEnvPrefix("WEFT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// If the file doesn't exist or has errors, Viper falls back to defaults
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
