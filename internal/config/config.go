// Package config provides configuration management for weft using Viper for
// flexible configuration loading from files, environment variables, and
// command-line flags.
//
// The configuration system supports YAML files (.weft.yml), environment
// variable overrides with the WEFT_ prefix, validation, and path safety
// checks. It manages lesson roots and exclusion patterns, the output
// directory, the preview server, and the render cache location.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Lessons     LessonsConfig `yaml:"lessons"`
	Output      OutputConfig  `yaml:"output"`
	Server      ServerConfig  `yaml:"server"`
	Build       BuildConfig   `yaml:"build"`
	TargetFiles []string      `yaml:"-"` // CLI arguments, not from config file
}

type LessonsConfig struct {
	Roots           []string `yaml:"roots"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Footer bool   `yaml:"footer"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	Open           bool     `yaml:"open"`
	NoOpen         bool     `yaml:"no-open"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type BuildConfig struct {
	CacheDir string `yaml:"cache_dir"`
	// RunCommand is the command `weft check` uses to execute a lesson,
	// split on whitespace; the lesson path is appended.
	RunCommand string `yaml:"run_command"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Apply defaults for lesson roots only if not explicitly set
	if !viper.IsSet("lessons.roots") && len(config.Lessons.Roots) == 0 {
		config.Lessons.Roots = []string{"./lessons"}
	}

	// Handle roots set via viper (workaround for viper slice handling)
	if viper.IsSet("lessons.roots") && len(config.Lessons.Roots) == 0 {
		roots := viper.GetStringSlice("lessons.roots")
		if len(roots) > 0 {
			config.Lessons.Roots = roots
		}
	}

	// Handle exclude patterns set via viper (workaround for viper slice handling)
	if viper.IsSet("lessons.exclude_patterns") && len(config.Lessons.ExcludePatterns) == 0 {
		excludePatterns := viper.GetStringSlice("lessons.exclude_patterns")
		if len(excludePatterns) > 0 {
			config.Lessons.ExcludePatterns = excludePatterns
		}
	}
	if len(config.Lessons.ExcludePatterns) == 0 {
		config.Lessons.ExcludePatterns = []string{"*_test.go", "*.bak"}
	}

	// Apply default values for OutputConfig if not set
	if config.Output.Dir == "" {
		config.Output.Dir = viper.GetString("output.dir")
	}
	if config.Output.Dir == "" {
		config.Output.Dir = "docs"
	}
	if viper.IsSet("output.footer") {
		config.Output.Footer = viper.GetBool("output.footer")
	} else {
		config.Output.Footer = true
	}

	// Apply default values for ServerConfig if not set
	if config.Server.Port == 0 {
		config.Server.Port = viper.GetInt("server.port")
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.Host == "" {
		config.Server.Host = viper.GetString("server.host")
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}

	// Override no-open if explicitly set via flag
	if viper.IsSet("server.no-open") && viper.GetBool("server.no-open") {
		config.Server.Open = false
	}

	// Handle build settings set via viper (workaround for viper key mapping)
	if viper.IsSet("build.cache_dir") {
		config.Build.CacheDir = viper.GetString("build.cache_dir")
	}
	if viper.IsSet("build.run_command") {
		config.Build.RunCommand = viper.GetString("build.run_command")
	}

	// Apply default values for BuildConfig if not set
	if config.Build.CacheDir == "" {
		config.Build.CacheDir = ".weft/cache"
	}
	if config.Build.RunCommand == "" {
		config.Build.RunCommand = "go run"
	}

	// Validate configuration values
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := validateBuildConfig(&config.Build); err != nil {
		return fmt.Errorf("build config: %w", err)
	}

	if err := validateLessonsConfig(&config.Lessons); err != nil {
		return fmt.Errorf("lessons config: %w", err)
	}

	if err := validatePath(config.Output.Dir); err != nil {
		return fmt.Errorf("output config: invalid output dir '%s': %w", config.Output.Dir, err)
	}

	return nil
}

// validateServerConfig validates server configuration values
func validateServerConfig(config *ServerConfig) error {
	// Allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	if config.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
		for _, char := range dangerousChars {
			if strings.Contains(config.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}

	return nil
}

// validateBuildConfig validates build configuration values
func validateBuildConfig(config *BuildConfig) error {
	if config.CacheDir != "" {
		cleanPath := filepath.Clean(config.CacheDir)

		if strings.Contains(cleanPath, "..") {
			return fmt.Errorf("cache_dir contains path traversal: %s", config.CacheDir)
		}

		if filepath.IsAbs(cleanPath) {
			return fmt.Errorf("cache_dir should be relative path: %s", config.CacheDir)
		}
	}

	return nil
}

// validateLessonsConfig validates lesson roots
func validateLessonsConfig(config *LessonsConfig) error {
	for _, root := range config.Roots {
		if err := validatePath(root); err != nil {
			return fmt.Errorf("invalid lesson root '%s': %w", root, err)
		}
	}

	return nil
}

// validatePath validates a file path for security
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
