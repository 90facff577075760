package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kutsjuice/weft/internal/config"
	"github.com/kutsjuice/weft/internal/literate"
)

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Scaffold a new lesson",
	Long: `Create a new lesson directory with a starter lesson file.

The name should follow the NN-topic convention so lessons keep their
ordering, e.g. 09-strings.

Examples:
  weft init 09-strings            # Create lessons/09-strings/strings.go`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

const lessonTemplate = `// ---
// title: %s
// summary: TODO: one-line summary.
// ---

// Introduce the topic here. Top-level comments become prose; everything
// else is shown as code.
package main

import "fmt"

func main() {
	fmt.Println("hello")
}

// Output:
// hello
`

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	name := args[0]
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid lesson name: %s", name)
	}

	root := "./lessons"
	if len(cfg.Lessons.Roots) > 0 {
		root = cfg.Lessons.Roots[0]
	}

	lessonDir := filepath.Join(root, name)
	if _, err := os.Stat(lessonDir); err == nil {
		return fmt.Errorf("lesson %s already exists", name)
	}
	if err := os.MkdirAll(lessonDir, 0755); err != nil {
		return fmt.Errorf("failed to create lesson directory: %w", err)
	}

	base := strings.TrimLeft(name, "0123456789")
	base = strings.TrimLeft(base, "-_. ")
	if base == "" {
		base = name
	}
	base = strings.ReplaceAll(base, "-", "_")

	lessonPath := filepath.Join(lessonDir, base+".go")
	content := fmt.Sprintf(lessonTemplate, literate.TitleFromName(name))
	if err := os.WriteFile(lessonPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write lesson file: %w", err)
	}

	fmt.Printf("Created %s\n", lessonPath)
	fmt.Println("Next steps:")
	fmt.Printf("   - Edit %s\n", lessonPath)
	fmt.Println("   - Run: weft build")
	fmt.Println("   - Run: weft check")

	return nil
}
