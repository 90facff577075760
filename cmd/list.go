package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kutsjuice/weft/internal/config"
	"github.com/kutsjuice/weft/internal/registry"
	"github.com/kutsjuice/weft/internal/scanner"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List all discovered lessons",
	Long: `List all discovered lessons with their metadata.
Shows lesson names, titles, weights, and source paths.

Examples:
  weft list                       # List lessons in table format
  weft list -f json               # Output as JSON (short flag)
  weft list --format yaml         # Output as YAML
  weft list --tags                # Include lesson tags`,
	RunE: runList,
}

var (
	listFormat   string
	listWithTags bool
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "Output format (table, json, yaml)")
	listCmd.Flags().BoolVar(&listWithTags, "tags", false, "Include lesson tags")
}

// listEntry is the serializable view of a lesson used by list output.
type listEntry struct {
	Name    string   `json:"name" yaml:"name"`
	Title   string   `json:"title" yaml:"title"`
	Summary string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Weight  int      `json:"weight" yaml:"weight"`
	Path    string   `json:"path" yaml:"path"`
	Draft   bool     `json:"draft,omitempty" yaml:"draft,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	reg := registry.NewLessonRegistry()
	lessonScanner := scanner.NewLessonScanner(reg, cfg.Lessons.ExcludePatterns)
	defer lessonScanner.Close()

	for _, root := range cfg.Lessons.Roots {
		if err := lessonScanner.ScanDirectory(root); err != nil {
			// Log error but continue with other roots
			fmt.Fprintf(os.Stderr, "Warning: failed to scan directory %s: %v\n", root, err)
		}
	}

	lessons := reg.GetAll()
	if len(lessons) == 0 {
		fmt.Println("No lessons found.")
		return nil
	}

	entries := make([]listEntry, 0, len(lessons))
	for _, info := range lessons {
		entry := listEntry{
			Name:    info.Name,
			Title:   info.Lesson.Meta.Title,
			Summary: info.Lesson.Meta.Summary,
			Weight:  info.Lesson.Meta.Weight,
			Path:    info.FilePath,
			Draft:   info.Lesson.Meta.Draft,
		}
		if listWithTags {
			entry.Tags = info.Lesson.Meta.Tags
		}
		entries = append(entries, entry)
	}

	switch strings.ToLower(listFormat) {
	case "json":
		return outputListJSON(entries)
	case "yaml":
		return outputListYAML(entries)
	case "table":
		return outputListTable(entries)
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", listFormat)
	}
}

func outputListTable(entries []listEntry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "WEIGHT\tNAME\tTITLE\tPATH")
	for _, entry := range entries {
		title := entry.Title
		if entry.Draft {
			title += " (draft)"
		}
		if listWithTags && len(entry.Tags) > 0 {
			title += " [" + strings.Join(entry.Tags, ", ") + "]"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", entry.Weight, entry.Name, title, entry.Path)
	}

	return nil
}

func outputListJSON(entries []listEntry) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(entries)
}

func outputListYAML(entries []listEntry) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(entries)
}
