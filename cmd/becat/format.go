package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"becat/internal/catalog"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatTOML  OutputFormat = "toml"
	FormatHuman OutputFormat = "human"
)

// FormatValue renders any value in the requested format. Human output falls
// back to JSON for values with no dedicated renderer.
func FormatValue(v interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON, FormatHuman:
		return formatJSON(v)
	case FormatYAML:
		return formatYAML(v)
	case FormatTOML:
		return formatTOML(v)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatOutcome renders a search outcome
func FormatOutcome(outcome *catalog.Outcome, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(outcome)
	case FormatYAML:
		return formatYAML(outcome)
	case FormatHuman:
		return formatOutcomeHuman(outcome), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func formatTOML(v interface{}) (string, error) {
	data, err := toml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// formatOutcomeHuman renders a search outcome for a terminal
func formatOutcomeHuman(outcome *catalog.Outcome) string {
	var b strings.Builder

	if outcome.Success {
		b.WriteString(fmt.Sprintf("Found %d catalog entries\n", outcome.Count()))
	} else {
		b.WriteString("Search failed\n")
		if outcome.Error != "" {
			b.WriteString(fmt.Sprintf("  Error: %s\n", outcome.Error))
		}
	}

	for i, entry := range outcome.Entries {
		b.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, entryTitle(entry)))
		for _, key := range sortedKeys(entry) {
			if key == "Name" {
				continue
			}
			b.WriteString(fmt.Sprintf("   %s: %v\n", key, entry[key]))
		}
	}

	if attempts := catalog.AttemptsFromDiagnostics(outcome.Diagnostics); len(attempts) > 0 {
		b.WriteString("\nAttempts:\n")
		for _, a := range attempts {
			icon := "✓"
			if !a.Success {
				icon = "✗"
			}
			line := fmt.Sprintf("  %s %s %q: %d matches", icon, a.Name, a.Pattern, a.MatchCount)
			if a.Error != "" {
				line = fmt.Sprintf("  %s %s %q: %s", icon, a.Name, a.Pattern, a.Error)
			}
			b.WriteString(line + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// entryTitle picks a display name for a catalog entry
func entryTitle(entry catalog.Entry) string {
	for _, key := range []string{"Name", "Path", "FileName"} {
		if v, ok := entry[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return "(unnamed entry)"
}

func sortedKeys(entry catalog.Entry) []string {
	keys := make([]string, 0, len(entry))
	for k := range entry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
