package llm

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPromptsYAML []byte

const journalTextPlaceholder = "{{text}}"

// Prompts holds the instruction text sent with each feature request.
type Prompts struct {
	Technique string `yaml:"technique"`
	Symbolism string `yaml:"symbolism"`
	Journal   string `yaml:"journal"`
}

// DefaultPrompts returns the embedded catalog.
func DefaultPrompts() Prompts {
	var p Prompts
	if err := yaml.Unmarshal(defaultPromptsYAML, &p); err != nil {
		panic(fmt.Sprintf("embedded prompts.yaml: %v", err))
	}
	return p
}

// LoadPrompts returns the embedded catalog with any keys set in overridePath
// replacing the defaults. An empty path returns the defaults.
func LoadPrompts(overridePath string) (Prompts, error) {
	p := DefaultPrompts()
	overridePath = strings.TrimSpace(overridePath)
	if overridePath == "" {
		return p, nil
	}
	raw, err := os.ReadFile(overridePath)
	if err != nil {
		return Prompts{}, fmt.Errorf("read prompts file: %w", err)
	}
	var override Prompts
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Prompts{}, fmt.Errorf("parse prompts file: %w", err)
	}
	if strings.TrimSpace(override.Technique) != "" {
		p.Technique = override.Technique
	}
	if strings.TrimSpace(override.Symbolism) != "" {
		p.Symbolism = override.Symbolism
	}
	if strings.TrimSpace(override.Journal) != "" {
		p.Journal = override.Journal
	}
	return p, nil
}

// JournalPrompt embeds the entry text into the journal template.
func (p Prompts) JournalPrompt(text string) string {
	if !strings.Contains(p.Journal, journalTextPlaceholder) {
		return p.Journal + "\n" + text
	}
	return strings.ReplaceAll(p.Journal, journalTextPlaceholder, text)
}
