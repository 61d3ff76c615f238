package prompts

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// embeds all .yaml files in the templates folder into Go program at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

const (
	Evaluate  = "evaluate"
	Questions = "questions"
)

// PromptProvider builds prompts by template name
type PromptProvider interface {
	BuildPrompt(name string, data interface{}) (string, error)
	System(name string) string
	GetTemplates() []string
}

type PromptManager struct {
	prompts map[string]*compiledPrompt
}

// loaded prompt template
type PromptTemplate struct {
	Description string `yaml:"description"`
	System      string `yaml:"system"`
	Prompt      string `yaml:"prompt"`
}

type compiledPrompt struct {
	system string
	tmpl   *template.Template
}

// creates a new prompt manager and loads templates
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		prompts: make(map[string]*compiledPrompt),
	}

	if err := pm.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	return pm, nil
}

// renders the named template with data
func (pm *PromptManager) BuildPrompt(name string, data interface{}) (string, error) {
	prompt, exists := pm.prompts[name]
	if !exists {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var out strings.Builder
	if err := prompt.tmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return out.String(), nil
}

// System returns the system message for a template, empty when it has none.
func (pm *PromptManager) System(name string) string {
	if prompt, ok := pm.prompts[name]; ok {
		return prompt.system
	}
	return ""
}

func (pm *PromptManager) GetTemplates() []string {
	names := make([]string, 0, len(pm.prompts))
	for name := range pm.prompts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// loadPrompts loads all YAML prompt files from the embedded filesystem
func (pm *PromptManager) loadPrompts() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var promptTemplate PromptTemplate
		if err := yaml.Unmarshal(data, &promptTemplate); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		tmpl, err := template.New(name).Option("missingkey=error").Parse(promptTemplate.Prompt)
		if err != nil {
			return fmt.Errorf("failed to compile template %s: %w", entry.Name(), err)
		}
		pm.prompts[name] = &compiledPrompt{system: promptTemplate.System, tmpl: tmpl}
	}

	return nil
}
