package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"text/template"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/ojet-labs/ojet/internal/schema"
)

// Component kinds.
const (
	KindVComponent = "vcomponent"
	KindComposite  = "composite"
)

// DefaultJetVersion is written to composite component metadata.
const DefaultJetVersion = "^9.1.0"

const namePlaceholder = "__name__"

var (
	namePattern        = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)+$`)
	componentValidator = schema.New("component.schema.json", componentSchema)
)

// ComponentData holds all template variables available to scaffold templates.
type ComponentData struct {
	Name        string // e.g., "vcomp-1"
	ClassName   string // e.g., "Vcomp1"
	Title       string // e.g., "Vcomp 1"
	Description string
	Version     string
	JetVersion  string
	Date        string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// setInfo is the scaffold.yaml at the root of each template set.
type setInfo struct {
	Description string   `yaml:"description"`
	Files       []string `yaml:"files"`
}

// ValidateName checks that name is a valid custom element name: lowercase,
// starting with a letter and containing at least one hyphen.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("component name is required")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid component name %q: use lowercase letters and digits with at least one hyphen, e.g. my-component", name)
	}
	return nil
}

// NewComponentData creates a ComponentData with derived fields populated.
func NewComponentData(name string) *ComponentData {
	parts := strings.Split(name, "-")
	var class, title []string
	for _, p := range parts {
		if p == "" {
			continue
		}
		word := strings.ToUpper(p[:1]) + p[1:]
		class = append(class, word)
		title = append(title, word)
	}

	return &ComponentData{
		Name:        name,
		ClassName:   strings.Join(class, ""),
		Title:       strings.Join(title, " "),
		Description: fmt.Sprintf("A component named %s.", name),
		Version:     "1.0.0",
		JetVersion:  DefaultJetVersion,
		Date:        time.Now().Format("2006-01-02"),
	}
}

// Kinds returns the available component kinds with their descriptions.
func Kinds() (map[string]string, error) {
	entries, err := fs.ReadDir(scaffoldFS, "scaffolds")
	if err != nil {
		return nil, err
	}
	kinds := make(map[string]string, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := loadSet(e.Name())
		if err != nil {
			return nil, err
		}
		kinds[e.Name()] = info.Description
	}
	return kinds, nil
}

// KindNames returns the sorted component kind names.
func KindNames() []string {
	kinds, err := Kinds()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func loadSet(kind string) (*setInfo, error) {
	data, err := fs.ReadFile(scaffoldFS, path.Join("scaffolds", kind, "scaffold.yaml"))
	if err != nil {
		return nil, fmt.Errorf("component kind %q not found: %w", kind, err)
	}
	var info setInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parsing scaffold.yaml for %s: %w", kind, err)
	}
	if len(info.Files) == 0 {
		return nil, fmt.Errorf("component kind %q lists no files", kind)
	}
	return &info, nil
}

// Generate renders the kind's template set into outputDir.
func Generate(kind string, data *ComponentData, outputDir string) (*Result, error) {
	if err := ValidateName(data.Name); err != nil {
		return nil, err
	}

	info, err := loadSet(kind)
	if err != nil {
		return nil, err
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{
		OutputDir: outputDir,
	}

	for _, file := range info.Files {
		tmplPath := path.Join("scaffolds", kind, file)
		tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
		}

		outName := strings.TrimSuffix(file, ".tmpl")
		outName = strings.ReplaceAll(outName, namePlaceholder, data.Name)
		outPath := filepath.Join(outputDir, outName)

		tmpl, err := template.New(file).Option("missingkey=error").Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", file, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", file, err)
		}

		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
	}

	// Validate generated component metadata against JSON Schema.
	metadata := filepath.Join(outputDir, "component.json")
	if _, err := os.Stat(metadata); err == nil {
		valResult, valErr := componentValidator.ValidateFile(metadata)
		if valErr != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not validate component.json: %v", valErr))
		} else if !valResult.Valid {
			for _, issue := range valResult.Issues {
				result.Warnings = append(result.Warnings, issue.String())
			}
		}
	}

	return result, nil
}
