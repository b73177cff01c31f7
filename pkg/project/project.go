// Package project reads and writes ProjectInput documents as YAML or JSON.
// Imports are routed through merge.DeepMerge so partial documents only
// override what they carry.
package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/2riing/vibe-promptgen/pkg/merge"
	"github.com/2riing/vibe-promptgen/pkg/model"
)

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks JSON for .json files and YAML otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// ParseFormat accepts "yaml", "yml" or "json"; anything else is YAML.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatYAML
}

// ImportParseError means an imported document could not be read at all.
type ImportParseError struct {
	Format Format
	Err    error
}

func (e *ImportParseError) Error() string {
	return fmt.Sprintf("failed to parse %s document: %v", e.Format, e.Err)
}

func (e *ImportParseError) Unwrap() error { return e.Err }

// Decode parses data into an untyped document. An empty document decodes to
// an empty map.
func Decode(data []byte, format Format) (map[string]any, error) {
	doc := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &ImportParseError{Format: format, Err: err}
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// Importer merges external documents onto a base ProjectInput.
type Importer struct {
	logger *logrus.Logger
}

func NewImporter(logger *logrus.Logger) *Importer {
	return &Importer{logger: logger}
}

// Import parses data and merges it onto base. On any error base is returned
// unchanged together with an *ImportParseError.
func (im *Importer) Import(base model.ProjectInput, data []byte, format Format) (model.ProjectInput, error) {
	override, err := Decode(data, format)
	if err != nil {
		return base, err
	}
	return im.Apply(base, override)
}

// Apply merges an already decoded document onto base.
func (im *Importer) Apply(base model.ProjectInput, override map[string]any) (model.ProjectInput, error) {
	baseDoc, err := ToMap(base)
	if err != nil {
		return base, err
	}
	merged := merge.DeepMerge(baseDoc, override)

	if unknown := unknownKeys(merged); len(unknown) > 0 {
		im.logger.WithField("keys", strings.Join(unknown, ", ")).Warn("Ignoring unknown keys in imported document")
	}

	out, err := FromMap(merged)
	if err != nil {
		return base, &ImportParseError{Format: FormatYAML, Err: err}
	}
	return out, nil
}

// ImportFile reads path and imports it with the format implied by its
// extension.
func (im *Importer) ImportFile(base model.ProjectInput, path string) (model.ProjectInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read %s: %w", path, err)
	}
	im.logger.Debugf("Importing %s", path)
	return im.Import(base, data, FormatFromPath(path))
}

// Load reads a project file onto Defaults.
func (im *Importer) Load(path string) (model.ProjectInput, error) {
	return im.ImportFile(model.Defaults(), path)
}

// ToMap converts a ProjectInput into the untyped document shape used by
// DeepMerge. Keys follow the yaml tags.
func ToMap(in model.ProjectInput) (map[string]any, error) {
	data, err := yaml.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}
	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode project: %w", err)
	}
	return doc, nil
}

// FromMap coerces an untyped document into a ProjectInput. Unknown keys are
// dropped.
func FromMap(doc map[string]any) (model.ProjectInput, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return model.ProjectInput{}, err
	}
	var out model.ProjectInput
	if err := yaml.Unmarshal(data, &out); err != nil {
		return model.ProjectInput{}, err
	}
	normalize(&out)
	return out, nil
}

// Export encodes in as YAML or JSON. do_dont is written verbatim.
func Export(in model.ProjectInput, format Format) ([]byte, error) {
	normalize(&in)
	if format == FormatJSON {
		data, err := json.MarshalIndent(in, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(in); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile exports in to path using the extension's format.
func WriteFile(path string, in model.ProjectInput) error {
	data, err := Export(in, FormatFromPath(path))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// normalize replaces nil lists with empty ones.
func normalize(in *model.ProjectInput) {
	in.Context.CoreScenarios = in.Context.CoreScenarios.Clone()
	in.Context.TopRisks = in.Context.TopRisks.Clone()
	in.Tech.Envs = in.Tech.Envs.Clone()
}

func unknownKeys(doc map[string]any) []string {
	known := map[string]bool{}
	sections := map[string]bool{}
	for _, f := range model.Fields {
		known[f.Path] = true
		sections[strings.SplitN(f.Path, ".", 2)[0]] = true
	}

	var out []string
	for section, v := range doc {
		if !sections[section] {
			out = append(out, section)
			continue
		}
		fields, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for name := range fields {
			if path := section + "." + name; !known[path] {
				out = append(out, path)
			}
		}
	}
	sort.Strings(out)
	return out
}
