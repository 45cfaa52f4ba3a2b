package baseline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wasp/internal/models"

	"gopkg.in/yaml.v3"
)

// ParseError is the only fatal failure class: the baseline file is missing or
// not a valid baseline document. Everything downstream of a successful load is
// recorded per rule instead of aborting the scan.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot load baseline %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// baselineDocument tolerates both accepted top-level shapes:
// {name, version, rules:[...]} and {metadata:{name, version}, rules:[...]}.
type baselineDocument struct {
	Name     string            `json:"name" yaml:"name"`
	Version  string            `json:"version" yaml:"version"`
	Metadata *baselineMetadata `json:"metadata" yaml:"metadata"`
	Rules    []models.Rule     `json:"rules" yaml:"rules"`
}

type baselineMetadata struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// LoadBaseline reads a baseline document from disk. JSON is the native
// format; files ending in .yaml or .yml are parsed as YAML with the same
// schema. Individual rule fields are not validated here: a rule missing
// kind-relevant fields fails gracefully at evaluation time, not at load time.
func LoadBaseline(filePath string) (*models.Baseline, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &ParseError{Path: filePath, Err: err}
	}

	var doc baselineDocument
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &ParseError{Path: filePath, Err: err}
	}

	if doc.Rules == nil {
		return nil, &ParseError{Path: filePath, Err: fmt.Errorf("document has no rules array")}
	}

	b := &models.Baseline{
		Name:    doc.Name,
		Version: doc.Version,
		Rules:   doc.Rules,
	}
	if doc.Metadata != nil {
		if doc.Metadata.Name != "" {
			b.Name = doc.Metadata.Name
		}
		if doc.Metadata.Version != "" {
			b.Version = doc.Metadata.Version
		}
	}
	if b.Name == "" {
		b.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	// Normalize check_type aliases once so the rest of the engine only sees
	// canonical kinds.
	for i := range b.Rules {
		b.Rules[i].CheckType = models.NormalizeCheckType(string(b.Rules[i].CheckType))
	}

	return b, nil
}

// FilterByLevel returns the subset of rules matching a CIS profile level, in
// original order. "Level1" keeps Level 1 rules, "Level2" keeps Level 2 rules;
// "Both" or any unrecognized filter returns all rules unchanged. The
// permissive default is deliberate: a bad filter should widen the scan, not
// silently empty it.
func FilterByLevel(rules []models.Rule, level string) []models.Rule {
	var want models.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "level1", "level 1", "l1":
		want = models.Level1
	case "level2", "level 2", "l2":
		want = models.Level2
	default:
		return rules
	}

	var out []models.Rule
	for _, r := range rules {
		if models.Level(r.Level) == want {
			out = append(out, r)
		}
	}
	return out
}
