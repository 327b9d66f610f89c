package layers

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/planstruct/planstruct/model"
)

//go:embed default_mapping.toml
var defaultMapping []byte

// PatternSet holds the include and exclude glob patterns for one element
// category. Matching is case-insensitive; exclusions win.
type PatternSet struct {
	Patterns []string `toml:"patterns"`
	Exclude  []string `toml:"exclude"`
}

// Mapping maps CAD layer names to element categories via glob patterns,
// and carries the numeric classification rules and geometry defaults
// that accompany a layer standard. A Mapping is immutable after load and
// is passed explicitly into every detection call; there is no
// process-wide default instance.
type Mapping struct {
	Name string `toml:"name"`

	LayerMapping        map[string]PatternSet         `toml:"layer_mapping"`
	ClassificationRules map[string]map[string]float64 `toml:"classification_rules"`
	GeometryDefaults    map[string]float64            `toml:"geometry_defaults"`
}

// Load reads a layer mapping from a TOML file.
func Load(filename string) (*Mapping, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read layer mapping: %w", err)
	}
	return Parse(data)
}

// Parse decodes a layer mapping from TOML bytes.
func Parse(data []byte) (*Mapping, error) {
	var m Mapping
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse layer mapping: %w", err)
	}
	return &m, nil
}

// Default returns the embedded AIA-style layer mapping.
func Default() *Mapping {
	m, err := Parse(defaultMapping)
	if err != nil {
		// The embedded mapping is validated by tests; failing to parse
		// it is a build defect, not a runtime condition.
		panic(fmt.Sprintf("layers: embedded default mapping: %v", err))
	}
	return m
}

// Patterns returns the include patterns configured for a category.
func (m *Mapping) Patterns(category string) []string {
	return m.LayerMapping[category].Patterns
}

// Matches reports whether a layer name belongs to the given element
// category. Exclusion patterns are checked first.
func (m *Mapping) Matches(layer, category string) bool {
	set, ok := m.LayerMapping[category]
	if !ok {
		return false
	}

	upper := strings.ToUpper(layer)

	for _, pattern := range set.Exclude {
		if globMatch(strings.ToUpper(pattern), upper) {
			return false
		}
	}
	for _, pattern := range set.Patterns {
		if globMatch(strings.ToUpper(pattern), upper) {
			return true
		}
	}
	return false
}

// CategoriesFor returns every category the layer matches, sorted.
func (m *Mapping) CategoriesFor(layer string) []string {
	var categories []string
	for category := range m.LayerMapping {
		if m.Matches(layer, category) {
			categories = append(categories, category)
		}
	}
	sort.Strings(categories)
	return categories
}

// LinesFor filters lines to those whose source layer matches a category.
func (m *Mapping) LinesFor(lines []model.Line, category string) []model.Line {
	var matched []model.Line
	for _, l := range lines {
		if m.Matches(l.Layer, category) {
			matched = append(matched, l)
		}
	}
	return matched
}

// Rule returns a numeric classification rule, or def when the rule is
// not configured.
func (m *Mapping) Rule(element, rule string, def float64) float64 {
	if rules, ok := m.ClassificationRules[element]; ok {
		if v, ok := rules[rule]; ok {
			return v
		}
	}
	return def
}

// GeometryDefault returns a geometry default parameter, or def when not
// configured.
func (m *Mapping) GeometryDefault(name string, def float64) float64 {
	if v, ok := m.GeometryDefaults[name]; ok {
		return v
	}
	return def
}

// globMatch matches shell-style patterns. Layer names never contain
// path separators, so path.Match gives fnmatch semantics; a malformed
// pattern simply does not match.
func globMatch(pattern, name string) bool {
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}
