package config

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Attribute describes one editable field of an object or support tool.
type Attribute struct {
	Name    string   `yaml:"name" json:"name"`
	Key     string   `yaml:"key" json:"key"`
	Type    string   `yaml:"type" json:"type"`
	Default any      `yaml:"default" json:"defaultValue"`
	Min     *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max     *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Step    *float64 `yaml:"step,omitempty" json:"step,omitempty"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
}

// Subtopic lists the items offered for one subtopic.
type Subtopic struct {
	Objects      []string `yaml:"objects" json:"objects"`
	SupportTools []string `yaml:"supportTools" json:"supportTools"`
}

// Catalog is the attribute table consulted for defaults. It never
// validates physics.
type Catalog struct {
	Objects      map[string][]Attribute         `yaml:"objects"`
	SupportTools map[string][]Attribute         `yaml:"supportTools"`
	Topics       map[string]map[string]Subtopic `yaml:"topics"`
}

func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Attributes returns the attribute list for item. Lookup is exact first,
// then case-insensitive. Unknown items yield nil.
func (c *Catalog) Attributes(item string, supportTool bool) []Attribute {
	if item == "" {
		return nil
	}
	table := c.Objects
	if supportTool {
		table = c.SupportTools
	}
	if attrs, ok := table[item]; ok {
		return attrs
	}
	for name, attrs := range table {
		if strings.EqualFold(name, item) {
			return attrs
		}
	}
	return nil
}

// Defaults maps each attribute key of item to its default value.
func (c *Catalog) Defaults(item string, supportTool bool) map[string]any {
	attrs := c.Attributes(item, supportTool)
	out := make(map[string]any, len(attrs))
	for _, a := range attrs {
		out[a.Key] = copyDefault(a.Default)
	}
	return out
}

// nested position defaults must not be shared between callers
func copyDefault(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	c := make(map[string]any, len(m))
	for k, x := range m {
		c[k] = x
	}
	return c
}

func (c *Catalog) Subtopic(topic, subtopic string) (Subtopic, bool) {
	s, ok := c.Topics[topic][subtopic]
	return s, ok
}

func (c *Catalog) TopicNames() []string {
	names := make([]string, 0, len(c.Topics))
	for name := range c.Topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) SubtopicNames(topic string) []string {
	names := make([]string, 0, len(c.Topics[topic]))
	for name := range c.Topics[topic] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Items returns the sorted object or support tool names.
func (c *Catalog) Items(supportTool bool) []string {
	table := c.Objects
	if supportTool {
		table = c.SupportTools
	}
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
