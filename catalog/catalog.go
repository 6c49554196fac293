package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed species.yaml
var defaultDocument []byte

//go:embed species.schema.json
var schemaDocument []byte

// StatsDocument is the designer-authored stat block for one species. All
// numeric tuning the state machine reads comes from here; code carries no
// per-species stat constants.
type StatsDocument struct {
	MaxHealth                float64 `yaml:"max_health" json:"max_health" jsonschema:"required,minimum=1"`
	AttackDamage             float64 `yaml:"attack_damage" json:"attack_damage" jsonschema:"required,minimum=0"`
	AttackRange              float64 `yaml:"attack_range" json:"attack_range" jsonschema:"required,minimum=0"`
	AttackSpeedMs            int64   `yaml:"attack_speed_ms" json:"attack_speed_ms" jsonschema:"required,minimum=0"`
	MovementSpeed            float64 `yaml:"movement_speed" json:"movement_speed" jsonschema:"required,minimum=0"`
	SprintSpeed              float64 `yaml:"sprint_speed" json:"sprint_speed" jsonschema:"required,minimum=0"`
	PerceptionRange          float64 `yaml:"perception_range" json:"perception_range" jsonschema:"required,minimum=0"`
	PerceptionAngle          float64 `yaml:"perception_angle" json:"perception_angle" jsonschema:"required,minimum=0,maximum=360"`
	PatrolRadius             float64 `yaml:"patrol_radius" json:"patrol_radius" jsonschema:"required,minimum=0"`
	ChaseTriggerRange        float64 `yaml:"chase_trigger_range" json:"chase_trigger_range" jsonschema:"required,minimum=0"`
	FleeTriggerHealthPercent float64 `yaml:"flee_trigger_health_percent" json:"flee_trigger_health_percent" jsonschema:"minimum=0,maximum=1"`
	HideDurationMs           int64   `yaml:"hide_duration_ms" json:"hide_duration_ms" jsonschema:"minimum=0"`
}

// SpeciesDocument binds a species tag to its patrol pattern and stat block.
type SpeciesDocument struct {
	Species string        `yaml:"species" json:"species" jsonschema:"required,pattern=^[a-z][a-z-]*$"`
	Pattern string        `yaml:"pattern" json:"pattern" jsonschema:"required,enum=loop,enum=wander,enum=figure-eight"`
	Stats   StatsDocument `yaml:"stats" json:"stats" jsonschema:"required"`
}

// FileDocument is the on-disk shape of the species catalog. Exported so the
// schema generator can reflect over it.
type FileDocument struct {
	Version int               `yaml:"version" json:"version" jsonschema:"required,minimum=1"`
	Species []SpeciesDocument `yaml:"species" json:"species" jsonschema:"required"`
}

// Catalog is the resolved, validated species tuning table.
type Catalog struct {
	version int
	entries map[string]SpeciesDocument
}

// Load reads, validates, and resolves a species catalog. An empty path loads
// the embedded default document.
func Load(path string) (*Catalog, error) {
	raw := defaultDocument
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("species catalog: %w", err)
		}
		raw = data
	}
	return parse(raw)
}

func parse(raw []byte) (*Catalog, error) {
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("species catalog: parse yaml: %w", err)
	}
	if err := validate(generic); err != nil {
		return nil, fmt.Errorf("species catalog: %w", err)
	}

	var doc FileDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("species catalog: decode: %w", err)
	}

	entries := make(map[string]SpeciesDocument, len(doc.Species))
	for _, entry := range doc.Species {
		if _, dup := entries[entry.Species]; dup {
			return nil, fmt.Errorf("species catalog: duplicate species %q", entry.Species)
		}
		entries[entry.Species] = entry
	}
	return &Catalog{version: doc.Version, entries: entries}, nil
}

func validate(doc any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("species.schema.json", bytes.NewReader(schemaDocument)); err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	schema, err := compiler.Compile("species.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	// The validator wants JSON-shaped values; round-trip the YAML document
	// through encoding/json to normalize numbers and maps.
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// Version reports the catalog document version.
func (c *Catalog) Version() int {
	if c == nil {
		return 0
	}
	return c.version
}

// Lookup returns the tuning entry for a species tag.
func (c *Catalog) Lookup(species string) (SpeciesDocument, bool) {
	if c == nil {
		return SpeciesDocument{}, false
	}
	entry, ok := c.entries[species]
	return entry, ok
}

// SpeciesTags lists the known species in stable order.
func (c *Catalog) SpeciesTags() []string {
	if c == nil {
		return nil
	}
	tags := make([]string, 0, len(c.entries))
	for tag := range c.entries {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
