package importer

import "fmt"

const (
	RuleDirect = "direct"
	RuleMerge  = "merge"
)

// RuleSpec is the serialized form of a Rule, as received over HTTP or read from a mapping file.
type RuleSpec struct {
	Type      string   `json:"type" yaml:"type"`
	Column    string   `json:"column,omitempty" yaml:"column,omitempty"`
	Columns   []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	Separator *string  `json:"separator,omitempty" yaml:"separator,omitempty"`
}

// MappingSpec is the serialized form of a MappingConfig.
type MappingSpec map[TargetField]RuleSpec

// Rule converts the spec into a Rule.
func (s RuleSpec) Rule() (Rule, error) {
	switch s.Type {
	case RuleDirect:
		if s.Column == "" {
			return nil, fmt.Errorf("%w: direct rule without column", ErrConfiguration)
		}

		return Direct{Column: s.Column}, nil
	case RuleMerge:
		if len(s.Columns) == 0 {
			return nil, fmt.Errorf("%w: merge rule without columns", ErrConfiguration)
		}

		return Merge{Columns: s.Columns, Separator: s.Separator}, nil
	}

	return nil, fmt.Errorf("%w: unknown rule type %q", ErrConfiguration, s.Type)
}

// Config validates the spec and builds a MappingConfig.
func (s MappingSpec) Config() (MappingConfig, error) {
	cfg := make(MappingConfig, len(s))

	for field, spec := range s {
		if !field.valid() {
			return nil, fmt.Errorf("%w: unknown target field %q", ErrConfiguration, field)
		}

		rule, err := spec.Rule()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}

		cfg[field] = rule
	}

	return cfg, nil
}
