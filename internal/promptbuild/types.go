package promptbuild

import "slices"

// RandomSelection asks the builder to pick a candidate with the seeded generator.
const RandomSelection = "RANDOM"

// AttributeConfig is one attribute file: a name, its candidates and the text around the picked value.
type AttributeConfig struct {
	Name      string   `json:"attribute_name" yaml:"attribute_name"`
	Values    []string `json:"list_value" yaml:"list_value"`
	Prefix    string   `json:"before_value,omitempty" yaml:"before_value,omitempty"`
	Suffix    string   `json:"after_value,omitempty" yaml:"after_value,omitempty"`
	Separator string   `json:"separator" yaml:"separator"`
}

func (a AttributeConfig) clone() AttributeConfig {
	a.Values = slices.Clone(a.Values)
	return a
}

// AttributeSet is the ordered, read-only list of attributes loaded from one directory.
// The zero value is an empty set.
type AttributeSet struct {
	attrs []AttributeConfig
}

// NewAttributeSet copies attrs into a set, keeping their order.
func NewAttributeSet(attrs ...AttributeConfig) AttributeSet {
	out := make([]AttributeConfig, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a.clone())
	}
	return AttributeSet{attrs: out}
}

func (s AttributeSet) Len() int {
	return len(s.attrs)
}

func (s AttributeSet) Empty() bool {
	return len(s.attrs) == 0
}

// Attributes returns a copy of the attributes; mutating it does not affect the set.
func (s AttributeSet) Attributes() []AttributeConfig {
	out := make([]AttributeConfig, 0, len(s.attrs))
	for _, a := range s.attrs {
		out = append(out, a.clone())
	}
	return out
}

// Names lists attribute names in order.
func (s AttributeSet) Names() []string {
	names := make([]string, 0, len(s.attrs))
	for _, a := range s.attrs {
		names = append(names, a.Name)
	}
	return names
}

// Lookup returns a copy of the named attribute.
func (s AttributeSet) Lookup(name string) (AttributeConfig, bool) {
	for _, a := range s.attrs {
		if a.Name == name {
			return a.clone(), true
		}
	}
	return AttributeConfig{}, false
}

// Selections maps attribute name to the chosen value, RandomSelection, or "" for none.
type Selections map[string]string

// BuildRequest carries the per-call inputs for prompt resolution.
type BuildRequest struct {
	Seed       uint64     `json:"seed"`
	Selections Selections `json:"selections,omitempty"`
	// PreviousPrompt is prepended to the result when it is not blank.
	PreviousPrompt string `json:"previous_prompt,omitempty"`
}
