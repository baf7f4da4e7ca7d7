package nodes

import "math"

// FieldKind is the widget type the editor renders for an input.
type FieldKind string

const (
	KindInt    FieldKind = "INT"
	KindString FieldKind = "STRING"
	KindCombo  FieldKind = "COMBO"
)

const (
	SeedField           = "seed"
	PreviousPromptField = "previous_prompt"
	ErrorField          = "error"
)

// Field declares one node input.
type Field struct {
	Name      string    `json:"name" yaml:"name"`
	Kind      FieldKind `json:"kind" yaml:"kind"`
	Options   []string  `json:"options,omitempty" yaml:"options,omitempty"`
	Default   any       `json:"default,omitempty" yaml:"default,omitempty"`
	Min       *uint64   `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *uint64   `json:"max,omitempty" yaml:"max,omitempty"`
	Multiline bool      `json:"multiline,omitempty" yaml:"multiline,omitempty"`
}

// InputSchema lists a node's inputs in display order.
type InputSchema struct {
	Required []Field `json:"required" yaml:"required"`
	Optional []Field `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Field finds an input by name in either list.
func (s InputSchema) Field(name string) (Field, bool) {
	for _, f := range s.Required {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range s.Optional {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func seedField() Field {
	lo, hi := uint64(0), uint64(math.MaxUint64)
	return Field{
		Name:    SeedField,
		Kind:    KindInt,
		Default: uint64(0),
		Min:     &lo,
		Max:     &hi,
	}
}

func previousPromptField() Field {
	return Field{
		Name:      PreviousPromptField,
		Kind:      KindString,
		Default:   "",
		Multiline: true,
	}
}
