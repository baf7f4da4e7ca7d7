package nodes

import (
	"fmt"
	"path/filepath"

	"github.com/vandre-sales/mlv-combo-nodes/internal/promptbuild"
)

// Node is one prompt node bound to a single attribute directory.
type Node struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
	Dir         string `json:"dir"`

	cache   *promptbuild.Cache
	builder *promptbuild.Builder
}

// NewNode binds a node to dir and loads its attributes through cache.
func NewNode(id, displayName, category, dir string, cache *promptbuild.Cache, builder *promptbuild.Builder) *Node {
	n := &Node{
		ID:          id,
		DisplayName: displayName,
		Category:    category,
		Dir:         dir,
		cache:       cache,
		builder:     builder,
	}
	n.Attributes()
	return n
}

// Attributes returns the node's cached attribute set.
func (n *Node) Attributes() promptbuild.AttributeSet {
	return n.cache.GetOrLoad(n.Dir)
}

// Schema declares the node inputs: the seed, one combo per attribute (RANDOM first)
// and the optional previous prompt. Without attributes only an error field follows the seed.
func (n *Node) Schema() InputSchema {
	set := n.Attributes()
	schema := InputSchema{Required: []Field{seedField()}}

	if set.Empty() {
		schema.Required = append(schema.Required, Field{
			Name:      ErrorField,
			Kind:      KindString,
			Default:   fmt.Sprintf("No valid config files found in '%s'. Check console for errors.", filepath.Base(n.Dir)),
			Multiline: true,
		})
		return schema
	}

	for _, attr := range set.Attributes() {
		options := make([]string, 0, len(attr.Values)+1)
		options = append(options, promptbuild.RandomSelection)
		options = append(options, attr.Values...)
		schema.Required = append(schema.Required, Field{
			Name:    attr.Name,
			Kind:    KindCombo,
			Options: options,
		})
	}
	schema.Optional = []Field{previousPromptField()}
	return schema
}

// Execute resolves the node's prompt.
func (n *Node) Execute(seed uint64, previousPrompt string, selections promptbuild.Selections) string {
	return n.builder.Build(n.Attributes(), promptbuild.BuildRequest{
		Seed:           seed,
		Selections:     selections,
		PreviousPrompt: previousPrompt,
	})
}

// Randomize picks a concrete value for every attribute, like the editor's "randomize all" button.
func (n *Node) Randomize(seed uint64) promptbuild.Selections {
	return promptbuild.Randomize(n.Attributes(), seed)
}
