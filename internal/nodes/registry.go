package nodes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vandre-sales/mlv-combo-nodes/internal/config"
	"github.com/vandre-sales/mlv-combo-nodes/internal/logger"
	"github.com/vandre-sales/mlv-combo-nodes/internal/promptbuild"
)

// Registry holds one node per subdirectory of the configs root.
type Registry struct {
	nodes []*Node
	byID  map[string]*Node
}

// Discover registers a node for every subdirectory of cfg.ConfigsRoot(), in name order.
// A missing root yields an empty registry.
func Discover(cfg config.PromptBuildConfig, cache *promptbuild.Cache, builder *promptbuild.Builder) *Registry {
	cfg = cfg.WithDefaults()
	r := &Registry{byID: make(map[string]*Node)}

	root := cfg.ConfigsRoot()
	entries, err := os.ReadDir(root)
	if err != nil {
		logger.Warn("Configs directory not found at %s, no nodes registered", root)
		return r
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		subdir := entry.Name()
		node := NewNode(
			NodeID(cfg, subdir),
			DisplayName(cfg, subdir),
			cfg.Category,
			filepath.Join(root, subdir),
			cache,
			builder,
		)
		r.add(node)
		logger.Debug("Registered node %s (%d attributes)", node.ID, node.Attributes().Len())
	}

	logger.Info("Registered %d prompt nodes from %s", len(r.nodes), root)
	return r
}

func (r *Registry) add(n *Node) {
	if _, exists := r.byID[n.ID]; exists {
		logger.Warn("Duplicate node id %s, keeping the first", n.ID)
		return
	}
	r.nodes = append(r.nodes, n)
	r.byID[n.ID] = n
}

// Nodes returns registered nodes in discovery order.
func (r *Registry) Nodes() []*Node {
	return append([]*Node(nil), r.nodes...)
}

func (r *Registry) Get(id string) (*Node, bool) {
	n, ok := r.byID[id]
	return n, ok
}

func (r *Registry) Len() int {
	return len(r.nodes)
}

// NodeID is the node identifier for a configs subdirectory, e.g. MLV_Combo_persona.
func NodeID(cfg config.PromptBuildConfig, subdir string) string {
	return cfg.WithDefaults().NodePrefix + subdir
}

// DisplayName renders a subdirectory as a title, e.g. "hair_style" -> "MLV Combo (Hair Style)".
func DisplayName(cfg config.PromptBuildConfig, subdir string) string {
	title := cases.Title(language.Und).String(strings.ReplaceAll(subdir, "_", " "))
	return fmt.Sprintf("%s (%s)", cfg.WithDefaults().DisplayPrefix, title)
}
