package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vandre-sales/mlv-combo-nodes/internal/config"
	"github.com/vandre-sales/mlv-combo-nodes/internal/logger"
	"github.com/vandre-sales/mlv-combo-nodes/internal/nodes"
	"github.com/vandre-sales/mlv-combo-nodes/internal/promptbuild"
)

var (
	logLevel   string
	configPath string

	// cfg is loaded once by the root pre-run hook.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mlv-combo",
	Short: "Build image-generation prompts from attribute directories",
	Long: `mlv-combo turns directories of attribute files into prompt nodes.

Each subdirectory of the configs directory is one node. Each <N>_<name>.txt
file inside it is a TOML attribute definition:

  attribute_name = "hair"
  list_value     = ["red", "blue"]
  before_value   = "with "     # optional
  after_value    = " hair"     # optional
  separator      = ", "        # optional, default " "

Commands:
  mlv-combo nodes                 List registered nodes
  mlv-combo schema <node-id>      Show a node's inputs
  mlv-combo promptbuild --node    Resolve a prompt`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			config.SetPath(configPath)
		}
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		level := cfg.Logging.Level
		if cmd.Flags().Changed("log") {
			level = logLevel
		}
		return logger.Init(level, cfg.Logging.File)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: .mlv-combo.yaml next to the executable)")
}

// loadRegistry builds the cache, builder and node registry from the loaded config.
func loadRegistry() (*nodes.Registry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config not loaded")
	}
	pb := cfg.PromptBuild
	cache := promptbuild.NewCache(promptbuild.NewLoader(pb))
	return nodes.Discover(pb, cache, promptbuild.NewBuilder(pb)), nil
}

func lookupNode(reg *nodes.Registry, id string) (*nodes.Node, error) {
	if id == "" {
		return nil, fmt.Errorf("node id is required")
	}
	n, ok := reg.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown node %q (run `mlv-combo nodes` to list them)", id)
	}
	return n, nil
}

func Execute() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
