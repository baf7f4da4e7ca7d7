package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vandre-sales/mlv-combo-nodes/internal/logger"
	"github.com/vandre-sales/mlv-combo-nodes/internal/promptbuild"
)

var (
	promptBuildNode        string
	promptBuildRequestPath string
	promptBuildSeed        uint64
	promptBuildPrevious    string
	promptBuildSets        []string
	promptBuildRandomize   bool
	promptBuildOutputPath  string
)

// promptBuildRequest is the JSON accepted by --request.
type promptBuildRequest struct {
	Node string `json:"node,omitempty"`
	promptbuild.BuildRequest
}

var promptBuildCmd = &cobra.Command{
	Use:   "promptbuild",
	Short: "Resolve a node's prompt from selections and a seed",
	Long: `Resolve a node's prompt.

Selections come from --request (JSON) and --set name=value flags; flags win.
Use the value RANDOM to let the seed pick a candidate, and --randomize-all to
fill every attribute with a concrete seeded pick before applying --set.

Example request file:
  {"node": "MLV_Combo_persona", "seed": 42,
   "selections": {"hair": "RANDOM", "age": "young"},
   "previous_prompt": "masterpiece"}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req promptBuildRequest
		if promptBuildRequestPath != "" {
			var err error
			if req, err = readPromptBuildRequest(promptBuildRequestPath); err != nil {
				return err
			}
		}

		flags := cmd.Flags()
		if flags.Changed("node") {
			req.Node = promptBuildNode
		}
		if flags.Changed("seed") {
			req.Seed = promptBuildSeed
		}
		if flags.Changed("previous-prompt") {
			req.PreviousPrompt = promptBuildPrevious
		}
		sets, err := parseSelections(promptBuildSets)
		if err != nil {
			return err
		}

		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		n, err := lookupNode(reg, req.Node)
		if err != nil {
			return err
		}

		selections := req.Selections
		if promptBuildRandomize {
			selections = mergeSelections(n.Randomize(req.Seed), selections)
		}
		selections = mergeSelections(selections, sets)
		logger.Debug("Resolving %s with seed %d and selections %v", n.ID, req.Seed, selections)

		out := n.Execute(req.Seed, req.PreviousPrompt, selections)

		if promptBuildOutputPath == "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		}
		if err := os.WriteFile(promptBuildOutputPath, []byte(out), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	},
}

func readPromptBuildRequest(path string) (promptBuildRequest, error) {
	var req promptBuildRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("read request: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("parse request: %w", err)
	}
	return req, nil
}

// parseSelections turns name=value pairs into selections. Values may be empty or contain '='.
func parseSelections(pairs []string) (promptbuild.Selections, error) {
	out := make(promptbuild.Selections, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", pair)
		}
		out[name] = value
	}
	return out, nil
}

// mergeSelections returns base overlaid with overrides.
func mergeSelections(base, overrides promptbuild.Selections) promptbuild.Selections {
	out := make(promptbuild.Selections, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func init() {
	promptBuildCmd.Flags().StringVar(&promptBuildNode, "node", "", "Node id as listed by the nodes command")
	promptBuildCmd.Flags().StringVar(&promptBuildRequestPath, "request", "", "Path to JSON request file")
	promptBuildCmd.Flags().Uint64Var(&promptBuildSeed, "seed", 0, "Seed for RANDOM selections")
	promptBuildCmd.Flags().StringVar(&promptBuildPrevious, "previous-prompt", "", "Prompt to prepend to the result")
	promptBuildCmd.Flags().StringArrayVar(&promptBuildSets, "set", nil, "Attribute selection as name=value (repeatable)")
	promptBuildCmd.Flags().BoolVar(&promptBuildRandomize, "randomize-all", false, "Pick a concrete value for every attribute from the seed")
	promptBuildCmd.Flags().StringVar(&promptBuildOutputPath, "output", "", "Write output to file (default: stdout)")
	rootCmd.AddCommand(promptBuildCmd)
}
