package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vandre-sales/mlv-combo-nodes/internal/nodes"
)

var nodesJSON bool

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List prompt nodes discovered in the configs directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		return writeNodeList(cmd.OutOrStdout(), reg.Nodes(), nodesJSON)
	},
}

type nodeSummary struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Category    string   `json:"category"`
	Dir         string   `json:"dir"`
	Attributes  []string `json:"attributes"`
}

func writeNodeList(w io.Writer, list []*nodes.Node, asJSON bool) error {
	summaries := make([]nodeSummary, 0, len(list))
	for _, n := range list {
		summaries = append(summaries, nodeSummary{
			ID:          n.ID,
			DisplayName: n.DisplayName,
			Category:    n.Category,
			Dir:         n.Dir,
			Attributes:  n.Attributes().Names(),
		})
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No nodes found. Add subdirectories with attribute files to the configs directory.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tATTRIBUTES")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.ID, s.DisplayName, len(s.Attributes))
	}
	return tw.Flush()
}

func init() {
	nodesCmd.Flags().BoolVar(&nodesJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(nodesCmd)
}
