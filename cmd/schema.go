package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vandre-sales/mlv-combo-nodes/internal/nodes"
)

var schemaFormat string

var schemaCmd = &cobra.Command{
	Use:   "schema <node-id>",
	Short: "Print the input schema a node declares to the editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		n, err := lookupNode(reg, args[0])
		if err != nil {
			return err
		}
		return writeSchema(cmd.OutOrStdout(), n.Schema(), schemaFormat)
	},
}

func writeSchema(w io.Writer, schema nodes.InputSchema, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(schema)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(schema); err != nil {
			return fmt.Errorf("encode schema: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}

func init() {
	schemaCmd.Flags().StringVar(&schemaFormat, "format", "json", "Output format: json, yaml")
	rootCmd.AddCommand(schemaCmd)
}
