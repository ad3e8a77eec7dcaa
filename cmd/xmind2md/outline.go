// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/xmind2md/internal/xmind"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <file.xmind>",
	Short: "Print the parsed topic tree as YAML or JSON",
	Long: `Outline prints the topic tree exactly as it was parsed from content.json,
before rendering. Absent titles, notes, and children are omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		root, err := xmind.ReadTopic(args[0])
		if err != nil {
			return err
		}

		switch format {
		case "yaml", "":
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(root)
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(root)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
	},
}

func init() {
	outlineCmd.Flags().String("format", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(outlineCmd)
}
