// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/xmind2md/internal/output"
)

var saveCmd = &cobra.Command{
	Use:   "save <destination>",
	Short: "Write text from stdin or a file to a destination",
	Long: `Save writes text to the destination file, creating or replacing it.
The text is read from --from, or from stdin when --from is not given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")

		var (
			data []byte
			err  error
		)
		if from != "" {
			data, err = os.ReadFile(from)
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		if err := output.SaveText(args[0], string(data)); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %s\n", args[0])
		return nil
	},
}

func init() {
	saveCmd.Flags().String("from", "", "read text from this file instead of stdin")

	rootCmd.AddCommand(saveCmd)
}
