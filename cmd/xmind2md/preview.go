// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/xmind2md/internal/convert"
	"github.com/pdiddy/xmind2md/internal/markdown"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file.xmind>",
	Short: "Print the converted Markdown rendered as HTML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		md, err := convert.Convert(args[0])
		if err != nil {
			return err
		}
		html, err := markdown.Preview([]byte(md))
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(html)
		return err
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
