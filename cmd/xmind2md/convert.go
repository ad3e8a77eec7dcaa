// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/xmind2md/internal/convert"
	"github.com/pdiddy/xmind2md/internal/output"
	"github.com/pdiddy/xmind2md/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert .xmind files to Markdown",
	Long: `Convert renders a .xmind document as Markdown. With a single file the
Markdown is written to stdout, or to --output when given.

With --batch (or more than one file) each document is written to
<name>.md in --output-dir, or next to its source. Existing Markdown files
are skipped unless --force is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "write Markdown to this file instead of stdout (single file only)")
	convertCmd.Flags().Bool("batch", false, "write <name>.md files instead of printing")
	convertCmd.Flags().String("output-dir", "", "directory for batch output (default: next to each source)")
	convertCmd.Flags().Bool("frontmatter", false, "prepend YAML frontmatter in batch output")
	convertCmd.Flags().Bool("force", false, "overwrite existing Markdown files in batch output")

	_ = viper.BindPFlag("output_dir", convertCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("frontmatter", convertCmd.Flags().Lookup("frontmatter"))
	_ = viper.BindPFlag("force", convertCmd.Flags().Lookup("force"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	batch, _ := cmd.Flags().GetBool("batch")
	outPath, _ := cmd.Flags().GetString("output")

	if batch || len(args) > 1 {
		if outPath != "" {
			return fmt.Errorf("--output takes a single file; use --output-dir for batches")
		}
		cfg := types.ConversionConfig{
			OutputDir:   viper.GetString("output_dir"),
			Frontmatter: viper.GetBool("frontmatter"),
			Force:       viper.GetBool("force"),
		}
		result := convert.ConvertBatch(args, cfg, os.Stdout)
		if result.HasFailures() {
			return fmt.Errorf("%d file(s) failed conversion", result.Failed)
		}
		return nil
	}

	md, err := convert.Convert(args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		_, err := fmt.Fprint(os.Stdout, md)
		return err
	}
	if err := output.SaveText(outPath, md); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Saved %s\n", outPath)
	return nil
}
