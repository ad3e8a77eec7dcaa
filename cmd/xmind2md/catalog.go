// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/xmind2md/internal/catalog"
	"github.com/pdiddy/xmind2md/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the mind-map catalog (index, search, show, export)",
	Long: `Catalog keeps a local SQLite index of converted mind maps. Use
subcommands to index a directory of .xmind files, search their topics,
print a stored conversion, or export the map list.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index <dir>",
	Short: "Index every .xmind file under a directory",
	Long: `Index converts each .xmind file under dir and stores its topics and
Markdown. Unchanged files are skipped on subsequent runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), args[0], os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search catalogued topics by title or notes",
	RunE:  runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	mapPath, _ := cmd.Flags().GetString("map")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := catalog.QueryOptions{
		Query:      strings.Join(args, " "),
		MapPath:    mapPath,
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query or --map")
	}

	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []catalog.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-5s  %s\n", "Map", "Depth", "Topic")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))

	for _, r := range results {
		mapPath := truncateLeft(r.MapPath, 30)
		title := truncateRight(strings.ReplaceAll(r.Title, "\n", " "), 40)
		fmt.Fprintf(os.Stdout, "%-30s  %-5d  %s\n", mapPath, r.Depth, title)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// truncateRight shortens s to at most max runes, ending in "...".
func truncateRight(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// truncateLeft shortens s to at most max runes, keeping the tail.
func truncateLeft(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return "..." + string(runes[len(runes)-max+3:])
}

// --- show subcommand ---

var catalogShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Print the stored Markdown of a catalogued map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := catalog.NewStore(catalogConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		md, err := store.Markdown(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Print(md)
		return nil
	},
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalogued map list to YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := catalog.NewStore(catalogConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		var path string
		switch format {
		case "yaml", "":
			path, err = store.ExportYAML(context.Background())
		case "json":
			path, err = store.ExportJSON(context.Background())
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	},
}

// --- shared helpers ---

func catalogConfig() types.CatalogConfig {
	dir := viper.GetString("catalog_dir")
	if dir == "" {
		dir = "catalog"
	}
	return types.CatalogConfig{
		CatalogDir: dir,
		MaxResults: viper.GetInt("max_results"),
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "directory holding catalog.db and exports")
	catalogCmd.PersistentFlags().Int("max-results", 20, "default maximum number of search results")
	_ = viper.BindPFlag("catalog_dir", catalogCmd.PersistentFlags().Lookup("catalog-dir"))
	_ = viper.BindPFlag("max_results", catalogCmd.PersistentFlags().Lookup("max-results"))

	catalogSearchCmd.Flags().String("map", "", "restrict results to one catalogued map path")
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
