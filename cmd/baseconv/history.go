package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/baseconv/internal/history"
	"github.com/pdiddy/baseconv/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, export, or clear recorded conversions",
	Long: `History queries the SQLite database that conversion commands append to
when run with --record. Results are newest first and can be filtered by mode
or by a substring of the input or output.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("mode", "", "filter by mode: hex2dec or dec2hex")
	historyCmd.Flags().String("match", "", "filter by substring of input or output")
	historyCmd.Flags().Int("limit", 0, "maximum number of rows (default from history.max_results)")
	historyCmd.Flags().Bool("json", false, "output results as JSON")
	historyCmd.Flags().String("export", "", "export to a file instead of listing: yaml or json")
	historyCmd.Flags().String("out", "", "export file path (default history.<format>)")
	historyCmd.Flags().Bool("clear", false, "delete all recorded conversions")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	match, _ := cmd.Flags().GetString("match")
	limit, _ := cmd.Flags().GetInt("limit")
	asJSON, _ := cmd.Flags().GetBool("json")
	exportFmt, _ := cmd.Flags().GetString("export")
	outPath, _ := cmd.Flags().GetString("out")
	clearAll, _ := cmd.Flags().GetBool("clear")

	opts := history.QueryOptions{Match: match, MaxResults: limit}
	if modeFlag != "" {
		mode, err := types.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		opts.Mode = mode
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	if clearAll {
		n, err := store.Clear(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "cleared %d conversion(s)\n", n)
		return nil
	}

	if exportFmt != "" {
		if outPath == "" {
			outPath = "history." + exportFmt
		}
		switch exportFmt {
		case "yaml":
			err = store.ExportYAML(ctx, outPath, opts)
		case "json":
			err = store.ExportJSON(ctx, outPath, opts)
		default:
			return fmt.Errorf("unknown export format %q (want yaml or json)", exportFmt)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", outPath)
		return nil
	}

	results, err := store.Recent(ctx, opts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON {
		if results == nil {
			results = []types.Conversion{}
		}
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(results) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "no conversions recorded")
		return nil
	}
	for _, c := range results {
		fmt.Fprintf(w, "%s  %-7s  %-10s -> %s\n",
			c.At.Local().Format(time.DateTime), c.Mode, c.Input, c.Output)
	}
	return nil
}
