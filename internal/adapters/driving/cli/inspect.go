package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Summarise a processed output file",
	Long: `Reads a processed output file the way a vector-store builder would and
summarises it: record counts per source and content type, distinct doc_ids
and average quality. Items that are not records are counted as invalid.

The file defaults to the configured output file. SQLite mirrors (.db, .sqlite)
are read as well as JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

var (
	inspectMinQuality float64
	inspectJSON       bool
	inspectRecords    bool
)

func init() {
	inspectCmd.Flags().Float64Var(&inspectMinQuality, "min-quality", 0, "Only consider records scoring at least this quality")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print the summary as JSON")
	inspectCmd.Flags().BoolVar(&inspectRecords, "records", false, "Print the records themselves as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectService == nil {
		return errors.New("inspect service not configured")
	}

	path, err := inspectPath(args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if inspectRecords {
		records, err := inspectService.Records(ctx, path, inspectMinQuality)
		if err != nil {
			return fmt.Errorf("inspect failed: %w", err)
		}
		return printJSON(cmd, records)
	}

	summary, err := inspectService.Summarise(ctx, path, inspectMinQuality)
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}
	if inspectJSON {
		return printJSON(cmd, summary)
	}

	cmd.Printf("File: %s\n", summary.Path)
	cmd.Printf("Records: %d", summary.Records)
	if summary.Invalid > 0 {
		cmd.Printf(" (%d invalid skipped)", summary.Invalid)
	}
	cmd.Println()
	cmd.Printf("Unique doc_ids: %d\n", summary.UniqueDocIDs)
	cmd.Printf("Average quality: %.3f\n", summary.AverageQuality)
	printCounts(cmd, "By source", summary.BySource)
	printCounts(cmd, "By content type", summary.ByContentType)
	return nil
}

// inspectPath returns the argument, or the configured output file.
func inspectPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	opts, err := configuredOptions()
	if err != nil {
		return "", fmt.Errorf("load configuration: %w", err)
	}
	return opts.OutputPath(), nil
}

func printCounts(cmd *cobra.Command, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	width := 0
	for k := range counts {
		keys = append(keys, k)
		width = max(width, len(k))
	}
	sort.Strings(keys)

	cmd.Printf("%s:\n", title)
	for _, k := range keys {
		cmd.Printf("  %-*s  %d\n", width, k, counts[k])
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
