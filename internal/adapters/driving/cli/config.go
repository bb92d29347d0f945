package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the configuration file",
	Long: `Shows the pipeline settings read from the configuration file.

Use 'tdsprep config set <key> <value>' to change one setting.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Validates the value for the key and saves it to the configuration file,
creating the file when it does not exist.

Keys: markdown_metadata, markdown_dir, discourse_input, date_from, date_to,
output_file, sqlite_output, min_quality, chunker.chunk_size,
chunker.overlap, watch.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	opts, err := settingsService.Options(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	printSettings(cmd, opts)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	path, err := settingsService.Set(configPath, args[0], args[1])
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			cmd.PrintErrf("Valid keys: %v\n", settingsService.Keys())
		}
		return fmt.Errorf("config set failed: %w", err)
	}

	cmd.Printf("Set %s = %s in %s\n", args[0], args[1], path)
	return nil
}

func printSettings(cmd *cobra.Command, opts domain.PipelineOptions) {
	rows := [][2]string{
		{"markdown_metadata", orUnset(opts.MarkdownMetadata)},
		{"markdown_dir", orUnset(opts.MarkdownDir)},
		{"discourse_input", orUnset(opts.DiscourseInput)},
		{"date_from", orUnset(opts.DateFrom)},
		{"date_to", orUnset(opts.DateTo)},
		{"output_file", opts.OutputPath()},
		{"sqlite_output", orUnset(opts.SQLiteOutput)},
		{"min_quality", strconv.FormatFloat(opts.MinQuality, 'g', -1, 64)},
		{"chunker.chunk_size", strconv.Itoa(chunkSize(opts))},
		{"chunker.overlap", strconv.Itoa(opts.Overlap())},
		{"watch", strconv.FormatBool(opts.Watch)},
	}
	for _, row := range rows {
		cmd.Printf("%-20s %s\n", row[0], row[1])
	}
}

func chunkSize(opts domain.PipelineOptions) int {
	if opts.ChunkSize > 0 {
		return opts.ChunkSize
	}
	return domain.DefaultChunkSize
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
