package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tdsprep/internal/core/domain"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the data preparation pipeline",
	Long: `Loads course markdown and Discourse posts, cleans and chunks them,
scores every chunk and writes the result to the output file.

The course stage runs when both --markdown-metadata and --markdown-dir are set.
The forum stage runs when --discourse-input is set. Forum posts are filtered
by creation date when both --date-from and --date-to are set.

With --watch, or watch = true in the configuration file, the pipeline runs
again whenever an input changes.`,
	Args: cobra.NoArgs,
	RunE: runProcess,
}

var watchInputs bool

func init() {
	f := processCmd.Flags()
	f.String("markdown-metadata", "", "Scraped page metadata JSON file")
	f.String("markdown-dir", "", "Directory of scraped markdown files")
	f.String("discourse-input", "", "Discourse posts JSON file")
	f.String("date-from", "", "Earliest forum post creation date (ISO-8601, inclusive)")
	f.String("date-to", "", "Latest forum post creation date (ISO-8601, inclusive)")
	f.StringP("output-file", "o", "", "Output JSON file (default "+domain.DefaultOutputFile+")")
	f.String("sqlite-output", "", "Also mirror the output into this SQLite database")
	f.Float64("min-quality", 0, "Drop chunks scoring below this quality")
	f.Int("chunk-size", 0, fmt.Sprintf("Maximum characters per chunk (default %d)", domain.DefaultChunkSize))
	f.Int("chunk-overlap", 0, fmt.Sprintf("Characters shared by neighbouring chunks, 0 for none (default %d)", domain.DefaultChunkOverlap))
	f.BoolVarP(&watchInputs, "watch", "w", false, "Re-run whenever an input file changes")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	if !opts.HasCourseStage() && !opts.HasForumStage() {
		cmd.PrintErrln("No inputs configured; writing an empty output file.")
	}

	ctx := cmd.Context()

	if opts.Watch {
		cmd.Println("Watching inputs for changes (Ctrl+C to stop)...")
		return pipelineService.Watch(ctx, opts, func(report *domain.RunReport, err error) {
			if err != nil {
				cmd.PrintErrf("Run failed: %v\n", err)
				return
			}
			printReport(cmd, report)
		})
	}

	report, err := pipelineService.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}
	printReport(cmd, report)
	return nil
}

// resolveOptions reads the configuration file, then applies every flag the
// user set explicitly.
func resolveOptions(cmd *cobra.Command) (domain.PipelineOptions, error) {
	opts, err := configuredOptions()
	if err != nil {
		return domain.PipelineOptions{}, fmt.Errorf("load configuration: %w", err)
	}

	f := cmd.Flags()
	stringFlags := map[string]*string{
		"markdown-metadata": &opts.MarkdownMetadata,
		"markdown-dir":      &opts.MarkdownDir,
		"discourse-input":   &opts.DiscourseInput,
		"date-from":         &opts.DateFrom,
		"date-to":           &opts.DateTo,
		"output-file":       &opts.OutputFile,
		"sqlite-output":     &opts.SQLiteOutput,
	}
	for name, dst := range stringFlags {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}

	if f.Changed("chunk-size") {
		opts.ChunkSize, _ = f.GetInt("chunk-size")
	}
	if f.Changed("chunk-overlap") {
		overlap, _ := f.GetInt("chunk-overlap")
		opts.ChunkOverlap = &overlap
	}
	if f.Changed("min-quality") {
		opts.MinQuality, _ = f.GetFloat64("min-quality")
	}
	if f.Changed("watch") {
		opts.Watch = watchInputs
	}
	return opts, nil
}

func printReport(cmd *cobra.Command, report *domain.RunReport) {
	printStage(cmd, "Course content", report.Course, "markdown_metadata and markdown_dir not set")
	printStage(cmd, "Discourse posts", report.Forum, "discourse_input not set")
	cmd.Printf("Saved %d of %d chunks to %s\n", report.Written, report.Total, report.OutputFile)
	if report.Warnings > 0 {
		cmd.PrintErrf("%d warnings; see [WARN] lines above\n", report.Warnings)
	}
}

func printStage(cmd *cobra.Command, name string, stage domain.StageReport, skipReason string) {
	if !stage.Ran {
		cmd.Printf("%s: skipped (%s)\n", name, skipReason)
		return
	}

	cmd.Printf("%s: %d documents, %d chunks", name, stage.Documents, stage.Chunks)
	if stage.Skipped > 0 {
		cmd.Printf(", %d skipped", stage.Skipped)
	}
	if stage.Fallbacks > 0 {
		cmd.Printf(", %d split without headings", stage.Fallbacks)
	}
	cmd.Println()
}
