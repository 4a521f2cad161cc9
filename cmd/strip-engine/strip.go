package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/strip-engine/internal/pipeline"
	"github.com/pdiddy/strip-engine/internal/report"
	"github.com/pdiddy/strip-engine/pkg/types"
)

var stripCmd = &cobra.Command{
	Use:   "strip [pdfs...]",
	Short: "Remove configured sections from PDFs",
	Long: `Strip detects section boundaries in each input PDF (outline first,
heading-text fallback), plans a minimal set of page removals, and writes the
stripped document to the output directory. With --batch, every *.pdf under
the input directory is processed by a bounded worker pool.

Each document is independent: a corrupt file is reported and skipped while
the rest of the batch continues.`,
	RunE: runStrip,
}

func init() {
	stripCmd.Flags().Bool("batch", false, "process all *.pdf files in the input directory")
	stripCmd.Flags().String("input-dir", "", "input directory for --batch (default \"papers\")")
	stripCmd.Flags().String("out-dir", "", "output directory (default \"stripped\")")
	stripCmd.Flags().String("report-dir", "", "run-log directory (default \"reports\")")
	stripCmd.Flags().Bool("no-report", false, "skip the SQLite run log and YAML sidecars")
	stripCmd.Flags().Int("workers", 0, "concurrent documents (default: number of CPUs)")
	stripCmd.Flags().StringSlice("remove", nil, "section names to remove (default: introduction,background,acknowledgments,references)")
	stripCmd.Flags().Float64("min-score", 0, "fuzzy-match acceptance threshold in [0,1] (default 0.8)")
	stripCmd.Flags().Int("keep-first", -1, "always keep the first N pages")
	stripCmd.Flags().String("link-policy", "", "links into removed pages: drop or nearest-retained")
	stripCmd.Flags().Bool("heading-fallback", true, "scan page text when the outline is insufficient")
	stripCmd.Flags().Bool("full-scan", false, "heading detector scans the whole vocabulary, not just outline gaps")
	stripCmd.Flags().Bool("debug", false, "emit per-candidate detection traces")

	rootCmd.AddCommand(stripCmd)
}

func runStrip(cmd *cobra.Command, args []string) error {
	cfg := loadStripConfig()
	batch := loadBatchConfig()
	applyStripFlags(cmd, &cfg)

	if v, _ := cmd.Flags().GetString("input-dir"); v != "" {
		batch.InputDir = v
	}
	if v, _ := cmd.Flags().GetString("out-dir"); v != "" {
		batch.OutputDir = v
	}
	if v, _ := cmd.Flags().GetString("report-dir"); v != "" {
		batch.ReportDir = v
	}
	if cmd.Flags().Changed("workers") {
		batch.Workers, _ = cmd.Flags().GetInt("workers")
	}

	if !cfg.LinkPolicy.Valid() {
		return fmt.Errorf("invalid link policy %q (want drop or nearest-retained)", cfg.LinkPolicy)
	}

	batchMode, _ := cmd.Flags().GetBool("batch")
	inputs := args
	if batchMode {
		if len(args) > 0 {
			return fmt.Errorf("--batch and explicit inputs are mutually exclusive")
		}
		var err error
		inputs, err = globPDFs(batch.InputDir)
		if err != nil {
			return err
		}
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input PDFs (provide file arguments or use --batch)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	startedAt := time.Now()
	p := pipeline.New(cfg, os.Stderr)
	result := p.ProcessBatch(ctx, inputs, batch.OutputDir, batch.Workers, os.Stdout)

	if noReport, _ := cmd.Flags().GetBool("no-report"); !noReport {
		if err := recordRun(batch.ReportDir, startedAt, result); err != nil {
			fmt.Fprintf(os.Stderr, "warning: recording run report: %v\n", err)
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed", result.Failed)
	}
	return nil
}

// applyStripFlags overlays changed command-line flags onto cfg.
func applyStripFlags(cmd *cobra.Command, cfg *types.StripConfig) {
	if cmd.Flags().Changed("remove") {
		cfg.SectionsToRemove, _ = cmd.Flags().GetStringSlice("remove")
	}
	if cmd.Flags().Changed("min-score") {
		cfg.MinHeadingScore, _ = cmd.Flags().GetFloat64("min-score")
	}
	if cmd.Flags().Changed("keep-first") {
		cfg.KeepFirstPages, _ = cmd.Flags().GetInt("keep-first")
	}
	if cmd.Flags().Changed("link-policy") {
		v, _ := cmd.Flags().GetString("link-policy")
		cfg.LinkPolicy = types.LinkPolicy(v)
	}
	if cmd.Flags().Changed("heading-fallback") {
		cfg.UseHeadingFallback, _ = cmd.Flags().GetBool("heading-fallback")
	}
	if cmd.Flags().Changed("full-scan") {
		cfg.HeadingFullScan, _ = cmd.Flags().GetBool("full-scan")
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug, _ = cmd.Flags().GetBool("debug")
	}
}

// globPDFs lists *.pdf files under dir in stable order.
func globPDFs(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// recordRun writes the SQLite run log and a YAML sidecar per successful
// document.
func recordRun(reportDir string, startedAt time.Time, result pipeline.BatchResult) error {
	store, err := report.NewStore(reportDir)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.BeginRun(startedAt)
	if err != nil {
		return err
	}
	for _, res := range result.Results {
		if err := store.RecordResult(runID, res, nil); err != nil {
			return err
		}
		if err := report.WriteSidecar(res); err != nil {
			return err
		}
	}
	for _, f := range result.Failures {
		failed := types.StripResult{Input: f.Input}
		if err := store.RecordResult(runID, failed, f.Err); err != nil {
			return err
		}
	}
	return store.FinishRun(runID, time.Now(), result.Stripped, result.Unmodified, result.Failed)
}
