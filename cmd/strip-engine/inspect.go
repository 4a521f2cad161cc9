package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/strip-engine/internal/pdfio"
	"github.com/pdiddy/strip-engine/internal/pipeline"
	"github.com/pdiddy/strip-engine/internal/plan"
	"github.com/pdiddy/strip-engine/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [pdfs...]",
	Short: "Preview detected sections without writing output",
	Long: `Inspect runs section detection and planning on each input and prints
every candidate boundary with its source, confidence, and page range, plus
the cuts that a strip run would apply. Nothing is written.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringSlice("remove", nil, "section names to plan removal for")
	inspectCmd.Flags().Float64("min-score", 0, "fuzzy-match acceptance threshold in [0,1] (default 0.8)")
	inspectCmd.Flags().Bool("full-scan", false, "heading detector scans the whole vocabulary, not just outline gaps")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PDF files")
	}

	cfg := loadStripConfig()
	if cmd.Flags().Changed("remove") {
		cfg.SectionsToRemove, _ = cmd.Flags().GetStringSlice("remove")
	}
	if cmd.Flags().Changed("min-score") {
		cfg.MinHeadingScore, _ = cmd.Flags().GetFloat64("min-score")
	}
	if cmd.Flags().Changed("full-scan") {
		cfg.HeadingFullScan, _ = cmd.Flags().GetBool("full-scan")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := pipeline.New(cfg, os.Stderr)
	failed := 0
	for _, path := range args {
		if err := inspectFile(ctx, p, cfg, path); err != nil {
			fmt.Fprintf(os.Stderr, "failed: %s (%v)\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d document(s) failed inspection", failed)
	}
	return nil
}

func inspectFile(ctx context.Context, p *pipeline.Pipeline, cfg types.StripConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := pdfio.Load(data)
	if err != nil {
		return err
	}

	sections, err := p.DetectSections(ctx, doc)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d pages\n", path, doc.PageCount())
	if len(sections) == 0 {
		fmt.Println("  no sections detected")
		return nil
	}
	for _, s := range sections {
		marker := " "
		if cfg.Removes(s.Name) {
			marker = "*"
		}
		fmt.Printf("  %s %-16s pages %3d-%-3d %-8s %.2f  %q\n",
			marker, s.Name, s.StartPage, s.EndPage, s.Source, s.Confidence, s.RawText)
	}

	pl, err := plan.Build(sections, cfg, doc.PageCount())
	if err != nil {
		return err
	}
	if len(pl.Cuts) == 0 {
		fmt.Println("  no cuts planned")
		return nil
	}
	for _, c := range pl.Cuts {
		fmt.Printf("  cut %s (%d pages)\n", c, c.Length())
	}
	return nil
}
