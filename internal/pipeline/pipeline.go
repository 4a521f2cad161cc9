// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires detection, planning, and writing together for one
// document at a time: load, outline scan, heading scan when the outline
// falls short, plan, write. Failures stay per-document; a batch keeps going
// when one file is corrupt.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/strip-engine/internal/detect"
	"github.com/pdiddy/strip-engine/internal/pdfio"
	"github.com/pdiddy/strip-engine/internal/plan"
	"github.com/pdiddy/strip-engine/internal/write"
	"github.com/pdiddy/strip-engine/pkg/types"
)

// State names the per-document processing stages, in order. HeadingScanned
// is skipped when the outline alone resolves every removal target.
type State string

const (
	StateLoaded         State = "loaded"
	StateOutlineScanned State = "outline-scanned"
	StateHeadingScanned State = "heading-scanned"
	StatePlanned        State = "planned"
	StateWritten        State = "written"
	StateDone           State = "done"
	StateFailed         State = "failed"
)

// Pipeline processes documents with one fixed configuration. It holds no
// per-document state and is safe for concurrent use by batch workers.
type Pipeline struct {
	cfg   types.StripConfig
	vocab detect.Vocabulary
	log   io.Writer
}

// New builds a pipeline. Diagnostic traces go to log when cfg.Debug is set.
func New(cfg types.StripConfig, log io.Writer) *Pipeline {
	if log == nil {
		log = io.Discard
	}
	return &Pipeline{
		cfg:   cfg,
		vocab: detect.DefaultVocabulary().Extend(cfg.VocabularyExtra),
		log:   log,
	}
}

func (p *Pipeline) debugf(format string, args ...any) {
	if p.cfg.Debug {
		fmt.Fprintf(p.log, format+"\n", args...)
	}
}

// checkpoint is the coarse-grained cancellation test between stages.
func checkpoint(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// DetectSections runs the detector chain without planning or writing.
// The inspect command uses it to report every candidate boundary.
func (p *Pipeline) DetectSections(ctx context.Context, doc detect.Document) ([]types.Section, error) {
	sections, _, err := p.detectChain(ctx, doc)
	return sections, err
}

// detectChain runs the outline detector and, when the outline leaves
// removal targets unresolved, the heading detector in gap-fill mode.
func (p *Pipeline) detectChain(ctx context.Context, doc detect.Document) ([]types.Section, State, error) {
	state := StateLoaded

	outline := detect.OutlineDetector{Cfg: p.cfg, Vocab: p.vocab}
	sections, err := outline.Detect(doc)
	if err != nil {
		return nil, state, fmt.Errorf("outline scan: %w", err)
	}
	state = StateOutlineScanned
	for _, s := range sections {
		p.debugf("outline candidate: %s %q", s, s.RawText)
	}

	if err := checkpoint(ctx); err != nil {
		return nil, state, err
	}

	unresolved := p.unresolvedTargets(sections)
	if len(unresolved) == 0 || !p.cfg.UseHeadingFallback {
		return sections, state, nil
	}

	heading := detect.HeadingDetector{Cfg: p.cfg, Vocab: p.vocab}
	if !p.cfg.HeadingFullScan {
		heading.Targets = unresolved
	}
	found, err := heading.Detect(doc)
	if err != nil {
		return nil, state, fmt.Errorf("heading scan: %w", err)
	}
	state = StateHeadingScanned
	for _, s := range found {
		p.debugf("heading candidate: %s %q", s, s.RawText)
	}

	return append(sections, found...), state, nil
}

// unresolvedTargets returns the removal-target names the outline did not
// produce a confident section for. Outline sections are thresholded at
// detection time, so presence means resolution.
func (p *Pipeline) unresolvedTargets(sections []types.Section) map[string]bool {
	unresolved := make(map[string]bool, len(p.cfg.SectionsToRemove))
	for _, name := range p.cfg.SectionsToRemove {
		unresolved[name] = true
	}
	for _, s := range sections {
		delete(unresolved, s.Name)
	}
	return unresolved
}

// ProcessFile runs the full state machine for one document. On a planning
// invariant violation the original is passed through to outPath unchanged
// and the violation is still reported as the document's failure.
func (p *Pipeline) ProcessFile(ctx context.Context, inPath, outPath string) (types.StripResult, error) {
	result := types.StripResult{Input: inPath, Output: outPath}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return result, fmt.Errorf("reading input: %w", err)
	}
	doc, err := pdfio.Load(data)
	if err != nil {
		return result, fmt.Errorf("loading %s: %w", inPath, err)
	}
	result.PageCount = doc.PageCount()
	p.debugf("loaded %s: %d pages", inPath, result.PageCount)

	if err := checkpoint(ctx); err != nil {
		return result, err
	}

	// Stripping disabled: no detection, output equals input.
	if len(p.cfg.SectionsToRemove) == 0 {
		retained, err := write.Write(data, result.PageCount, nil, outPath, p.cfg.LinkPolicy)
		if err != nil {
			return result, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.RetainedPages = retained
		return result, nil
	}

	sections, _, err := p.detectChain(ctx, doc)
	if err != nil {
		return result, err
	}
	result.Sections = sections

	pl, planErr := plan.Build(sections, p.cfg, result.PageCount)
	if planErr != nil && !errors.Is(planErr, plan.ErrCoversAll) {
		return result, fmt.Errorf("planning: %w", planErr)
	}
	if errors.Is(planErr, plan.ErrCoversAll) {
		// Degenerate total removal: pass the original through and report.
		if _, err := write.Write(data, result.PageCount, nil, outPath, p.cfg.LinkPolicy); err != nil {
			return result, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.RetainedPages = result.PageCount
		return result, fmt.Errorf("planning %s: %w", inPath, planErr)
	}
	result.Cuts = pl.Cuts
	for _, c := range pl.Cuts {
		p.debugf("planned cut: %s", c)
	}

	if err := checkpoint(ctx); err != nil {
		return result, err
	}

	retained, err := write.Write(data, result.PageCount, pl.Cuts, outPath, p.cfg.LinkPolicy)
	if err != nil {
		return result, fmt.Errorf("writing %s: %w", outPath, err)
	}
	result.RetainedPages = retained
	result.Modified = len(pl.Cuts) > 0
	return result, nil
}
