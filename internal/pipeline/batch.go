package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/pdiddy/strip-engine/pkg/types"
)

// Failure records one document that could not be processed.
type Failure struct {
	Input string
	Err   error
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Stripped   int
	Unmodified int
	Failed     int
	Results    []types.StripResult
	Failures   []Failure
}

// Total returns the number of documents processed.
func (r BatchResult) Total() int {
	return r.Stripped + r.Unmodified + r.Failed
}

// HasFailures reports whether any document failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ProcessBatch strips every input concurrently with a bounded worker pool.
// Each document is independent: failures are recorded and reported without
// aborting siblings, and cancellation stops workers at their next stage
// checkpoint. Per-item status and a summary are printed to w.
func (p *Pipeline) ProcessBatch(ctx context.Context, inputs []string, outDir string, workers int, w io.Writer) BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	type outcome struct {
		result types.StripResult
		err    error
	}

	jobs := make(chan string)
	outcomes := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range jobs {
				out := filepath.Join(outDir, filepath.Base(in))
				res, err := p.ProcessFile(ctx, in, out)
				outcomes <- outcome{result: res, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, in := range inputs {
			select {
			case <-ctx.Done():
				return
			case jobs <- in:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	var result BatchResult
	for o := range outcomes {
		name := filepath.Base(o.result.Input)
		switch {
		case o.err != nil:
			fmt.Fprintf(w, "failed:     %s (%v)\n", name, o.err)
			result.Failed++
			result.Failures = append(result.Failures, Failure{Input: o.result.Input, Err: o.err})
		case o.result.Modified:
			fmt.Fprintf(w, "stripped:   %s (%s)\n", name, o.result.Summary())
			result.Stripped++
			result.Results = append(result.Results, o.result)
		default:
			fmt.Fprintf(w, "unmodified: %s (%s)\n", name, o.result.Summary())
			result.Unmodified++
			result.Results = append(result.Results, o.result)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d stripped, %d unmodified, %d failed (total: %d)\n",
		result.Stripped, result.Unmodified, result.Failed, result.Total())
	return result
}
