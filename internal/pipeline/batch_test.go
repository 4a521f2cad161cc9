// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/strip-engine/pkg/types"
)

func TestProcessBatchIsolatesFailures(t *testing.T) {
	p := New(types.DefaultStripConfig(), nil)
	dir := t.TempDir()

	// None of these exist; every document fails independently and the
	// batch still runs to completion.
	inputs := []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "c.pdf"),
	}
	var out strings.Builder
	result := p.ProcessBatch(context.Background(), inputs, filepath.Join(dir, "out"), 2, &out)

	assert.Equal(t, 3, result.Failed)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())
	assert.Len(t, result.Failures, 3)
	for _, f := range result.Failures {
		assert.Error(t, f.Err)
	}
	assert.Contains(t, out.String(), "failed:")
	assert.Contains(t, out.String(), "Batch summary: 0 stripped, 0 unmodified, 3 failed (total: 3)")
}

func TestProcessBatchEmptyInputs(t *testing.T) {
	p := New(types.DefaultStripConfig(), nil)
	var out strings.Builder
	result := p.ProcessBatch(context.Background(), nil, t.TempDir(), 4, &out)

	assert.Zero(t, result.Total())
	assert.False(t, result.HasFailures())
	assert.Contains(t, out.String(), "Batch summary: 0 stripped, 0 unmodified, 0 failed (total: 0)")
}

func TestProcessBatchCancelledContext(t *testing.T) {
	p := New(types.DefaultStripConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	inputs := []string{filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf")}
	var out strings.Builder
	result := p.ProcessBatch(ctx, inputs, filepath.Join(dir, "out"), 1, &out)

	// The feeder stops on cancellation, so at most the in-flight documents
	// are reported and nothing succeeds.
	assert.Zero(t, result.Stripped)
	assert.Zero(t, result.Unmodified)
	assert.LessOrEqual(t, result.Total(), len(inputs))
}

func TestProcessBatchDefaultWorkerCount(t *testing.T) {
	p := New(types.DefaultStripConfig(), nil)
	dir := t.TempDir()
	inputs := []string{filepath.Join(dir, "a.pdf")}
	var out strings.Builder

	// workers <= 0 falls back to a sane default instead of deadlocking.
	result := p.ProcessBatch(context.Background(), inputs, filepath.Join(dir, "out"), 0, &out)
	assert.Equal(t, 1, result.Total())
}
