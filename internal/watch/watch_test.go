// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRebuildsOnChange(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rebuilt := make(chan struct{}, 16)
	done := make(chan error, 1)
	var out bytes.Buffer
	go func() {
		done <- Run(ctx, dir, func() error {
			rebuilt <- struct{}{}
			return nil
		}, &out)
	}()

	// Give the watcher a moment to register before touching files.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tex"), []byte("x\n"), 0o644))

	select {
	case <-rebuilt:
	case <-ctx.Done():
		t.Fatal("no rebuild after file change")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Contains(t, out.String(), "watching")
}

func TestRunReportsRebuildErrors(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	attempted := make(chan struct{}, 16)
	done := make(chan error, 1)
	var out bytes.Buffer
	go func() {
		done <- Run(ctx, dir, func() error {
			attempted <- struct{}{}
			return errors.New("compose broke")
		}, &out)
	}()

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tex"), []byte("x\n"), 0o644))

	select {
	case <-attempted:
	case <-ctx.Done():
		t.Fatal("rebuild was never attempted")
	}

	// A failed rebuild is reported, not fatal: the watch keeps running
	// until the context is cancelled.
	time.Sleep(100 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Contains(t, out.String(), "rebuild failed: compose broke")
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, t.TempDir(), func() error { return nil }, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}
