// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	id, err := s.Record(ctx, types.BuildReport{
		Project:  "thesis",
		Target:   "chap2",
		Status:   types.BuildSucceeded,
		Pages:    42,
		Duration: 1500 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	records, err := s.Recent(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "thesis", rec.Project)
	assert.Equal(t, "chap2", rec.Target)
	assert.Equal(t, types.BuildSucceeded, rec.Status)
	assert.Equal(t, 42, rec.Pages)
	assert.Equal(t, 1500*time.Millisecond, rec.Duration)
	assert.WithinDuration(t, time.Now().UTC(), rec.CreatedAt, time.Minute)
}

func TestRecentOrderAndFilter(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	// Insert directly so the timestamps are distinct and deterministic.
	insert := func(id, project, created string) {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO builds (id, project, target, status, pages, duration_ms, created_at)
			 VALUES (?, ?, '', 'succeeded', 0, 0, ?)`,
			id, project, created)
		require.NoError(t, err)
	}
	insert("a", "thesis", "2026-08-24T10:00:00Z")
	insert("b", "book", "2026-08-25T10:00:00Z")
	insert("c", "thesis", "2026-08-26T10:00:00Z")

	t.Run("newest first", func(t *testing.T) {
		records, err := s.Recent(ctx, "", 10)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "c", records[0].ID)
		assert.Equal(t, "b", records[1].ID)
		assert.Equal(t, "a", records[2].ID)
	})

	t.Run("project filter", func(t *testing.T) {
		records, err := s.Recent(ctx, "thesis", 10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "c", records[0].ID)
		assert.Equal(t, "a", records[1].ID)
	})

	t.Run("limit applies", func(t *testing.T) {
		records, err := s.Recent(ctx, "", 2)
		require.NoError(t, err)
		assert.Len(t, records, 2)
	})

	t.Run("non-positive limit falls back to the default", func(t *testing.T) {
		records, err := s.Recent(ctx, "", 0)
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
