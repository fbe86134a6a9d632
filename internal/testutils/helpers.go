package testutils

import (
	"context"
	"path/filepath"
	"sort"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// SaveDocuments writes each document (ID -> raw content with frontmatter) to repo,
// in ID order.
func SaveDocuments(t *testing.T, repo core.Repository, docs map[string]string) {
	t.Helper()

	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ctx := context.Background()
	for _, id := range ids {
		err := repo.Save(ctx, core.Document{ID: id, Content: docs[id]})
		require.NoError(t, err, "Failed to save %s", id)
	}
}
