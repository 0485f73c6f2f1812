package walker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tristendillon/scout/core/config"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("export {};\n"), 0644))
	}
}

func TestWalkDefaults(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"index.js",
		"src/App.tsx",
		"src/types.d.ts",
		"src/util/fmt.ts",
		"src/styles.css",
		"node_modules/antd/index.js",
		"dist/bundle.js",
		".scout/cache.js",
		"src/build/keep.js",
	)

	files, err := New(config.Default()).Walk(context.Background(), root)
	require.NoError(t, err)

	var rel []string
	for _, f := range files {
		r, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{"index.js", "src/App.tsx", "src/util/fmt.ts"}, rel)
}

func TestMatch(t *testing.T) {
	w := &FileWalker{
		Include: []string{"src/**/*.{js,jsx}"},
		Exclude: []string{"**/*.test.js", "src/legacy/**"},
	}
	assert.True(t, w.Match("src/a.js"))
	assert.True(t, w.Match("src/deep/b.jsx"))
	assert.False(t, w.Match("lib/a.js"))
	assert.False(t, w.Match("src/a.test.js"))
	assert.False(t, w.Match("src/legacy/old.js"))
	assert.False(t, w.Match("src/a.ts"))

	all := &FileWalker{}
	assert.True(t, all.Match("anything.txt"))
}

func TestWalkCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.js")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(config.Default()).Walk(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
