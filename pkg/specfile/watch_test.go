package specfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	watchedPath := filepath.Join(dir, "specs.yaml")
	otherPath := filepath.Join(dir, "other.yaml")

	content, err := os.ReadFile(financeManifestPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(watchedPath, content, 0644))

	w, err := NewWatcher([]string{watchedPath})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 16)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(path string) {
			changed <- path
		})
	}()

	require.NoError(t, os.WriteFile(otherPath, content, 0644))
	require.NoError(t, os.WriteFile(watchedPath, content, 0644))

	select {
	case path := <-changed:
		expected, err := filepath.Abs(watchedPath)
		require.NoError(t, err)
		assert.Equal(t, expected, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "specs.yaml")

	content, err := os.ReadFile(financeManifestPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, content, 0644))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reloaded := make(chan *SpecSet, 16)
	go func() {
		_ = WatchAll(ctx, []string{path}, ";", func(set *SpecSet) {
			reloaded <- set
		})
	}()

	costs, err := os.ReadFile(costsManifestPath)
	require.NoError(t, err)

	// the watcher starts asynchronously, so keep rewriting until a reload lands
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case set := <-reloaded:
			_, ok := set.Get("cost.ratio")
			assert.True(t, ok)
			return
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, costs, 0644))
		case <-ctx.Done():
			t.Fatal("manifests were not reloaded")
		}
	}
}
