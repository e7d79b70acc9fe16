package util

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableRow struct {
	Key      string `csv:"key"`
	Datatype string `csv:"datatype"`
	Data     string `csv:"data"`
}

func TestUtil(t *testing.T) {
	t.Run("ReplaceEnvVariablesFromPath() - replaces prefixed variables", testReplaceEnvVariablesFunc())
	t.Run("MarshalAndPrintTable() - prints header and rows", testMarshalAndPrintTableFunc())
	t.Run("MkDirAllInheritPerm() - creates nested directories", testMkDirAllInheritPermFunc())
	t.Run("IsServerHealthy() - ok and degraded", testIsServerHealthyFunc())
}

func testReplaceEnvVariablesFunc() func(*testing.T) {
	return func(t *testing.T) {
		t.Setenv("SPECS_TEST_PORT", "9090")
		t.Setenv("OTHER_TEST_PORT", "7070")

		path := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(path, []byte("http_port: SPECS_TEST_PORT\nother: OTHER_TEST_PORT\n"), 0644)
		require.NoError(t, err)

		content, err := ReplaceEnvVariablesFromPath(path, "SPECS_")
		require.NoError(t, err)
		assert.Equal(t, "http_port: 9090\nother: OTHER_TEST_PORT\n", string(content))

		_, err = ReplaceEnvVariablesFromPath(filepath.Join(t.TempDir(), "missing.yaml"), "SPECS_")
		assert.ErrorIs(t, err, os.ErrNotExist)
	}
}

func testMarshalAndPrintTableFunc() func(*testing.T) {
	return func(t *testing.T) {
		rows := []tableRow{
			{Key: "revenue", Datatype: "num", Data: "Revenue"},
			{Key: "region", Datatype: "category", Data: "Home, Region"},
		}

		var buf bytes.Buffer
		err := MarshalAndPrintTable(&buf, rows)
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, "key")
		assert.Contains(t, output, "datatype")
		assert.Contains(t, output, "revenue")
		assert.Contains(t, output, "Home, Region")
	}
}

func testMkDirAllInheritPermFunc() func(*testing.T) {
	return func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "c")
		err := MkDirAllInheritPerm(path)
		require.NoError(t, err)

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, stat.IsDir())
		assert.False(t, FileExists(path))
	}
}

func testIsServerHealthyFunc() func(*testing.T) {
	return func(t *testing.T) {
		healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer healthy.Close()
		assert.NoError(t, IsServerHealthy(healthy.URL, healthy.Client()))

		degraded := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("loading"))
		}))
		defer degraded.Close()
		assert.EqualError(t, IsServerHealthy(degraded.URL, degraded.Client()), "loading")
	}
}
