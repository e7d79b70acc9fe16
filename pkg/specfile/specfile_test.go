package specfile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spiceai/specs/pkg/spec"
	"github.com/spiceai/specs/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	financeCsvPath      = "../../test/assets/specs/finance.csv"
	financeManifestPath = "../../test/assets/specs/finance.yaml"
	costsManifestPath   = "../../test/assets/specs/costs.yaml"
	futureManifestPath  = "../../test/assets/specs/future.yaml"
)

var snapshotter = testutils.NewSnapshotter("../../test/assets/snapshots/specfile")

func TestLoadCSV(t *testing.T) {
	set, err := LoadCSV(financeCsvPath, ";")
	require.NoError(t, err)

	assert.Equal(t, []string{"revenue", "age", "region", "votes"}, set.Keys())

	revenue, ok := set.Get("revenue")
	require.True(t, ok)
	require.IsType(t, &spec.NumSpec{}, revenue)
	assert.Equal(t, "Revenue", revenue.Data())
	assert.Equal(t, "$", revenue.(*spec.NumSpec).Unit().String())
	assert.Equal(t, 1, revenue.(*spec.NumSpec).Precision())

	region, ok := set.Get("region")
	require.True(t, ok)
	assert.Equal(t, []string{"North", "South", "East", "West"}, region.(*spec.CategorySpec).Categories())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), ";")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadCSVErrors(t *testing.T) {
	header := "key,datatype,databasis,unit\n"
	testCases := map[string]string{
		"unknown datatype":     "revenue,matrix,,$\n",
		"missing labels":       "region,category,,\n",
		"basis on num":         "revenue,num,k,$\n",
		"unit on category":     "region,category,North;South,$\n",
		"duplicate key":        "revenue,num,,$\nrevenue,num,,$\n",
		"invalid key":          "net revenue,num,,$\n",
		"duplicate categories": "region,category,North;North,\n",
	}

	for name, body := range testCases {
		_, err := ReadCSV(strings.NewReader(header+body), ";")
		assert.Error(t, err, name)
	}

	_, err := ReadCSV(strings.NewReader(header+"revenue,num,k,$\n"), ";")
	var basisErr *spec.BasisError
	assert.True(t, errors.As(err, &basisErr))
}

func TestWriteCSV(t *testing.T) {
	set, err := LoadCSV(financeCsvPath, ";")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteCSV(&buf, set, ";")
	require.NoError(t, err)

	snapshotter.SnapshotT(t, buf.String())
}

func TestCSVRoundTrip(t *testing.T) {
	set, err := LoadManifest(costsManifestPath)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "costs.csv")
	err = SaveCSV(path, set, "|")
	require.NoError(t, err)

	loaded, err := LoadCSV(path, "|")
	require.NoError(t, err)
	assert.True(t, set.Equals(loaded))

	segment, ok := loaded.Get("segment")
	require.True(t, ok)
	index, ok := segment.(*spec.CategorySpec).Index("Wholesale")
	assert.True(t, ok)
	assert.Equal(t, 20, index)
}

func TestLoadManifest(t *testing.T) {
	t.Run("LoadManifest() - matches the CSV table", func(t *testing.T) {
		fromManifest, err := LoadManifest(financeManifestPath)
		require.NoError(t, err)
		fromCsv, err := LoadCSV(financeCsvPath, ";")
		require.NoError(t, err)

		assert.Equal(t, []string{"age", "region", "revenue", "votes"}, fromManifest.Keys())
		assert.True(t, fromManifest.Equals(fromCsv))

		votes, _ := fromManifest.Get("votes")
		assert.Equal(t, []string{"Yes", "No", "Abstain"}, votes.(*spec.HistogramSpec).Categories())
	})

	t.Run("LoadManifest() - keys with dots and default data", func(t *testing.T) {
		set, err := LoadManifest(costsManifestPath)
		require.NoError(t, err)

		ratio, ok := set.Get("cost.ratio")
		require.True(t, ok)
		assert.Equal(t, "Cost/Revenue", ratio.Data())

		segment, ok := set.Get("segment")
		require.True(t, ok)
		assert.Equal(t, "segment", segment.Data())
	})

	t.Run("LoadManifest() - newer version is rejected", func(t *testing.T) {
		_, err := LoadManifest(futureManifestPath)
		assert.ErrorContains(t, err, "newer than the supported version")
	})

	t.Run("LoadManifest() - missing file", func(t *testing.T) {
		_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSaveManifest(t *testing.T) {
	set, err := LoadCSV(financeCsvPath, ";")
	require.NoError(t, err)

	heading, err := spec.NewNumSpec("Margin", spec.NumFormat{Heading: "Net ", Multiplier: "%"})
	require.NoError(t, err)
	require.NoError(t, set.Add("margin", heading))

	path := filepath.Join(t.TempDir(), "finance.yaml")
	err = SaveManifest(path, set)
	require.NoError(t, err)

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.True(t, set.Equals(loaded))

	margin, ok := loaded.Get("margin")
	require.True(t, ok)
	assert.Equal(t, "Net ", margin.(*spec.NumSpec).Heading())
}

func TestLoadAll(t *testing.T) {
	set, err := LoadAll(context.Background(), []string{financeManifestPath, costsManifestPath}, ";")
	require.NoError(t, err)
	assert.Equal(t, 7, set.Len())
	assert.Equal(t, []string{"age", "region", "revenue", "votes", "cost", "cost.ratio", "segment"}, set.Keys())

	set, err = LoadAll(context.Background(), []string{costsManifestPath, financeCsvPath}, ";")
	require.NoError(t, err)
	assert.Equal(t, []string{"cost", "cost.ratio", "segment", "revenue", "age", "region", "votes"}, set.Keys())

	_, err = LoadAll(context.Background(), []string{financeManifestPath, financeCsvPath}, ";")
	assert.ErrorContains(t, err, "duplicate spec key")

	_, err = LoadAll(context.Background(), []string{financeManifestPath, futureManifestPath}, ";")
	assert.Error(t, err)

	_, err = LoadAll(context.Background(), []string{"specs.json"}, ";")
	assert.ErrorContains(t, err, "unsupported spec file")
}

func TestConvert(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "finance.yml")

	converted, err := Convert(financeCsvPath, outPath, ";")
	require.NoError(t, err)

	loaded, err := Load(outPath, ";")
	require.NoError(t, err)
	assert.True(t, converted.Equals(loaded))

	_, err = Convert(financeCsvPath, filepath.Join(t.TempDir(), "finance.json"), ";")
	assert.ErrorContains(t, err, "unsupported spec file")
}
