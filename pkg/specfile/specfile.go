// Package specfile reads and writes sets of specs as CSV tables and YAML
// manifests.
package specfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spiceai/specs/pkg/constants"
	"github.com/spiceai/specs/pkg/loggers"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	zaplog *zap.Logger = loggers.ZapLogger()
)

type Format string

const (
	CsvFormat      Format = "csv"
	ManifestFormat Format = "yaml"
)

// Picks the file format from the extension of path
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case constants.CsvFileExtension:
		return CsvFormat, nil
	case constants.ManifestFileExtension, ".yml":
		return ManifestFormat, nil
	}
	return "", fmt.Errorf("unsupported spec file '%s': expected .csv, .yaml or .yml", path)
}

func Load(path string, separator string) (*SpecSet, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == CsvFormat {
		return LoadCSV(path, separator)
	}
	return LoadManifest(path)
}

func Save(path string, set *SpecSet, separator string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if format == CsvFormat {
		return SaveCSV(path, set, separator)
	}
	return SaveManifest(path, set)
}

// Loads the specs at inPath and saves them at outPath, each in the format
// of its extension
func Convert(inPath string, outPath string, separator string) (*SpecSet, error) {
	set, err := Load(inPath, separator)
	if err != nil {
		return nil, err
	}
	if err := Save(outPath, set, separator); err != nil {
		return nil, err
	}
	return set, nil
}

// Loads several spec files concurrently and merges them in the order given.
// A key defined by more than one file is an error.
func LoadAll(ctx context.Context, paths []string, separator string) (*SpecSet, error) {
	sets := make([]*SpecSet, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := Load(path, separator)
			if err != nil {
				return err
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewSpecSet()
	for i, set := range sets {
		if err := merged.Merge(set); err != nil {
			return nil, fmt.Errorf("'%s': %w", paths[i], err)
		}
	}

	return merged, nil
}
