package specfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
	"github.com/spiceai/specs/pkg/loggers"
	"github.com/spiceai/specs/pkg/spec"
	"github.com/spiceai/specs/pkg/util"
	"github.com/spiceai/specs/pkg/version"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Manifest is the YAML form of a spec set. Keys are case-insensitive and
// read back in lowercase; each entry holds the attributes of one spec, with
// data defaulting to the key.
type Manifest struct {
	Version string                            `mapstructure:"version" yaml:"version"`
	Specs   map[string]map[string]interface{} `mapstructure:"specs" yaml:"specs"`
}

func LoadManifest(path string) (*SpecSet, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("manifest '%s' not found: %w", path, err)
	}

	// spec keys may contain dots
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read manifest '%s': %w", path, err)
	}

	var manifest Manifest
	if err := v.Unmarshal(&manifest); err != nil {
		return nil, fmt.Errorf("failed to load manifest '%s': %w", path, err)
	}

	if err := version.CheckManifestVersion(manifest.Version); err != nil {
		return nil, fmt.Errorf("manifest '%s': %w", path, err)
	}

	set, err := manifest.SpecSet()
	if err != nil {
		return nil, fmt.Errorf("manifest '%s': %w", path, err)
	}

	zaplog.Debug("loaded manifest", loggers.Path(path), zap.Int("specs", set.Len()))
	return set, nil
}

// Builds the specs of the manifest in key order
func (m *Manifest) SpecSet() (*SpecSet, error) {
	keys := make([]string, 0, len(m.Specs))
	for key := range m.Specs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	set := NewSpecSet()
	for _, key := range keys {
		attrs := spec.Attrs{"data": key}
		for name, value := range m.Specs[key] {
			attrs[name] = value
		}

		s, err := spec.New(attrs)
		if err != nil {
			return nil, fmt.Errorf("spec '%s': %w", key, err)
		}
		if err := set.Add(key, s); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func SaveManifest(path string, set *SpecSet) error {
	specs := make(yaml.MapSlice, 0, set.Len())
	for _, key := range set.Keys() {
		s, _ := set.Get(key)
		specs = append(specs, yaml.MapItem{Key: key, Value: map[string]interface{}(s.ToDict())})
	}

	content, err := yaml.Marshal(yaml.MapSlice{
		{Key: "version", Value: version.ManifestVersion},
		{Key: "specs", Value: specs},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := util.MkDirAllInheritPerm(filepath.Dir(path)); err != nil {
		return err
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write manifest '%s': %w", path, err)
	}

	return nil
}
