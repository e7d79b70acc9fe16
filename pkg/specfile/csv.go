package specfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spiceai/specs/pkg/loggers"
	"github.com/spiceai/specs/pkg/spec"
	"github.com/spiceai/specs/pkg/util"
	"go.uber.org/zap"
)

// Row is one line of a spec table. List cells (databasis, indexes) are
// joined by the configured separator.
type Row struct {
	Key          string `csv:"key"`
	Data         string `csv:"data"`
	Datatype     string `csv:"datatype"`
	Databasis    string `csv:"databasis"`
	Indexes      string `csv:"indexes"`
	Multiplier   string `csv:"multiplier"`
	Unit         string `csv:"unit"`
	Precision    string `csv:"precision"`
	Heading      string `csv:"heading"`
	NumDirection string `csv:"numdirection"`
}

// Builds the spec described by the row. Empty cells are left out so the
// spec defaults apply.
func (r *Row) Spec(separator string) (spec.Spec, error) {
	data := r.Data
	if data == "" {
		data = r.Key
	}

	formatting := spec.Attrs{}
	for name, value := range map[string]string{
		"multiplier":   r.Multiplier,
		"unit":         r.Unit,
		"precision":    r.Precision,
		"heading":      r.Heading,
		"numdirection": r.NumDirection,
	} {
		if value != "" {
			formatting[name] = value
		}
	}

	var databasis interface{}
	if r.Databasis != "" {
		databasis = r.Databasis
	}

	datatype, err := spec.ParseDatatype(r.Datatype)
	if err != nil {
		return nil, err
	}

	switch datatype {
	case spec.CategoryDatatype, spec.HistogramDatatype:
		databasis = splitList(r.Databasis, separator)
		if r.Indexes != "" {
			indexes, err := parseIndexes(r.Indexes, separator)
			if err != nil {
				return nil, err
			}
			formatting["indexes"] = indexes
		}
	}

	return spec.FromBasis(data, r.Datatype, databasis, formatting)
}

// Describes s as a table row under key
func NewRow(key string, s spec.Spec, separator string) *Row {
	attrs := s.ToDict()
	row := &Row{
		Key:      key,
		Datatype: string(s.Datatype()),
	}
	if s.Data() != key {
		row.Data = s.Data()
	}

	switch s.Datatype() {
	case spec.CategoryDatatype, spec.HistogramDatatype:
		categories, _ := attrs["categories"].([]string)
		indexes, _ := attrs["indexes"].([]int)
		row.Databasis = strings.Join(categories, separator)
		if !isDefaultIndexes(indexes) {
			items := make([]string, len(indexes))
			for i, index := range indexes {
				items[i] = strconv.Itoa(index)
			}
			row.Indexes = strings.Join(items, separator)
		}
	default:
		row.Multiplier = fmt.Sprint(attrs["multiplier"])
		row.Unit = fmt.Sprint(attrs["unit"])
		row.Heading = fmt.Sprint(attrs["heading"])
		row.NumDirection = fmt.Sprint(attrs["numdirection"])
		if precision, _ := attrs["precision"].(int); precision != 0 {
			row.Precision = strconv.Itoa(precision)
		}
	}

	return row
}

func ReadCSV(reader io.Reader, separator string) (*SpecSet, error) {
	var rows []*Row
	if err := gocsv.Unmarshal(reader, &rows); err != nil {
		return nil, fmt.Errorf("failed to read spec table: %w", err)
	}

	set := NewSpecSet()
	for i, row := range rows {
		s, err := row.Spec(separator)
		if err != nil {
			return nil, fmt.Errorf("row %d ('%s'): %w", i+1, row.Key, err)
		}
		if err := set.Add(row.Key, s); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return set, nil
}

func LoadCSV(path string, separator string) (*SpecSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spec table '%s' not found: %w", path, err)
	}
	defer file.Close()

	set, err := ReadCSV(file, separator)
	if err != nil {
		return nil, fmt.Errorf("failed to load '%s': %w", path, err)
	}

	zaplog.Debug("loaded spec table", loggers.Path(path), zap.Int("specs", set.Len()))
	return set, nil
}

func WriteCSV(writer io.Writer, set *SpecSet, separator string) error {
	rows := make([]*Row, 0, set.Len())
	for _, key := range set.Keys() {
		s, _ := set.Get(key)
		rows = append(rows, NewRow(key, s, separator))
	}
	return gocsv.Marshal(rows, writer)
}

func SaveCSV(path string, set *SpecSet, separator string) error {
	if err := util.MkDirAllInheritPerm(filepath.Dir(path)); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", path, err)
	}
	defer file.Close()

	if err := WriteCSV(file, set, separator); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}

	return nil
}

func splitList(cell string, separator string) []string {
	if cell == "" {
		return nil
	}
	items := strings.Split(cell, separator)
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}

func parseIndexes(cell string, separator string) ([]int, error) {
	items := splitList(cell, separator)
	indexes := make([]int, len(items))
	for i, item := range items {
		index, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid index '%s'", item)
		}
		indexes[i] = index
	}
	return indexes, nil
}

func isDefaultIndexes(indexes []int) bool {
	for i, index := range indexes {
		if index != i {
			return false
		}
	}
	return true
}
