package format

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/leengari/coremag/pkg/twog"
)

// SectionKey is the metadata key naming the core section a file belongs to.
// When present its value seeds the table's provenance trace.
const SectionKey = "Section"

// Parse maps file bytes to a Table. It fails with MalformedFormat when the
// metadata block lacks a required key, a row's field count disagrees with
// the column header, a numeric field does not parse, or depths decrease.
// Parse is pure: it has no side effect beyond the returned table.
func Parse(data []byte, spec *Spec) (*twog.Table, error) {
	lines := strings.Split(string(data), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], "\r")
	}

	meta, next, err := parseMetadata(lines, spec)
	if err != nil {
		return nil, err
	}

	if next >= len(lines) || lines[next] == "" {
		return nil, twog.NewMalformedFormat(next+1, "missing column header line")
	}
	headerLine := lines[next]
	delim, err := detectDelimiter(headerLine, next+1)
	if err != nil {
		return nil, err
	}

	names := strings.Split(headerLine, string(delim))
	columns := make([]twog.Column, len(names))
	for i, name := range names {
		columns[i] = twog.Column{Name: name, Type: spec.ColumnType(name)}
	}

	depthPresent := false
	for _, c := range columns {
		if c.Name == spec.DepthColumn {
			depthPresent = true
			break
		}
	}
	if !depthPresent {
		if !spec.AllowMissingDepth {
			return nil, twog.NewMalformedFormat(next+1,
				fmt.Sprintf("missing required column %q", spec.DepthColumn))
		}
		columns = append(columns, twog.Column{Name: spec.DepthColumn, Type: twog.ColumnTypeFloat})
	}

	depthUnit, _ := metaValue(meta, spec.DepthUnitKey)
	schema, err := twog.NewSchema(columns, spec.DepthColumn, depthUnit, delim)
	if err != nil {
		return nil, twog.NewMalformedFormat(next+1, err.Error())
	}

	records, err := parseRecords(lines, next+1, schema, delim, depthPresent)
	if err != nil {
		return nil, err
	}

	var sections []string
	if section, ok := metaValue(meta, SectionKey); ok {
		sections = []string{section}
	}

	table, err := twog.NewTable(schema, meta, records, sections)
	if err != nil {
		var nm *twog.NonMonotonicResultError
		if errors.As(err, &nm) {
			return nil, twog.NewMalformedFormat(0,
				fmt.Sprintf("depth decreases at record %d: %g after %g", nm.Index, nm.Curr, nm.Prev))
		}
		return nil, twog.NewMalformedFormat(0, err.Error())
	}

	slog.Debug("parsed 2G file", table.LogAttrs()...)
	return table, nil
}

// parseMetadata consumes "Key: Value" lines up to the blank separator and
// validates the spec's required keys. It returns the entries and the index
// of the line following the separator.
func parseMetadata(lines []string, spec *Spec) ([]twog.MetaEntry, int, error) {
	var meta []twog.MetaEntry
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if line == "" {
			i++
			break
		}
		key, value, found := strings.Cut(line, ": ")
		if !found || key == "" {
			return nil, 0, twog.NewMalformedFormat(i+1,
				fmt.Sprintf("metadata line %q is not of the form \"Key: Value\"", line))
		}
		meta = append(meta, twog.MetaEntry{Key: key, Value: value})
	}
	for _, required := range spec.RequiredKeys {
		if _, ok := metaValue(meta, required); !ok {
			return nil, 0, twog.NewMalformedFormat(0,
				fmt.Sprintf("missing required header key %q", required))
		}
	}
	return meta, i, nil
}

func parseRecords(lines []string, start int, schema *twog.Schema, delim rune, depthPresent bool) ([]twog.Record, error) {
	width := schema.Len()
	fileWidth := width
	if !depthPresent {
		fileWidth = width - 1 // depth is synthesized, not on disk
	}
	di := schema.DepthIndex()

	var records []twog.Record
	prevDepth := 0.0
	for li := start; li < len(lines); li++ {
		line := lines[li]
		if line == "" {
			continue
		}
		fields := strings.Split(line, string(delim))
		if len(fields) != fileWidth {
			return nil, twog.NewMalformedFormat(li+1,
				fmt.Sprintf("row has %d fields, column header has %d", len(fields), fileWidth))
		}
		values := make([]twog.Value, width)
		for fi, field := range fields {
			v, err := twog.ParseValue(field, schema.Columns[fi].Type)
			if err != nil {
				return nil, twog.NewMalformedFormat(li+1,
					fmt.Sprintf("column %q: %q is not a valid %s",
						schema.Columns[fi].Name, field, schema.Columns[fi].Type))
			}
			values[fi] = v
		}
		if !depthPresent {
			// MS-only track files: index depth, one centimetre per record.
			d := float64(len(records)) / 100.0
			values[di] = twog.Value{Kind: twog.KindFloat, Float: d, Source: fmt.Sprintf("%.2f", d)}
		}
		depth := values[di].Float
		// strconv accepts "NaN" and "Inf", neither of which can order
		if math.IsNaN(depth) || math.IsInf(depth, 0) {
			return nil, twog.NewMalformedFormat(li+1,
				fmt.Sprintf("depth %q is not finite", values[di].Source))
		}
		if len(records) > 0 && depth < prevDepth {
			return nil, twog.NewMalformedFormat(li+1,
				fmt.Sprintf("depth %g decreases below preceding %g", depth, prevDepth))
		}
		prevDepth = depth
		records = append(records, twog.NewRecord(values))
	}
	return records, nil
}

func detectDelimiter(headerLine string, lineNo int) (rune, error) {
	switch {
	case strings.ContainsRune(headerLine, '\t'):
		return '\t', nil
	case strings.ContainsRune(headerLine, ','):
		return ',', nil
	default:
		return 0, twog.NewMalformedFormat(lineNo,
			"cannot determine delimiter: column header contains neither tab nor comma")
	}
}

func metaValue(meta []twog.MetaEntry, key string) (string, bool) {
	for _, m := range meta {
		if m.Key == key {
			return m.Value, true
		}
	}
	return "", false
}

// Load reads and parses one measurement file.
func Load(path string, spec *Spec) (*twog.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	table, err := Parse(data, spec)
	if err != nil {
		var mf *twog.MalformedFormatError
		if errors.As(err, &mf) {
			mf.Path = path
		}
		return nil, err
	}
	return table, nil
}
