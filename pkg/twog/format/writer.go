package format

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/leengari/coremag/pkg/twog"
)

// Write renders a table back into file bytes. The output parses back to a
// table equal field-for-field to the input: metadata order, column order and
// the source text of every unchanged value are preserved, and values changed
// by a transform were formatted with at least their original precision.
func Write(t *twog.Table) []byte {
	var b strings.Builder
	for _, m := range t.Metadata {
		b.WriteString(m.Key)
		b.WriteString(": ")
		b.WriteString(m.Value)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	delim := string(t.Schema.Delimiter)
	for i, col := range t.Schema.Columns {
		if i > 0 {
			b.WriteString(delim)
		}
		b.WriteString(col.Name)
	}
	b.WriteByte('\n')

	for _, rec := range t.Records {
		for i, v := range rec.Values {
			if i > 0 {
				b.WriteString(delim)
			}
			b.WriteString(v.String())
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// Save writes the table to path using a temp file and an atomic rename, so a
// crash mid-write never leaves a half-written measurement file behind.
func Save(t *twog.Table, path string) error {
	data := Write(t)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	slog.Info("measurement file saved",
		slog.String("path", path),
		slog.Int("records", t.Len()),
		slog.Int("bytes", len(data)),
	)
	return nil
}
