// Command coremag is the reference caller of the measurement library: it
// loads 2G files, applies a transform or assembles sections, and writes the
// result back out.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leengari/coremag/internal/config"
	"github.com/leengari/coremag/internal/logging"
	"github.com/leengari/coremag/pkg/twog"
	"github.com/leengari/coremag/pkg/twog/assemble"
	"github.com/leengari/coremag/pkg/twog/format"
	"github.com/leengari/coremag/pkg/twog/transform"
)

const usage = `usage:
  coremag flip <in> <out> [axis ...]        negate remanence components (default: Y corr, Z corr)
  coremag remap <in> <out> <a> <b>          rewrite depths as a*old + b
  coremag truncate <in> <out> <top> <bot>   drop depth bands at the core ends
  coremag assemble <out> <in[@offset]> ...  combine sections into one core
  coremag excel <in> <out.xlsx>             export as a workbook`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "coremag:", err)
		os.Exit(1)
	}
	logger, closeFn := logging.Setup(cfg.Logging)
	defer closeFn()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	spec, ok := format.Lookup(cfg.Format.Version)
	if !ok {
		logger.Error("unknown format version", "version", cfg.Format.Version)
		closeFn()
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:], spec, cfg); err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		closeFn()
		os.Exit(1)
	}
}

func run(command string, args []string, spec *format.Spec, cfg *config.Config) error {
	switch command {
	case "flip":
		if len(args) < 2 {
			return fmt.Errorf("flip needs <in> <out>")
		}
		axes := transform.FlipAxes
		if len(args) > 2 {
			axes = args[2:]
		}
		return apply(args[0], args[1], spec, func(t *twog.Table) (*twog.Table, error) {
			return transform.Invert(t, axes)
		})

	case "remap":
		if len(args) != 4 {
			return fmt.Errorf("remap needs <in> <out> <a> <b>")
		}
		a, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("bad scale %q: %w", args[2], err)
		}
		b, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("bad offset %q: %w", args[3], err)
		}
		return apply(args[0], args[1], spec, func(t *twog.Table) (*twog.Table, error) {
			return transform.Remap(t, transform.Affine{A: a, B: b})
		})

	case "truncate":
		if len(args) != 4 {
			return fmt.Errorf("truncate needs <in> <out> <top> <bottom>")
		}
		top, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("bad top band %q: %w", args[2], err)
		}
		bottom, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("bad bottom band %q: %w", args[3], err)
		}
		return apply(args[0], args[1], spec, func(t *twog.Table) (*twog.Table, error) {
			return transform.Truncate(t, top, bottom)
		})

	case "assemble":
		if len(args) < 2 {
			return fmt.Errorf("assemble needs <out> and at least one <in[@offset]>")
		}
		sections := make([]assemble.Section, 0, len(args)-1)
		for _, arg := range args[1:] {
			section, err := parseSection(arg, spec)
			if err != nil {
				return err
			}
			sections = append(sections, section)
		}
		combined, err := assemble.Assemble(sections, assemble.Strategy(cfg.Assembly.Strategy))
		if err != nil {
			return err
		}
		return format.Save(combined, args[0])

	case "excel":
		if len(args) != 2 {
			return fmt.Errorf("excel needs <in> <out.xlsx>")
		}
		table, err := format.Load(args[0], spec)
		if err != nil {
			return err
		}
		return format.ExportExcel(table, args[1])

	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}

func apply(in, out string, spec *format.Spec, fn func(*twog.Table) (*twog.Table, error)) error {
	table, err := format.Load(in, spec)
	if err != nil {
		return err
	}
	result, err := fn(table)
	if err != nil {
		return err
	}
	return format.Save(result, out)
}

// parseSection splits an "path@offset" argument; the section name is the
// file name without extension.
func parseSection(arg string, spec *format.Spec) (assemble.Section, error) {
	path, offsetText, hasOffset := strings.Cut(arg, "@")
	offset := 0.0
	if hasOffset {
		var err error
		offset, err = strconv.ParseFloat(offsetText, 64)
		if err != nil {
			return assemble.Section{}, fmt.Errorf("bad offset in %q: %w", arg, err)
		}
	}
	table, err := format.Load(path, spec)
	if err != nil {
		return assemble.Section{}, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	slog.Debug("loaded section", "name", name, "offset", offset)
	return assemble.Section{Name: name, Table: table, Offset: offset}, nil
}
