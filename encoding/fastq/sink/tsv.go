package sink

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
)

// TSV is a reference Writer that renders each table as a header-plus-rows
// tab-separated file at outputPath/<lowercased table>.tsv. It exists for debugging and
// golden-file testing: a real deployment points the engine at a proper
// column-oriented archive writer instead.
type TSV struct {
	dir  string
	cols map[string][]string // table -> column names, sorted by name.
	outs map[string]file.File
	w    map[string]*bufio.Writer
	errp errors.Once
}

func (t *TSV) Open(outputPath, schemaName, databaseName, loaderName, loaderVersion string, tables TableDescriptor) error {
	ctx := vcontext.Background()
	t.dir = outputPath
	t.cols = make(map[string][]string, len(tables))
	t.outs = make(map[string]file.File, len(tables))
	t.w = make(map[string]*bufio.Writer, len(tables))

	for table, cols := range tables {
		names := make([]string, 0, len(cols))
		for name := range cols {
			names = append(names, name)
		}
		sort.Strings(names)
		t.cols[table] = names

		path := strings.TrimSuffix(outputPath, "/") + "/" + strings.ToLower(table) + ".tsv"
		f, err := file.Create(ctx, path)
		if err != nil {
			return errors.E(err, "sink.TSV.Open", path)
		}
		t.outs[table] = f
		w := bufio.NewWriter(f.Writer(ctx))
		t.w[table] = w
		fmt.Fprintf(w, "# schema=%s database=%s loader=%s/%s\n", schemaName, databaseName, loaderName, loaderVersion)
		fmt.Fprintln(w, strings.Join(names, "\t"))
	}
	log.Debug.Printf("sink.TSV: opened %d tables under %s", len(tables), outputPath)
	return nil
}

func (t *TSV) Write(table string, row Row) error {
	w, ok := t.w[table]
	if !ok {
		return errors.E("sink.TSV.Write", table, "table not opened")
	}
	names := t.cols[table]
	fields := make([]string, len(names))
	for i, name := range names {
		fields[i] = formatCell(row[name])
	}
	_, err := fmt.Fprintln(w, strings.Join(fields, "\t"))
	if err != nil {
		t.errp.Set(err)
	}
	return err
}

func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []int:
		parts := make([]string, len(x))
		for i, n := range x {
			parts[i] = fmt.Sprintf("%d", n)
		}
		return strings.Join(parts, ",")
	case []bool:
		parts := make([]string, len(x))
		for i, b := range x {
			if b {
				parts[i] = "1"
			} else {
				parts[i] = "0"
			}
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", x)
	}
}

func (t *TSV) Close() error {
	ctx := vcontext.Background()
	for table, w := range t.w {
		if err := w.Flush(); err != nil {
			t.errp.Set(errors.E(err, "sink.TSV.Close", table))
		}
	}
	for table, f := range t.outs {
		if err := f.Close(ctx); err != nil {
			t.errp.Set(errors.E(err, "sink.TSV.Close", table))
		}
	}
	return t.errp.Err()
}
