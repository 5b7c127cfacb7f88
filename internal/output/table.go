package output

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
)

// Table represents a pre-rendered table for table output formatting.
type Table struct {
	Headers []string   `json:"headers,omitempty" yaml:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// printText outputs data as human-readable text: "key: value" lines for
// maps and structs, one line per item for lists.
func (p *Printer) printText(data interface{}) error {
	v := deref(reflect.ValueOf(data))
	if !v.IsValid() {
		return nil
	}

	switch {
	case v.Kind() == reflect.Map:
		return p.printTextMap(v)
	case v.Kind() == reflect.Struct && !isScalar(v):
		return p.printTextStruct(v)
	case v.Kind() == reflect.Slice || v.Kind() == reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if _, err := fmt.Fprintln(p.w, cell(v.Index(i))); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := fmt.Fprintln(p.w, cell(v))
		return err
	}
}

func (p *Printer) printTextMap(v reflect.Value) error {
	// Sort keys for deterministic output
	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})

	for _, key := range keys {
		if _, err := fmt.Fprintf(p.w, "%v: %s\n", key.Interface(), cell(v.MapIndex(key))); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printTextStruct(v reflect.Value) error {
	for _, f := range structFields(v.Type()) {
		value := v.FieldByIndex(f.index)
		if f.omitEmpty && value.IsZero() {
			continue
		}
		if _, err := fmt.Fprintf(p.w, "%s: %s\n", f.name, cell(value)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printTable(data interface{}) error {
	// Allow explicit Table type
	if table, ok := data.(Table); ok {
		return p.printTableData(table.Headers, table.Rows)
	}

	v := deref(reflect.ValueOf(data))
	if !v.IsValid() {
		return nil
	}
	// A list wrapper prints its results.
	if v.Kind() == reflect.Struct {
		if results := v.FieldByName("Results"); results.IsValid() {
			v = results
		}
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fmt.Errorf("table format requires a list of items")
	}
	if v.Len() == 0 {
		return nil
	}

	headers, rows := buildTable(v)
	return p.printTableData(headers, rows)
}

func (p *Printer) printTableData(headers []string, rows [][]string) error {
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

func buildTable(v reflect.Value) ([]string, [][]string) {
	first := deref(v.Index(0))

	// Default for slices of maps or primitives
	if first.Kind() != reflect.Struct || isScalar(first) {
		rows := make([][]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			rows = append(rows, []string{cell(v.Index(i))})
		}
		return []string{"value"}, rows
	}

	fields := structFields(first.Type())
	headers := make([]string, 0, len(fields))
	for _, f := range fields {
		headers = append(headers, f.name)
	}

	rows := make([][]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		item := deref(v.Index(i))
		if item.Kind() != reflect.Struct || item.Type() != first.Type() {
			rows = append(rows, []string{cell(item)})
			continue
		}
		row := make([]string, 0, len(fields))
		for _, f := range fields {
			row = append(row, cell(item.FieldByIndex(f.index)))
		}
		rows = append(rows, row)
	}
	return headers, rows
}

type structField struct {
	name      string
	index     []int
	omitEmpty bool
}

// structFields lists the exported fields of t under their json names. The
// fields of embedded structs are promoted.
func structFields(t reflect.Type) []structField {
	var out []structField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := strings.Split(f.Tag.Get("json"), ",")
		if tag[0] == "-" {
			continue
		}
		if f.Anonymous && tag[0] == "" && f.Type.Kind() == reflect.Struct {
			for _, sub := range structFields(f.Type) {
				sub.index = append([]int{i}, sub.index...)
				out = append(out, sub)
			}
			continue
		}
		name := f.Name
		if tag[0] != "" {
			name = tag[0]
		}
		out = append(out, structField{
			name:      name,
			index:     []int{i},
			omitEmpty: strings.Contains(f.Tag.Get("json"), "omitempty"),
		})
	}
	return out
}

// deref follows pointers and interfaces. It returns the zero Value for nil.
func deref(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// isScalar reports whether a struct value prints as one value, such as a
// decimal amount or a date.
func isScalar(v reflect.Value) bool {
	if !v.CanInterface() {
		return false
	}
	_, ok := v.Interface().(fmt.Stringer)
	return ok
}

// cell formats one value for text and table output. Lists are joined with
// commas and nil prints as "-".
func cell(v reflect.Value) string {
	v = deref(v)
	if !v.IsValid() {
		return "-"
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return fmt.Sprint(v.Interface())
		}
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			parts = append(parts, cell(v.Index(i)))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v.Interface())
	}
}
