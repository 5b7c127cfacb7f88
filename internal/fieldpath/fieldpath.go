// Package fieldpath resolves dotted paths such as "member.name" against
// arbitrary Go values: structs (by field name, json tag or yaml tag), string
// keyed maps, pointers and interfaces. Names are matched case-insensitively
// and ignore '_' and '-'.
package fieldpath

import (
	"reflect"
	"strings"
)

// Split breaks a dotted path into its segments, dropping empty ones.
func Split(path string) []string {
	parts := strings.Split(strings.TrimSpace(path), ".")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Lookup resolves path against v. The second return value is false when any
// segment is missing or the value at the end of the path is nil.
func Lookup(v interface{}, path string) (interface{}, bool) {
	segs := Split(path)
	if len(segs) == 0 {
		return nil, false
	}
	return LookupValue(reflect.ValueOf(v), segs)
}

// LookupValue is Lookup for callers that already hold a reflect.Value and a
// split path.
func LookupValue(v reflect.Value, path []string) (interface{}, bool) {
	v = indirect(v)
	if !v.IsValid() || len(path) == 0 {
		return nil, false
	}

	var next reflect.Value
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		key, ok := findMapKey(v, path[0])
		if !ok {
			return nil, false
		}
		next = v.MapIndex(key)
	case reflect.Struct:
		field, ok := findStructField(v, path[0])
		if !ok {
			return nil, false
		}
		next = field
	default:
		return nil, false
	}

	if len(path) > 1 {
		return LookupValue(next, path[1:])
	}

	next = indirect(next)
	if !next.IsValid() || !next.CanInterface() {
		return nil, false
	}
	return next.Interface(), true
}

// indirect follows pointers and interfaces; it returns the zero Value for nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func findMapKey(v reflect.Value, name string) (reflect.Value, bool) {
	norm := NormalizeName(name)
	for _, key := range v.MapKeys() {
		if NormalizeName(key.String()) == norm {
			return key, true
		}
	}
	return reflect.Value{}, false
}

func findStructField(v reflect.Value, name string) (reflect.Value, bool) {
	norm := NormalizeName(name)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if NormalizeName(f.Name) == norm ||
			NormalizeName(tagName(f, "json")) == norm ||
			NormalizeName(tagName(f, "yaml")) == norm {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func tagName(f reflect.StructField, key string) string {
	tag := f.Tag.Get(key)
	if tag == "" {
		return ""
	}
	name := strings.Split(tag, ",")[0]
	if name == "-" {
		return ""
	}
	return name
}

// NormalizeName lower-cases s and strips '_' and '-'.
func NormalizeName(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(s, "_", ""), "-", ""))
}
