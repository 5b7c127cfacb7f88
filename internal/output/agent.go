package output

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salmonumbrella/chitbook/internal/fieldpath"
)

// timeLike matches time.Time and types embedding it, such as book dates.
type timeLike interface {
	UTC() time.Time
}

// ApplyAgentOptions applies --limit/--sort-by/--desc to output data when possible.
func ApplyAgentOptions(ctx context.Context, data interface{}) interface{} {
	if data == nil {
		return data
	}

	limit := LimitFromContext(ctx)
	sortBy, desc := SortFromContext(ctx)
	if limit == 0 && sortBy == "" {
		return data
	}

	v := reflect.ValueOf(data)
	if !v.IsValid() {
		return data
	}

	// Handle pointers
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return data
		}
		elem := v.Elem()
		if elem.Kind() == reflect.Struct {
			if updated := applyToResultsField(elem, limit, sortBy, desc); updated != nil {
				return data
			}
		} else if elem.Kind() == reflect.Slice || elem.Kind() == reflect.Array {
			updated := applyToSlice(elem, limit, sortBy, desc)
			if updated.IsValid() {
				return updated.Interface()
			}
		}
		return data
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		updated := applyToSlice(v, limit, sortBy, desc)
		if updated.IsValid() {
			return updated.Interface()
		}
	case reflect.Struct:
		if updated := applyToResultsField(v, limit, sortBy, desc); updated != nil {
			return updated
		}
	}

	return data
}

// applyToResultsField applies sort/limit to a struct field named Results (if present).
func applyToResultsField(v reflect.Value, limit int, sortBy string, desc bool) interface{} {
	if v.Kind() != reflect.Struct {
		return nil
	}

	resultsField := v.FieldByName("Results")
	if !resultsField.IsValid() || (resultsField.Kind() != reflect.Slice && resultsField.Kind() != reflect.Array) {
		return nil
	}

	updated := applyToSlice(resultsField, limit, sortBy, desc)
	if !updated.IsValid() {
		return nil
	}

	if resultsField.CanSet() {
		resultsField.Set(updated)
		return v.Interface()
	}

	// If struct is not settable (value copy), create a new copy and set Results.
	copyVal := reflect.New(v.Type()).Elem()
	copyVal.Set(v)
	copyResults := copyVal.FieldByName("Results")
	if copyResults.IsValid() && copyResults.CanSet() {
		copyResults.Set(updated)
		return copyVal.Interface()
	}

	return nil
}

// applyToSlice copies, sorts, and limits a slice value.
func applyToSlice(v reflect.Value, limit int, sortBy string, desc bool) reflect.Value {
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return reflect.Value{}
	}

	length := v.Len()
	if length == 0 {
		return v
	}

	// Copy to avoid mutating original
	sliceType := v.Type()
	if v.Kind() == reflect.Array {
		sliceType = reflect.SliceOf(v.Type().Elem())
	}
	copySlice := reflect.MakeSlice(sliceType, length, length)
	reflect.Copy(copySlice, v)

	if sortBy != "" {
		sortPath := fieldpath.Split(sortBy)
		sort.Slice(copySlice.Interface(), func(i, j int) bool {
			a := copySlice.Index(i)
			b := copySlice.Index(j)
			av, aok := fieldpath.LookupValue(a, sortPath)
			bv, bok := fieldpath.LookupValue(b, sortPath)
			if !aok && !bok {
				return false
			}
			if !aok {
				return false
			}
			if !bok {
				return true
			}
			cmp := compareValues(av, bv)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	if limit > 0 && limit < copySlice.Len() {
		return copySlice.Slice(0, limit)
	}

	return copySlice
}

func compareValues(a, b interface{}) int {
	switch va := a.(type) {
	case string:
		vb, ok := b.(string)
		if !ok {
			return 0
		}
		return strings.Compare(va, vb)
	case float64:
		vb, ok := b.(float64)
		if !ok {
			return 0
		}
		if va < vb {
			return -1
		}
		if va > vb {
			return 1
		}
		return 0
	case int:
		vb, ok := b.(int)
		if !ok {
			return 0
		}
		if va < vb {
			return -1
		}
		if va > vb {
			return 1
		}
		return 0
	case int64:
		vb, ok := b.(int64)
		if !ok {
			return 0
		}
		if va < vb {
			return -1
		}
		if va > vb {
			return 1
		}
		return 0
	case decimal.Decimal:
		vb, ok := b.(decimal.Decimal)
		if !ok {
			return 0
		}
		return va.Cmp(vb)
	case timeLike:
		vb, ok := b.(timeLike)
		if !ok {
			return 0
		}
		return va.UTC().Compare(vb.UTC())
	default:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}
