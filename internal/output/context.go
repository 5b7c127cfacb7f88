package output

import "context"

// ctxKey names the printer settings carried on a context.
type ctxKey int

const (
	formatKey ctxKey = iota
	queryKey
	limitKey
	sortFieldKey
	sortDescKey
	quietKey
)

// value returns the setting stored under key, or the zero T.
func value[T any](ctx context.Context, key ctxKey) T {
	v, _ := ctx.Value(key).(T)
	return v
}

// WithFormat attaches the output format.
func WithFormat(ctx context.Context, format Format) context.Context {
	return context.WithValue(ctx, formatKey, format)
}

// FormatFromContext returns the output format, FormatText when unset.
func FormatFromContext(ctx context.Context) Format {
	if f := value[Format](ctx, formatKey); f != "" {
		return f
	}
	return FormatText
}

// WithQuery attaches a jq expression applied to structured output.
func WithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryKey, query)
}

func QueryFromContext(ctx context.Context) string {
	return value[string](ctx, queryKey)
}

// WithLimit caps the number of results printed. 0 means no cap.
func WithLimit(ctx context.Context, limit int) context.Context {
	return context.WithValue(ctx, limitKey, limit)
}

func LimitFromContext(ctx context.Context) int {
	return value[int](ctx, limitKey)
}

// WithSort orders results by a field path, descending when desc is set.
func WithSort(ctx context.Context, field string, desc bool) context.Context {
	ctx = context.WithValue(ctx, sortFieldKey, field)
	return context.WithValue(ctx, sortDescKey, desc)
}

func SortFromContext(ctx context.Context) (field string, desc bool) {
	return value[string](ctx, sortFieldKey), value[bool](ctx, sortDescKey)
}

// WithQuiet suppresses the detail lines of human-readable summaries.
func WithQuiet(ctx context.Context, quiet bool) context.Context {
	return context.WithValue(ctx, quietKey, quiet)
}

func QuietFromContext(ctx context.Context) bool {
	return value[bool](ctx, quietKey)
}
