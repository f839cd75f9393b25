package helper

import (
	"context"
)

// GetTypedValueOf2 asserts the result of a comma-ok getter to T.
func GetTypedValueOf2[T any](getFn func() (any, bool)) (res T, ok bool) {
	var raw any
	if raw, ok = getFn(); ok {
		res, ok = raw.(T)
	}
	return
}

// ContextValue looks up key in ctx and asserts it to T.
func ContextValue[T any](ctx context.Context, key any) (T, bool) {
	return GetTypedValueOf2[T](func() (any, bool) {
		raw := ctx.Value(key)
		return raw, raw != nil
	})
}
