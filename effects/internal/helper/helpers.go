package helper

import (
	"context"
	"fmt"

	effectmodel "github.com/on-the-ground/viewstate/effects/internal/model"
	sharedHelper "github.com/on-the-ground/viewstate/shared/helper"
)

// Handler returns the handler of type T installed in ctx for enum.
// It panics with an error wrapping ErrNoEffectHandler if there is none.
func Handler[T any](ctx context.Context, enum effectmodel.EffectEnum) T {
	return sharedHelper.MustGetTypedValue[T](func() (any, error) {
		return lookup(ctx, enum)
	})
}

// Installed reports whether any handler is installed in ctx for enum.
func Installed(ctx context.Context, enum effectmodel.EffectEnum) bool {
	_, err := lookup(ctx, enum)
	return err == nil
}

func lookup(ctx context.Context, enum effectmodel.EffectEnum) (any, error) {
	if raw := ctx.Value(enum); raw != nil {
		return raw, nil
	}
	return nil, fmt.Errorf("%w: %v", effectmodel.ErrNoEffectHandler, enum)
}
