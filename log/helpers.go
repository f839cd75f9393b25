package log

import (
	"context"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// WithTestEffectHandler routes log effects to t's output at level and above.
// Call the teardown before the test returns; zaptest refuses writes after that.
func WithTestEffectHandler(
	ctx context.Context,
	t zaptest.TestingT,
	level zapcore.Level,
) (context.Context, func() context.Context) {
	return WithZapEffectHandler(
		ctx,
		1,
		zaptest.NewLogger(t, zaptest.Level(level)),
	)
}
