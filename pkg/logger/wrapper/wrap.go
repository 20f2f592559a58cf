package wrap

import (
	"context"
	"errors"
)

// loggedError carries the LogCtx that was current where the error happened.
type loggedError struct {
	err    error
	logCtx LogCtx
}

func (e *loggedError) Error() string { return e.err.Error() }

func (e *loggedError) Unwrap() error { return e.err }

// Error wraps an error with the current LogCtx from the context.
// Wrapping an already wrapped error refreshes its LogCtx.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var e *loggedError
	if errors.As(err, &e) {
		if x, ok := ctx.Value(LogCtxKey).(LogCtx); ok {
			e.logCtx = x
		}
		return err
	}

	return &loggedError{
		err:    err,
		logCtx: FromContext(ctx),
	}
}

// ErrorCtx returns ctx with the LogCtx carried by err merged over it. Fields the
// error did not record, such as a request id set later, are kept from ctx.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var e *loggedError
	if errors.As(err, &e) && e != nil {
		return WithLogCtx(ctx, e.logCtx)
	}
	return ctx
}
