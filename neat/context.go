package neat

import (
	"context"
	"errors"
)

// ErrNEATOptionsNotFound is returned by FromContext when the context carries
// no Options, e.g. a caller forgot to wrap it with NewContext before handing
// it to the driver.
var ErrNEATOptionsNotFound = errors.New("NEAT options not found in the context")

// optionsKey is an unexported type so this package's context key can never
// collide with a key defined elsewhere.
type optionsKey struct{}

// NewContext returns a copy of ctx carrying opts, recoverable later via
// FromContext. driver.Run takes a context.Context and recovers its Options
// this way; the packages it calls receive the *Options directly.
func NewContext(ctx context.Context, opts *Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// FromContext recovers the Options stashed by NewContext, if any.
func FromContext(ctx context.Context) (*Options, bool) {
	opts, ok := ctx.Value(optionsKey{}).(*Options)
	return opts, ok
}
