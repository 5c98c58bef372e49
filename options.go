package bucketgo

import "log/slog"

// DefaultBlockCapacity is the number of slots per block when no capacity
// is configured.
const DefaultBlockCapacity = 64

type options struct {
	blockCapacity int
	maxBlocks     int
	logger        *slog.Logger
}

// Option configures a BucketStorage at construction time.
type Option func(*options)

// WithBlockCapacity sets the number of slots per block. The capacity is
// fixed for the lifetime of the container; total capacity is always a
// multiple of it. New fails with ErrZeroBlockCapacity if n < 1.
func WithBlockCapacity(n int) Option {
	return func(o *options) {
		o.blockCapacity = n
	}
}

// WithMaxBlocks bounds the number of blocks the container may hold at
// once. Once the bound is reached, Insert fails with ErrTooManyBlocks
// until an erase or shrink makes room. Zero (the default) means
// unbounded.
func WithMaxBlocks(n int) Option {
	return func(o *options) {
		o.maxBlocks = n
	}
}

// WithLogger sets the logger used for debug-level block lifecycle events.
// If unset, log output is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
